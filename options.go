package docgate

import (
	"log/slog"

	"github.com/permitio/docgate/hook"
)

// Option is a functional option for the Guard.
type Option func(*Guard)

// WithClient sets the policy client. Required.
func WithClient(c PolicyClient) Option { return func(g *Guard) { g.client = c } }

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option { return func(g *Guard) { g.logger = l } }

// WithConfig sets the guard configuration.
func WithConfig(c Config) Option { return func(g *Guard) { g.config = c } }

// WithHook registers a lifecycle hook with the guard.
func WithHook(h hook.Hook) Option {
	return func(g *Guard) {
		if g.hooks == nil {
			g.hooks = hook.NewRegistry(g.logger)
		}
		g.hooks.Register(h)
	}
}
