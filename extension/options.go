package extension

import (
	"log/slog"

	"github.com/permitio/docgate"
	"github.com/permitio/docgate/store"
)

// ExtOption configures the docgate Forge extension.
type ExtOption func(*Extension)

// WithStore sets the persistence backend.
func WithStore(s store.Store) ExtOption {
	return func(e *Extension) {
		e.store = s
	}
}

// WithPolicyClient sets the policy decision point client.
func WithPolicyClient(c docgate.PolicyClient) ExtOption {
	return func(e *Extension) {
		e.client = c
	}
}

// WithConfig sets the extension configuration.
func WithConfig(cfg Config) ExtOption {
	return func(e *Extension) {
		e.config = cfg
	}
}

// WithGuardOptions adds guard-level options.
func WithGuardOptions(opts ...docgate.Option) ExtOption {
	return func(e *Extension) {
		e.guardOpts = append(e.guardOpts, opts...)
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) ExtOption {
	return func(e *Extension) {
		e.logger = l
	}
}

// WithDisableRoutes disables the registration of HTTP routes.
func WithDisableRoutes() ExtOption {
	return func(e *Extension) {
		e.config.DisableRoutes = true
	}
}

// WithDisableMigrate disables auto-migration on start.
func WithDisableMigrate() ExtOption {
	return func(e *Extension) {
		e.config.DisableMigrate = true
	}
}
