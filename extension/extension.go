// Package extension provides a Forge extension entry point for docgate.
package extension

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	"github.com/permitio/docgate"
	"github.com/permitio/docgate/api"
	"github.com/permitio/docgate/docs"
	"github.com/permitio/docgate/pdp"
	"github.com/permitio/docgate/store"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "docgate"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Document management demo with authorization delegated to a remote policy decision point"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts docgate as a Forge extension.
type Extension struct {
	config     Config
	guard      *docgate.Guard
	svc        *docs.Service
	apiHandler *api.API
	logger     *slog.Logger
	store      store.Store
	client     docgate.PolicyClient
	guardOpts  []docgate.Option
}

// New creates a docgate Forge extension with the given options.
func New(opts ...ExtOption) *Extension {
	e := &Extension{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the extension name.
func (e *Extension) Name() string { return ExtensionName }

// Description returns the extension description.
func (e *Extension) Description() string { return ExtensionDescription }

// Version returns the extension version.
func (e *Extension) Version() string { return ExtensionVersion }

// Dependencies returns the list of extension names this extension depends on.
func (e *Extension) Dependencies() []string { return []string{} }

// Guard returns the underlying authorization guard.
func (e *Extension) Guard() *docgate.Guard { return e.guard }

// Service returns the document service.
func (e *Extension) Service() *docs.Service { return e.svc }

// API returns the API handler.
func (e *Extension) API() *api.API { return e.apiHandler }

// Register implements [forge.Extension]. It builds the guard and the
// document service, registers them in the DI container, and optionally
// registers HTTP routes.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.init(fapp); err != nil {
		return err
	}

	if err := vessel.Provide(fapp.Container(), func() (*docgate.Guard, error) {
		return e.guard, nil
	}); err != nil {
		return fmt.Errorf("docgate: register guard in container: %w", err)
	}
	if err := vessel.Provide(fapp.Container(), func() (*docs.Service, error) {
		return e.svc, nil
	}); err != nil {
		return fmt.Errorf("docgate: register service in container: %w", err)
	}

	return nil
}

func (e *Extension) init(fapp forge.App) error {
	logger := e.logger
	if logger == nil {
		logger = slog.Default()
	}

	// Try to resolve the store from the DI container, fall back to the
	// option-provided store.
	st := e.store
	if st == nil {
		if s, err := forge.Inject[store.Store](fapp.Container()); err == nil {
			st = s
		}
	}
	if st == nil {
		return errors.New("docgate: no store configured")
	}

	// Resolve the policy client: explicit option, then DI container, then
	// an HTTP client against the configured PDP address.
	client := e.client
	if client == nil {
		if c, err := forge.Inject[docgate.PolicyClient](fapp.Container()); err == nil {
			client = c
		}
	}
	if client == nil && e.config.PDPAddress != "" {
		var pdpOpts []pdp.HTTPOption
		if e.config.PDPToken != "" {
			pdpOpts = append(pdpOpts, pdp.WithToken(e.config.PDPToken))
		}
		client = pdp.NewHTTP(e.config.PDPAddress, pdpOpts...)
	}
	if client == nil {
		return errors.New("docgate: no policy client configured")
	}

	opts := make([]docgate.Option, 0, len(e.guardOpts)+2)
	opts = append(opts, docgate.WithLogger(logger), docgate.WithClient(client))
	opts = append(opts, e.guardOpts...)

	guard, err := docgate.NewGuard(opts...)
	if err != nil {
		return fmt.Errorf("docgate: create guard: %w", err)
	}
	e.guard = guard
	e.svc = docs.NewService(guard, st, docs.WithLogger(logger))
	e.apiHandler = api.New(e.svc, fapp.Router())

	if !e.config.DisableRoutes {
		if err := e.apiHandler.RegisterRoutes(fapp.Router()); err != nil {
			return fmt.Errorf("docgate: register routes: %w", err)
		}
	}

	return nil
}

// Start runs store migrations unless disabled.
func (e *Extension) Start(ctx context.Context) error {
	if e.svc == nil {
		return errors.New("docgate: extension not initialized")
	}
	if !e.config.DisableMigrate {
		if err := e.svc.Store().Migrate(ctx); err != nil {
			return fmt.Errorf("docgate: migration failed: %w", err)
		}
	}
	return nil
}

// Stop notifies the guard's shutdown hooks.
func (e *Extension) Stop(ctx context.Context) error {
	if e.guard == nil {
		return nil
	}
	return e.guard.Stop(ctx)
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.svc == nil {
		return errors.New("docgate: extension not initialized")
	}
	return e.svc.Store().Ping(ctx)
}

// Handler returns the HTTP handler for all API routes.
func (e *Extension) Handler() http.Handler {
	if e.apiHandler == nil {
		return http.NotFoundHandler()
	}
	return e.apiHandler.Handler()
}

// RegisterRoutes registers all docgate API routes into a Forge router.
func (e *Extension) RegisterRoutes(router forge.Router) error {
	if e.apiHandler != nil {
		return e.apiHandler.RegisterRoutes(router)
	}
	return nil
}
