// Package api provides the HTTP surface of the docgate demo. The server is
// the enforcement point: every route re-checks authorization through the
// guard regardless of what a client-side mirror believes.
package api

import (
	"net/http"

	"github.com/xraph/forge"

	"github.com/permitio/docgate/docs"
)

// API wires all docgate HTTP handlers together.
type API struct {
	svc    *docs.Service
	router forge.Router
}

// New creates an API from a document service and a Forge router.
func New(svc *docs.Service, router forge.Router) *API {
	return &API{svc: svc, router: router}
}

// Handler returns the fully assembled http.Handler with all routes.
func (a *API) Handler() http.Handler {
	if a.router == nil {
		a.router = forge.NewRouter()
	}
	if err := a.RegisterRoutes(a.router); err != nil {
		panic("docgate: register routes: " + err.Error())
	}
	return a.router.Handler()
}

// RegisterRoutes registers all API routes into the given Forge router.
func (a *API) RegisterRoutes(router forge.Router) error {
	registerers := []func(forge.Router) error{
		a.registerCategoryRoutes,
		a.registerDocumentRoutes,
		a.registerAuthzRoutes,
		a.registerDecisionRoutes,
	}
	for _, fn := range registerers {
		if err := fn(router); err != nil {
			return err
		}
	}
	return nil
}
