// Package middleware provides HTTP authorization middleware for docgate.
// The demo identifies callers by a bare user-id header; a missing header
// means the anonymous subject, which the policy service denies by default.
package middleware

import (
	"encoding/json"
	"errors"

	"github.com/xraph/forge"

	"github.com/permitio/docgate"
)

// Resolver maps a request to the resource the check targets.
type Resolver func(ctx forge.Context) (docgate.Resource, error)

// CategoryParam resolves the resource from a path parameter holding a
// category ID.
func CategoryParam(param string) Resolver {
	return func(ctx forge.Context) (docgate.Resource, error) {
		return docgate.CategoryResource(ctx.Param(param)), nil
	}
}

// Require enforces one action on the resolved resource before the handler
// runs. The resolved subject is stored in the request context for the
// handler.
func Require(guard *docgate.Guard, action docgate.Action, resolve Resolver) forge.Middleware {
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			subject := ResolveSubject(ctx)

			resource, err := resolve(ctx)
			if err != nil {
				return errorResponse(ctx, 404, "resource not found")
			}

			err = guard.Enforce(ctx.Context(), &docgate.CheckRequest{
				Subject:  subject,
				Action:   action,
				Resource: resource,
			})
			switch {
			case errors.Is(err, docgate.ErrAccessDenied):
				return denyResponse(ctx)
			case errors.Is(err, docgate.ErrPolicyUnavailable):
				return errorResponse(ctx, 500, "authorization unavailable")
			case err != nil:
				return err
			}
			return next(ctx)
		}
	}
}

// RequireAny allows the request if any of the actions is permitted on the
// resolved resource.
func RequireAny(guard *docgate.Guard, actions []docgate.Action, resolve Resolver) forge.Middleware {
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			subject := ResolveSubject(ctx)

			resource, err := resolve(ctx)
			if err != nil {
				return errorResponse(ctx, 404, "resource not found")
			}

			for _, action := range actions {
				allowed, err := guard.CanI(ctx.Context(), subject, action, resource)
				if err != nil {
					return errorResponse(ctx, 500, "authorization unavailable")
				}
				if allowed {
					return next(ctx)
				}
			}
			return denyResponse(ctx)
		}
	}
}

// ResolveSubject extracts the subject from the user-id header.
func ResolveSubject(ctx forge.Context) docgate.Subject {
	return docgate.NewSubject(ctx.Request().Header.Get("user-id"))
}

func denyResponse(ctx forge.Context) error {
	return errorResponse(ctx, 403, "access denied")
}

func errorResponse(ctx forge.Context, status int, message string) error {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.Response().WriteHeader(status)
	return json.NewEncoder(ctx.Response()).Encode(map[string]string{"error": message})
}
