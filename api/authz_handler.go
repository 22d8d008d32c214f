package api

import (
	"net/http"

	"github.com/xraph/forge"

	"github.com/permitio/docgate"
	"github.com/permitio/docgate/docs"
	"github.com/permitio/docgate/middleware"
)

func (a *API) registerAuthzRoutes(router forge.Router) error {
	g := router.Group("/v1/authz", forge.WithGroupTags("authorization"))

	if err := g.POST("/check", a.check,
		forge.WithSummary("Authorization check"),
		forge.WithDescription("Evaluates whether the caller may perform the action on the resource."),
		forge.WithOperationID("authzCheck"),
		forge.WithRequestSchema(CheckRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Check result", CheckResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.POST("/bulk", a.bulkCheck,
		forge.WithSummary("Bulk authorization check"),
		forge.WithDescription("Evaluates multiple checks for the caller in one request. Results preserve request order; clients mirror them for UI decisions while the server keeps enforcing."),
		forge.WithOperationID("authzBulkCheck"),
		forge.WithRequestSchema(BulkCheckRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Bulk results", BulkCheckResponse{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) check(ctx forge.Context, req *CheckRequest) (*CheckResponse, error) {
	if req.Action == "" || req.Resource == "" {
		return nil, forge.BadRequest("action and resource are required")
	}
	resource, err := docgate.ParseResource(req.Resource)
	if err != nil {
		return nil, forge.BadRequest(err.Error())
	}
	subject := middleware.ResolveSubject(ctx)

	allowed, err := a.svc.Check(ctx.Context(), subject, docgate.Action(req.Action), resource)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &CheckResponse{Action: req.Action, Resource: req.Resource, Allowed: allowed}
	return resp, nil
}

func (a *API) bulkCheck(ctx forge.Context, req *BulkCheckRequest) (*BulkCheckResponse, error) {
	if len(req.Checks) == 0 {
		return nil, forge.BadRequest("checks cannot be empty")
	}

	items := make([]docs.CheckItem, len(req.Checks))
	for i, c := range req.Checks {
		if c.Action == "" || c.Resource == "" {
			return nil, forge.BadRequest("action and resource are required for every check")
		}
		resource, err := docgate.ParseResource(c.Resource)
		if err != nil {
			return nil, forge.BadRequest(err.Error())
		}
		items[i] = docs.CheckItem{Action: docgate.Action(c.Action), Resource: resource}
	}
	subject := middleware.ResolveSubject(ctx)

	results, err := a.svc.BulkCheck(ctx.Context(), subject, items)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &BulkCheckResponse{Results: make([]CheckResponse, len(results))}
	for i, allowed := range results {
		resp.Results[i] = CheckResponse{
			Action:   req.Checks[i].Action,
			Resource: req.Checks[i].Resource,
			Allowed:  allowed,
		}
	}
	return resp, nil
}
