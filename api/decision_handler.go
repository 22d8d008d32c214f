package api

import (
	"net/http"
	"strconv"

	"github.com/xraph/forge"

	"github.com/permitio/docgate/decision"
	"github.com/permitio/docgate/middleware"
)

func (a *API) registerDecisionRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("decisions"))

	return g.GET("/categories/:categoryId/decisions", a.listDecisions,
		forge.WithSummary("List recorded decisions for a category"),
		forge.WithDescription("Returns the authorization decision audit log for the category, newest first. Requires list-documents on the category."),
		forge.WithOperationID("listCategoryDecisions"),
		forge.WithResponseSchema(http.StatusOK, "Decision list", []*decision.Entry{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) listDecisions(ctx forge.Context) error {
	subject := middleware.ResolveSubject(ctx)
	query := ctx.Request().URL.Query()

	limit, _ := strconv.Atoi(query.Get("limit"))   //nolint:errcheck // zero falls back to default
	offset, _ := strconv.Atoi(query.Get("offset")) //nolint:errcheck // zero is a valid offset

	filter := &decision.QueryFilter{
		SubjectID: query.Get("subjectId"),
		Action:    query.Get("action"),
		Decision:  query.Get("decision"),
		Limit:     defaultLimit(limit),
		Offset:    offset,
	}

	entries, err := a.svc.ListDecisions(ctx.Context(), subject, ctx.Param("categoryId"), filter)
	if err != nil {
		return mapError(err)
	}

	return ctx.JSON(http.StatusOK, entries)
}
