package api

import (
	"net/http"

	"github.com/xraph/forge"

	"github.com/permitio/docgate/document"
	"github.com/permitio/docgate/middleware"
)

func (a *API) registerDocumentRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("documents"))

	if err := g.GET("/documents/:documentId", a.getDocument,
		forge.WithSummary("Get a document"),
		forge.WithDescription("Returns a document. Access is governed by the document's category."),
		forge.WithOperationID("getDocument"),
		forge.WithResponseSchema(http.StatusOK, "Document", &document.Document{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.PUT("/documents/:documentId", a.updateDocument,
		forge.WithSummary("Update a document"),
		forge.WithDescription("Applies a partial update; omitted fields are kept. Editing shares the create-document permission on the category."),
		forge.WithOperationID("updateDocument"),
		forge.WithRequestSchema(UpdateDocumentRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Updated document", &document.Document{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) getDocument(ctx forge.Context, _ *GetDocumentRequest) (*document.Document, error) {
	subject := middleware.ResolveSubject(ctx)

	d, err := a.svc.GetDocument(ctx.Context(), subject, ctx.Param("documentId"))
	if err != nil {
		return nil, mapError(err)
	}

	return d, nil
}

func (a *API) updateDocument(ctx forge.Context, req *UpdateDocumentRequest) (*document.Document, error) {
	subject := middleware.ResolveSubject(ctx)

	d, err := a.svc.UpdateDocument(ctx.Context(), subject, ctx.Param("documentId"), &document.Update{
		Name:    req.Name,
		Content: req.Content,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return d, nil
}
