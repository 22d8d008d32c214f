package api

import (
	"net/http"

	"github.com/xraph/forge"

	"github.com/permitio/docgate/document"
	"github.com/permitio/docgate/middleware"
)

func (a *API) registerCategoryRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("categories"))

	if err := g.GET("/categories", a.listCategories,
		forge.WithSummary("List accessible categories"),
		forge.WithDescription("Returns the categories the caller may list documents in, with document counts. Inaccessible categories are omitted."),
		forge.WithOperationID("listCategories"),
		forge.WithResponseSchema(http.StatusOK, "Category list", ListCategoriesResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/categories/:categoryId/documents", a.listDocuments,
		forge.WithSummary("List documents in a category"),
		forge.WithDescription("Returns all documents in the category. Requires list-documents on the category."),
		forge.WithOperationID("listDocuments"),
		forge.WithResponseSchema(http.StatusOK, "Document list", ListDocumentsResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/categories/:categoryId/documents", a.createDocument,
		forge.WithSummary("Create a document"),
		forge.WithDescription("Adds a document to the category. Requires create-document on the category."),
		forge.WithOperationID("createDocument"),
		forge.WithRequestSchema(CreateDocumentRequest{}),
		forge.WithResponseSchema(http.StatusCreated, "Created document", &document.Document{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.POST("/categories/:categoryId/members", a.addMember,
		forge.WithSummary("Grant a role on a category"),
		forge.WithDescription("Assigns a role to a user on the category through the policy service. Requires create-document on the category."),
		forge.WithOperationID("addCategoryMember"),
		forge.WithRequestSchema(AddMemberRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Granted role", MemberResponse{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) listCategories(ctx forge.Context, _ *ListCategoriesRequest) (*ListCategoriesResponse, error) {
	subject := middleware.ResolveSubject(ctx)

	views, err := a.svc.ListCategories(ctx.Context(), subject)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ListCategoriesResponse{Categories: views}
	return resp, nil
}

func (a *API) listDocuments(ctx forge.Context, _ *ListDocumentsRequest) (*ListDocumentsResponse, error) {
	subject := middleware.ResolveSubject(ctx)

	docsList, err := a.svc.ListDocuments(ctx.Context(), subject, ctx.Param("categoryId"))
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ListDocumentsResponse{Documents: docsList}
	return resp, nil
}

func (a *API) createDocument(ctx forge.Context, req *CreateDocumentRequest) (*document.Document, error) {
	if req.Name == "" {
		return nil, forge.BadRequest("name is required")
	}
	subject := middleware.ResolveSubject(ctx)

	d, err := a.svc.CreateDocument(ctx.Context(), subject, ctx.Param("categoryId"), req.Name, req.Content)
	if err != nil {
		return nil, mapError(err)
	}

	return nil, ctx.JSON(http.StatusCreated, d)
}

func (a *API) addMember(ctx forge.Context, req *AddMemberRequest) (*MemberResponse, error) {
	if req.UserID == "" {
		return nil, forge.BadRequest("userId is required")
	}
	if req.Role == "" {
		return nil, forge.BadRequest("role is required")
	}
	subject := middleware.ResolveSubject(ctx)

	role, err := a.svc.AddMember(ctx.Context(), subject, ctx.Param("categoryId"), req.UserID, req.Role)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &MemberResponse{UserID: req.UserID, Role: role}
	return resp, nil
}
