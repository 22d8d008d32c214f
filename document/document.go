// Package document defines the Document entity.
package document

import "github.com/permitio/docgate"

// Document is a record owned by exactly one category. Documents carry no
// permissions of their own: access is always decided on the owning category.
type Document struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"categoryId"`
	Content    string `json:"content"`
}

// Resource projects the document onto its authorization resource: the
// owning category. This is the single code path for document-level checks;
// a "Document:id" resource string is never sent to the PDP.
func (d *Document) Resource() docgate.Resource {
	return docgate.CategoryResource(d.CategoryID)
}

// Update carries the fields of a partial document update. Nil fields are
// left unchanged (merge semantics, not replacement).
type Update struct {
	Name    *string `json:"name,omitempty"`
	Content *string `json:"content,omitempty"`
}

// Apply merges the update into the document.
func (u *Update) Apply(d *Document) {
	if u.Name != nil {
		d.Name = *u.Name
	}
	if u.Content != nil {
		d.Content = *u.Content
	}
}
