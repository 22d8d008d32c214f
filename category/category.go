// Package category defines the Category entity.
package category

import "github.com/permitio/docgate"

// Category is a grouping of documents. It is also the unit of authorization:
// every permission check in the system targets a category instance.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Resource returns the category's canonical authorization resource.
func (c *Category) Resource() docgate.Resource {
	return docgate.CategoryResource(c.ID)
}
