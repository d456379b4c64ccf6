package api

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// ListEntriesParams are the query parameters of GET /api/entries.
// A nil field means "use the default".
type ListEntriesParams struct {
	Page   *int    `form:"page" json:"page,omitempty"`
	Limit  *int    `form:"limit" json:"limit,omitempty"`
	Search *string `form:"search" json:"search,omitempty"`
	Tag    *string `form:"tag" json:"tag,omitempty"`
	SortBy *string `form:"sortBy" json:"sortBy,omitempty"`
	Order  *string `form:"order" json:"order,omitempty"`
}

// BindListEntriesParams binds the query string of c into ListEntriesParams.
// Every parameter is optional and bound independently: a malformed value leaves
// its field nil and is reported in the joined error, while the others still bind.
func BindListEntriesParams(c *gin.Context) (ListEntriesParams, error) {
	var (
		params ListEntriesParams
		errs   []error
	)
	query := c.Request.URL.Query()

	bind := func(name string, dest any) {
		if err := runtime.BindQueryParameter("form", true, false, name, query, dest); err != nil {
			errs = append(errs, fmt.Errorf("invalid format for parameter %s: %w", name, err))
		}
	}

	bind("page", &params.Page)
	bind("limit", &params.Limit)
	bind("search", &params.Search)
	bind("tag", &params.Tag)
	bind("sortBy", &params.SortBy)
	bind("order", &params.Order)

	return params, errors.Join(errs...)
}
