package params

import (
	"campus-events-api/core/constants"
	"strconv"

	"github.com/labstack/echo/v4"
)

// QueryParams holds the common list-endpoint query parameters.
type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
	Category   string
}

// FromContext parses pagination and filter parameters with sane bounds.
func FromContext(c echo.Context) QueryParams {
	p := QueryParams{
		PageNumber: 1,
		PageSize:   constants.DefaultPageSize,
		Search:     c.QueryParam("search"),
		Category:   c.QueryParam("category"),
	}

	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		p.PageNumber = v
	}
	if v, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && v > 0 {
		p.PageSize = v
		if p.PageSize > constants.MaxPageSize {
			p.PageSize = constants.MaxPageSize
		}
	}
	return p
}
