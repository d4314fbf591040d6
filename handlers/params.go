package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads a positive integer path parameter. On failure it writes
// a 400 response and returns false.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "Identificador inválido: "+raw)
		return 0, false
	}
	return uint(id), true
}

// parsePaging reads page and limit query parameters, tolerating absent or
// malformed values. Bounds are normalized by the repository layer.
func parsePaging(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, limit
}

// firstQuery returns the first present value among the named query
// parameters. Filter endpoints take the camelCase names the frontend sends
// alongside their snake_case spellings.
func firstQuery(c *gin.Context, names ...string) string {
	for _, name := range names {
		if value, ok := c.GetQuery(name); ok {
			return value
		}
	}
	return ""
}

// parseBoolQuery returns nil when none of the named parameters is present, so
// filters can distinguish "unset" from false.
func parseBoolQuery(c *gin.Context, names ...string) *bool {
	for _, name := range names {
		raw, ok := c.GetQuery(name)
		if !ok {
			continue
		}
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return nil
		}
		return &value
	}
	return nil
}
