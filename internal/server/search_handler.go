package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// doSearch 前台查车入口：GET /api/v1/search?term=<词>&limit=<N>。
// limit 缺省交给 search.Service 用配置默认值。
func (h *Handlers) doSearch(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			badRequest(c, "limit must be a positive integer")
			return
		}
		limit = n
	}

	res, err := h.searcher.Search(c.Request.Context(), c.Query("term"), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
