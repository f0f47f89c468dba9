package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zaidkh/tijara/internal/server/http/middleware"
)

// CurrentStaffID extracts the authenticated staff identifier from context.
func CurrentStaffID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.StaffIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// pathID parses the numeric :id path parameter.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
