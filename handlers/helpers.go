package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medibook/utils"
)

// bindJSON binds the request body and writes the standard 400 envelope on
// failure. Returns false when the request was already answered.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "invalid request body: " + err.Error(),
		})
		return false
	}
	return true
}
