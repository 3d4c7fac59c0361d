// Package render centralizes template responses so every page carries
// the request id and the authenticated principal without each handler
// repeating the plumbing.
package render

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Page renders the named template, injecting request-scoped fields.
func Page(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["RequestID"] = c.GetString("request_id")
	data["Username"] = c.GetString("username")
	data["Role"] = c.GetString("role")
	c.HTML(status, name, data)
}

// Forbidden renders the shared error page with a 403 status.
func Forbidden(c *gin.Context) {
	Page(c, http.StatusForbidden, "error", gin.H{
		"Status":  http.StatusForbidden,
		"Message": "no tienes permisos para acceder a esta página",
	})
}
