package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/movalle/proyectra/internal/domain/entity"
	"github.com/movalle/proyectra/pkg/helpers"
	"github.com/movalle/proyectra/pkg/render"
)

// Context keys set by AccessControl on authenticated requests.
const (
	CtxUsernameKey = "username"
	CtxRoleKey     = "role"
	CtxSessionKey  = "session_id"
)

// AccessRule maps a path prefix to the roles allowed through. Public
// skips authentication entirely; an empty Roles set admits any
// authenticated principal.
type AccessRule struct {
	Prefix string
	Public bool
	Roles  []entity.Role
}

// DefaultPolicy is the ordered rule list; the first matching prefix
// wins, and the final catch-all requires authentication.
func DefaultPolicy() []AccessRule {
	return []AccessRule{
		{Prefix: "/login", Public: true},
		{Prefix: "/registro", Public: true},
		{Prefix: "/static", Public: true},
		{Prefix: "/admin", Roles: []entity.Role{entity.RoleAdmin}},
		{Prefix: "/usuario", Roles: []entity.Role{entity.RoleUser, entity.RoleAdmin}},
		{Prefix: "/proyectos"},
		{Prefix: "/tareas"},
		{Prefix: ""},
	}
}

func matchRule(rules []AccessRule, path string) AccessRule {
	for _, r := range rules {
		if strings.HasPrefix(path, r.Prefix) {
			return r
		}
	}
	return AccessRule{}
}

func roleAllowed(roles []entity.Role, role entity.Role) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// AccessControl resolves the session cookie into a principal and
// enforces the rule matching the request path. Unauthenticated requests
// to protected paths redirect to the login page; authenticated requests
// with the wrong role get a 403 page.
func AccessControl(store helpers.SessionStore, jwt *helpers.JWTManager, rules []AccessRule) gin.HandlerFunc {
	return func(c *gin.Context) {
		rule := matchRule(rules, c.Request.URL.Path)
		if rule.Public {
			c.Next()
			return
		}

		token, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		claims, err := jwt.ParseSessionToken(token)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		sess, err := store.Get(c.Request.Context(), claims.SessionID)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		role := entity.Role(sess.Role)
		if !roleAllowed(rule.Roles, role) {
			render.Forbidden(c)
			c.Abort()
			return
		}

		c.Set(CtxUsernameKey, sess.Username)
		c.Set(CtxRoleKey, string(role))
		c.Set(CtxSessionKey, sess.ID)
		c.Next()
	}
}

// PrincipalFrom rebuilds the principal placed in the context by
// AccessControl.
func PrincipalFrom(c *gin.Context) (entity.Principal, bool) {
	username := c.GetString(CtxUsernameKey)
	if username == "" {
		return entity.Principal{}, false
	}
	return entity.Principal{
		Username: username,
		Role:     entity.Role(c.GetString(CtxRoleKey)),
	}, true
}
