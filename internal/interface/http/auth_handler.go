package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/movalle/proyectra/internal/application"
	"github.com/movalle/proyectra/internal/domain/apperr"
	"github.com/movalle/proyectra/internal/domain/entity"
	"github.com/movalle/proyectra/internal/interface/middleware"
	"github.com/movalle/proyectra/pkg/helpers"
	"github.com/movalle/proyectra/pkg/render"
	"github.com/movalle/proyectra/pkg/validation"
)

// AuthHandler serves login, logout, registration and the two
// role-specific landing pages.
type AuthHandler struct {
	Users    *application.UserService
	Projects *application.ProjectService
	Sessions helpers.SessionStore
	JWT      *helpers.JWTManager
	Cookies  *helpers.CookieManager
	Logger   *logrus.Logger
}

func NewAuthHandler(users *application.UserService, projects *application.ProjectService, sessions helpers.SessionStore, jwt *helpers.JWTManager, cookies *helpers.CookieManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Projects: projects, Sessions: sessions, JWT: jwt, Cookies: cookies, Logger: logger}
}

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type registerForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required,pwd"`
}

// ShowLogin GET /login
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	_, hasError := c.GetQuery("error")
	_, loggedOut := c.GetQuery("logout")
	render.Page(c, http.StatusOK, "login", gin.H{
		"Error":     hasError,
		"LoggedOut": loggedOut,
	})
}

// Login POST /login processes the credential form. On success the
// principal goes into the session store and the signed session id into
// the cookie; the redirect target depends on the role.
func (h *AuthHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusFound, "/login?error")
		return
	}

	u, err := h.Users.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithField("username", form.Username).Warn("failed login attempt")
		}
		c.Redirect(http.StatusFound, "/login?error")
		return
	}

	sess := &helpers.Session{
		ID:       uuid.NewString(),
		UserID:   u.ID,
		Username: u.Username,
		Role:     string(u.Role),
	}
	if err := h.Sessions.Create(c.Request.Context(), sess); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("session create failed")
		}
		c.Redirect(http.StatusFound, "/login?error")
		return
	}

	token, exp, err := h.JWT.GenerateSessionToken(sess.ID)
	if err != nil {
		c.Redirect(http.StatusFound, "/login?error")
		return
	}
	h.Cookies.Set(c, token, exp)

	if u.Role == entity.RoleAdmin {
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/usuario/home")
}

// Logout GET /logout destroys the server-side session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(helpers.SessionCookieName); err == nil && token != "" {
		if claims, err := h.JWT.ParseSessionToken(token); err == nil {
			_ = h.Sessions.Delete(c.Request.Context(), claims.SessionID)
		}
	}
	h.Cookies.Clear(c)
	c.Redirect(http.StatusFound, "/login?logout")
}

// ShowRegister GET /registro
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	render.Page(c, http.StatusOK, "registro", nil)
}

// Register POST /registro creates a USER account and sends the visitor
// to the login page.
func (h *AuthHandler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		render.Page(c, http.StatusBadRequest, "registro", gin.H{
			"Errors":       validation.ToDetails(err),
			"FormUsername": c.PostForm("username"),
		})
		return
	}

	_, err := h.Users.Register(c.Request.Context(), application.UserInput{
		Username: form.Username,
		Password: form.Password,
		Role:     entity.RoleUser,
	})
	if err != nil {
		msg := "no se pudo completar el registro"
		if apperr.IsConflict(err) {
			msg = "el nombre de usuario ya está en uso"
		}
		render.Page(c, http.StatusBadRequest, "registro", gin.H{
			"Message":      msg,
			"FormUsername": form.Username,
		})
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

// AdminDashboard GET /admin/dashboard
func (h *AuthHandler) AdminDashboard(c *gin.Context) {
	render.Page(c, http.StatusOK, "admin/dashboard", nil)
}

// UserHome GET /usuario/home shows the signed-in user's own projects.
func (h *AuthHandler) UserHome(c *gin.Context) {
	projects := []entity.Project{}
	if principal, ok := middleware.PrincipalFrom(c); ok {
		if own, err := h.Projects.ListByOwner(c.Request.Context(), principal.Username); err == nil {
			projects = own
		}
	}
	render.Page(c, http.StatusOK, "usuario/home", gin.H{
		"Projects": projects,
	})
}
