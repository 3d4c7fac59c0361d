package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/movalle/proyectra/internal/application"
	"github.com/movalle/proyectra/internal/domain/apperr"
	"github.com/movalle/proyectra/internal/domain/entity"
	"github.com/movalle/proyectra/pkg/render"
)

// AdminUserHandler is the /admin/usuarios CRUD surface. The access
// policy already guarantees an ADMIN principal by the time these run.
type AdminUserHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewAdminUserHandler(users *application.UserService, logger *logrus.Logger) *AdminUserHandler {
	return &AdminUserHandler{Users: users, Logger: logger}
}

type userForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Role     string `form:"role" binding:"omitempty,oneof=USER ADMIN"`
}

func (f userForm) input() application.UserInput {
	return application.UserInput{
		Username: f.Username,
		Password: f.Password,
		Role:     entity.Role(f.Role),
	}
}

// Index GET /admin/usuarios
func (h *AdminUserHandler) Index(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("list users failed")
		}
		users = []entity.User{}
	}
	render.Page(c, http.StatusOK, "admin/usuarios", gin.H{
		"Users": users,
		"Error": c.Query("error"),
	})
}

// New GET /admin/usuarios/nuevo
func (h *AdminUserHandler) New(c *gin.Context) {
	h.renderForm(c, "/admin/usuarios/guardar", nil, nil)
}

// Save POST /admin/usuarios/guardar
func (h *AdminUserHandler) Save(c *gin.Context) {
	var form userForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, "/admin/usuarios/guardar", nil, map[string]string{"form": "datos inválidos"})
		return
	}

	if _, err := h.Users.Register(c.Request.Context(), form.input()); err != nil {
		h.renderForm(c, "/admin/usuarios/guardar", nil, detailsFor(err))
		return
	}

	c.Redirect(http.StatusFound, "/admin/usuarios")
}

// Edit GET /admin/usuarios/editar/{id}. A vanished user falls back to
// the user listing.
func (h *AdminUserHandler) Edit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/admin/usuarios")
		return
	}
	u, err := h.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Redirect(http.StatusFound, "/admin/usuarios")
		return
	}
	h.renderForm(c, "/admin/usuarios/actualizar/"+strconv.FormatInt(id, 10), u, nil)
}

// Update POST /admin/usuarios/actualizar/{id}
func (h *AdminUserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/admin/usuarios")
		return
	}

	action := "/admin/usuarios/actualizar/" + strconv.FormatInt(id, 10)

	var form userForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, action, nil, map[string]string{"form": "datos inválidos"})
		return
	}

	if _, err := h.Users.Update(c.Request.Context(), id, form.input()); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.Redirect(http.StatusFound, "/admin/usuarios")
			return
		}
		h.renderForm(c, action, nil, detailsFor(err))
		return
	}

	c.Redirect(http.StatusFound, "/admin/usuarios")
}

// Delete GET /admin/usuarios/eliminar/{id}. Users that still own
// projects are refused.
func (h *AdminUserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/admin/usuarios")
		return
	}

	if err := h.Users.Delete(c.Request.Context(), id); err != nil {
		if apperr.IsConflict(err) {
			c.Redirect(http.StatusFound, "/admin/usuarios?error=con_proyectos")
			return
		}
		c.Redirect(http.StatusFound, "/admin/usuarios")
		return
	}

	c.Redirect(http.StatusFound, "/admin/usuarios")
}

func (h *AdminUserHandler) renderForm(c *gin.Context, action string, u *entity.User, errs map[string]string) {
	status := http.StatusOK
	if errs != nil {
		status = http.StatusBadRequest
	}
	render.Page(c, status, "admin/usuario_form", gin.H{
		"Action": action,
		"User":   u,
		"Roles":  []entity.Role{entity.RoleUser, entity.RoleAdmin},
		"Errors": errs,
	})
}
