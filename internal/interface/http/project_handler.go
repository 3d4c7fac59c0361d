package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/movalle/proyectra/internal/application"
	"github.com/movalle/proyectra/internal/domain/apperr"
	"github.com/movalle/proyectra/internal/domain/entity"
	"github.com/movalle/proyectra/internal/interface/middleware"
	"github.com/movalle/proyectra/pkg/render"
	"github.com/movalle/proyectra/pkg/validation"
)

// ProjectHandler translates the /proyectos routes into service calls.
// Handlers that resolve a missing entity redirect to the listing rather
// than surfacing an error page.
type ProjectHandler struct {
	Projects *application.ProjectService
	Logger   *logrus.Logger
}

func NewProjectHandler(projects *application.ProjectService, logger *logrus.Logger) *ProjectHandler {
	return &ProjectHandler{Projects: projects, Logger: logger}
}

type projectForm struct {
	Name        string    `form:"nombre"`
	Description string    `form:"descripcion"`
	StartDate   time.Time `form:"fecha_inicio" time_format:"2006-01-02"`
	Status      string    `form:"estado" binding:"omitempty,oneof=ACTIVE IN_PROGRESS FINISHED"`
}

func (f projectForm) input() application.ProjectInput {
	return application.ProjectInput{
		Name:        f.Name,
		Description: f.Description,
		StartDate:   f.StartDate,
		Status:      entity.ProjectStatus(f.Status),
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Index GET /proyectos
func (h *ProjectHandler) Index(c *gin.Context) {
	projects, err := h.Projects.List(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("list projects failed")
		}
		projects = []entity.Project{}
	}
	render.Page(c, http.StatusOK, "proyectos/index", gin.H{
		"Projects": projects,
		"Error":    c.Query("error"),
	})
}

// New GET /proyectos/crear
func (h *ProjectHandler) New(c *gin.Context) {
	render.Page(c, http.StatusOK, "proyectos/form", gin.H{
		"Action":   "/proyectos/guardar",
		"Statuses": entity.ProjectStatuses(),
	})
}

// Save POST /proyectos/guardar creates a project owned by the caller.
func (h *ProjectHandler) Save(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var form projectForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, "/proyectos/guardar", nil, validation.ToDetails(err))
		return
	}

	if _, err := h.Projects.Create(c.Request.Context(), form.input(), principal); err != nil {
		h.renderForm(c, "/proyectos/guardar", nil, detailsFor(err))
		return
	}

	c.Redirect(http.StatusFound, "/proyectos")
}

// Edit GET /proyectos/editar/{id}
func (h *ProjectHandler) Edit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/proyectos")
		return
	}
	p, err := h.Projects.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Redirect(http.StatusFound, "/proyectos")
		return
	}
	h.renderForm(c, "/proyectos/actualizar/"+strconv.FormatInt(id, 10), p, nil)
}

// Update POST /proyectos/actualizar/{id}
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/proyectos")
		return
	}

	action := "/proyectos/actualizar/" + strconv.FormatInt(id, 10)

	var form projectForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, action, nil, validation.ToDetails(err))
		return
	}

	if _, err := h.Projects.Update(c.Request.Context(), id, form.input()); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.Redirect(http.StatusFound, "/proyectos")
			return
		}
		h.renderForm(c, action, nil, detailsFor(err))
		return
	}

	c.Redirect(http.StatusFound, "/proyectos")
}

// Delete GET /proyectos/eliminar/{id}. A project that still owns tasks
// is refused; the listing shows the reason.
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/proyectos")
		return
	}

	if err := h.Projects.Delete(c.Request.Context(), id); err != nil {
		if apperr.IsConflict(err) {
			c.Redirect(http.StatusFound, "/proyectos?error=con_tareas")
			return
		}
		c.Redirect(http.StatusFound, "/proyectos")
		return
	}

	c.Redirect(http.StatusFound, "/proyectos")
}

func (h *ProjectHandler) renderForm(c *gin.Context, action string, p *entity.Project, errs map[string]string) {
	status := http.StatusOK
	if errs != nil {
		status = http.StatusBadRequest
	}
	render.Page(c, status, "proyectos/form", gin.H{
		"Action":   action,
		"Project":  p,
		"Statuses": entity.ProjectStatuses(),
		"Errors":   errs,
	})
}

// detailsFor maps a service validation error onto the form field map;
// other errors collapse to a generic message.
func detailsFor(err error) map[string]string {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return map[string]string{ve.Field: ve.Reason}
	}
	return map[string]string{"form": "no se pudo guardar"}
}
