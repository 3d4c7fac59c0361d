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
	"github.com/movalle/proyectra/pkg/render"
	"github.com/movalle/proyectra/pkg/validation"
)

// TaskHandler translates the /tareas routes into service calls. A task
// whose parent project has disappeared falls back to a safe listing
// instead of an error page.
type TaskHandler struct {
	Tasks    *application.TaskService
	Projects *application.ProjectService
	Logger   *logrus.Logger
}

func NewTaskHandler(tasks *application.TaskService, projects *application.ProjectService, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{Tasks: tasks, Projects: projects, Logger: logger}
}

type taskForm struct {
	Title       string    `form:"titulo"`
	Description string    `form:"descripcion"`
	DueDate     time.Time `form:"fecha_limite" time_format:"2006-01-02"`
	Status      string    `form:"estado" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	ProjectID   int64     `form:"proyecto_id"`
}

func (f taskForm) input() application.TaskInput {
	in := application.TaskInput{
		Title:       f.Title,
		Description: f.Description,
		Status:      entity.TaskStatus(f.Status),
	}
	if !f.DueDate.IsZero() {
		due := f.DueDate
		in.DueDate = &due
	}
	return in
}

func projectListing(projectID int64) string {
	return "/tareas/proyecto/" + strconv.FormatInt(projectID, 10)
}

// All GET /tareas/todas lists every task across projects.
func (h *TaskHandler) All(c *gin.Context) {
	tasks, err := h.Tasks.ListAll(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("list tasks failed")
		}
		tasks = []entity.Task{}
	}
	render.Page(c, http.StatusOK, "tareas/index", gin.H{
		"Tasks": tasks,
		"Error": c.Query("error"),
	})
}

// ByProject GET /tareas/proyecto/{id}
func (h *TaskHandler) ByProject(c *gin.Context) {
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
	tasks, err := h.Tasks.ListByProject(c.Request.Context(), id)
	if err != nil {
		tasks = []entity.Task{}
	}
	render.Page(c, http.StatusOK, "tareas/index", gin.H{
		"Project": p,
		"Tasks":   tasks,
		"Error":   c.Query("error"),
	})
}

// New GET /tareas/crear/{proyectoId}
func (h *TaskHandler) New(c *gin.Context) {
	projectID, ok := pathID(c, "proyectoId")
	if !ok {
		c.Redirect(http.StatusFound, "/proyectos")
		return
	}
	if _, err := h.Projects.GetByID(c.Request.Context(), projectID); err != nil {
		c.Redirect(http.StatusFound, "/proyectos")
		return
	}
	h.renderForm(c, "/tareas/guardar", projectID, nil, nil)
}

// Save POST /tareas/guardar attaches a new task to its project.
func (h *TaskHandler) Save(c *gin.Context) {
	var form taskForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, "/tareas/guardar", form.ProjectID, nil, validation.ToDetails(err))
		return
	}

	if _, err := h.Tasks.Create(c.Request.Context(), form.input(), form.ProjectID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.Redirect(http.StatusFound, "/proyectos")
			return
		}
		h.renderForm(c, "/tareas/guardar", form.ProjectID, nil, detailsFor(err))
		return
	}

	c.Redirect(http.StatusFound, projectListing(form.ProjectID))
}

// Edit GET /tareas/editar/{id}
func (h *TaskHandler) Edit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/tareas/todas")
		return
	}
	t, err := h.Tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Redirect(http.StatusFound, "/tareas/todas")
		return
	}
	h.renderForm(c, "/tareas/actualizar/"+strconv.FormatInt(id, 10), t.ProjectID, t, nil)
}

// Update POST /tareas/actualizar/{id}. The stored project association
// wins regardless of what the form carries.
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/tareas/todas")
		return
	}

	action := "/tareas/actualizar/" + strconv.FormatInt(id, 10)

	var form taskForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, action, form.ProjectID, nil, validation.ToDetails(err))
		return
	}

	t, err := h.Tasks.Update(c.Request.Context(), id, form.input())
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.Redirect(http.StatusFound, "/tareas/todas")
			return
		}
		h.renderForm(c, action, form.ProjectID, nil, detailsFor(err))
		return
	}

	c.Redirect(http.StatusFound, projectListing(t.ProjectID))
}

// Delete GET /tareas/eliminar/{id}. Only pending tasks go away; the
// project listing shows the refusal otherwise.
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/tareas/todas")
		return
	}

	t, err := h.Tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Redirect(http.StatusFound, "/tareas/todas")
		return
	}

	if err := h.Tasks.Delete(c.Request.Context(), id); err != nil {
		if apperr.IsConflict(err) {
			c.Redirect(http.StatusFound, projectListing(t.ProjectID)+"?error=estado")
			return
		}
		c.Redirect(http.StatusFound, "/tareas/todas")
		return
	}

	c.Redirect(http.StatusFound, projectListing(t.ProjectID))
}

func (h *TaskHandler) renderForm(c *gin.Context, action string, projectID int64, t *entity.Task, errs map[string]string) {
	status := http.StatusOK
	if errs != nil {
		status = http.StatusBadRequest
	}
	render.Page(c, status, "tareas/form", gin.H{
		"Action":    action,
		"ProjectID": projectID,
		"Task":      t,
		"Statuses":  entity.TaskStatuses(),
		"Errors":    errs,
	})
}
