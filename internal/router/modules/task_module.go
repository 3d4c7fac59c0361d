package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/movalle/proyectra/internal/interface/http"
)

// TaskModule registers the /tareas routes.
type TaskModule struct {
	Handler *handlers.TaskHandler
}

func NewTaskModule(h *handlers.TaskHandler) *TaskModule {
	return &TaskModule{Handler: h}
}

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/tareas")
	{
		g.GET("/todas", m.Handler.All)
		g.GET("/proyecto/:id", m.Handler.ByProject)
		g.GET("/crear/:proyectoId", m.Handler.New)
		g.POST("/guardar", m.Handler.Save)
		g.GET("/editar/:id", m.Handler.Edit)
		g.POST("/actualizar/:id", m.Handler.Update)
		g.GET("/eliminar/:id", m.Handler.Delete)
	}
}
