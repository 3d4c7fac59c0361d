package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/movalle/proyectra/internal/interface/http"
)

// ProjectModule registers the /proyectos routes. Authentication is
// enforced by the global access policy.
type ProjectModule struct {
	Handler *handlers.ProjectHandler
}

func NewProjectModule(h *handlers.ProjectHandler) *ProjectModule {
	return &ProjectModule{Handler: h}
}

func (m *ProjectModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/proyectos")
	{
		g.GET("", m.Handler.Index)
		g.GET("/crear", m.Handler.New)
		g.POST("/guardar", m.Handler.Save)
		g.GET("/editar/:id", m.Handler.Edit)
		g.POST("/actualizar/:id", m.Handler.Update)
		g.GET("/eliminar/:id", m.Handler.Delete)
	}
}
