package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/movalle/proyectra/internal/interface/http"
)

// AdminModule registers the /admin/usuarios CRUD. The access policy
// restricts the whole /admin prefix to ADMIN principals.
type AdminModule struct {
	Handler *handlers.AdminUserHandler
}

func NewAdminModule(h *handlers.AdminUserHandler) *AdminModule {
	return &AdminModule{Handler: h}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/admin/usuarios")
	{
		g.GET("", m.Handler.Index)
		g.GET("/nuevo", m.Handler.New)
		g.POST("/guardar", m.Handler.Save)
		g.GET("/editar/:id", m.Handler.Edit)
		g.POST("/actualizar/:id", m.Handler.Update)
		g.GET("/eliminar/:id", m.Handler.Delete)
	}
}
