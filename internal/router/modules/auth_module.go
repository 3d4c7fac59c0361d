package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/movalle/proyectra/internal/container"
	handlers "github.com/movalle/proyectra/internal/interface/http"
	"github.com/movalle/proyectra/internal/interface/middleware"
)

// AuthModule wires login, logout, registration and the landing pages.
// Public: GET/POST /login, GET/POST /registro
// Protected by the global access policy: /logout, /usuario/home, /admin/dashboard
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	limit := container.GetConfig().LoginRateLimit
	loginLimiter := middleware.RateLimit(container.GetRedis(), limit, time.Minute, middleware.KeyByIP())

	rg.GET("/login", m.Handler.ShowLogin)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.GET("/logout", m.Handler.Logout)
	rg.GET("/registro", m.Handler.ShowRegister)
	rg.POST("/registro", m.Handler.Register)

	rg.GET("/usuario/home", m.Handler.UserHome)
	rg.GET("/admin/dashboard", m.Handler.AdminDashboard)
}
