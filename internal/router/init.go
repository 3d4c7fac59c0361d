package router

import (
	"github.com/movalle/proyectra/internal/application"
	"github.com/movalle/proyectra/internal/container"
	pginfra "github.com/movalle/proyectra/internal/infrastructure/postgres"
	handlers "github.com/movalle/proyectra/internal/interface/http"
	"github.com/movalle/proyectra/internal/router/modules"
	"github.com/movalle/proyectra/pkg/helpers"
)

// InitModules builds every feature module from the container singletons
// and adds them to the registry. Called once during startup.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	logger := container.GetLogger()
	cfg := container.GetConfig()

	users := pginfra.NewUserRepository(pool)
	projects := pginfra.NewProjectRepository(pool)
	tasks := pginfra.NewTaskRepository(pool)

	userSvc := application.NewUserService(users, projects, logger)
	projectSvc := application.NewProjectService(projects, tasks, logger)
	taskSvc := application.NewTaskService(tasks, projects, logger)

	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	authHandler := handlers.NewAuthHandler(userSvc, projectSvc, container.GetSessions(), container.GetJWT(), cookies, logger)
	projectHandler := handlers.NewProjectHandler(projectSvc, logger)
	taskHandler := handlers.NewTaskHandler(taskSvc, projectSvc, logger)
	adminHandler := handlers.NewAdminUserHandler(userSvc, logger)

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewProjectModule(projectHandler))
	r.Add(modules.NewTaskModule(taskHandler))
	r.Add(modules.NewAdminModule(adminHandler))
}
