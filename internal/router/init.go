package router

import (
	app "github.com/hirewire/hirewire-api/internal/application"
	"github.com/hirewire/hirewire-api/internal/container"
	pginfra "github.com/hirewire/hirewire-api/internal/infrastructure/postgres"
	handlers "github.com/hirewire/hirewire-api/internal/interface/http"
	"github.com/hirewire/hirewire-api/internal/interface/middleware"
	"github.com/hirewire/hirewire-api/internal/router/modules"
)

// InitModules builds every repository, service, and handler from the
// container singletons and registers all feature modules. Called once at
// startup, after the container is populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	jobs := pginfra.NewJobRepository(pool)
	applications := pginfra.NewApplicationRepository(pool)

	authSvc := app.NewAuthService(
		users,
		container.GetJWT(),
		container.GetRedis(),
		logger,
		container.GetRabbitPub(),
		cfg.ResetPasswordURL,
		cfg.ResetTokenTTL,
	)
	userSvc := app.NewUserService(users, container.GetGCS(), cfg.GCSBucket, logger)
	jobSvc := app.NewJobService(jobs, logger, container.GetES(), cfg.ESJobsIndex)
	appSvc := app.NewApplicationService(applications, jobs, users, logger, container.GetRabbitPub())
	adminSvc := app.NewAdminService(users, jobs, applications, jobSvc, logger)

	authn := middleware.Authenticate(users, container.GetJWT(), logger)
	jobOwner := middleware.RequireJobOwner(jobs.GetByID, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), authn))
	r.Add(modules.NewJobModule(handlers.NewJobHandler(jobSvc, logger), authn, jobOwner))
	r.Add(modules.NewApplicationModule(handlers.NewApplicationHandler(appSvc, logger), authn))
	r.Add(modules.NewAdminModule(handlers.NewAdminHandler(adminSvc, logger), authn))
}
