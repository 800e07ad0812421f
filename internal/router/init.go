package router

import (
	"github.com/learnfromme/accounts/internal/application"
	"github.com/learnfromme/accounts/internal/container"
	pginfra "github.com/learnfromme/accounts/internal/infrastructure/postgres"
	redisinfra "github.com/learnfromme/accounts/internal/infrastructure/redis"
	handlers "github.com/learnfromme/accounts/internal/interface/http"
	"github.com/learnfromme/accounts/internal/router/modules"
)

func buildService() *application.Service {
	repo := pginfra.NewUserRepository(container.GetPGPool())
	sessions := redisinfra.NewSessionStore(container.GetRedis())

	// The RabbitMQ publisher may be nil when the broker is not configured;
	// the service treats a nil queue as mail disabled.
	var mail application.MailQueue
	if pub := container.GetRabbitPub(); pub != nil {
		mail = pub
	}

	return application.NewService(
		repo,
		container.GetJWT(),
		sessions,
		container.GetLogger(),
		mail,
		container.GetConfig(),
	)
}

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup.
func InitModules(r *Registry) {
	svc := buildService()
	cfg := container.GetConfig()

	authHandler := handlers.NewAuthHandler(svc, container.GetLogger(), cfg.CookieDomain, cfg.CookieSecure)
	userHandler := handlers.NewUserHandler(svc, container.GetLogger())

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewUserModule(userHandler, svc))
}
