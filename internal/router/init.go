package router

import (
	userapp "github.com/oksasatya/user-account-service/internal/application"
	"github.com/oksasatya/user-account-service/internal/container"
	esinfra "github.com/oksasatya/user-account-service/internal/infrastructure/elasticsearch"
	pginfra "github.com/oksasatya/user-account-service/internal/infrastructure/postgres"
	rmq "github.com/oksasatya/user-account-service/internal/infrastructure/rabbitmq"
	handlers "github.com/oksasatya/user-account-service/internal/interface/http"
	"github.com/oksasatya/user-account-service/internal/router/modules"
)

// InitModules builds the dependency graph from the container singletons and
// registers every feature module with the router registry. Called once during
// application startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	events := rmq.NewDomainEventPublisher(container.GetEventsPub())
	repo := pginfra.NewUserRepository(container.GetPGPool(), events, logger)
	readRepo := esinfra.NewUserReadRepository(container.GetES(), cfg.ESUsersIndex, logger)

	service := userapp.NewService(
		repo,
		container.GetJWT(),
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetRedis(),
		logger,
		container.GetMailPub(),
		cfg.MailSendEnabled,
	)
	queries := userapp.NewQueryService(readRepo, logger)

	authHandler := handlers.NewAuthHandler(service, queries, logger, cfg.CookieDomain, cfg.CookieSecure)
	userHandler := handlers.NewUserHandler(service, logger)
	adminHandler := handlers.NewAdminHandler(service, queries, logger)

	jwt := container.GetJWT()
	r.Add(modules.NewAuthModule(authHandler, jwt))
	r.Add(modules.NewUserModule(userHandler, jwt))
	r.Add(modules.NewAdminModule(adminHandler, jwt))
}
