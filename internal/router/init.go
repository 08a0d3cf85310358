package router

import (
	app "github.com/mediscribe/mediscribe-api/internal/application"
	"github.com/mediscribe/mediscribe-api/internal/container"
	pginfra "github.com/mediscribe/mediscribe-api/internal/infrastructure/postgres"
	handlers "github.com/mediscribe/mediscribe-api/internal/interface/http"
	"github.com/mediscribe/mediscribe-api/internal/router/modules"
)

// InitModules builds all application modules from the container singletons
// and registers them with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	authSvc := app.NewAuthService(
		userRepo,
		container.GetHasher(),
		container.GetTokenCodec(),
		logger,
		container.GetRabbitPub(),
	)
	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	r.Add(modules.NewAuthModule(authHandler))

	patientRepo := pginfra.NewPatientRepository(container.GetPGPool())
	patientSvc := app.NewPatientService(
		patientRepo,
		logger,
		container.GetES(),
		cfg.ESPatientsIndex,
		container.GetGCS(),
		cfg.GCSBucket,
	)
	patientHandler := handlers.NewPatientHandler(patientSvc, logger)
	r.Add(modules.NewPatientModule(patientHandler))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
