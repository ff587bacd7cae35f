package routes

import (
	"github.com/gofiber/fiber/v2"

	"consent-backend/config"
	"consent-backend/controllers"
	"consent-backend/middlewares"
	"consent-backend/models"
)

// Register wires all HTTP routes.
func Register(app *fiber.App, cfg *config.Config, registry *models.Registry) {
	// Every route sees the per-request consent decision
	app.Use(middlewares.Consent(cfg, registry))

	// Synchronization endpoint (GET for cross-domain polling, POST to
	// rewrite the consent cookie)
	app.Get(cfg.Path, controllers.GetConsent())
	app.Post(cfg.Path, controllers.PostConsent(cfg, registry))
}
