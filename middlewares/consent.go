package middlewares

import (
	"time"

	"consent-backend/config"
	"consent-backend/models"

	"github.com/gofiber/fiber/v2"
)

const decisionKey = "consentDecision"

// Consent builds the per-request consent decision from the incoming cookie
// and stashes it in c.Locals. The decision is computed exactly once per
// request; handlers and templates read the same snapshot even if the cookie
// header could be re-parsed.
func Consent(cfg *config.Config, registry *models.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := models.NewDecision(c.Cookies(cfg.CookieName), registry, time.Now().UTC(), cfg.ValidForMonths)
		c.Locals(decisionKey, decision)
		return c.Next()
	}
}

// DecisionFromCtx returns the decision stored by the Consent middleware.
// Returns nil if the middleware did not run for this route.
func DecisionFromCtx(c *fiber.Ctx) *models.Decision {
	d, _ := c.Locals(decisionKey).(*models.Decision)
	return d
}
