package controllers

import (
	"time"

	"consent-backend/config"
	"consent-backend/middlewares"
	"consent-backend/models"
	"consent-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// GetConsent answers cross-domain polling with the requester's current
// consent decision. Always 200 and side-effect free; a stale decision
// reports an empty list so a polling secondary domain knows there is
// nothing valid to mirror here.
func GetConsent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := middlewares.DecisionFromCtx(c)
		return c.JSON(fiber.Map{"enabled": decision.Enabled()})
	}
}

// PostConsent accepts a JSON array of granted category names and rewrites
// the consent cookie. Every name must be registered; an unknown one fails
// the whole request and leaves the cookie untouched.
func PostConsent(cfg *config.Config, registry *models.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var names []string
		if err := c.BodyParser(&names); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "payload is not a list of category names")
		}
		if err := middlewares.ValidateCategoryNames(names); err != nil {
			return err
		}
		for _, name := range names {
			if !registry.Has(name) {
				return models.UnknownCategoryError{Name: name}
			}
		}

		// Required categories are always granted, whatever was submitted.
		granted := append(names, registry.RequiredNames()...)

		now := time.Now().UTC()
		record := models.NewRecord(now, granted)

		// Latest-issued_at-wins: a mirror POST racing a direct user action
		// must not roll the cookie back to an older record.
		if prev := middlewares.DecisionFromCtx(c).Record(); prev != nil && prev.IssuedAt.After(record.IssuedAt) {
			return c.SendStatus(fiber.StatusNoContent)
		}

		// Secure + SameSite=None so the cookie survives the credentialed
		// cross-site requests of the multi-domain flow.
		c.Cookie(&fiber.Cookie{
			Name:     cfg.CookieName,
			Value:    models.EncodeRecord(record),
			Path:     "/",
			MaxAge:   utils.MonthsMaxAge(now, cfg.ValidForMonths),
			Secure:   true,
			SameSite: fiber.CookieSameSiteNoneMode,
		})
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// TemplateData builds the bundle the (external) rendering layer needs for
// the current request: categories in registration order, contact mail,
// domain list, the decision lookup and whether to show the banner. The
// consent endpoint itself never triggers the banner.
func TemplateData(c *fiber.Ctx, cfg *config.Config, registry *models.Registry) models.BannerData {
	decision := middlewares.DecisionFromCtx(c)
	return models.NewBannerData(decision, registry, cfg.ContactMail, cfg.PrimaryDomain, cfg.Domains(), c.Path() == cfg.Path)
}
