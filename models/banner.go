package models

// BannerData is the plain data bundle handed to the rendering layer. The
// core does not render anything; whatever templating the host application
// uses gets everything it needs from here.
type BannerData struct {
	Categories    []Category
	ContactMail   string
	Domains       []string
	PrimaryDomain string
	Stale         bool
	ShowBanner    bool
	Granted       func(name string) (bool, error)
}

// NewBannerData builds the template-facing view for one request.
// onConsentPath suppresses the banner on the consent endpoint itself so the
// endpoint never triggers its own banner logic.
func NewBannerData(d *Decision, registry *Registry, contactMail, primaryDomain string, domains []string, onConsentPath bool) BannerData {
	return BannerData{
		Categories:    registry.Categories(),
		ContactMail:   contactMail,
		Domains:       domains,
		PrimaryDomain: primaryDomain,
		Stale:         d.Stale(),
		ShowBanner:    d.Stale() && !onConsentPath,
		Granted:       d.Granted,
	}
}
