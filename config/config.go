package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries the resolved consent settings. Loading happens once at
// startup; the struct is read-only afterwards.
type Config struct {
	// CookieName is the name of the per-domain consent cookie.
	CookieName string
	// ValidForMonths is the consent validity window in calendar months.
	ValidForMonths int
	// PrimaryDomain is the domain that is authoritative for the whole site.
	PrimaryDomain string
	// Path is the route of the synchronization endpoint.
	Path string
	// ContactMail is passed through to the rendering layer.
	ContactMail string

	domainLoader func() []string
}

// envStr reads a string env var with a default fallback.
func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt reads an int env var with a default fallback.
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Load resolves the consent configuration from a .env file (if present)
// and the environment. CONSENT_PRIMARY_DOMAIN is required; everything else
// has a sensible default.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment only")
	}

	cfg := &Config{
		CookieName:     envStr("CONSENT_COOKIE_NAME", "_consent"),
		ValidForMonths: envInt("CONSENT_VALID_FOR_MONTHS", 12),
		PrimaryDomain:  os.Getenv("CONSENT_PRIMARY_DOMAIN"),
		Path:           envStr("CONSENT_PATH", "/consent"),
		ContactMail:    os.Getenv("CONSENT_CONTACT_MAIL"),
	}
	if cfg.PrimaryDomain == "" {
		return nil, fmt.Errorf("CONSENT_PRIMARY_DOMAIN is required")
	}
	if cfg.ValidForMonths <= 0 {
		return nil, fmt.Errorf("CONSENT_VALID_FOR_MONTHS must be positive, got %d", cfg.ValidForMonths)
	}
	return cfg, nil
}

// SetDomainLoader registers the callback that returns the ordered list of
// domains participating in consent synchronization (without the primary).
func (c *Config) SetDomainLoader(loader func() []string) {
	c.domainLoader = loader
}

// Domains returns the configured domain list. The primary domain is always
// appended last so fan-out writes reach every domain of the site.
func (c *Config) Domains() []string {
	var domains []string
	if c.domainLoader != nil {
		domains = append(domains, c.domainLoader()...)
	}
	return append(domains, c.PrimaryDomain)
}
