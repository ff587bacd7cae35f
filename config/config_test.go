package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONSENT_PRIMARY_DOMAIN", "primary.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "_consent", cfg.CookieName)
	assert.Equal(t, 12, cfg.ValidForMonths)
	assert.Equal(t, "/consent", cfg.Path)
	assert.Equal(t, "primary.test", cfg.PrimaryDomain)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CONSENT_PRIMARY_DOMAIN", "example.com")
	t.Setenv("CONSENT_COOKIE_NAME", "_cc")
	t.Setenv("CONSENT_VALID_FOR_MONTHS", "6")
	t.Setenv("CONSENT_PATH", "/privacy/consent")
	t.Setenv("CONSENT_CONTACT_MAIL", "privacy@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "_cc", cfg.CookieName)
	assert.Equal(t, 6, cfg.ValidForMonths)
	assert.Equal(t, "/privacy/consent", cfg.Path)
	assert.Equal(t, "privacy@example.com", cfg.ContactMail)
}

func TestLoadRequiresPrimaryDomain(t *testing.T) {
	t.Setenv("CONSENT_PRIMARY_DOMAIN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsNonPositiveValidity(t *testing.T) {
	t.Setenv("CONSENT_PRIMARY_DOMAIN", "primary.test")
	t.Setenv("CONSENT_VALID_FOR_MONTHS", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestDomainsAppendsPrimary(t *testing.T) {
	cfg := &Config{PrimaryDomain: "primary.test"}
	assert.Equal(t, []string{"primary.test"}, cfg.Domains())

	cfg.SetDomainLoader(func() []string { return []string{"b.test", "a.test"} })
	assert.Equal(t, []string{"b.test", "a.test", "primary.test"}, cfg.Domains(),
		"loader order is kept, primary always last")
}
