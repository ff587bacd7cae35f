package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, reg.RegisterStandard())
	return reg
}

func TestDecisionNoCookie(t *testing.T) {
	reg := standardRegistry(t)
	d := NewDecision("", reg, time.Now().UTC(), 12)

	assert.True(t, d.Stale())

	granted, err := d.Granted("required")
	require.NoError(t, err)
	assert.True(t, granted, "required categories are granted even without a cookie")

	granted, err = d.Granted("analytics")
	require.NoError(t, err)
	assert.False(t, granted)
}

func TestDecisionMalformedCookie(t *testing.T) {
	reg := standardRegistry(t)
	d := NewDecision("not a consent value", reg, time.Now().UTC(), 12)

	assert.True(t, d.Stale())
	assert.Nil(t, d.Record())
}

func TestDecisionFreshCookie(t *testing.T) {
	reg := standardRegistry(t)
	now := time.Now().UTC()
	value := EncodeRecord(NewRecord(now.Add(-time.Hour), []string{"required", "preferences"}))

	d := NewDecision(value, reg, now, 12)

	assert.False(t, d.Stale())
	assert.True(t, d.MustGranted("required"))
	assert.True(t, d.MustGranted("preferences"))
	assert.False(t, d.MustGranted("analytics"))
}

func TestDecisionExpiredCookie(t *testing.T) {
	reg := standardRegistry(t)
	now := time.Now().UTC()
	// issued 13 months ago, valid for 12
	value := EncodeRecord(NewRecord(now.AddDate(0, -13, 0), []string{"required", "preferences"}))

	d := NewDecision(value, reg, now, 12)

	assert.True(t, d.Stale())
	// A stale record still answers lookups (§3: possibly stale record)
	assert.True(t, d.MustGranted("preferences"))
}

func TestDecisionStalenessBoundary(t *testing.T) {
	reg := standardRegistry(t)
	issued := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	value := EncodeRecord(NewRecord(issued, []string{"required"}))
	deadline := issued.AddDate(0, 12, 0)

	assert.False(t, NewDecision(value, reg, deadline.Add(-time.Second), 12).Stale())
	assert.True(t, NewDecision(value, reg, deadline, 12).Stale())
}

func TestDecisionMissingRequiredCategoryIsStale(t *testing.T) {
	reg := standardRegistry(t)
	now := time.Now().UTC()
	// A record written before "required" existed cannot contain it; the
	// visitor has to be asked again.
	value := EncodeRecord(NewRecord(now.Add(-time.Hour), []string{"preferences"}))

	d := NewDecision(value, reg, now, 12)

	assert.True(t, d.Stale())
	assert.True(t, d.MustGranted("required"), "required is still reported granted")
}

func TestDecisionUnknownCategory(t *testing.T) {
	reg := standardRegistry(t)
	d := NewDecision("", reg, time.Now().UTC(), 12)

	_, err := d.Granted("tracking")
	require.Error(t, err)
	assert.IsType(t, UnknownCategoryError{}, err)
	assert.False(t, d.MustGranted("tracking"))
}

func TestDecisionEnabled(t *testing.T) {
	reg := standardRegistry(t)
	now := time.Now().UTC()

	// Stale decision: empty list on the wire, so a polling secondary knows
	// there is nothing to mirror
	assert.Equal(t, []string{}, NewDecision("", reg, now, 12).Enabled())

	value := EncodeRecord(NewRecord(now.Add(-time.Minute), []string{"analytics", "required"}))
	d := NewDecision(value, reg, now, 12)
	// Registry order, not alphabetical
	assert.Equal(t, []string{"required", "analytics"}, d.Enabled())
}
