package models

import "time"

// Decision is the per-request, read-only view of the visitor's consent.
// It is computed once from the incoming cookie and the registry by the
// consent middleware, kept for the rest of the request, and never
// re-decoded mid-request.
type Decision struct {
	registry *Registry
	record   *Record
	stale    bool
}

// NewDecision decodes the cookie value and evaluates staleness against the
// registry. The decision is stale when there is no usable record, when the
// record is older than validForMonths calendar months, or when a required
// category name is missing from the granted set. The write path always
// injects required names, so a gap means the record predates a category
// registration and the visitor has to be asked again.
func NewDecision(cookieValue string, registry *Registry, now time.Time, validForMonths int) *Decision {
	d := &Decision{registry: registry}
	d.record = DecodeRecord(cookieValue)

	switch {
	case d.record == nil:
		d.stale = true
	case d.record.Expired(now, validForMonths):
		d.stale = true
	default:
		for _, name := range registry.RequiredNames() {
			if !d.record.Has(name) {
				d.stale = true
				break
			}
		}
	}
	return d
}

// Stale reports whether the stored consent (if any) can still be trusted.
func (d *Decision) Stale() bool {
	return d.stale
}

// Granted reports whether the named category is currently granted.
// Required categories are always granted regardless of cookie content.
// Fails with UnknownCategoryError for names that were never registered.
func (d *Decision) Granted(name string) (bool, error) {
	cat, ok := d.registry.Get(name)
	if !ok {
		return false, UnknownCategoryError{Name: name}
	}
	if cat.IsRequired {
		return true, nil
	}
	return d.record != nil && d.record.Has(name), nil
}

// MustGranted is Granted for callers that already validated the name, such
// as templates iterating the registry. Unknown names report not granted.
func (d *Decision) MustGranted(name string) bool {
	granted, err := d.Granted(name)
	return err == nil && granted
}

// Enabled returns the granted category names in registry order. A stale
// decision reports no enabled categories: on the wire an empty list is how
// a polling secondary domain learns that this domain has no valid consent
// to mirror.
func (d *Decision) Enabled() []string {
	enabled := []string{}
	if d.stale {
		return enabled
	}
	for _, c := range d.registry.Categories() {
		if d.MustGranted(c.Name) {
			enabled = append(enabled, c.Name)
		}
	}
	return enabled
}

// Record returns the decoded record, or nil if the cookie was missing or
// malformed.
func (d *Decision) Record() *Record {
	return d.record
}
