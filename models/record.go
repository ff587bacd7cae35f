package models

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"consent-backend/utils"
)

// Record is the value stored in the consent cookie: when consent was last
// recorded and which category names the visitor accepted. It is only ever
// written by the consent endpoint's POST path.
type Record struct {
	IssuedAt time.Time
	Granted  []string // sorted, deduplicated category names
}

// NewRecord builds a record with a normalized (sorted, deduplicated)
// granted set.
func NewRecord(issuedAt time.Time, granted []string) Record {
	return Record{IssuedAt: issuedAt.Truncate(time.Second), Granted: normalizeNames(granted)}
}

// Has reports whether the given category name is in the granted set.
func (r Record) Has(name string) bool {
	i := sort.SearchStrings(r.Granted, name)
	return i < len(r.Granted) && r.Granted[i] == name
}

// Expired reports whether the record is older than the validity window.
// The window is validForMonths calendar months, not months*30 days.
func (r Record) Expired(now time.Time, validForMonths int) bool {
	return !now.Before(utils.AddMonths(r.IssuedAt, validForMonths))
}

// EncodeRecord serializes a record to the cookie value: unix timestamp and
// a colon separated, sorted name list, e.g. "1714060800|analytics:required".
// Deterministic and round-trips through DecodeRecord. Colon as delimiter
// keeps the value inside the cookie-safe byte range without the quoting
// that commas or spaces would trigger in strict clients.
func EncodeRecord(r Record) string {
	return strconv.FormatInt(r.IssuedAt.Unix(), 10) + "|" + strings.Join(normalizeNames(r.Granted), ":")
}

// DecodeRecord parses a cookie value. Returns nil for a missing or
// malformed value: a broken cookie is not an error, it just means "no
// consent yet" and the visitor gets asked again.
func DecodeRecord(value string) *Record {
	ts, names, ok := strings.Cut(value, "|")
	if !ok {
		return nil
	}
	unix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return nil
	}
	var granted []string
	if names != "" {
		granted = strings.Split(names, ":")
		for _, n := range granted {
			if n == "" {
				return nil
			}
		}
	}
	r := NewRecord(time.Unix(unix, 0).UTC(), granted)
	return &r
}

func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
