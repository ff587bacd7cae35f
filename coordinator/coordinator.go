// Package coordinator implements the client-side control flow of the
// multi-domain consent handshake: on page load decide between doing
// nothing, showing the banner, or first polling the primary domain and
// mirroring its answer locally.
package coordinator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"consent-backend/config"
	"consent-backend/models"
)

// State names the steps of the per-page-load decision machine.
type State int

const (
	StateStart State = iota
	StateConsentValid
	StatePollPrimary
	StateMirrorPrimary
	StateShowBanner
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateConsentValid:
		return "consent_valid"
	case StatePollPrimary:
		return "poll_primary"
	case StateMirrorPrimary:
		return "mirror_primary"
	case StateShowBanner:
		return "show_banner"
	}
	return "unknown"
}

// Outcome is the terminal result of a page-load run.
type Outcome int

const (
	// OutcomeNone: consent is already known and valid (or this is the
	// endpoint itself); nothing to do.
	OutcomeNone Outcome = iota
	// OutcomeShowBanner: no valid consent anywhere; ask the visitor.
	OutcomeShowBanner
	// OutcomeReload: the primary's consent was mirrored into the local
	// cookie; a full reload lets the rest of the page see fresh state.
	OutcomeReload
)

// Page describes the page load being decided.
type Page struct {
	Domain      string // host serving the page
	Path        string // request path
	CookieValue string // raw local consent cookie value, "" if absent
}

// Coordinator drives the handshake against the consent endpoints of the
// configured domains. All requests are credentialed: the client carries a
// cookie jar so Set-Cookie answers stick, like a browser with third-party
// cookies allowed.
type Coordinator struct {
	cfg      *config.Config
	registry *models.Registry
	client   *http.Client

	// Endpoint maps a domain to its consent endpoint URL. Overridable so
	// tests can point domains at local listeners.
	Endpoint func(domain string) string

	// PollTimeout bounds the primary-domain poll. An unreachable primary
	// degrades to showing the banner locally instead of blocking the page.
	PollTimeout time.Duration
}

// New builds a coordinator. The registry must match the one the server
// side registered, otherwise staleness is judged against the wrong
// category set.
func New(cfg *config.Config, registry *models.Registry) *Coordinator {
	jar, _ := cookiejar.New(nil)
	co := &Coordinator{
		cfg:         cfg,
		registry:    registry,
		client:      &http.Client{Timeout: 10 * time.Second, Jar: jar},
		PollTimeout: 5 * time.Second,
	}
	co.Endpoint = func(domain string) string {
		return "https://" + domain + cfg.Path
	}
	return co
}

// Run executes the decision machine for one page load and returns the
// terminal outcome. Network failure while polling the primary never
// surfaces as an error: it degrades to OutcomeShowBanner.
func (co *Coordinator) Run(ctx context.Context, page Page) (Outcome, error) {
	state := StateStart
	var enabled []string

	for {
		switch state {
		case StateStart:
			// The endpoint never triggers banner logic against itself.
			if page.Path == co.cfg.Path {
				return OutcomeNone, nil
			}
			decision := models.NewDecision(page.CookieValue, co.registry, time.Now().UTC(), co.cfg.ValidForMonths)
			switch {
			case !decision.Stale():
				state = StateConsentValid
			case page.Domain == co.cfg.PrimaryDomain:
				// The primary is authoritative for itself; no round-trip.
				state = StateShowBanner
			default:
				state = StatePollPrimary
			}

		case StateConsentValid:
			return OutcomeNone, nil

		case StatePollPrimary:
			polled, err := co.pollPrimary(ctx)
			if err != nil {
				log.Printf("consent poll of primary %s failed: %v", co.cfg.PrimaryDomain, err)
			}
			if len(polled) == 0 {
				// Primary has no valid consent either (or is unreachable).
				state = StateShowBanner
			} else {
				enabled = polled
				state = StateMirrorPrimary
			}

		case StateMirrorPrimary:
			if err := co.post(ctx, page.Domain, enabled); err != nil {
				log.Printf("consent mirror to %s failed: %v", page.Domain, err)
				state = StateShowBanner
			} else {
				return OutcomeReload, nil
			}

		case StateShowBanner:
			return OutcomeShowBanner, nil
		}
	}
}

// Submit persists a banner selection on every configured domain. The POSTs
// run in parallel and are fire-and-forget: each domain's write is
// independent and last-write-wins by issue time, so per-domain failures
// are only logged.
func (co *Coordinator) Submit(ctx context.Context, names []string) {
	var wg sync.WaitGroup
	for _, domain := range co.cfg.Domains() {
		wg.Add(1)
		go func(domain string) {
			defer wg.Done()
			if err := co.post(ctx, domain, names); err != nil {
				log.Printf("consent submit to %s failed: %v", domain, err)
			}
		}(domain)
	}
	wg.Wait()
}

func (co *Coordinator) pollPrimary(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, co.PollTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, co.Endpoint(co.cfg.PrimaryDomain), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := co.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from primary consent endpoint", resp.StatusCode)
	}

	var payload struct {
		Enabled []string `json:"enabled"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Enabled, nil
}

func (co *Coordinator) post(ctx context.Context, domain string, names []string) error {
	body, err := json.Marshal(names)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, co.Endpoint(domain), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := co.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("consent write to %s rejected with status %d", domain, resp.StatusCode)
	}
	return nil
}
