// Package session drives an authenticated browsing session against the
// banking portal: login, navigation to the statement-export page, and
// download of the per-account export files. The whole flow is sequential;
// callers that want parallelism run independent sessions.
package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"

	"github.com/releve-dev/releve/internal/config"
	"github.com/releve-dev/releve/internal/export"
)

const defaultLandingRetries = 13

// Credentials authenticate one CheckBalance call. They are held for the
// lifetime of the Session only and never persisted.
type Credentials struct {
	Username string
	Password string
}

// Session owns the HTTP and cookie state for one portal conversation.
// A Session is not safe for concurrent use.
type Session struct {
	cfg    *config.Config
	creds  Credentials
	client *http.Client
	logger *log.Logger
}

// Option customizes a Session.
type Option func(*Session)

// WithHTTPClient substitutes a pre-configured client. The client must keep
// cookies across requests; socket-level timeout policy belongs to it.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Session) { s.client = c }
}

// WithLogger attaches a logger for per-step diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New validates credentials and prepares a session. Missing credentials
// fail with ConfigurationError before any network activity.
func New(cfg *config.Config, creds Credentials, opts ...Option) (*Session, error) {
	if creds.Username == "" {
		return nil, &ConfigurationError{Missing: "username"}
	}
	if creds.Password == "" {
		return nil, &ConfigurationError{Missing: "password"}
	}
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Session{cfg: cfg, creds: creds}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("creating cookie jar: %w", err)
		}
		s.client = &http.Client{Jar: jar}
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s, nil
}

// CheckBalance runs the full portal conversation and returns the parsed
// accounts in export-link order. Faults surface as SessionError (network,
// navigation) or export.ParseError (malformed export data); on any fault
// no partial result is returned.
func (s *Session) CheckBalance(ctx context.Context) ([]export.Account, error) {
	landing, err := s.fetchLanding(ctx)
	if err != nil {
		return nil, err
	}
	home, err := s.login(ctx, landing)
	if err != nil {
		return nil, err
	}
	links, err := s.requestExport(ctx, home)
	if err != nil {
		return nil, err
	}
	return s.downloadAll(ctx, links)
}

// fetchLanding fetches the authentication landing page. The portal
// intermittently answers with an empty body; those responses are retried
// up to the configured bound.
func (s *Session) fetchLanding(ctx context.Context) (*page, error) {
	const step = "fetching landing page"

	target, err := url.Parse(s.cfg.Portal.BaseURL + s.cfg.Portal.LandingPath)
	if err != nil {
		return nil, &SessionError{Step: step, Err: err}
	}

	retries := s.cfg.Portal.LandingRetries
	if retries <= 0 {
		retries = defaultLandingRetries
	}

	for attempt := 1; attempt <= retries; attempt++ {
		body, final, err := s.fetch(ctx, http.MethodGet, target, nil, nil)
		if err != nil {
			return nil, &SessionError{Step: step, Err: err}
		}
		if len(bytes.TrimSpace(body)) == 0 {
			s.logger.Debug("empty landing page response", "attempt", attempt)
			continue
		}
		p, err := newPage(final, body)
		if err != nil {
			return nil, &SessionError{Step: step, Err: err}
		}
		return p, nil
	}
	return nil, &SessionError{Step: step, Err: fmt.Errorf("empty response after %d attempts", retries)}
}

// login finds the named login form, fills in the credentials and submits.
func (s *Session) login(ctx context.Context, landing *page) (*page, error) {
	sel := landing.doc.Find(fmt.Sprintf("form[name=%q]", s.cfg.Portal.LoginFormName))
	if sel.Length() == 0 {
		return nil, &SessionError{
			Step: "locating login form",
			Err:  fmt.Errorf("login form %q not found", s.cfg.Portal.LoginFormName),
		}
	}
	f, err := parseForm(landing, sel.First())
	if err != nil {
		return nil, &SessionError{Step: "locating login form", Err: err}
	}

	f.set(s.cfg.Portal.UsernameField, s.creds.Username)
	f.set(s.cfg.Portal.PasswordField, s.creds.Password)

	p, err := s.submit(ctx, f, nil)
	if err != nil {
		return nil, &SessionError{Step: "submitting login form", Err: err}
	}
	s.logger.Info("logged in", "user", s.creds.Username)
	return p, nil
}

// requestExport navigates to the export page and submits the first form on
// it with the configured option table. Every configured field is set
// whether or not the markup carried it; the portal creates some fields
// client-side and expects them in the submission regardless.
func (s *Session) requestExport(ctx context.Context, home *page) (*page, error) {
	target, err := home.resolve(s.cfg.Export.Path)
	if err != nil {
		return nil, &SessionError{Step: "navigating to export page", Err: err}
	}

	// The portal keys its response variant off the Accept header.
	header := http.Header{"Accept": []string{"text/html"}}
	body, final, err := s.fetch(ctx, http.MethodGet, target, nil, header)
	if err != nil {
		return nil, &SessionError{Step: "navigating to export page", Err: err}
	}
	p, err := newPage(final, body)
	if err != nil {
		return nil, &SessionError{Step: "navigating to export page", Err: err}
	}

	sel := p.doc.Find("form")
	if sel.Length() == 0 {
		return nil, &SessionError{Step: "locating export form", Err: errors.New("export form not found")}
	}
	f, err := parseForm(p, sel.First())
	if err != nil {
		return nil, &SessionError{Step: "locating export form", Err: err}
	}
	for name, value := range s.cfg.Export.Fields {
		f.set(name, value)
	}

	links, err := s.submit(ctx, f, header)
	if err != nil {
		return nil, &SessionError{Step: "submitting export form", Err: err}
	}
	return links, nil
}

// downloadAll fetches every export link on the page and parses each body.
// A body that is an HTML page means the account had no activity for the
// period; it is skipped, not an error.
func (s *Session) downloadAll(ctx context.Context, links *page) ([]export.Account, error) {
	var targets []*url.URL
	links.doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		u, err := links.resolve(href)
		if err != nil {
			s.logger.Debug("skipping unparseable link", "href", href)
			return
		}
		if strings.HasSuffix(u.Path, s.cfg.Export.LinkSuffix) {
			targets = append(targets, u)
		}
	})
	s.logger.Debug("export links found", "count", len(targets))

	accounts := make([]export.Account, 0, len(targets))
	for _, u := range targets {
		body, _, err := s.fetch(ctx, http.MethodGet, u, nil, nil)
		if err != nil {
			return nil, &SessionError{Step: "downloading export", Err: err}
		}
		if export.IsNoActivity(body) {
			s.logger.Info("no activity for export", "path", u.Path)
			continue
		}
		acct, err := export.ParseAccount(string(body))
		if err != nil {
			return nil, err
		}
		s.logger.Debug("parsed account",
			"number", acct.AccountNumber(),
			"statements", len(acct.Statements()))
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// submit sends a form: GET forms encode values in the query string, POST
// forms in a form-encoded body.
func (s *Session) submit(ctx context.Context, f *form, header http.Header) (*page, error) {
	var (
		body  []byte
		final *url.URL
		err   error
	)
	if f.method == http.MethodPost {
		body, final, err = s.fetch(ctx, http.MethodPost, f.action, f.values, header)
	} else {
		target := *f.action
		target.RawQuery = f.values.Encode()
		body, final, err = s.fetch(ctx, http.MethodGet, &target, nil, header)
	}
	if err != nil {
		return nil, err
	}
	return newPage(final, body)
}

// fetch performs one HTTP round trip and returns the body together with
// the final URL after redirects, for relative-link resolution.
func (s *Session) fetch(ctx context.Context, method string, u *url.URL, values url.Values, header http.Header) ([]byte, *url.URL, error) {
	var reqBody io.Reader
	if values != nil {
		reqBody = strings.NewReader(values.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if values != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", u, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, fmt.Errorf("%s %s: %s", method, u, resp.Status)
	}
	return data, resp.Request.URL, nil
}
