package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	Origin    = "https://www.pro-football-reference.com"
	UserAgent = "nfl-combine/1.0 (github.com/pfrederiksen/nfl-combine)"
	Timeout   = 30 * time.Second
)

// Scraper fetches and parses pro-football-reference pages
type Scraper struct {
	client  *resty.Client
	origin  string
	limiter *rate.Limiter
}

// Option configures a Scraper
type Option func(*Scraper)

// WithOrigin points the scraper at a different site root, e.g. a test server
func WithOrigin(origin string) Option {
	return func(s *Scraper) {
		s.origin = strings.TrimRight(origin, "/")
	}
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		s.client.SetTimeout(d)
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		if ua != "" {
			s.client.SetHeader("User-Agent", ua)
		}
	}
}

// WithRateLimit caps outgoing requests per second. Zero or negative disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Scraper) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: resty.New().
			SetTimeout(Timeout).
			SetHeader("User-Agent", UserAgent),
		origin: Origin,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CombineURL returns the combine results page for a year
func (s *Scraper) CombineURL(year int) string {
	return fmt.Sprintf("%s/draft/%d-combine.htm", s.origin, year)
}

// ProfileURL joins the site origin with a site-relative player path
func (s *Scraper) ProfileURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.origin + path
}

// FetchDocument fetches a page and parses it as HTML
func (s *Scraper) FetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, &StatusError{URL: url, Code: resp.StatusCode()}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// FetchProfile fetches a player's profile page
func (s *Scraper) FetchProfile(ctx context.Context, path string) (*goquery.Document, error) {
	return s.FetchDocument(ctx, s.ProfileURL(path))
}
