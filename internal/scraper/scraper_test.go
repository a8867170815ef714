package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/" + name)
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return string(data)
}

func TestFetchCombine(t *testing.T) {
	page := loadFixture(t, "combine_2005.html")

	tests := []struct {
		name        string
		statusCode  int
		wantError   bool
		wantRecords int
	}{
		{
			name:        "successful fetch",
			statusCode:  http.StatusOK,
			wantRecords: 4,
		},
		{
			name:       "HTTP error",
			statusCode: http.StatusNotFound,
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if userAgent := r.Header.Get("User-Agent"); !strings.Contains(userAgent, "nfl-combine") {
					t.Errorf("User-Agent = %q, should contain 'nfl-combine'", userAgent)
				}
				if r.URL.Path != "/draft/2005-combine.htm" {
					t.Errorf("path = %q, want /draft/2005-combine.htm", r.URL.Path)
				}
				w.WriteHeader(tt.statusCode)
				if tt.statusCode == http.StatusOK {
					w.Write([]byte(page))
				}
			}))
			defer server.Close()

			s := New(WithOrigin(server.URL))
			got, err := s.FetchCombine(context.Background(), 2005)

			if tt.wantError {
				if err == nil {
					t.Fatal("FetchCombine() expected error, got nil")
				}
				var statusErr *StatusError
				if !errors.As(err, &statusErr) || statusErr.Code != tt.statusCode {
					t.Errorf("FetchCombine() error = %v, want StatusError %d", err, tt.statusCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchCombine() unexpected error: %v", err)
			}

			records, err := got.Records()
			if err != nil {
				t.Fatalf("Records() error: %v", err)
			}
			if len(records) != tt.wantRecords {
				t.Errorf("Records() returned %d records, want %d", len(records), tt.wantRecords)
			}
		})
	}
}

func TestParseCombineTable(t *testing.T) {
	doc := mustDoc(t, loadFixture(t, "combine_2005.html"))

	records, err := ParseCombineTable(doc, 2005)
	if err != nil {
		t.Fatalf("ParseCombineTable() error: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("ParseCombineTable() returned %d records, want 4", len(records))
	}

	first := records[0]
	if first.Player != "Ronnie Runner" || first.Pos != "RB" || first.Year != 2005 {
		t.Errorf("first record = %+v", first)
	}
	if first.Ht != "5-11" {
		t.Errorf("Ht = %q, want 5-11", first.Ht)
	}
	if first.Drafted != "Miami Dolphins / 1st / 2nd pick / 2005" {
		t.Errorf("Drafted = %q", first.Drafted)
	}
	if first.Wt == nil || *first.Wt != 217 {
		t.Errorf("Wt = %v, want 217", first.Wt)
	}
	if first.Forty == nil || *first.Forty != 4.43 {
		t.Errorf("Forty = %v, want 4.43", first.Forty)
	}
	if first.College != "College Stats" {
		t.Errorf("College = %q, want College Stats", first.College)
	}

	nolink := records[2]
	if nolink.Player != "Nate Nolink" {
		t.Fatalf("third record = %q, want Nate Nolink", nolink.Player)
	}
	if nolink.Bench != nil {
		t.Errorf("Bench = %v, want nil for blank cell", *nolink.Bench)
	}
	if nolink.Drafted != "" {
		t.Errorf("Drafted = %q, want empty", nolink.Drafted)
	}
}

func TestParseCombineTable_Layout(t *testing.T) {
	doc := mustDoc(t, `<table><thead><tr><th>Name</th><th>Team</th></tr></thead><tbody><tr><td>x</td><td>y</td></tr></tbody></table>`)

	_, err := ParseCombineTable(doc, 2001)
	if !errors.Is(err, ErrLayout) {
		t.Errorf("ParseCombineTable() error = %v, want ErrLayout", err)
	}
}

func TestFetchDocument_RateLimitCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	s := New(WithOrigin(server.URL), WithRateLimit(0.001, 1))

	if _, err := s.FetchDocument(context.Background(), server.URL); err != nil {
		t.Fatalf("first fetch should use the burst token: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := s.FetchDocument(ctx, server.URL); err == nil {
		t.Error("second fetch should fail waiting for the limiter")
	}
}

func TestURLs(t *testing.T) {
	s := New(WithOrigin("https://example.test/"))

	if got := s.CombineURL(2016); got != "https://example.test/draft/2016-combine.htm" {
		t.Errorf("CombineURL() = %q", got)
	}
	if got := s.ProfileURL("/players/A/AbleAl00.htm"); got != "https://example.test/players/A/AbleAl00.htm" {
		t.Errorf("ProfileURL() = %q", got)
	}
	if got := s.ProfileURL("players/A/AbleAl00.htm"); got != "https://example.test/players/A/AbleAl00.htm" {
		t.Errorf("ProfileURL() without slash = %q", got)
	}
}

func TestNew(t *testing.T) {
	s := New()

	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.client == nil {
		t.Error("scraper client is nil")
	}
	if s.origin != Origin {
		t.Errorf("scraper origin = %q, want %q", s.origin, Origin)
	}
	if s.limiter != nil {
		t.Error("limiter should be disabled by default")
	}
}
