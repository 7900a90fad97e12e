package source

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Kenengmathias/Hunter/internal/models"
)

func newTestJSearch(serverURL string) *JSearch {
	return &JSearch{
		key:     "rapid-key",
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: serverURL,
	}
}

func TestJSearchSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.Header.Get("X-RapidAPI-Key") != "rapid-key" {
			t.Errorf("missing rapidapi key header")
		}
		if r.Header.Get("X-RapidAPI-Host") != jsearchHost {
			t.Errorf("host header = %q", r.Header.Get("X-RapidAPI-Host"))
		}

		query := r.URL.Query()
		if query.Get("query") != "golang developer in Lagos" {
			t.Errorf("query = %q", query.Get("query"))
		}
		if query.Get("page") != "1" || query.Get("num_pages") != "1" {
			t.Errorf("paging params = %v", query)
		}
		if query.Get("date_posted") != "all" {
			t.Errorf("date_posted = %q", query.Get("date_posted"))
		}

		json.NewEncoder(w).Encode(jsearchResponse{Data: []jsearchJob{
			{
				Title:          "Go Engineer",
				Employer:       "Acme",
				ApplyLink:      "https://example.com/apply",
				City:           "Lagos",
				Country:        "Nigeria",
				SalaryMin:      400000,
				SalaryMax:      700000,
				SalaryCurrency: "NGN",
				Description:    "Write Go.",
				EmploymentType: "FULLTIME",
			},
			{Title: "Remote role", Employer: "Beta"},
		}})
	}))
	defer server.Close()

	jobs, err := newTestJSearch(server.URL).Search(context.Background(), models.SearchParams{
		Keywords: "golang developer",
		Location: "Lagos",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	first := jobs[0]
	if first.Source != "JSearch" {
		t.Errorf("source = %q", first.Source)
	}
	if first.Location != "Lagos, Nigeria" {
		t.Errorf("location = %q", first.Location)
	}
	if first.Salary != "₦400,000 - ₦700,000" {
		t.Errorf("salary = %q", first.Salary)
	}
	if first.JobType != "FULLTIME" {
		t.Errorf("job type = %q", first.JobType)
	}

	if jobs[1].Location != "Remote" {
		t.Errorf("expected Remote placeholder, got %q", jobs[1].Location)
	}
}

func TestJSearchSearch_QueryWithoutLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "golang" {
			t.Errorf("query = %q", got)
		}
		json.NewEncoder(w).Encode(jsearchResponse{})
	}))
	defer server.Close()

	if _, err := newTestJSearch(server.URL).Search(context.Background(), models.SearchParams{Keywords: "golang"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestJSearchSearch_AuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestJSearch(server.URL).Search(context.Background(), models.SearchParams{Keywords: "go"})
	if err == nil || !strings.Contains(err.Error(), "RapidAPI") {
		t.Fatalf("expected subscription hint, got %v", err)
	}
}

func TestJSearchSearch_NotConfigured(t *testing.T) {
	client := &JSearch{client: http.DefaultClient, baseURL: jsearchEndpoint}

	_, err := client.Search(context.Background(), models.SearchParams{Keywords: "go"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestJSearchSalary(t *testing.T) {
	cases := []struct {
		currency string
		min, max float64
		want     string
	}{
		{"USD", 90000, 120000, "$90,000 - $120,000"},
		{"", 90000, 120000, "$90,000 - $120,000"},
		{"NGN", 300000, 500000, "₦300,000 - ₦500,000"},
		{"EUR", 50000, 70000, "EUR50,000 - EUR70,000"},
		{"USD", 0, 120000, ""},
	}

	for _, tc := range cases {
		if got := jsearchSalary(tc.currency, tc.min, tc.max); got != tc.want {
			t.Fatalf("jsearchSalary(%q, %v, %v) = %q, want %q", tc.currency, tc.min, tc.max, got, tc.want)
		}
	}
}
