package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/Kenengmathias/Hunter/internal/models"
)

func sampleJobs() []models.Job {
	return []models.Job{
		{
			Source:      "Jooble",
			Title:       "Senior Go Developer",
			Company:     "Acme",
			Location:    "Lagos, Nigeria",
			Salary:      "₦500,000 - ₦700,000",
			URL:         "https://jooble.org/jobs/1",
			JobType:     "fulltime",
			Description: "Build backend services.",
			Score:       4.5,
		},
		{
			Source:   "Indeed",
			Title:    "Backend Engineer",
			Company:  "Beta",
			Location: "Remote",
			URL:      "#",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, sampleJobs(), FormatCSV, WriteOptions{}); err != nil {
		t.Fatalf("WriteJobs() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if !reflect.DeepEqual(rows[0], csvHeader()) {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "Jooble" || rows[1][1] != "Senior Go Developer" || rows[1][8] != "4.5" {
		t.Errorf("first row = %v", rows[1])
	}
	if rows[2][8] != "" {
		t.Errorf("unranked job should have an empty score, got %q", rows[2][8])
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, sampleJobs(), FormatTable, WriteOptions{}); err != nil {
		t.Fatalf("WriteJobs() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "source") || !strings.Contains(out, "Senior Go Developer") {
		t.Errorf("table output missing expected columns:\n%s", out)
	}
	if !strings.Contains(out, "-") {
		t.Errorf("placeholder URL should render as a dash:\n%s", out)
	}
	if strings.Contains(out, "#") {
		t.Errorf("placeholder URL must not leak into the table:\n%s", out)
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, sampleJobs(), FormatMarkdown, WriteOptions{}); err != nil {
		t.Fatalf("WriteJobs() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"- **Senior Go Developer** (Acme)",
		"  Source: Jooble",
		"  URL: [Open listing](<https://jooble.org/jobs/1>)",
		"  Salary: ₦500,000 - ₦700,000",
		"  Score: 4.5",
		"  Summary: Build backend services.",
		"  URL: -",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestWriteMarkdownEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, nil, FormatMarkdown, WriteOptions{}); err != nil {
		t.Fatalf("WriteJobs() error = %v", err)
	}
	if got, want := buf.String(), "No results.\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, sampleJobs(), FormatJSON, WriteOptions{}); err != nil {
		t.Fatalf("WriteJobs() error = %v", err)
	}

	var decoded []models.Job
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Title != "Senior Go Developer" || decoded[0].Score != 4.5 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestShortURLLabel(t *testing.T) {
	got := shortURLLabel("https://www.jobberman.com/listings/accountant-lagos")
	if got != "jobberman.com/listings/accountant-lagos" {
		t.Fatalf("shortURLLabel() = %q", got)
	}
}
