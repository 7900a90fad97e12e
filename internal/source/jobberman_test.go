package source

import (
	"strings"
	"testing"

	"github.com/Kenengmathias/Hunter/internal/models"
)

func TestValidJobbermanHTML(t *testing.T) {
	filler := strings.Repeat("x", 1200)
	if validJobbermanHTML(filler) {
		t.Fatalf("filler without job markers should be invalid")
	}
	if validJobbermanHTML("salary apply experience") {
		t.Fatalf("short body should be invalid")
	}
	if !validJobbermanHTML(filler + " salary apply experience") {
		t.Fatalf("long body with three markers should be valid")
	}
}

func TestParseJobbermanJobs(t *testing.T) {
	html := `
<html><body>
<nav>Find a job | Browse categories | Sign in</nav>
<article class="job-card-wrapper">
  <h3><a href="/job/1234">Marketing Officer</a></h3>
  <span class="company-name">Acme Nigeria Ltd</span>
  <span class="location">Lagos</span>
  <p>We are seeking an experienced marketing officer to lead campaigns across Lagos for our growing retail brand.</p>
  ₦250,000 per month
</article>
<article class="job-listing">
  <h3><a href="javascript:void(0)">Sales Executive Needed</a></h3>
  <span class="company">Beta Stores</span>
</article>
</body></html>`

	doc := mustDoc(t, html)
	jobs := parseJobbermanJobs(doc, "https://www.jobberman.com", 0)
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d: %+v", len(jobs), jobs)
	}

	job := jobs[0]
	if job.Source != "Jobberman" {
		t.Errorf("source = %q", job.Source)
	}
	if job.Title != "Marketing Officer" {
		t.Errorf("title = %q", job.Title)
	}
	if job.URL != "https://www.jobberman.com/job/1234" {
		t.Errorf("url = %q", job.URL)
	}
	if job.Company != "Acme Nigeria Ltd" {
		t.Errorf("company = %q", job.Company)
	}
	if job.Location != "Lagos" {
		t.Errorf("location = %q", job.Location)
	}
	if job.Salary != "₦250,000 per month" {
		t.Errorf("salary = %q", job.Salary)
	}
	if !strings.HasPrefix(job.Description, "We are seeking") {
		t.Errorf("description = %q", job.Description)
	}
}

func TestParseJobbermanJobs_HeuristicFallback(t *testing.T) {
	html := `
<html><body>
<div class="wrapper">
  <div class="posting">
    <h4><a href="/jobs/5678">Accountant</a></h4>
    <span class="company">Gamma Ltd</span>
    <p>Apply now for this accountant position. The role requires experience with ledgers and a qualification in accounting.</p>
  </div>
</div>
</body></html>`

	doc := mustDoc(t, html)
	jobs := parseJobbermanJobs(doc, "https://www.jobberman.com", 1)
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job via heuristics, got %d", len(jobs))
	}
	if jobs[0].Title != "Accountant" || jobs[0].Company != "Gamma Ltd" {
		t.Fatalf("unexpected job: %+v", jobs[0])
	}
	if jobs[0].URL != "https://www.jobberman.com/jobs/5678" {
		t.Fatalf("url = %q", jobs[0].URL)
	}
}

func TestLooksLikeJobbermanCard(t *testing.T) {
	jobDoc := mustDoc(t, `<div class="c">Apply for this position today. Experience with logistics required, qualification preferred. <a href="/job/1">Apply</a></div>`)
	if !looksLikeJobbermanCard(jobDoc.Find(".c").First()) {
		t.Fatalf("job-like element should pass")
	}

	navDoc := mustDoc(t, `<div class="c">Sign in or register to create account and apply for this position with experience. <a href="/login">Login</a></div>`)
	if looksLikeJobbermanCard(navDoc.Find(".c").First()) {
		t.Fatalf("navigation element should fail")
	}

	shortDoc := mustDoc(t, `<div class="c">apply job <a href="/x">x</a></div>`)
	if looksLikeJobbermanCard(shortDoc.Find(".c").First()) {
		t.Fatalf("short element should fail")
	}

	noLinkDoc := mustDoc(t, `<div class="c">Apply for this position today. Experience with logistics required, qualification preferred for the job.</div>`)
	if looksLikeJobbermanCard(noLinkDoc.Find(".c").First()) {
		t.Fatalf("element without links should fail")
	}
}

func TestValidJobbermanTitle(t *testing.T) {
	cases := []struct {
		title string
		want  bool
	}{
		{"Marketing Officer", true},
		{"Senior Developer", true},
		{"Experienced bakery team member wanted in Surulere", true},
		{"Find a Job", false},
		{"Sign In", false},
		{"Jobs", false},
		{"Growth", false},
		{strings.Repeat("a", 151), false},
	}

	for _, tc := range cases {
		if got := validJobbermanTitle(tc.title); got != tc.want {
			t.Fatalf("validJobbermanTitle(%q) = %v, want %v", tc.title, got, tc.want)
		}
	}
}

func TestJobbermanSalaryLine(t *testing.T) {
	text := "Acme Nigeria\n₦150,000 - ₦200,000 per month\nApply now"
	if got := jobbermanSalaryLine(text); got != "₦150,000 - ₦200,000 per month" {
		t.Fatalf("salary line = %q", got)
	}

	if got := jobbermanSalaryLine("Salary: competitive\nGreat benefits"); got != "" {
		t.Fatalf("line without digits should be skipped, got %q", got)
	}

	long := "salary of ₦150,000 guaranteed for candidates who join before December this year"
	if got := jobbermanSalaryLine(long); got != "" {
		t.Fatalf("overlong line should be skipped, got %q", got)
	}
}

func TestRealJobbermanJob(t *testing.T) {
	base := models.Job{Title: "Marketing Officer", Company: "Acme"}
	if !realJobbermanJob(base) {
		t.Fatalf("expected valid job")
	}

	anchored := base
	anchored.URL = "https://www.jobberman.com/jobs#listing"
	if realJobbermanJob(anchored) {
		t.Fatalf("fragment links should be rejected")
	}

	scripted := base
	scripted.URL = "JAVASCRIPT:void(0)"
	if realJobbermanJob(scripted) {
		t.Fatalf("javascript links should be rejected")
	}

	orphan := models.Job{Title: "Marketing Officer"}
	if realJobbermanJob(orphan) {
		t.Fatalf("job without company and location should be rejected")
	}
}
