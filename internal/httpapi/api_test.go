package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobboard-engine/internal/analytics"
	"jobboard-engine/internal/applications"
	"jobboard-engine/internal/auth"
	"jobboard-engine/internal/jobs"
	"jobboard-engine/internal/savedjobs"
	"jobboard-engine/internal/store/storetest"
	"jobboard-engine/internal/users"
)

type client struct {
	t   *testing.T
	srv *httptest.Server
}

func newTestServer(t *testing.T) *client {
	t.Helper()
	st := storetest.New(t)
	tk, err := auth.NewTokens("api-test-secret-0123456789", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	mux := NewMux(Deps{
		Store:        st,
		Jobs:         jobs.New(st, jobs.Options{ExcerptLength: 80}),
		Applications: applications.New(st, nil),
		SavedJobs:    savedjobs.New(st, nil),
		Analytics:    analytics.New(st, nil, 5),
		Users:        users.New(st, tk, nil),
		Tokens:       tk,
	})
	h := Chain(mux, RequestID, Recover, AccessLog, Cors([]string{"http://localhost:5173"}))
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &client{t: t, srv: srv}
}

func (c *client) do(method, path, token string, body any, out any) int {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, c.srv.URL+path, &buf)
	if err != nil {
		c.t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatal(err)
	}
	defer res.Body.Close()
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			c.t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return res.StatusCode
}

func (c *client) register(name, email, role, company string) string {
	c.t.Helper()
	body := map[string]any{"name": name, "email": email, "password": "secret1", "role": role}
	if company != "" {
		body["companyName"] = company
	}
	if code := c.do("POST", "/api/auth/register", "", body, nil); code != http.StatusCreated {
		c.t.Fatalf("register %s: %d", email, code)
	}
	var login struct {
		Token string `json:"token"`
	}
	if code := c.do("POST", "/api/auth/login", "", map[string]string{"email": email, "password": "secret1"}, &login); code != http.StatusOK {
		c.t.Fatalf("login %s: %d", email, code)
	}
	return login.Token
}

type jobPage struct {
	Items []struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		IsClosed bool   `json:"isClosed"`
	} `json:"items"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

func TestEndToEndHiringFlow(t *testing.T) {
	c := newTestServer(t)
	emp := c.register("Employer One", "emp@example.com", "employer", "Acme")
	seeker := c.register("Seeker One", "seeker@example.com", "jobseeker", "")

	var created struct {
		ID string `json:"id"`
	}
	code := c.do("POST", "/api/jobs", emp, map[string]any{
		"title": "Job A", "description": "Remote backend role", "requirements": "Go",
		"jobType": "remote", "salaryMin": 40000, "salaryMax": 60000,
	}, &created)
	if code != http.StatusCreated || created.ID == "" {
		t.Fatalf("create: %d %+v", code, created)
	}

	var page jobPage
	c.do("GET", "/api/jobs?jobType=remote&salaryMin=50000", "", nil, &page)
	if page.TotalCount != 1 || page.Items[0].ID != created.ID {
		t.Fatalf("search = %+v", page)
	}

	var applied struct {
		Application struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"application"`
	}
	if code := c.do("POST", "/api/applications/"+created.ID, seeker, nil, &applied); code != http.StatusCreated {
		t.Fatalf("apply: %d", code)
	}
	if applied.Application.Status != "applied" {
		t.Fatalf("status = %q", applied.Application.Status)
	}
	if code := c.do("POST", "/api/applications/"+created.ID, seeker, nil, nil); code != http.StatusConflict {
		t.Fatalf("second apply: %d", code)
	}

	for _, st := range []string{"in-review", "accepted"} {
		path := "/api/applications/" + applied.Application.ID + "/status"
		if code := c.do("PATCH", path, emp, map[string]string{"status": st}, nil); code != http.StatusOK {
			t.Fatalf("status %s: %d", st, code)
		}
	}

	var mine struct {
		Applications []struct {
			Status string `json:"status"`
		} `json:"applications"`
	}
	c.do("GET", "/api/applications/me", seeker, nil, &mine)
	if len(mine.Applications) != 1 || mine.Applications[0].Status != "accepted" {
		t.Fatalf("mine = %+v", mine)
	}

	var toggled struct {
		IsClosed bool `json:"isClosed"`
	}
	if code := c.do("PATCH", "/api/jobs/"+created.ID+"/toggle", emp, nil, &toggled); code != http.StatusOK || !toggled.IsClosed {
		t.Fatalf("toggle: %d %+v", code, toggled)
	}

	page = jobPage{}
	c.do("GET", "/api/jobs", "", nil, &page)
	if page.TotalCount != 0 {
		t.Fatalf("closed job still searchable: %+v", page)
	}
	if code := c.do("GET", "/api/jobs/"+created.ID, "", nil, nil); code != http.StatusNotFound {
		t.Fatalf("get closed: %d", code)
	}

	page = jobPage{}
	c.do("GET", "/api/jobs/employer/me?status=all", emp, nil, &page)
	if page.TotalCount != 1 || !page.Items[0].IsClosed {
		t.Fatalf("own listing = %+v", page)
	}

	var report struct {
		Counts struct {
			TotalApplications int `json:"totalApplications"`
			TotalHired        int `json:"totalHired"`
		} `json:"counts"`
	}
	if code := c.do("GET", "/api/analytics/me", emp, nil, &report); code != http.StatusOK {
		t.Fatalf("analytics: %d", code)
	}
	if report.Counts.TotalApplications != 1 || report.Counts.TotalHired != 1 {
		t.Fatalf("report = %+v", report)
	}
}

func TestRoleGatesAndAuth(t *testing.T) {
	c := newTestServer(t)
	emp := c.register("Employer One", "emp@example.com", "employer", "Acme")
	seeker := c.register("Seeker One", "seeker@example.com", "jobseeker", "")

	if code := c.do("POST", "/api/jobs", "", map[string]any{}, nil); code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", code)
	}
	if code := c.do("POST", "/api/jobs", "garbage", map[string]any{}, nil); code != http.StatusUnauthorized {
		t.Fatalf("bad token: %d", code)
	}
	if code := c.do("POST", "/api/jobs", seeker, map[string]any{}, nil); code != http.StatusForbidden {
		t.Fatalf("jobseeker create: %d", code)
	}
	if code := c.do("GET", "/api/saved-jobs", emp, nil, nil); code != http.StatusForbidden {
		t.Fatalf("employer saved jobs: %d", code)
	}
	if code := c.do("GET", "/api/analytics/me", seeker, nil, nil); code != http.StatusForbidden {
		t.Fatalf("jobseeker analytics: %d", code)
	}
}

func TestValidationErrorsAreStructured(t *testing.T) {
	c := newTestServer(t)
	emp := c.register("Employer One", "emp@example.com", "employer", "Acme")

	var e APIError
	code := c.do("POST", "/api/jobs", emp, map[string]any{
		"title": "x", "description": "y", "requirements": "z", "jobType": "remote",
		"salaryMin": 10, "salaryMax": 5,
	}, &e)
	if code != http.StatusBadRequest || e.Error.Code != "validation_error" || len(e.Error.Details) == 0 {
		t.Fatalf("got %d %+v", code, e)
	}
	if e.Error.RequestID == "" {
		t.Fatal("missing request id")
	}

	if code := c.do("GET", "/api/jobs?jobType=freelance", "", nil, nil); code != http.StatusBadRequest {
		t.Fatalf("bad jobType: %d", code)
	}
	if code := c.do("GET", "/api/jobs?salaryMin=abc", "", nil, nil); code != http.StatusBadRequest {
		t.Fatalf("bad salary: %d", code)
	}
	if code := c.do("GET", "/api/jobs?salaryMin=9&salaryMax=1", "", nil, nil); code != http.StatusBadRequest {
		t.Fatalf("inverted salary: %d", code)
	}
}

func TestSavedJobsFlow(t *testing.T) {
	c := newTestServer(t)
	emp := c.register("Employer One", "emp@example.com", "employer", "Acme")
	seeker := c.register("Seeker One", "seeker@example.com", "jobseeker", "")

	var created struct {
		ID string `json:"id"`
	}
	c.do("POST", "/api/jobs", emp, map[string]any{
		"title": "Saved", "description": "d", "requirements": "r", "jobType": "contract",
	}, &created)

	if code := c.do("POST", "/api/saved-jobs/"+created.ID, seeker, nil, nil); code != http.StatusCreated {
		t.Fatalf("save: %d", code)
	}
	if code := c.do("POST", "/api/saved-jobs/"+created.ID, seeker, nil, nil); code != http.StatusConflict {
		t.Fatalf("duplicate save: %d", code)
	}
	var list struct {
		Count int `json:"count"`
	}
	c.do("GET", "/api/saved-jobs", seeker, nil, &list)
	if list.Count != 1 {
		t.Fatalf("count = %d", list.Count)
	}
	if code := c.do("DELETE", "/api/saved-jobs/"+created.ID, seeker, nil, nil); code != http.StatusOK {
		t.Fatalf("remove: %d", code)
	}
	if code := c.do("DELETE", "/api/saved-jobs/"+created.ID, seeker, nil, nil); code != http.StatusNotFound {
		t.Fatalf("second remove: %d", code)
	}
}

func TestLimitAliasAndHealth(t *testing.T) {
	c := newTestServer(t)
	emp := c.register("Employer One", "emp@example.com", "employer", "Acme")
	for i := 0; i < 3; i++ {
		c.do("POST", "/api/jobs", emp, map[string]any{
			"title": "Job", "description": "d", "requirements": "r", "jobType": "internship",
		}, nil)
	}
	var page jobPage
	c.do("GET", "/api/jobs?limit=2", "", nil, &page)
	if len(page.Items) != 2 || page.TotalPages != 2 {
		t.Fatalf("page = %+v", page)
	}

	var health map[string]any
	if code := c.do("GET", "/health", "", nil, &health); code != http.StatusOK || health["ok"] != true {
		t.Fatalf("health: %d %v", code, health)
	}
}

func TestMalformedSearchInputIsRejected(t *testing.T) {
	c := newTestServer(t)

	for _, q := range []string{
		"keyword=%FF",
		"location=Berlin%C3",
		"salaryMin=NaN",
		"salaryMax=Inf",
		"salaryMin=-Infinity",
	} {
		var e APIError
		code := c.do("GET", "/api/jobs?"+q, "", nil, &e)
		if code != http.StatusBadRequest || e.Error.Code != "validation_error" {
			t.Errorf("%s: got %d %+v", q, code, e)
		}
	}
}

func TestHugePageNumberStaysEmpty(t *testing.T) {
	c := newTestServer(t)
	emp := c.register("Employer One", "emp@example.com", "employer", "Acme")
	c.do("POST", "/api/jobs", emp, map[string]any{
		"title": "Only", "description": "d", "requirements": "r", "jobType": "remote",
	}, nil)

	var page jobPage
	if code := c.do("GET", "/api/jobs?page=9223372036854775807", "", nil, &page); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(page.Items) != 0 || page.TotalCount != 1 {
		t.Fatalf("page = %+v", page)
	}
}

func TestUpdateJobClearsSalaryWithNull(t *testing.T) {
	c := newTestServer(t)
	emp := c.register("Employer One", "emp@example.com", "employer", "Acme")
	var created struct {
		ID string `json:"id"`
	}
	c.do("POST", "/api/jobs", emp, map[string]any{
		"title": "Paid", "description": "d", "requirements": "r", "jobType": "remote",
		"salaryMin": 100, "salaryMax": 200,
	}, &created)

	var updated struct {
		SalaryMin *float64 `json:"salaryMin"`
		SalaryMax *float64 `json:"salaryMax"`
	}
	code := c.do("PUT", "/api/jobs/"+created.ID, emp, map[string]any{"salaryMin": nil}, &updated)
	if code != http.StatusOK {
		t.Fatalf("update: %d", code)
	}
	if updated.SalaryMin != nil || updated.SalaryMax == nil || *updated.SalaryMax != 200 {
		t.Fatalf("updated = %+v", updated)
	}
}
