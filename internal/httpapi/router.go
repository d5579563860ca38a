package httpapi

import (
	"net/http"

	"jobboard-engine/internal/domain"
)

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	authed := Authenticate(d.Tokens)
	employer := Authenticate(d.Tokens, domain.RoleEmployer)
	jobseeker := Authenticate(d.Tokens, domain.RoleJobseeker)

	hh := HealthHandler{Store: d.Store}
	mux.HandleFunc("GET /health", hh.Health)

	// Auth
	ah := AuthHandler{Users: d.Users}
	mux.HandleFunc("POST /api/auth/register", ah.Register)
	mux.HandleFunc("POST /api/auth/login", ah.Login)
	mux.HandleFunc("GET /api/auth/me", authed(ah.Me))

	// Users
	uh := UsersHandler{Users: d.Users}
	mux.HandleFunc("GET /api/users/me", authed(ah.Me))
	mux.HandleFunc("PUT /api/users/me", authed(uh.Update))
	mux.HandleFunc("DELETE /api/users/me/resume", jobseeker(uh.DeleteResume))
	mux.HandleFunc("GET /api/users/{id}", uh.Public)

	// Jobs
	jh := JobsHandler{Jobs: d.Jobs}
	mux.HandleFunc("GET /api/jobs", jh.List)
	mux.HandleFunc("POST /api/jobs", employer(jh.Create))
	mux.HandleFunc("GET /api/jobs/employer/me", employer(jh.ListOwn))
	mux.HandleFunc("GET /api/jobs/{id}", jh.Get)
	mux.HandleFunc("PUT /api/jobs/{id}", employer(jh.Update))
	mux.HandleFunc("DELETE /api/jobs/{id}", employer(jh.Delete))
	mux.HandleFunc("PATCH /api/jobs/{id}/toggle", employer(jh.Toggle))

	// Applications
	aph := ApplicationsHandler{Applications: d.Applications}
	mux.HandleFunc("POST /api/applications/{jobId}", jobseeker(aph.Apply))
	mux.HandleFunc("GET /api/applications/me", jobseeker(aph.Mine))
	mux.HandleFunc("GET /api/applications/job/{jobId}", employer(aph.ForJob))
	mux.HandleFunc("PATCH /api/applications/{id}/status", employer(aph.UpdateStatus))

	// Saved jobs
	sh := SavedJobsHandler{SavedJobs: d.SavedJobs}
	mux.HandleFunc("GET /api/saved-jobs", jobseeker(sh.List))
	mux.HandleFunc("POST /api/saved-jobs/{jobId}", jobseeker(sh.Save))
	mux.HandleFunc("DELETE /api/saved-jobs/{jobId}", jobseeker(sh.Remove))

	// Analytics
	anh := AnalyticsHandler{Analytics: d.Analytics}
	mux.HandleFunc("GET /api/analytics/me", employer(anh.Mine))

	return mux
}
