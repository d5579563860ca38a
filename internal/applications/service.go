// Package applications runs the application lifecycle: apply-once, the
// applicant's own view, and employer-gated reads and status transitions.
package applications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/store"
)

type Store interface {
	GetUser(ctx context.Context, id string) (domain.User, error)
	GetJob(ctx context.Context, id string) (domain.Job, error)
	CreateApplication(ctx context.Context, a domain.Application) error
	ApplicationExists(ctx context.Context, jobID, applicantID string) (bool, error)
	GetApplication(ctx context.Context, id string) (domain.Application, error)
	UpdateApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus, at time.Time) error
	ListApplicationsByApplicant(ctx context.Context, applicantID string) ([]domain.MyApplication, error)
	ListApplicationsByJob(ctx context.Context, jobID string) ([]domain.JobApplication, error)
}

type Service struct {
	st  Store
	now func() time.Time
}

func New(st Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{st: st, now: now}
}

var errAlreadyApplied = domain.Conflict("you have already applied for this job")

// Apply records an application in status applied with a snapshot of the
// applicant's current resume. The existence check only gives an early answer;
// the unique index decides.
func (s *Service) Apply(ctx context.Context, c domain.Caller, jobID string) (domain.Application, error) {
	if !c.Is(domain.RoleJobseeker) {
		return domain.Application{}, domain.Forbidden("only jobseekers can apply")
	}

	job, err := s.st.GetJob(ctx, jobID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && job.IsClosed) {
		return domain.Application{}, domain.NotFound("job not available")
	}
	if err != nil {
		return domain.Application{}, err
	}

	exists, err := s.st.ApplicationExists(ctx, jobID, c.ID)
	if err != nil {
		return domain.Application{}, err
	}
	if exists {
		return domain.Application{}, errAlreadyApplied
	}

	applicant, err := s.st.GetUser(ctx, c.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Application{}, domain.NotFound("user not found")
		}
		return domain.Application{}, err
	}

	now := s.now().UTC()
	a := domain.Application{
		ID:          uuid.NewString(),
		JobID:       jobID,
		ApplicantID: c.ID,
		Status:      domain.StatusApplied,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if r := strings.TrimSpace(applicant.Resume); r != "" {
		a.Resume = &r
	}

	if err := s.st.CreateApplication(ctx, a); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return domain.Application{}, errAlreadyApplied
		}
		return domain.Application{}, err
	}
	return a, nil
}

func (s *Service) ListMine(ctx context.Context, c domain.Caller) ([]domain.MyApplication, error) {
	if !c.Is(domain.RoleJobseeker) {
		return nil, domain.Forbidden("only jobseekers have applications")
	}
	return s.st.ListApplicationsByApplicant(ctx, c.ID)
}

// ListForJob returns a job's applications to the employer that owns it.
func (s *Service) ListForJob(ctx context.Context, c domain.Caller, jobID string) ([]domain.JobApplication, error) {
	if !c.Is(domain.RoleEmployer) {
		return nil, domain.Forbidden("only employers can view applicants")
	}
	job, err := s.st.GetJob(ctx, jobID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.NotFound("job not found")
	}
	if err != nil {
		return nil, err
	}
	if job.CompanyID != c.ID {
		return nil, domain.Forbidden("not authorized to view applications for this job")
	}
	return s.st.ListApplicationsByJob(ctx, jobID)
}

// UpdateStatus moves an application to any of the four statuses, including
// its current one. Only the employer owning the job may do so.
func (s *Service) UpdateStatus(ctx context.Context, c domain.Caller, applicationID string, status domain.ApplicationStatus) (domain.ApplicationStatus, error) {
	if !c.Is(domain.RoleEmployer) {
		return "", domain.Forbidden("only employers can update application status")
	}
	status = domain.ApplicationStatus(strings.ToLower(strings.TrimSpace(string(status))))
	if !status.Valid() {
		return "", domain.Validation("status must be one of applied, in-review, accepted, rejected")
	}

	app, err := s.st.GetApplication(ctx, applicationID)
	if errors.Is(err, store.ErrNotFound) {
		return "", domain.NotFound("application not found")
	}
	if err != nil {
		return "", err
	}
	job, err := s.st.GetJob(ctx, app.JobID)
	if errors.Is(err, store.ErrNotFound) {
		return "", domain.NotFound("application not found")
	}
	if err != nil {
		return "", err
	}
	if job.CompanyID != c.ID {
		return "", domain.Forbidden("not authorized to update this application")
	}

	if err := s.st.UpdateApplicationStatus(ctx, applicationID, status, s.now().UTC()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domain.NotFound("application not found")
		}
		return "", err
	}
	return status, nil
}
