package savedjobs

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/store"
)

type Store interface {
	GetJob(ctx context.Context, id string) (domain.Job, error)
	CreateSavedJob(ctx context.Context, sj domain.SavedJob) error
	ListSavedJobs(ctx context.Context, jobseekerID string) ([]domain.SavedJobView, error)
	DeleteSavedJob(ctx context.Context, jobseekerID, jobID string) error
}

// Service is the jobseeker's bookmark registry.
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

func requireJobseeker(c domain.Caller) error {
	if !c.Is(domain.RoleJobseeker) {
		return domain.Forbidden("only jobseekers can save jobs")
	}
	return nil
}

// Save bookmarks an open job. Duplicates are left to the unique index.
func (s *Service) Save(ctx context.Context, c domain.Caller, jobID string) (domain.SavedJob, error) {
	if err := requireJobseeker(c); err != nil {
		return domain.SavedJob{}, err
	}
	job, err := s.st.GetJob(ctx, jobID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && job.IsClosed) {
		return domain.SavedJob{}, domain.NotFound("job not found")
	}
	if err != nil {
		return domain.SavedJob{}, err
	}

	sj := domain.SavedJob{
		ID:          uuid.NewString(),
		JobseekerID: c.ID,
		JobID:       jobID,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.st.CreateSavedJob(ctx, sj); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return domain.SavedJob{}, domain.Conflict("job already saved")
		}
		return domain.SavedJob{}, err
	}
	return sj, nil
}

func (s *Service) List(ctx context.Context, c domain.Caller) ([]domain.SavedJobView, error) {
	if err := requireJobseeker(c); err != nil {
		return nil, err
	}
	return s.st.ListSavedJobs(ctx, c.ID)
}

// Remove is not idempotent: removing twice reports NotFound the second time.
func (s *Service) Remove(ctx context.Context, c domain.Caller, jobID string) error {
	if err := requireJobseeker(c); err != nil {
		return err
	}
	if err := s.st.DeleteSavedJob(ctx, c.ID, jobID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.NotFound("saved job not found")
		}
		return err
	}
	return nil
}
