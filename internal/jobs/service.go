// Package jobs is the listing service: public search, the employer-scoped
// listing, and ownership-checked mutation of job postings.
package jobs

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/filter"
	"jobboard-engine/internal/store"
	"jobboard-engine/internal/textutil"
	"jobboard-engine/internal/validation"
)

type Store interface {
	CreateJob(ctx context.Context, j domain.Job) error
	GetJob(ctx context.Context, id string) (domain.Job, error)
	GetJobView(ctx context.Context, id string) (domain.JobView, error)
	UpdateJob(ctx context.Context, j domain.Job) error
	DeleteJob(ctx context.Context, id string) error
	SetJobClosed(ctx context.Context, id string, closed bool, at time.Time) error
	ListJobs(ctx context.Context, q store.JobQuery) ([]domain.JobView, error)
	CountJobs(ctx context.Context, p filter.Predicate) (int, error)
}

type Options struct {
	DefaultPageSize int
	MaxPageSize     int
	// ExcerptLength bounds search-result excerpts in runes; 0 disables them.
	ExcerptLength int
	Now           func() time.Time
}

type Service struct {
	st   Store
	opts Options
}

func New(st Store, opts Options) *Service {
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = domain.DefaultPageSize
	}
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = 100
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{st: st, opts: opts}
}

func (s *Service) now() time.Time { return s.opts.Now().UTC() }

func requireEmployer(c domain.Caller) error {
	if !c.Is(domain.RoleEmployer) {
		return domain.Forbidden("only employers can manage jobs")
	}
	return nil
}

func clean(in domain.JobInput) domain.JobInput {
	in.Title = textutil.CleanText(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Requirements = strings.TrimSpace(in.Requirements)
	in.Location = textutil.NormalizeLocation(in.Location)
	in.JobType = domain.JobType(strings.ToLower(strings.TrimSpace(string(in.JobType))))
	return in
}

// Create persists a new open job owned by the caller and returns its id.
func (s *Service) Create(ctx context.Context, c domain.Caller, in domain.JobInput) (string, error) {
	if err := requireEmployer(c); err != nil {
		return "", err
	}
	in = clean(in)
	if err := validation.Struct(in); err != nil {
		return "", err
	}

	now := s.now()
	j := domain.Job{
		ID:           uuid.NewString(),
		CompanyID:    c.ID,
		Title:        in.Title,
		Description:  in.Description,
		Requirements: in.Requirements,
		Location:     in.Location,
		JobType:      in.JobType,
		SalaryMin:    in.SalaryMin,
		SalaryMax:    in.SalaryMax,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.st.CreateJob(ctx, j); err != nil {
		return "", err
	}
	return j.ID, nil
}

// Search is the public listing: open jobs only, newest first.
func (s *Service) Search(ctx context.Context, crit filter.Criteria, p domain.PageRequest) (domain.JobPage, error) {
	if err := crit.Validate(); err != nil {
		return domain.JobPage{}, err
	}
	return s.page(ctx, filter.Public(crit), p, false)
}

// ListOwn lists the caller's jobs filtered by status, with application counts.
func (s *Service) ListOwn(ctx context.Context, c domain.Caller, crit filter.Criteria, status filter.Status, p domain.PageRequest) (domain.JobPage, error) {
	if err := requireEmployer(c); err != nil {
		return domain.JobPage{}, err
	}
	if err := crit.Validate(); err != nil {
		return domain.JobPage{}, err
	}
	if status == "" {
		status = filter.StatusAll
	}
	return s.page(ctx, filter.Owned(c.ID, crit, status), p, true)
}

func (s *Service) page(ctx context.Context, where filter.Predicate, p domain.PageRequest, counts bool) (domain.JobPage, error) {
	p = p.Normalize(s.opts.DefaultPageSize, s.opts.MaxPageSize)

	total, err := s.st.CountJobs(ctx, where)
	if err != nil {
		return domain.JobPage{}, err
	}
	items, err := s.st.ListJobs(ctx, store.JobQuery{
		Where:                where,
		Offset:               p.Offset(),
		Limit:                p.PageSize,
		WithApplicationCount: counts,
	})
	if err != nil {
		return domain.JobPage{}, err
	}
	if s.opts.ExcerptLength > 0 {
		for i := range items {
			items[i].Excerpt = textutil.Excerpt(items[i].Description, s.opts.ExcerptLength)
		}
	}
	return domain.NewJobPage(items, total, p), nil
}

// Get returns an open job with its company. Closed jobs are NotFound here.
func (s *Service) Get(ctx context.Context, id string) (domain.JobView, error) {
	v, err := s.st.GetJobView(ctx, id)
	if errors.Is(err, store.ErrNotFound) || (err == nil && v.IsClosed) {
		return domain.JobView{}, domain.NotFound("job not found")
	}
	if err != nil {
		return domain.JobView{}, err
	}
	return v, nil
}

// owned loads job id and checks the caller owns it: NotFound before Forbidden.
func (s *Service) owned(ctx context.Context, c domain.Caller, id string) (domain.Job, error) {
	if err := requireEmployer(c); err != nil {
		return domain.Job{}, err
	}
	j, err := s.st.GetJob(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Job{}, domain.NotFound("job not found")
	}
	if err != nil {
		return domain.Job{}, err
	}
	if j.CompanyID != c.ID {
		return domain.Job{}, domain.Forbidden("not authorized to modify this job")
	}
	return j, nil
}

func (s *Service) Update(ctx context.Context, c domain.Caller, id string, patch domain.JobPatch) (domain.Job, error) {
	j, err := s.owned(ctx, c, id)
	if err != nil {
		return domain.Job{}, err
	}
	in := clean(patch.Apply(j.Input()))
	if err := validation.Struct(in); err != nil {
		return domain.Job{}, err
	}

	j.Title = in.Title
	j.Description = in.Description
	j.Requirements = in.Requirements
	j.Location = in.Location
	j.JobType = in.JobType
	j.SalaryMin = in.SalaryMin
	j.SalaryMax = in.SalaryMax
	j.UpdatedAt = s.now()
	if err := s.st.UpdateJob(ctx, j); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Job{}, domain.NotFound("job not found")
		}
		return domain.Job{}, err
	}
	return j, nil
}

// Delete removes the job together with its applications and saved entries.
func (s *Service) Delete(ctx context.Context, c domain.Caller, id string) error {
	if _, err := s.owned(ctx, c, id); err != nil {
		return err
	}
	if err := s.st.DeleteJob(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.NotFound("job not found")
		}
		return err
	}
	return nil
}

// ToggleStatus flips isClosed and returns the new value.
func (s *Service) ToggleStatus(ctx context.Context, c domain.Caller, id string) (bool, error) {
	j, err := s.owned(ctx, c, id)
	if err != nil {
		return false, err
	}
	closed := !j.IsClosed
	if err := s.st.SetJobClosed(ctx, id, closed, s.now()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, domain.NotFound("job not found")
		}
		return false, err
	}
	return closed, nil
}
