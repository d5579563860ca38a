// Package analytics computes an employer's dashboard: totals, week-over-week
// trends and recent activity. It only reads.
package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/filter"
	"jobboard-engine/internal/store"
)

type Store interface {
	CountJobs(ctx context.Context, p filter.Predicate) (int, error)
	ListJobs(ctx context.Context, q store.JobQuery) ([]domain.JobView, error)
	CountApplications(ctx context.Context, c store.ApplicationCount) (int, error)
	RecentApplications(ctx context.Context, companyID string, limit int) ([]domain.RecentApplication, error)
}

const (
	window        = 7 * 24 * time.Hour
	defaultRecent = 5
)

type Trends struct {
	ActiveJobs      int `json:"activeJobs"`
	TotalApplicants int `json:"totalApplicants"`
	TotalHired      int `json:"totalHired"`
}

type Counts struct {
	TotalActiveJobs   int    `json:"totalActiveJobs"`
	TotalApplications int    `json:"totalApplications"`
	TotalHired        int    `json:"totalHired"`
	Trends            Trends `json:"trends"`
}

type RecentJob struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Location  string         `json:"location,omitempty"`
	JobType   domain.JobType `json:"jobType"`
	IsClosed  bool           `json:"isClosed"`
	CreatedAt time.Time      `json:"createdAt"`
}

type Recent struct {
	RecentJobs         []RecentJob                `json:"recentJobs"`
	RecentApplications []domain.RecentApplication `json:"recentApplications"`
}

type Report struct {
	Counts Counts `json:"counts"`
	Data   Recent `json:"data"`
}

type Service struct {
	st     Store
	now    func() time.Time
	recent int
}

// New builds the aggregator; recent <= 0 means the default of five items.
func New(st Store, now func() time.Time, recent int) *Service {
	if now == nil {
		now = time.Now
	}
	if recent <= 0 {
		recent = defaultRecent
	}
	return &Service{st: st, now: now, recent: recent}
}

// ForEmployer compares [now-7d, now) against [now-14d, now-7d). Hires are
// dated by the status change, applications and jobs by creation.
func (s *Service) ForEmployer(ctx context.Context, c domain.Caller) (Report, error) {
	if !c.Is(domain.RoleEmployer) {
		return Report{}, domain.Forbidden("only employers have analytics")
	}

	now := s.now().UTC()
	lastFrom := now.Add(-window)
	prevFrom := now.Add(-2 * window)
	owner := filter.OwnedBy(c.ID)

	var (
		r                    Report
		jobsLast, jobsPrev   int
		appsLast, appsPrev   int
		hiredLast, hiredPrev int
	)

	g, gctx := errgroup.WithContext(ctx)
	countJobs := func(dst *int, p filter.Predicate) {
		g.Go(func() (err error) {
			*dst, err = s.st.CountJobs(gctx, p)
			return err
		})
	}
	countApps := func(dst *int, q store.ApplicationCount) {
		q.CompanyID = c.ID
		g.Go(func() (err error) {
			*dst, err = s.st.CountApplications(gctx, q)
			return err
		})
	}

	countJobs(&r.Counts.TotalActiveJobs, filter.And(owner, filter.Open()))
	countApps(&r.Counts.TotalApplications, store.ApplicationCount{})
	countApps(&r.Counts.TotalHired, store.ApplicationCount{Status: domain.StatusAccepted})

	countJobs(&jobsLast, filter.And(owner, filter.CreatedWithin(lastFrom, now)))
	countJobs(&jobsPrev, filter.And(owner, filter.CreatedWithin(prevFrom, lastFrom)))
	countApps(&appsLast, store.ApplicationCount{Since: lastFrom, Until: now})
	countApps(&appsPrev, store.ApplicationCount{Since: prevFrom, Until: lastFrom})
	countApps(&hiredLast, store.ApplicationCount{Status: domain.StatusAccepted, Since: lastFrom, Until: now, ByUpdated: true})
	countApps(&hiredPrev, store.ApplicationCount{Status: domain.StatusAccepted, Since: prevFrom, Until: lastFrom, ByUpdated: true})

	g.Go(func() error {
		jobs, err := s.st.ListJobs(gctx, store.JobQuery{Where: owner, Limit: s.recent})
		if err != nil {
			return err
		}
		r.Data.RecentJobs = make([]RecentJob, 0, len(jobs))
		for _, j := range jobs {
			r.Data.RecentJobs = append(r.Data.RecentJobs, RecentJob{
				ID:        j.ID,
				Title:     j.Title,
				Location:  j.Location,
				JobType:   j.JobType,
				IsClosed:  j.IsClosed,
				CreatedAt: j.CreatedAt,
			})
		}
		return nil
	})
	g.Go(func() (err error) {
		r.Data.RecentApplications, err = s.st.RecentApplications(gctx, c.ID, s.recent)
		return err
	})

	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	r.Counts.Trends = Trends{
		ActiveJobs:      Trend(jobsLast, jobsPrev),
		TotalApplicants: Trend(appsLast, appsPrev),
		TotalHired:      Trend(hiredLast, hiredPrev),
	}
	return r, nil
}
