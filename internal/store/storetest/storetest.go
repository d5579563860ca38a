// Package storetest opens throwaway SQLite stores for tests and seeds them.
package storetest

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/store"
)

// New returns a migrated store in t's temp dir, closed on cleanup.
func New(t testing.TB) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "jobboard.db"), store.Options{})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return st
}

var seq atomic.Int64

// Clock is a manually advanced time source.
type Clock struct {
	now atomic.Int64
}

func NewClock(start time.Time) *Clock {
	c := &Clock{}
	c.now.Store(start.UnixNano())
	return c
}

func (c *Clock) Now() time.Time { return time.Unix(0, c.now.Load()).UTC() }

func (c *Clock) Advance(d time.Duration) { c.now.Add(int64(d)) }

func seedUser(t testing.TB, st *store.Store, role domain.Role, mutate func(*domain.User)) domain.User {
	t.Helper()
	n := seq.Add(1)
	now := time.Now().UTC()
	u := domain.User{
		ID:        uuid.NewString(),
		Name:      fmt.Sprintf("user %d", n),
		Email:     fmt.Sprintf("user%d@example.com", n),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if role == domain.RoleEmployer {
		u.CompanyName = fmt.Sprintf("Company %d", n)
	}
	if mutate != nil {
		mutate(&u)
	}
	if err := st.CreateUser(context.Background(), u, "x"); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func Employer(t testing.TB, st *store.Store) domain.User {
	t.Helper()
	return seedUser(t, st, domain.RoleEmployer, nil)
}

func Jobseeker(t testing.TB, st *store.Store) domain.User {
	t.Helper()
	return seedUser(t, st, domain.RoleJobseeker, nil)
}

// JobseekerWithResume seeds a jobseeker whose profile carries resume.
func JobseekerWithResume(t testing.TB, st *store.Store, resume string) domain.User {
	t.Helper()
	return seedUser(t, st, domain.RoleJobseeker, func(u *domain.User) { u.Resume = resume })
}

// Job inserts an open job owned by companyID, applying mutate first.
func Job(t testing.TB, st *store.Store, companyID string, mutate func(*domain.Job)) domain.Job {
	t.Helper()
	now := time.Now().UTC()
	j := domain.Job{
		ID:           uuid.NewString(),
		CompanyID:    companyID,
		Title:        "Software Engineer",
		Description:  "Build and run services",
		Requirements: "Go, SQL",
		Location:     "Remote",
		JobType:      domain.JobTypeFullTime,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if mutate != nil {
		mutate(&j)
	}
	if err := st.CreateJob(context.Background(), j); err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return j
}

func Float(v float64) *float64 { return &v }
