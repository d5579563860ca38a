package savedjobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/store/storetest"
)

func TestSaveListRemove(t *testing.T) {
	st := storetest.New(t)
	ctx := context.Background()
	emp := storetest.Employer(t, st)
	u := storetest.Jobseeker(t, st)
	seeker := domain.Caller{ID: u.ID, Role: u.Role}

	clk := storetest.NewClock(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	svc := New(st, clk.Now)

	first := storetest.Job(t, st, emp.ID, func(j *domain.Job) { j.Title = "first" })
	second := storetest.Job(t, st, emp.ID, func(j *domain.Job) { j.Title = "second" })

	if _, err := svc.Save(ctx, seeker, first.ID); err != nil {
		t.Fatal(err)
	}
	clk.Advance(time.Second)
	if _, err := svc.Save(ctx, seeker, second.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Save(ctx, seeker, first.ID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate save: %v", err)
	}

	list, err := svc.List(ctx, seeker)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Job.Title != "second" || list[1].Job.Title != "first" {
		t.Fatalf("list = %+v", list)
	}

	if err := svc.Remove(ctx, seeker, first.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.Remove(ctx, seeker, first.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second remove: %v", err)
	}
}

func TestSaveRejectsClosedAndMissing(t *testing.T) {
	st := storetest.New(t)
	ctx := context.Background()
	emp := storetest.Employer(t, st)
	u := storetest.Jobseeker(t, st)
	seeker := domain.Caller{ID: u.ID, Role: u.Role}
	svc := New(st, nil)

	closed := storetest.Job(t, st, emp.ID, func(j *domain.Job) { j.IsClosed = true })
	if _, err := svc.Save(ctx, seeker, closed.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("closed: %v", err)
	}
	if _, err := svc.Save(ctx, seeker, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing: %v", err)
	}
	if _, err := svc.Save(ctx, domain.Caller{ID: emp.ID, Role: domain.RoleEmployer}, closed.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("employer: %v", err)
	}
}
