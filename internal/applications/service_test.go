package applications

import (
	"context"
	"errors"
	"sync"
	"testing"

	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/store"
	"jobboard-engine/internal/store/storetest"
)

func caller(u domain.User) domain.Caller { return domain.Caller{ID: u.ID, Role: u.Role} }

type fixture struct {
	st       *store.Store
	svc      *Service
	employer domain.Caller
	seeker   domain.Caller
	job      domain.Job
}

func setup(t *testing.T) fixture {
	t.Helper()
	st := storetest.New(t)
	emp := storetest.Employer(t, st)
	seeker := storetest.JobseekerWithResume(t, st, "resumes/cv.pdf")
	job := storetest.Job(t, st, emp.ID, nil)
	return fixture{st: st, svc: New(st, nil), employer: caller(emp), seeker: caller(seeker), job: job}
}

func TestApplyOnce(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()

	a, err := fx.svc.Apply(ctx, fx.seeker, fx.job.ID)
	if err != nil {
		t.Fatal(err)
	}
	if a.Status != domain.StatusApplied || a.Resume == nil || *a.Resume != "resumes/cv.pdf" {
		t.Fatalf("application = %+v", a)
	}

	if _, err := fx.svc.Apply(ctx, fx.seeker, fx.job.ID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("second apply: %v", err)
	}
	mine, err := fx.svc.ListMine(ctx, fx.seeker)
	if err != nil || len(mine) != 1 {
		t.Fatalf("mine = %v %v", mine, err)
	}
	if mine[0].Job.Title != fx.job.Title {
		t.Fatalf("job summary = %+v", mine[0].Job)
	}
}

func TestConcurrentApplyCreatesOneRecord(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = fx.svc.Apply(ctx, fx.seeker, fx.job.ID)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case !errors.Is(err, domain.ErrConflict):
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("successful applies = %d", ok)
	}
	list, _ := fx.svc.ListForJob(ctx, fx.employer, fx.job.ID)
	if len(list) != 1 {
		t.Fatalf("records = %d", len(list))
	}
}

func TestApplyUnavailableJob(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()

	if _, err := fx.svc.Apply(ctx, fx.seeker, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing job: %v", err)
	}
	closed := storetest.Job(t, fx.st, fx.employer.ID, func(j *domain.Job) { j.IsClosed = true })
	if _, err := fx.svc.Apply(ctx, fx.seeker, closed.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("closed job: %v", err)
	}
	if _, err := fx.svc.Apply(ctx, fx.employer, fx.job.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("employer apply: %v", err)
	}
}

func TestApplyWithoutResume(t *testing.T) {
	fx := setup(t)
	other := caller(storetest.Jobseeker(t, fx.st))
	a, err := fx.svc.Apply(context.Background(), other, fx.job.ID)
	if err != nil {
		t.Fatal(err)
	}
	if a.Resume != nil {
		t.Fatalf("resume = %q", *a.Resume)
	}
}

func TestListForJobOwnership(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	if _, err := fx.svc.Apply(ctx, fx.seeker, fx.job.ID); err != nil {
		t.Fatal(err)
	}

	list, err := fx.svc.ListForJob(ctx, fx.employer, fx.job.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("list = %v %v", list, err)
	}
	if list[0].Applicant.ID != fx.seeker.ID || list[0].Applicant.Email == "" {
		t.Fatalf("applicant = %+v", list[0].Applicant)
	}

	other := caller(storetest.Employer(t, fx.st))
	if _, err := fx.svc.ListForJob(ctx, other, fx.job.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-owner: %v", err)
	}
	if _, err := fx.svc.ListForJob(ctx, other, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing job: %v", err)
	}
}

func TestStatusTransitions(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	a, err := fx.svc.Apply(ctx, fx.seeker, fx.job.ID)
	if err != nil {
		t.Fatal(err)
	}

	for _, st := range []domain.ApplicationStatus{domain.StatusInReview, domain.StatusAccepted, domain.StatusAccepted, domain.StatusRejected, domain.StatusAccepted} {
		got, err := fx.svc.UpdateStatus(ctx, fx.employer, a.ID, st)
		if err != nil || got != st {
			t.Fatalf("to %s: %v %v", st, got, err)
		}
	}

	mine, _ := fx.svc.ListMine(ctx, fx.seeker)
	if mine[0].Status != domain.StatusAccepted {
		t.Fatalf("status = %s", mine[0].Status)
	}
}

func TestUpdateStatusErrors(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	a, err := fx.svc.Apply(ctx, fx.seeker, fx.job.ID)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := fx.svc.UpdateStatus(ctx, fx.employer, a.ID, "hired"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("bad status: %v", err)
	}
	if _, err := fx.svc.UpdateStatus(ctx, fx.employer, "missing", domain.StatusAccepted); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing: %v", err)
	}

	other := caller(storetest.Employer(t, fx.st))
	if _, err := fx.svc.UpdateStatus(ctx, other, a.ID, domain.StatusAccepted); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-owner: %v", err)
	}
	if _, err := fx.svc.UpdateStatus(ctx, fx.seeker, a.ID, domain.StatusAccepted); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("jobseeker: %v", err)
	}

	got, err := fx.st.GetApplication(ctx, a.ID)
	if err != nil || got.Status != domain.StatusApplied {
		t.Fatalf("status changed by rejected calls: %+v %v", got, err)
	}
}
