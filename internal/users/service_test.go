package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobboard-engine/internal/auth"
	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/store/storetest"
)

func sp(s string) *string { return &s }

func newService(t *testing.T) (*Service, *auth.Tokens) {
	t.Helper()
	tk, err := auth.NewTokens("test-secret-0123456789", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return New(storetest.New(t), tk, nil), tk
}

func TestRegisterLogin(t *testing.T) {
	svc, tk := newService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, domain.RegisterInput{
		Name:        "Grace Hopper",
		Email:       "  Grace@Example.COM ",
		Password:    "cobol!",
		Role:        domain.RoleEmployer,
		CompanyName: "Navy",
	})
	if err != nil {
		t.Fatal(err)
	}
	if u.Email != "grace@example.com" {
		t.Fatalf("email = %q", u.Email)
	}

	_, err = svc.Register(ctx, domain.RegisterInput{
		Name: "Someone Else", Email: "grace@example.com", Password: "secret", Role: domain.RoleJobseeker,
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate email: %v", err)
	}

	tok, got, err := svc.Login(ctx, "GRACE@example.com", "cobol!")
	if err != nil || got.ID != u.ID {
		t.Fatalf("login = %+v %v", got, err)
	}
	c, err := tk.Verify(tok)
	if err != nil || c.ID != u.ID || c.Role != domain.RoleEmployer {
		t.Fatalf("token caller = %+v %v", c, err)
	}

	if _, _, err := svc.Login(ctx, "grace@example.com", "wrong!"); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("bad password: %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "wrong!"); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("unknown email: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Register(context.Background(), domain.RegisterInput{
		Name: "Jo", Email: "jo@example.com", Password: "secret", Role: domain.RoleJobseeker,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("short name: %v", err)
	}
}

func TestUpdateProfileRespectsRole(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, domain.RegisterInput{
		Name: "Job Seeker", Email: "js@example.com", Password: "secret", Role: domain.RoleJobseeker,
	})
	if err != nil {
		t.Fatal(err)
	}
	c := domain.Caller{ID: u.ID, Role: u.Role}

	got, err := svc.UpdateProfile(ctx, c, domain.ProfilePatch{
		Name:        sp("Job  Seeker II"),
		Resume:      sp("resumes/a.pdf"),
		CompanyName: sp("Ignored Inc"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Job Seeker II" || got.Resume != "resumes/a.pdf" || got.CompanyName != "" {
		t.Fatalf("profile = %+v", got)
	}

	if err := svc.DeleteResume(ctx, c); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteResume(ctx, c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("second delete: %v", err)
	}

	pub, err := svc.PublicProfile(ctx, u.ID)
	if err != nil || pub.Name != "Job Seeker II" {
		t.Fatalf("public = %+v %v", pub, err)
	}
	if _, err := svc.PublicProfile(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing: %v", err)
	}
}
