package auth

import (
	"errors"
	"testing"
	"time"

	"jobboard-engine/internal/domain"
)

const secret = "0123456789abcdef0123"

func TestIssueVerify(t *testing.T) {
	tk, err := NewTokens(secret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := tk.Issue(domain.User{ID: "u1", Role: domain.RoleEmployer})
	if err != nil {
		t.Fatal(err)
	}
	c, err := tk.Verify(raw)
	if err != nil || c.ID != "u1" || c.Role != domain.RoleEmployer {
		t.Fatalf("caller = %+v %v", c, err)
	}

	other, _ := NewTokens(secret+"x", time.Hour)
	if _, err := other.Verify(raw); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("wrong secret: %v", err)
	}
}

func TestExpiredToken(t *testing.T) {
	tk, _ := NewTokens(secret, time.Minute)
	tk.now = func() time.Time { return time.Now().Add(-time.Hour) }
	raw, err := tk.Issue(domain.User{ID: "u1", Role: domain.RoleJobseeker})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tk.Verify(raw); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expired: %v", err)
	}
}

func TestShortSecret(t *testing.T) {
	if _, err := NewTokens("short", time.Hour); err == nil {
		t.Fatal("expected error")
	}
}

func TestPassword(t *testing.T) {
	h, err := HashPassword("hunter22")
	if err != nil {
		t.Fatal(err)
	}
	if err := CheckPassword(h, "hunter22"); err != nil {
		t.Fatal(err)
	}
	if err := CheckPassword(h, "hunter23"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("mismatch: %v", err)
	}
}
