// Package users covers registration, login and profile management.
package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobboard-engine/internal/auth"
	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/store"
	"jobboard-engine/internal/textutil"
	"jobboard-engine/internal/validation"
)

type Store interface {
	CreateUser(ctx context.Context, u domain.User, passwordHash string) error
	GetUser(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, string, error)
	UpdateUser(ctx context.Context, u domain.User) error
}

type Issuer interface {
	Issue(u domain.User) (string, error)
}

type Service struct {
	st     Store
	tokens Issuer
	now    func() time.Time
}

func New(st Store, tokens Issuer, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{st: st, tokens: tokens, now: now}
}

var errUserNotFound = domain.NotFound("user not found")

func (s *Service) Register(ctx context.Context, in domain.RegisterInput) (domain.User, error) {
	in.Name = textutil.CleanText(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.CompanyName = textutil.CleanText(in.CompanyName)
	in.CompanyDescription = strings.TrimSpace(in.CompanyDescription)
	if err := validation.Struct(in); err != nil {
		return domain.User{}, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, err
	}
	now := s.now().UTC()
	u := domain.User{
		ID:                 uuid.NewString(),
		Name:               in.Name,
		Email:              in.Email,
		Role:               in.Role,
		CompanyName:        in.CompanyName,
		CompanyDescription: in.CompanyDescription,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.st.CreateUser(ctx, u, hash); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return domain.User{}, domain.Conflict("user already exists")
		}
		return domain.User{}, err
	}
	return u, nil
}

// Login returns a bearer token for valid credentials. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", domain.User{}, domain.Validation("email and password are required")
	}
	u, hash, err := s.st.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return "", domain.User{}, auth.ErrUnauthorized
	}
	if err != nil {
		return "", domain.User{}, err
	}
	if err := auth.CheckPassword(hash, password); err != nil {
		return "", domain.User{}, err
	}
	tok, err := s.tokens.Issue(u)
	if err != nil {
		return "", domain.User{}, err
	}
	return tok, u, nil
}

func (s *Service) Me(ctx context.Context, c domain.Caller) (domain.User, error) {
	u, err := s.st.GetUser(ctx, c.ID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, errUserNotFound
	}
	return u, err
}

// UpdateProfile applies p. Fields that do not apply to the caller's role are
// ignored rather than rejected.
func (s *Service) UpdateProfile(ctx context.Context, c domain.Caller, p domain.ProfilePatch) (domain.User, error) {
	if p.Name != nil {
		n := textutil.CleanText(*p.Name)
		p.Name = &n
	}
	if p.CompanyName != nil {
		n := textutil.CleanText(*p.CompanyName)
		p.CompanyName = &n
	}
	if err := validation.Struct(p); err != nil {
		return domain.User{}, err
	}
	u, err := s.Me(ctx, c)
	if err != nil {
		return domain.User{}, err
	}

	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&u.Name, p.Name)
	set(&u.Avatar, p.Avatar)
	switch u.Role {
	case domain.RoleEmployer:
		set(&u.CompanyName, p.CompanyName)
		set(&u.CompanyDescription, p.CompanyDescription)
		set(&u.CompanyLogo, p.CompanyLogo)
	case domain.RoleJobseeker:
		set(&u.Resume, p.Resume)
	}
	u.UpdatedAt = s.now().UTC()

	if err := s.st.UpdateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, errUserNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

// DeleteResume clears the caller's resume reference. Applications keep the
// snapshot they were made with.
func (s *Service) DeleteResume(ctx context.Context, c domain.Caller) error {
	if !c.Is(domain.RoleJobseeker) {
		return domain.Forbidden("only jobseekers have a resume")
	}
	u, err := s.Me(ctx, c)
	if err != nil {
		return err
	}
	if u.Resume == "" {
		return domain.Validation("no resume to delete")
	}
	u.Resume = ""
	u.UpdatedAt = s.now().UTC()
	return s.st.UpdateUser(ctx, u)
}

func (s *Service) PublicProfile(ctx context.Context, id string) (domain.PublicProfile, error) {
	u, err := s.st.GetUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.PublicProfile{}, errUserNotFound
	}
	if err != nil {
		return domain.PublicProfile{}, err
	}
	return u.Public(), nil
}
