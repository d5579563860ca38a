package domain

import "time"

type Role string

const (
	RoleJobseeker Role = "jobseeker"
	RoleEmployer  Role = "employer"
)

func (r Role) Valid() bool {
	return r == RoleJobseeker || r == RoleEmployer
}

type User struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Role               Role      `json:"role"`
	Avatar             string    `json:"avatar,omitempty"`
	Resume             string    `json:"resume,omitempty"`
	CompanyName        string    `json:"companyName,omitempty"`
	CompanyDescription string    `json:"companyDescription,omitempty"`
	CompanyLogo        string    `json:"companyLogo,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Caller is the authenticated identity every core operation runs as.
type Caller struct {
	ID   string
	Role Role
}

func (c Caller) Is(role Role) bool { return c.ID != "" && c.Role == role }

type RegisterInput struct {
	Name               string `json:"name" validate:"required,min=3,max=30"`
	Email              string `json:"email" validate:"required,email"`
	Password           string `json:"password" validate:"required,min=6,max=72"`
	Role               Role   `json:"role" validate:"required,role"`
	CompanyName        string `json:"companyName" validate:"max=100"`
	CompanyDescription string `json:"companyDescription" validate:"max=2000"`
}

// ProfilePatch holds optional profile replacements. Company fields apply to
// employers only, Resume to jobseekers only.
type ProfilePatch struct {
	Name               *string `json:"name" validate:"omitempty,min=3,max=30"`
	Avatar             *string `json:"avatar"`
	Resume             *string `json:"resume"`
	CompanyName        *string `json:"companyName" validate:"omitempty,min=2,max=100"`
	CompanyDescription *string `json:"companyDescription" validate:"omitempty,max=2000"`
	CompanyLogo        *string `json:"companyLogo"`
}

// PublicProfile is what anyone may read about a user.
type PublicProfile struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Role               Role   `json:"role"`
	Avatar             string `json:"avatar,omitempty"`
	CompanyName        string `json:"companyName,omitempty"`
	CompanyDescription string `json:"companyDescription,omitempty"`
}

func (u User) Public() PublicProfile {
	return PublicProfile{
		ID:                 u.ID,
		Name:               u.Name,
		Role:               u.Role,
		Avatar:             u.Avatar,
		CompanyName:        u.CompanyName,
		CompanyDescription: u.CompanyDescription,
	}
}
