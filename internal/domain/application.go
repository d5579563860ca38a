package domain

import "time"

type ApplicationStatus string

const (
	StatusApplied  ApplicationStatus = "applied"
	StatusInReview ApplicationStatus = "in-review"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

var ApplicationStatuses = []ApplicationStatus{
	StatusApplied,
	StatusInReview,
	StatusAccepted,
	StatusRejected,
}

func (s ApplicationStatus) Valid() bool {
	for _, st := range ApplicationStatuses {
		if s == st {
			return true
		}
	}
	return false
}

type Application struct {
	ID          string            `json:"id"`
	JobID       string            `json:"jobId"`
	ApplicantID string            `json:"applicantId"`
	Resume      *string           `json:"resume"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

type ApplicantSummary struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar string  `json:"avatar,omitempty"`
	Resume *string `json:"resume"`
}

// MyApplication is an application as its applicant sees it.
type MyApplication struct {
	Application
	Job JobSummary `json:"job"`
}

// JobApplication is an application as the owning employer sees it.
type JobApplication struct {
	Application
	Applicant ApplicantSummary `json:"applicant"`
}

// RecentApplication is the dashboard projection across all of an employer's jobs.
type RecentApplication struct {
	ID        string            `json:"id"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	JobID     string            `json:"jobId"`
	JobTitle  string            `json:"jobTitle"`
	Applicant ApplicantSummary  `json:"applicant"`
}
