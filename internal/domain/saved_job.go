package domain

import "time"

type SavedJob struct {
	ID          string    `json:"id"`
	JobseekerID string    `json:"jobseekerId"`
	JobID       string    `json:"jobId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SavedJobView struct {
	SavedJob
	Job JobSummary `json:"job"`
}
