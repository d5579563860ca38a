package domain

import (
	"encoding/json"
	"strings"
	"time"
)

type JobType string

const (
	JobTypeRemote     JobType = "remote"
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeInternship JobType = "internship"
	JobTypeContract   JobType = "contract"
)

var JobTypes = []JobType{
	JobTypeRemote,
	JobTypeFullTime,
	JobTypePartTime,
	JobTypeInternship,
	JobTypeContract,
}

func (t JobType) Valid() bool {
	for _, jt := range JobTypes {
		if t == jt {
			return true
		}
	}
	return false
}

// ParseJobType is lenient about case and surrounding space.
func ParseJobType(raw string) (JobType, bool) {
	t := JobType(strings.ToLower(strings.TrimSpace(raw)))
	return t, t.Valid()
}

type Job struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"companyId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	Location     string    `json:"location,omitempty"`
	JobType      JobType   `json:"jobType"`
	SalaryMin    *float64  `json:"salaryMin,omitempty"`
	SalaryMax    *float64  `json:"salaryMax,omitempty"`
	IsClosed     bool      `json:"isClosed"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// JobView is a Job joined with its owner's public fields. ApplicationCount
// is only set on the owner-scoped listing.
type JobView struct {
	Job
	Company          *Company `json:"company,omitempty"`
	ApplicationCount *int     `json:"applicationCount,omitempty"`
	Excerpt          string   `json:"excerpt,omitempty"`
}

// JobSummary is the projection joined onto applications and saved jobs.
type JobSummary struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Location    string   `json:"location,omitempty"`
	JobType     JobType  `json:"jobType"`
	SalaryMin   *float64 `json:"salaryMin,omitempty"`
	SalaryMax   *float64 `json:"salaryMax,omitempty"`
	IsClosed    bool     `json:"isClosed"`
	CompanyName string   `json:"companyName,omitempty"`
}

// JobInput carries the caller-editable fields of a Job, for both create and
// the merged result of an update.
type JobInput struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Description  string   `json:"description" validate:"required"`
	Requirements string   `json:"requirements" validate:"required"`
	Location     string   `json:"location" validate:"max=200"`
	JobType      JobType  `json:"jobType" validate:"required,jobtype"`
	SalaryMin    *float64 `json:"salaryMin" validate:"omitempty,gte=0"`
	SalaryMax    *float64 `json:"salaryMax" validate:"omitempty,gte=0"`
}

// JobPatch holds optional replacements; nil fields are left untouched.
// Salary bounds can also be cleared with an explicit JSON null.
type JobPatch struct {
	Title        *string       `json:"title"`
	Description  *string       `json:"description"`
	Requirements *string       `json:"requirements"`
	Location     *string       `json:"location"`
	JobType      *JobType      `json:"jobType"`
	SalaryMin    OptionalFloat `json:"salaryMin"`
	SalaryMax    OptionalFloat `json:"salaryMax"`
}

// OptionalFloat tells an absent field (Set false) from an explicit null
// (Set true, Value nil).
type OptionalFloat struct {
	Set   bool
	Value *float64
}

func SetFloat(v float64) OptionalFloat { return OptionalFloat{Set: true, Value: &v} }

func ClearFloat() OptionalFloat { return OptionalFloat{Set: true} }

func (o *OptionalFloat) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func (j Job) Input() JobInput {
	return JobInput{
		Title:        j.Title,
		Description:  j.Description,
		Requirements: j.Requirements,
		Location:     j.Location,
		JobType:      j.JobType,
		SalaryMin:    j.SalaryMin,
		SalaryMax:    j.SalaryMax,
	}
}

func (p JobPatch) Apply(in JobInput) JobInput {
	if p.Title != nil {
		in.Title = *p.Title
	}
	if p.Description != nil {
		in.Description = *p.Description
	}
	if p.Requirements != nil {
		in.Requirements = *p.Requirements
	}
	if p.Location != nil {
		in.Location = *p.Location
	}
	if p.JobType != nil {
		in.JobType = *p.JobType
	}
	if p.SalaryMin.Set {
		in.SalaryMin = p.SalaryMin.Value
	}
	if p.SalaryMax.Set {
		in.SalaryMax = p.SalaryMax.Value
	}
	return in
}

func (j Job) Summary() JobSummary {
	return JobSummary{
		ID:        j.ID,
		Title:     j.Title,
		Location:  j.Location,
		JobType:   j.JobType,
		SalaryMin: j.SalaryMin,
		SalaryMax: j.SalaryMax,
		IsClosed:  j.IsClosed,
	}
}
