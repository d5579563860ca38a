package filter

import (
	"math"
	"strings"
	"unicode/utf8"

	"jobboard-engine/internal/domain"
)

// Criteria is the optional search input; zero-valued fields impose nothing.
type Criteria struct {
	Keyword   string
	Location  string
	JobTypes  []domain.JobType
	SalaryMin *float64
	SalaryMax *float64
}

func (c Criteria) Validate() error {
	var errs []string
	if !utf8.ValidString(c.Keyword) {
		errs = append(errs, "keyword must be valid UTF-8 text")
	}
	if !utf8.ValidString(c.Location) {
		errs = append(errs, "location must be valid UTF-8 text")
	}
	if !finite(c.SalaryMin) {
		errs = append(errs, "salaryMin must be a finite number")
	}
	if !finite(c.SalaryMax) {
		errs = append(errs, "salaryMax must be a finite number")
	}
	if c.SalaryMin != nil && *c.SalaryMin < 0 {
		errs = append(errs, "salaryMin must be >= 0")
	}
	if c.SalaryMax != nil && *c.SalaryMax < 0 {
		errs = append(errs, "salaryMax must be >= 0")
	}
	if c.SalaryMin != nil && c.SalaryMax != nil && *c.SalaryMax < *c.SalaryMin {
		errs = append(errs, "salaryMax must be greater than or equal to salaryMin")
	}
	for _, t := range c.JobTypes {
		if !t.Valid() {
			errs = append(errs, "unknown jobType "+string(t))
		}
	}
	if len(errs) > 0 {
		return domain.ValidationDetails("invalid search criteria", errs)
	}
	return nil
}

func finite(f *float64) bool {
	return f == nil || !(math.IsNaN(*f) || math.IsInf(*f, 0))
}

// Build ANDs together a predicate for every criterion that was supplied.
func Build(c Criteria) Predicate {
	var ps []Predicate
	if kw := strings.TrimSpace(c.Keyword); kw != "" {
		ps = append(ps, Keyword(kw))
	}
	if loc := strings.TrimSpace(c.Location); loc != "" {
		ps = append(ps, Location(loc))
	}
	if len(c.JobTypes) > 0 {
		ps = append(ps, TypeIn(c.JobTypes...))
	}
	if c.SalaryMin != nil || c.SalaryMax != nil {
		ps = append(ps, SalaryOverlap(c.SalaryMin, c.SalaryMax))
	}
	return And(ps...)
}

// Public is the query for anonymous and jobseeker search: closed jobs never match.
func Public(c Criteria) Predicate {
	return And(Build(c), Open())
}

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
	StatusAll    Status = "all"
)

// ParseStatus treats an empty selector as "all".
func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case "":
		return StatusAll, nil
	case StatusOpen, StatusClosed, StatusAll:
		return s, nil
	default:
		return "", domain.Validation("status must be one of open, closed, all")
	}
}

// Owned is the query for an employer's own listing; status replaces the
// implicit closed-job exclusion of Public.
func Owned(ownerID string, c Criteria, status Status) Predicate {
	ps := []Predicate{OwnedBy(ownerID), Build(c)}
	switch status {
	case StatusOpen:
		ps = append(ps, Open())
	case StatusClosed:
		ps = append(ps, Closed())
	}
	return And(ps...)
}

// ParseJobTypes accepts a single type or a comma-delimited list.
func ParseJobTypes(raw string) ([]domain.JobType, error) {
	var out []domain.JobType
	seen := map[domain.JobType]bool{}
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		t, ok := domain.ParseJobType(part)
		if !ok {
			return nil, domain.Validation("unknown jobType %q", strings.TrimSpace(part))
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}
