// Package filter builds composable predicates over Job records. Nothing here
// touches storage: a Predicate evaluates a Job in memory and renders the
// equivalent parameterized SQL clause for the store.
package filter

import (
	"regexp"
	"strings"
	"time"

	"jobboard-engine/internal/domain"
)

type Predicate interface {
	Match(j domain.Job) bool
	// SQL renders a clause over the jobs table aliased as "j".
	SQL() (clause string, args []any)
}

// LiteralPattern turns raw user text into a case-insensitive pattern that
// only ever matches the text itself. Invalid UTF-8 is replaced with U+FFFD so
// the result always compiles.
func LiteralPattern(raw string) string {
	return "(?i)" + regexp.QuoteMeta(strings.ToValidUTF8(raw, "\uFFFD"))
}

type and []Predicate

// And combines predicates; an empty And matches everything.
func And(ps ...Predicate) Predicate {
	var out and
	for _, p := range ps {
		if p == nil {
			continue
		}
		if inner, ok := p.(and); ok {
			out = append(out, inner...)
			continue
		}
		out = append(out, p)
	}
	return out
}

func (a and) Match(j domain.Job) bool {
	for _, p := range a {
		if !p.Match(j) {
			return false
		}
	}
	return true
}

func (a and) SQL() (string, []any) {
	if len(a) == 0 {
		return "1 = 1", nil
	}
	parts := make([]string, 0, len(a))
	var args []any
	for _, p := range a {
		c, as := p.SQL()
		parts = append(parts, "("+c+")")
		args = append(args, as...)
	}
	return strings.Join(parts, " AND "), args
}

type keyword struct {
	pattern string
	re      *regexp.Regexp
}

// Keyword matches title, description or requirements containing kw.
func Keyword(kw string) Predicate {
	p := LiteralPattern(kw)
	return keyword{pattern: p, re: regexp.MustCompile(p)}
}

func (k keyword) Match(j domain.Job) bool {
	return k.re.MatchString(j.Title) || k.re.MatchString(j.Description) || k.re.MatchString(j.Requirements)
}

func (k keyword) SQL() (string, []any) {
	return "j.title REGEXP ? OR j.description REGEXP ? OR j.requirements REGEXP ?",
		[]any{k.pattern, k.pattern, k.pattern}
}

type location struct {
	pattern string
	re      *regexp.Regexp
}

func Location(loc string) Predicate {
	p := LiteralPattern(loc)
	return location{pattern: p, re: regexp.MustCompile(p)}
}

func (l location) Match(j domain.Job) bool { return l.re.MatchString(j.Location) }

func (l location) SQL() (string, []any) {
	return "j.location REGEXP ?", []any{l.pattern}
}

type typeIn []domain.JobType

// TypeIn is equality for one type and set membership for several.
func TypeIn(types ...domain.JobType) Predicate {
	return typeIn(types)
}

func (t typeIn) Match(j domain.Job) bool {
	for _, jt := range t {
		if j.JobType == jt {
			return true
		}
	}
	return false
}

func (t typeIn) SQL() (string, []any) {
	if len(t) == 0 {
		return "1 = 0", nil
	}
	if len(t) == 1 {
		return "j.job_type = ?", []any{string(t[0])}
	}
	args := make([]any, len(t))
	for i, jt := range t {
		args[i] = string(jt)
	}
	return "j.job_type IN (?" + strings.Repeat(", ?", len(t)-1) + ")", args
}

type salaryOverlap struct {
	min, max *float64
}

// SalaryOverlap matches jobs whose salary range overlaps [min, max]. Either
// bound may be nil; with both nil it matches everything.
func SalaryOverlap(min, max *float64) Predicate {
	return salaryOverlap{min: min, max: max}
}

func (s salaryOverlap) Match(j domain.Job) bool {
	switch {
	case s.min != nil && s.max != nil:
		if j.SalaryMin == nil && j.SalaryMax == nil {
			return false
		}
		if j.SalaryMin != nil && *j.SalaryMin > *s.max {
			return false
		}
		if j.SalaryMax != nil && *j.SalaryMax < *s.min {
			return false
		}
		return true
	case s.min != nil:
		upper := firstSet(j.SalaryMax, j.SalaryMin)
		return upper != nil && *upper >= *s.min
	case s.max != nil:
		lower := firstSet(j.SalaryMin, j.SalaryMax)
		return lower != nil && *lower <= *s.max
	default:
		return true
	}
}

func (s salaryOverlap) SQL() (string, []any) {
	switch {
	case s.min != nil && s.max != nil:
		return "(j.salary_min IS NOT NULL OR j.salary_max IS NOT NULL)" +
				" AND (j.salary_min IS NULL OR j.salary_min <= ?)" +
				" AND (j.salary_max IS NULL OR j.salary_max >= ?)",
			[]any{*s.max, *s.min}
	case s.min != nil:
		return "COALESCE(j.salary_max, j.salary_min) >= ?", []any{*s.min}
	case s.max != nil:
		return "COALESCE(j.salary_min, j.salary_max) <= ?", []any{*s.max}
	default:
		return "1 = 1", nil
	}
}

func firstSet(vs ...*float64) *float64 {
	for _, v := range vs {
		if v != nil {
			return v
		}
	}
	return nil
}

type closed bool

// Open matches jobs still accepting applicants.
func Open() Predicate { return closed(false) }

func Closed() Predicate { return closed(true) }

func (c closed) Match(j domain.Job) bool { return j.IsClosed == bool(c) }

func (c closed) SQL() (string, []any) {
	if c {
		return "j.is_closed = 1", nil
	}
	return "j.is_closed = 0", nil
}

type ownedBy string

func OwnedBy(companyID string) Predicate { return ownedBy(companyID) }

func (o ownedBy) Match(j domain.Job) bool { return j.CompanyID == string(o) }

func (o ownedBy) SQL() (string, []any) {
	return "j.company_id = ?", []any{string(o)}
}

type createdWithin struct {
	from, to time.Time
}

// CreatedWithin matches jobs created in [from, to). A zero bound is open.
func CreatedWithin(from, to time.Time) Predicate {
	return createdWithin{from: from, to: to}
}

func (c createdWithin) Match(j domain.Job) bool {
	if !c.from.IsZero() && j.CreatedAt.Before(c.from) {
		return false
	}
	if !c.to.IsZero() && !j.CreatedAt.Before(c.to) {
		return false
	}
	return true
}

func (c createdWithin) SQL() (string, []any) {
	var parts []string
	var args []any
	if !c.from.IsZero() {
		parts = append(parts, "j.created_at >= ?")
		args = append(args, FormatTime(c.from))
	}
	if !c.to.IsZero() {
		parts = append(parts, "j.created_at < ?")
		args = append(args, FormatTime(c.to))
	}
	if len(parts) == 0 {
		return "1 = 1", nil
	}
	return strings.Join(parts, " AND "), args
}

// TimeLayout is fixed-width so stored timestamps sort lexicographically.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

func FormatTime(t time.Time) string { return t.UTC().Format(TimeLayout) }
