package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard-engine/internal/domain"
)

const applicationColumns = `a.id, a.job_id, a.applicant_id, a.resume, a.status, a.created_at, a.updated_at`

func scanApplication(r rowScanner, extra ...any) (domain.Application, error) {
	var a domain.Application
	var resume sql.NullString
	var status, created, updated string
	dest := []any{&a.ID, &a.JobID, &a.ApplicantID, &resume, &status, &created, &updated}
	if err := r.Scan(append(dest, extra...)...); err != nil {
		return domain.Application{}, err
	}
	a.Resume = stringPtr(resume)
	a.Status = domain.ApplicationStatus(status)
	a.CreatedAt = parseTS(created)
	a.UpdatedAt = parseTS(updated)
	return a, nil
}

// CreateApplication inserts a; the (job_id, applicant_id) unique index turns
// a duplicate into ErrConflict even when two inserts race.
func (s *Store) CreateApplication(ctx context.Context, a domain.Application) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO applications(id, job_id, applicant_id, resume, status, created_at, updated_at)
VALUES(?,?,?,?,?,?,?);`,
		a.ID, a.JobID, a.ApplicantID, nullString(a.Resume), string(a.Status), ts(a.CreatedAt), ts(a.UpdatedAt))
	if err = mapInsert(err); err != nil {
		if errors.Is(err, ErrConflict) {
			return err
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (s *Store) ApplicationExists(ctx context.Context, jobID, applicantID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM applications WHERE job_id = ? AND applicant_id = ? LIMIT 1;`,
		jobID, applicantID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("application exists: %w", err)
	}
	return true, nil
}

func (s *Store) GetApplication(ctx context.Context, id string) (domain.Application, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications a WHERE a.id = ?;`, id)
	a, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Application{}, ErrNotFound
	}
	if err != nil {
		return domain.Application{}, fmt.Errorf("get application: %w", err)
	}
	return a, nil
}

func (s *Store) UpdateApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus, at time.Time) error {
	res, err := s.db.ExecContext(ctx, `UPDATE applications SET status = ?, updated_at = ? WHERE id = ?;`,
		string(status), ts(at), id)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	return requireRow(res)
}

const jobSummaryColumns = `j.id, j.title, j.location, j.job_type, j.salary_min, j.salary_max, j.is_closed, u.company_name`

func jobSummaryDest(js *domain.JobSummary, jobType *string, smin, smax *sql.NullFloat64, closed *int) []any {
	return []any{&js.ID, &js.Title, &js.Location, jobType, smin, smax, closed, &js.CompanyName}
}

func finishSummary(js *domain.JobSummary, jobType string, smin, smax sql.NullFloat64, closed int) {
	js.JobType = domain.JobType(jobType)
	js.SalaryMin = floatPtr(smin)
	js.SalaryMax = floatPtr(smax)
	js.IsClosed = closed != 0
}

// ListApplicationsByApplicant returns the applicant's applications newest first,
// each with a summary of its job.
func (s *Store) ListApplicationsByApplicant(ctx context.Context, applicantID string) ([]domain.MyApplication, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT `+applicationColumns+`, `+jobSummaryColumns+`
FROM applications a
JOIN jobs j ON j.id = a.job_id
JOIN users u ON u.id = j.company_id
WHERE a.applicant_id = ?
ORDER BY a.created_at DESC, a.rowid DESC;`, applicantID)
	if err != nil {
		return nil, fmt.Errorf("list applications by applicant: %w", err)
	}
	defer rows.Close()

	out := []domain.MyApplication{}
	for rows.Next() {
		var m domain.MyApplication
		var jobType string
		var smin, smax sql.NullFloat64
		var closed int
		a, err := scanApplication(rows, jobSummaryDest(&m.Job, &jobType, &smin, &smax, &closed)...)
		if err != nil {
			return nil, err
		}
		finishSummary(&m.Job, jobType, smin, smax, closed)
		m.Application = a
		out = append(out, m)
	}
	return out, rows.Err()
}

const applicantColumns = `p.id, p.name, p.email, p.avatar, p.resume`

func applicantDest(s *domain.ApplicantSummary, resume *string) []any {
	return []any{&s.ID, &s.Name, &s.Email, &s.Avatar, resume}
}

func finishApplicant(s *domain.ApplicantSummary, resume string) {
	if resume != "" {
		s.Resume = &resume
	}
}

// ListApplicationsByJob returns the job's applications newest first, each
// with a summary of its applicant.
func (s *Store) ListApplicationsByJob(ctx context.Context, jobID string) ([]domain.JobApplication, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT `+applicationColumns+`, `+applicantColumns+`
FROM applications a
JOIN users p ON p.id = a.applicant_id
WHERE a.job_id = ?
ORDER BY a.created_at DESC, a.rowid DESC;`, jobID)
	if err != nil {
		return nil, fmt.Errorf("list applications by job: %w", err)
	}
	defer rows.Close()

	out := []domain.JobApplication{}
	for rows.Next() {
		var ja domain.JobApplication
		var resume string
		a, err := scanApplication(rows, applicantDest(&ja.Applicant, &resume)...)
		if err != nil {
			return nil, err
		}
		finishApplicant(&ja.Applicant, resume)
		// the snapshot taken at apply time wins over the current profile
		if a.Resume != nil {
			ja.Applicant.Resume = a.Resume
		}
		ja.Application = a
		out = append(out, ja)
	}
	return out, rows.Err()
}

// ApplicationCount selects applications across all jobs of CompanyID.
// Since/Until bound created_at, or updated_at when ByUpdated is set.
type ApplicationCount struct {
	CompanyID string
	Status    domain.ApplicationStatus
	Since     time.Time
	Until     time.Time
	ByUpdated bool
}

func (s *Store) CountApplications(ctx context.Context, c ApplicationCount) (int, error) {
	conds := []string{"j.company_id = ?"}
	args := []any{c.CompanyID}
	if c.Status != "" {
		conds = append(conds, "a.status = ?")
		args = append(args, string(c.Status))
	}
	col := "a.created_at"
	if c.ByUpdated {
		col = "a.updated_at"
	}
	if !c.Since.IsZero() {
		conds = append(conds, col+" >= ?")
		args = append(args, ts(c.Since))
	}
	if !c.Until.IsZero() {
		conds = append(conds, col+" < ?")
		args = append(args, ts(c.Until))
	}

	var n int
	err := s.db.QueryRowContext(ctx, `
SELECT COUNT(*)
FROM applications a JOIN jobs j ON j.id = a.job_id
WHERE `+strings.Join(conds, " AND ")+`;`, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return n, nil
}

// RecentApplications returns the newest applications across companyID's jobs.
func (s *Store) RecentApplications(ctx context.Context, companyID string, limit int) ([]domain.RecentApplication, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT a.id, a.status, a.created_at, j.id, j.title, `+applicantColumns+`
FROM applications a
JOIN jobs j ON j.id = a.job_id
JOIN users p ON p.id = a.applicant_id
WHERE j.company_id = ?
ORDER BY a.created_at DESC, a.rowid DESC
LIMIT ?;`, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent applications: %w", err)
	}
	defer rows.Close()

	out := []domain.RecentApplication{}
	for rows.Next() {
		var ra domain.RecentApplication
		var status, created, resume string
		dest := append([]any{&ra.ID, &status, &created, &ra.JobID, &ra.JobTitle}, applicantDest(&ra.Applicant, &resume)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		ra.Status = domain.ApplicationStatus(status)
		ra.CreatedAt = parseTS(created)
		// the dashboard shows who applied, not their documents
		ra.Applicant.Resume = nil
		out = append(out, ra)
	}
	return out, rows.Err()
}
