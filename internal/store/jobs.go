package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/filter"
)

const jobColumns = `j.id, j.company_id, j.title, j.description, j.requirements, j.location, j.job_type,
  j.salary_min, j.salary_max, j.is_closed, j.created_at, j.updated_at`

const companyColumns = `u.id, u.name, u.company_name, u.company_description, u.company_logo, u.avatar`

func scanJob(r rowScanner, extra ...any) (domain.Job, error) {
	var j domain.Job
	var jobType, created, updated string
	var smin, smax sql.NullFloat64
	var closed int
	dest := []any{&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Requirements, &j.Location, &jobType,
		&smin, &smax, &closed, &created, &updated}
	if err := r.Scan(append(dest, extra...)...); err != nil {
		return domain.Job{}, err
	}
	j.JobType = domain.JobType(jobType)
	j.SalaryMin = floatPtr(smin)
	j.SalaryMax = floatPtr(smax)
	j.IsClosed = closed != 0
	j.CreatedAt = parseTS(created)
	j.UpdatedAt = parseTS(updated)
	return j, nil
}

func (s *Store) CreateJob(ctx context.Context, j domain.Job) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO jobs(id, company_id, title, description, requirements, location, job_type,
  salary_min, salary_max, is_closed, created_at, updated_at)
VALUES(?,?,?,?,?,?,?,?,?,?,?,?);`,
		j.ID, j.CompanyID, j.Title, j.Description, j.Requirements, j.Location, string(j.JobType),
		nullFloat(j.SalaryMin), nullFloat(j.SalaryMax), boolInt(j.IsClosed), ts(j.CreatedAt), ts(j.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (s *Store) GetJob(ctx context.Context, id string) (domain.Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = ?;`, id)
	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Job{}, ErrNotFound
	}
	if err != nil {
		return domain.Job{}, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

// GetJobView returns the job joined with its owner's public company fields.
func (s *Store) GetJobView(ctx context.Context, id string) (domain.JobView, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT `+jobColumns+`, `+companyColumns+`
FROM jobs j JOIN users u ON u.id = j.company_id
WHERE j.id = ?;`, id)
	var c domain.Company
	j, err := scanJob(row, &c.ID, &c.Name, &c.CompanyName, &c.CompanyDescription, &c.CompanyLogo, &c.Avatar)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.JobView{}, ErrNotFound
	}
	if err != nil {
		return domain.JobView{}, fmt.Errorf("get job view: %w", err)
	}
	return domain.JobView{Job: j, Company: &c}, nil
}

// UpdateJob rewrites the editable fields of j; ownership is the caller's concern.
func (s *Store) UpdateJob(ctx context.Context, j domain.Job) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE jobs
SET title = ?, description = ?, requirements = ?, location = ?, job_type = ?,
    salary_min = ?, salary_max = ?, updated_at = ?
WHERE id = ?;`,
		j.Title, j.Description, j.Requirements, j.Location, string(j.JobType),
		nullFloat(j.SalaryMin), nullFloat(j.SalaryMax), ts(j.UpdatedAt), j.ID)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return requireRow(res)
}

// DeleteJob removes the job; applications and saved entries go with it via
// ON DELETE CASCADE.
func (s *Store) DeleteJob(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return requireRow(res)
}

func (s *Store) SetJobClosed(ctx context.Context, id string, closed bool, at time.Time) error {
	res, err := s.db.ExecContext(ctx, `UPDATE jobs SET is_closed = ?, updated_at = ? WHERE id = ?;`,
		boolInt(closed), ts(at), id)
	if err != nil {
		return fmt.Errorf("set job closed: %w", err)
	}
	return requireRow(res)
}

type JobQuery struct {
	Where  filter.Predicate
	Offset int
	// Limit <= 0 means no limit.
	Limit                int
	WithApplicationCount bool
}

// ListJobs returns matching jobs newest first, each joined with its company.
func (s *Store) ListJobs(ctx context.Context, q JobQuery) ([]domain.JobView, error) {
	where, args := whereOf(q.Where)

	cols := jobColumns + `, ` + companyColumns
	if q.WithApplicationCount {
		cols += `, (SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id)`
	}
	limit := q.Limit
	if limit <= 0 {
		limit = -1
	}

	query := fmt.Sprintf(`
SELECT %s
FROM jobs j JOIN users u ON u.id = j.company_id
WHERE %s
ORDER BY j.created_at DESC, j.rowid DESC
LIMIT ? OFFSET ?;
`, cols, where)

	rows, err := s.db.QueryContext(ctx, query, append(args, limit, q.Offset)...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	out := []domain.JobView{}
	for rows.Next() {
		var c domain.Company
		extra := []any{&c.ID, &c.Name, &c.CompanyName, &c.CompanyDescription, &c.CompanyLogo, &c.Avatar}
		var count int
		if q.WithApplicationCount {
			extra = append(extra, &count)
		}
		j, err := scanJob(rows, extra...)
		if err != nil {
			return nil, err
		}
		v := domain.JobView{Job: j, Company: &c}
		if q.WithApplicationCount {
			n := count
			v.ApplicationCount = &n
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) CountJobs(ctx context.Context, p filter.Predicate) (int, error) {
	where, args := whereOf(p)
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs j WHERE `+where+`;`, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

func whereOf(p filter.Predicate) (string, []any) {
	if p == nil {
		return "1 = 1", nil
	}
	return p.SQL()
}
