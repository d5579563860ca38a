package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"jobboard-engine/internal/domain"
)

// CreateSavedJob inserts sj; a second save of the same job is ErrConflict.
func (s *Store) CreateSavedJob(ctx context.Context, sj domain.SavedJob) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO saved_jobs(id, jobseeker_id, job_id, created_at)
VALUES(?,?,?,?);`, sj.ID, sj.JobseekerID, sj.JobID, ts(sj.CreatedAt))
	if err = mapInsert(err); err != nil {
		if errors.Is(err, ErrConflict) {
			return err
		}
		return fmt.Errorf("insert saved job: %w", err)
	}
	return nil
}

func (s *Store) ListSavedJobs(ctx context.Context, jobseekerID string) ([]domain.SavedJobView, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT s.id, s.jobseeker_id, s.job_id, s.created_at, `+jobSummaryColumns+`
FROM saved_jobs s
JOIN jobs j ON j.id = s.job_id
JOIN users u ON u.id = j.company_id
WHERE s.jobseeker_id = ?
ORDER BY s.created_at DESC, s.rowid DESC;`, jobseekerID)
	if err != nil {
		return nil, fmt.Errorf("list saved jobs: %w", err)
	}
	defer rows.Close()

	out := []domain.SavedJobView{}
	for rows.Next() {
		var v domain.SavedJobView
		var created, jobType string
		var smin, smax sql.NullFloat64
		var closed int
		dest := append([]any{&v.ID, &v.JobseekerID, &v.JobID, &created},
			jobSummaryDest(&v.Job, &jobType, &smin, &smax, &closed)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		v.CreatedAt = parseTS(created)
		finishSummary(&v.Job, jobType, smin, smax, closed)
		out = append(out, v)
	}
	return out, rows.Err()
}

// DeleteSavedJob is not idempotent: a missing entry is ErrNotFound.
func (s *Store) DeleteSavedJob(ctx context.Context, jobseekerID, jobID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_jobs WHERE jobseeker_id = ? AND job_id = ?;`,
		jobseekerID, jobID)
	if err != nil {
		return fmt.Errorf("delete saved job: %w", err)
	}
	return requireRow(res)
}
