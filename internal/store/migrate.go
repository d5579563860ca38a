package store

import (
	"context"
	"fmt"
)

const schemaVersion = 1

var schemaV1 = []string{
	`
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('jobseeker','employer')),
  avatar TEXT NOT NULL DEFAULT '',
  resume TEXT NOT NULL DEFAULT '',
  company_name TEXT NOT NULL DEFAULT '',
  company_description TEXT NOT NULL DEFAULT '',
  company_logo TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);`,
	`
CREATE TABLE IF NOT EXISTS jobs (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  requirements TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  job_type TEXT NOT NULL,
  salary_min REAL,
  salary_max REAL,
  is_closed INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  CHECK (salary_min IS NULL OR salary_max IS NULL OR salary_max >= salary_min)
);`,
	`
CREATE TABLE IF NOT EXISTS applications (
  id TEXT PRIMARY KEY,
  job_id TEXT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
  applicant_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  resume TEXT,
  status TEXT NOT NULL DEFAULT 'applied',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);`,
	`
CREATE TABLE IF NOT EXISTS saved_jobs (
  id TEXT PRIMARY KEY,
  jobseeker_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  job_id TEXT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
  created_at TEXT NOT NULL
);`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email);`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_company ON jobs(company_id);`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_created ON jobs(created_at);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_applications_job_applicant ON applications(job_id, applicant_id);`,
	`CREATE INDEX IF NOT EXISTS idx_applications_applicant ON applications(applicant_id);`,
	`CREATE INDEX IF NOT EXISTS idx_applications_created ON applications(created_at);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_saved_jobs_pair ON saved_jobs(jobseeker_id, job_id);`,
}

// Migrate brings the schema up to schemaVersion, tracked in PRAGMA user_version.
func (s *Store) Migrate(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRowContext(ctx, `PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= schemaVersion {
		return tx.Commit()
	}

	for _, stmt := range schemaV1 {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate v1: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d;`, schemaVersion)); err != nil {
		return err
	}
	return tx.Commit()
}
