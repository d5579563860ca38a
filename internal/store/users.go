package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"jobboard-engine/internal/domain"
)

const userColumns = `id, name, email, role, avatar, resume, company_name, company_description, company_logo, created_at, updated_at`

func scanUser(r rowScanner, extra ...any) (domain.User, error) {
	var u domain.User
	var role, created, updated string
	dest := []any{&u.ID, &u.Name, &u.Email, &role, &u.Avatar, &u.Resume,
		&u.CompanyName, &u.CompanyDescription, &u.CompanyLogo, &created, &updated}
	if err := r.Scan(append(dest, extra...)...); err != nil {
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	u.CreatedAt = parseTS(created)
	u.UpdatedAt = parseTS(updated)
	return u, nil
}

// CreateUser inserts u; ErrConflict means the email is taken.
func (s *Store) CreateUser(ctx context.Context, u domain.User, passwordHash string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO users(`+userColumns+`, password_hash)
VALUES(?,?,?,?,?,?,?,?,?,?,?,?);`,
		u.ID, u.Name, u.Email, string(u.Role), u.Avatar, u.Resume,
		u.CompanyName, u.CompanyDescription, u.CompanyLogo,
		ts(u.CreatedAt), ts(u.UpdatedAt), passwordHash)
	if err = mapInsert(err); err != nil {
		if errors.Is(err, ErrConflict) {
			return err
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?;`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetUserByEmail also returns the stored password hash for login.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (domain.User, string, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+`, password_hash FROM users WHERE email = ?;`, email)
	var hash string
	u, err := scanUser(row, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, "", ErrNotFound
	}
	if err != nil {
		return domain.User{}, "", fmt.Errorf("get user by email: %w", err)
	}
	return u, hash, nil
}

// UpdateUser rewrites the profile fields of u. Role and email are fixed.
func (s *Store) UpdateUser(ctx context.Context, u domain.User) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE users
SET name = ?, avatar = ?, resume = ?, company_name = ?, company_description = ?, company_logo = ?, updated_at = ?
WHERE id = ?;`,
		u.Name, u.Avatar, u.Resume, u.CompanyName, u.CompanyDescription, u.CompanyLogo, ts(u.UpdatedAt), u.ID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
