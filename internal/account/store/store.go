package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stockpile/backend/internal/account"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

var sortColumns = map[string]string{
	"id":    "id",
	"name":  "name",
	"email": "email",
	"role":  "role",
}

func (s *Store) ListAccounts(ctx context.Context, filter account.ListFilter) ([]account.Account, error) {
	query := `SELECT id, COALESCE(avatar_url, ''), name, email, role FROM accounts WHERE 1 = 1`

	var args []any

	if filter.Role != "" {
		args = append(args, filter.Role)
		query += fmt.Sprintf(" AND role = $%d", len(args))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}

	if col, ok := sortColumns[filter.SortBy]; ok && (filter.SortOrder == "asc" || filter.SortOrder == "desc") {
		query += fmt.Sprintf(" ORDER BY %s %s", col, filter.SortOrder)
	} else {
		query += " ORDER BY name ASC"
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []account.Account

	for rows.Next() {
		var a account.Account
		if err := rows.Scan(&a.ID, &a.AvatarFile, &a.Name, &a.Email, &a.Role); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

func (s *Store) GetAccount(ctx context.Context, id int64) (*account.Account, error) {
	var a account.Account

	err := s.db.QueryRowContext(ctx,
		`SELECT id, COALESCE(avatar_url, ''), name, email, role FROM accounts WHERE id = $1`, id,
	).Scan(&a.ID, &a.AvatarFile, &a.Name, &a.Email, &a.Role)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return &a, nil
}

func (s *Store) GetCredentialsByEmail(ctx context.Context, email string) (*account.Account, string, error) {
	var (
		a    account.Account
		hash string
	)

	err := s.db.QueryRowContext(ctx,
		`SELECT id, COALESCE(avatar_url, ''), name, email, role, password FROM accounts WHERE email = $1`, email,
	).Scan(&a.ID, &a.AvatarFile, &a.Name, &a.Email, &a.Role, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", account.ErrNotFound
		}

		return nil, "", fmt.Errorf("getting account by email: %w", err)
	}

	return &a, hash, nil
}

func (s *Store) CreateAccount(ctx context.Context, a *account.Account, passwordHash string) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO accounts (avatar_url, name, email, role, password)
		VALUES (NULLIF($1, ''), $2, $3, $4, $5)
		RETURNING id`,
		a.AvatarFile, a.Name, a.Email, a.Role, passwordHash,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) UpdateAccount(ctx context.Context, a *account.Account) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET email = $1, name = $2, role = $3 WHERE id = $4`,
		a.Email, a.Name, a.Role, a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}

	return nil
}

func (s *Store) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET password = $1 WHERE id = $2`, passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	return nil
}

func (s *Store) UpdateProfile(ctx context.Context, id int64, name, email string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET name = $1, email = $2 WHERE id = $3`, name, email, id,
	)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}

	return nil
}

func (s *Store) UpdateAvatar(ctx context.Context, id int64, avatarFile string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET avatar_url = $1 WHERE id = $2`, avatarFile, id,
	)
	if err != nil {
		return fmt.Errorf("updating avatar: %w", err)
	}

	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	return nil
}

func (s *Store) ListAvatarFiles(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT avatar_url FROM accounts WHERE avatar_url IS NOT NULL`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing avatar files: %w", err)
	}
	defer rows.Close()

	var files []string

	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("scanning avatar file: %w", err)
		}

		files = append(files, f)
	}

	return files, rows.Err()
}
