package auth

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Editor is a CMS account. Editors only gate the management surfaces
// (import-run history); the catalog and the populate trigger stay open.
type Editor struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) CreateEditor(ctx context.Context, e Editor) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO editors (id, username, email, password_hash)
		VALUES (?, ?, ?, ?)
	`, e.ID, e.Username, e.Email, e.PasswordHash)

	if err != nil {
		return fmt.Errorf("create editor: %w", err)
	}
	return nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*Editor, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM editors
		WHERE LOWER(email) = ?
	`, email)

	var e Editor
	if err := row.Scan(&e.ID, &e.Username, &e.Email, &e.PasswordHash, &e.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get by email: %w", err)
	}
	return &e, nil
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (*Editor, error) {
	username = strings.TrimSpace(username)
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM editors
		WHERE username = ?
	`, username)

	var e Editor
	if err := row.Scan(&e.ID, &e.Username, &e.Email, &e.PasswordHash, &e.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get by username: %w", err)
	}
	return &e, nil
}
