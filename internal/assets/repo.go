package assets

import (
	"context"
	"database/sql"
	"fmt"

	"gamehub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) CreateFile(ctx context.Context, f models.FileDB) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO files (name, url, ref, ref_id, field)
		VALUES (?, ?, ?, ?, ?)
	`, f.Name, f.URL, f.Ref, f.RefID, f.Field)
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create file: last id: %w", err)
	}
	return id, nil
}

func (r *Repo) ListForRef(ctx context.Context, ref string, refID int64, field string) ([]models.FileDB, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, url, ref, ref_id, field
		FROM files
		WHERE ref = ? AND ref_id = ? AND field = ?
		ORDER BY id ASC
	`, ref, refID, field)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var out []models.FileDB
	for rows.Next() {
		var f models.FileDB
		if err := rows.Scan(&f.ID, &f.Name, &f.URL, &f.Ref, &f.RefID, &f.Field); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("files rows: %w", err)
	}
	return out, nil
}
