package runs

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gamehub/internal/populate"
)

// Run is one recorded populate invocation.
type Run struct {
	ID          int64     `json:"id"`
	Sort        string    `json:"sort"`
	Page        string    `json:"page"`
	Total       int       `json:"total"`
	Created     int       `json:"created"`
	Skipped     int       `json:"skipped"`
	Failed      int       `json:"failed"`
	Quarantined int       `json:"quarantined"`
	RefsCreated int       `json:"refs_created"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Record implements populate.RunRecorder.
func (r *Repo) Record(ctx context.Context, s populate.Summary) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO import_runs (sort, page, total, created, skipped, failed, quarantined, refs_created, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.Sort, s.Page, s.Total, s.Created, s.Skipped, s.Failed, s.Quarantined, s.RefsCreated, s.StartedAt, s.FinishedAt)
	if err != nil {
		return fmt.Errorf("record import run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (r *Repo) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, sort, page, total, created, skipped, failed, quarantined, refs_created, started_at, finished_at
		FROM import_runs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	out := make([]Run, 0, limit)
	for rows.Next() {
		var (
			run  Run
			sort sql.NullString
			page sql.NullString
		)
		if err := rows.Scan(
			&run.ID, &sort, &page, &run.Total, &run.Created, &run.Skipped,
			&run.Failed, &run.Quarantined, &run.RefsCreated, &run.StartedAt, &run.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Sort = sort.String
		run.Page = page.String
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("runs rows: %w", err)
	}
	return out, nil
}
