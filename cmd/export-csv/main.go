package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gamehub/pkg/database"
)

func main() {
	var (
		gamesOut = flag.String("games", "data/games.csv", "output CSV path for games")
		runsOut  = flag.String("runs", "data/import_runs.csv", "output CSV path for import runs")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := exportGames(ctx, db, *gamesOut); err != nil {
		log.Fatalf("export games failed: %v", err)
	}
	if err := exportRuns(ctx, db, *runsOut); err != nil {
		log.Fatalf("export import runs failed: %v", err)
	}

	log.Printf("exported games to %s and import runs to %s", *gamesOut, *runsOut)
}

func exportGames(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "name", "slug", "price", "release_date", "rating", "short_description", "publisher"}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
        SELECT g.id, g.name, g.slug, g.price, g.release_date, g.rating, g.short_description, p.name
        FROM games g
        LEFT JOIN publishers p ON p.id = g.publisher_id
        ORDER BY g.name
    `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        int64
			name      string
			slug      string
			price     float64
			release   sql.NullString
			rating    sql.NullString
			shortDesc sql.NullString
			publisher sql.NullString
		)

		if err := rows.Scan(&id, &name, &slug, &price, &release, &rating, &shortDesc, &publisher); err != nil {
			return err
		}

		if err := w.Write([]string{
			strconv.FormatInt(id, 10),
			name,
			slug,
			strconv.FormatFloat(price, 'f', 2, 64),
			release.String,
			rating.String,
			shortDesc.String,
			publisher.String,
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func exportRuns(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "sort", "page", "total", "created", "skipped", "failed", "quarantined", "refs_created", "started_at", "finished_at"}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
        SELECT id, sort, page, total, created, skipped, failed, quarantined, refs_created, started_at, finished_at
        FROM import_runs
        ORDER BY id DESC
    `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id          int64
			sortVal     sql.NullString
			pageVal     sql.NullString
			total       int64
			created     int64
			skipped     int64
			failed      int64
			quarantined int64
			refsCreated int64
			startedAt   sql.NullTime
			finishedAt  sql.NullTime
		)

		if err := rows.Scan(&id, &sortVal, &pageVal, &total, &created, &skipped, &failed, &quarantined, &refsCreated, &startedAt, &finishedAt); err != nil {
			return err
		}

		started := ""
		if startedAt.Valid {
			started = startedAt.Time.Format(time.RFC3339)
		}
		finished := ""
		if finishedAt.Valid {
			finished = finishedAt.Time.Format(time.RFC3339)
		}

		if err := w.Write([]string{
			strconv.FormatInt(id, 10),
			sortVal.String,
			pageVal.String,
			strconv.FormatInt(total, 10),
			strconv.FormatInt(created, 10),
			strconv.FormatInt(skipped, 10),
			strconv.FormatInt(failed, 10),
			strconv.FormatInt(quarantined, 10),
			strconv.FormatInt(refsCreated, 10),
			started,
			finished,
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}
