package store

import (
	"context"
	"database/sql"
	"fmt"

	"gamehub/pkg/models"
)

// refTables maps a reference collection to its table and the column
// that links it from a game's relation table.
var refTables = map[string]struct {
	table         string
	relationTable string
	relationCol   string
}{
	CollectionDeveloper: {"developers", "game_developers", "developer_id"},
	CollectionPublisher: {"publishers", "", ""},
	CollectionCategory:  {"categories", "game_categories", "category_id"},
	CollectionPlatform:  {"platforms", "game_platforms", "platform_id"},
}

// SQLStore is the sqlite-backed EntityStore.
type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) FindRefByName(ctx context.Context, collection, name string) (*models.RefEntity, error) {
	t, ok := refTables[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	row := s.DB.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT id, name, slug FROM %s WHERE name = ?`, t.table), name)

	var e models.RefEntity
	if err := row.Scan(&e.ID, &e.Name, &e.Slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find %s by name: %w", collection, err)
	}
	return &e, nil
}

func (s *SQLStore) CreateRef(ctx context.Context, collection, name, slug string) (*models.RefEntity, error) {
	t, ok := refTables[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	res, err := s.DB.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (name, slug) VALUES (?, ?)`, t.table), name, slug)
	if err != nil {
		return nil, fmt.Errorf("create %s %q: %w", collection, name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create %s %q: last id: %w", collection, name, err)
	}
	return &models.RefEntity{ID: id, Name: name, Slug: slug}, nil
}

func (s *SQLStore) GameExists(ctx context.Context, name string) (bool, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT 1 FROM games WHERE name = ?`, name)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("game exists: %w", err)
	}
	return true, nil
}

func (s *SQLStore) CreateGame(ctx context.Context, rec models.GameRecord) (int64, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin create game: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO games (name, slug, price, release_date, rating, short_description, description, publisher_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.Name,
		rec.Slug,
		rec.Price,
		nullString(rec.ReleaseDate),
		nullString(rec.Rating),
		nullString(rec.ShortDescription),
		nullString(rec.Description),
		rec.PublisherID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert game %q: %w", rec.Name, err)
	}
	gameID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert game %q: last id: %w", rec.Name, err)
	}

	relations := []struct {
		collection string
		ids        []int64
	}{
		{CollectionDeveloper, rec.DeveloperIDs},
		{CollectionCategory, rec.CategoryIDs},
		{CollectionPlatform, rec.PlatformIDs},
	}
	for _, rel := range relations {
		t := refTables[rel.collection]
		for _, refID := range rel.ids {
			if _, err := tx.ExecContext(ctx,
				fmt.Sprintf(`INSERT INTO %s (game_id, %s) VALUES (?, ?)`, t.relationTable, t.relationCol),
				gameID, refID,
			); err != nil {
				return 0, fmt.Errorf("link %s %d to game %q: %w", rel.collection, refID, rec.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create game %q: %w", rec.Name, err)
	}
	return gameID, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
