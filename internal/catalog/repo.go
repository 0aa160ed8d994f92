package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gamehub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

type ListQuery struct {
	Q        string // keyword search in game name
	Category string // category slug
	Platform string // platform slug
	Limit    int
	Offset   int
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) Count(ctx context.Context, q ListQuery) (int, error) {
	sqlStr, args := buildListSQL(q, true)
	row := r.DB.QueryRowContext(ctx, sqlStr, args...)
	var total int
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("count scan: %w", err)
	}
	return total, nil
}

func (r *Repo) List(ctx context.Context, q ListQuery) ([]models.GameDB, error) {
	sqlStr, args := buildListSQL(q, false)

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	out := make([]models.GameDB, 0, q.Limit)
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		out = append(out, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// GetBySlug returns the full game record including reference names and
// gallery urls, or (nil, nil) when the slug is unknown.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*models.GameDB, error) {
	row := r.DB.QueryRowContext(ctx, baseSelect+` WHERE g.slug = ?`, slug)
	g, err := scanGame(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan get by slug: %w", err)
	}

	g.Developers, err = r.refNames(ctx, `
		SELECT d.name FROM developers d
		JOIN game_developers gd ON gd.developer_id = d.id
		WHERE gd.game_id = ? ORDER BY d.name
	`, g.ID)
	if err != nil {
		return nil, err
	}
	g.Categories, err = r.refNames(ctx, `
		SELECT c.name FROM categories c
		JOIN game_categories gc ON gc.category_id = c.id
		WHERE gc.game_id = ? ORDER BY c.name
	`, g.ID)
	if err != nil {
		return nil, err
	}
	g.Platforms, err = r.refNames(ctx, `
		SELECT p.name FROM platforms p
		JOIN game_platforms gp ON gp.platform_id = p.id
		WHERE gp.game_id = ? ORDER BY p.name
	`, g.ID)
	if err != nil {
		return nil, err
	}
	g.GalleryURLs, err = r.refNames(ctx, `
		SELECT url FROM files
		WHERE ref = 'game' AND ref_id = ? AND field = 'gallery'
		ORDER BY id
	`, g.ID)
	if err != nil {
		return nil, err
	}

	return g, nil
}

func (r *Repo) refNames(ctx context.Context, query string, gameID int64) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("ref names query: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("ref names scan: %w", err)
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ref names rows: %w", err)
	}
	return out, nil
}

const baseSelect = `
	SELECT g.id, g.name, g.slug, g.price, g.release_date, g.rating,
	       g.short_description, g.description, p.name,
	       (SELECT url FROM files WHERE ref = 'game' AND ref_id = g.id AND field = 'cover' ORDER BY id LIMIT 1)
	FROM games g
	LEFT JOIN publishers p ON p.id = g.publisher_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*models.GameDB, error) {
	var (
		g         models.GameDB
		release   sql.NullString
		rating    sql.NullString
		shortDesc sql.NullString
		desc      sql.NullString
		publisher sql.NullString
		cover     sql.NullString
	)
	if err := row.Scan(
		&g.ID, &g.Name, &g.Slug, &g.Price, &release, &rating,
		&shortDesc, &desc, &publisher, &cover,
	); err != nil {
		return nil, err
	}
	g.ReleaseDate = release.String
	g.Rating = rating.String
	g.ShortDescription = shortDesc.String
	g.Description = desc.String
	g.Publisher = publisher.String
	g.CoverURL = cover.String
	return &g, nil
}

func buildListSQL(q ListQuery, countOnly bool) (string, []any) {
	sel := baseSelect
	if countOnly {
		sel = `SELECT COUNT(*) FROM games g`
	}

	var where []string
	var args []any

	if strings.TrimSpace(q.Q) != "" {
		where = append(where, "LOWER(g.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(q.Q))+"%")
	}
	if strings.TrimSpace(q.Category) != "" {
		where = append(where, `EXISTS (
			SELECT 1 FROM game_categories gc
			JOIN categories c ON c.id = gc.category_id
			WHERE gc.game_id = g.id AND c.slug = ?
		)`)
		args = append(args, strings.TrimSpace(q.Category))
	}
	if strings.TrimSpace(q.Platform) != "" {
		where = append(where, `EXISTS (
			SELECT 1 FROM game_platforms gp
			JOIN platforms pl ON pl.id = gp.platform_id
			WHERE gp.game_id = g.id AND pl.slug = ?
		)`)
		args = append(args, strings.TrimSpace(q.Platform))
	}

	sqlStr := sel
	if len(where) > 0 {
		sqlStr += " WHERE " + strings.Join(where, " AND ")
	}

	if !countOnly {
		sqlStr += " ORDER BY g.name ASC LIMIT ? OFFSET ?"
		limit := q.Limit
		if limit <= 0 || limit > 100 {
			limit = 20
		}
		offset := q.Offset
		if offset < 0 {
			offset = 0
		}
		args = append(args, limit, offset)
	}

	return sqlStr, args
}
