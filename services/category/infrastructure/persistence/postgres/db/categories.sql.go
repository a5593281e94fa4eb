// source: categories.sql

package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const getCategoryByID = `-- name: GetCategoryByID :one
SELECT id, name, slug, created_at, updated_at
FROM categories
WHERE id = $1
`

func (q *Queries) GetCategoryByID(ctx context.Context, id uuid.UUID) (CategoryCategory, error) {
	row := q.db.QueryRowContext(ctx, getCategoryByID, id)
	var i CategoryCategory
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Slug,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listCategories = `-- name: ListCategories :many
SELECT id, name, slug, created_at, updated_at
FROM categories
ORDER BY name ASC
`

func (q *Queries) ListCategories(ctx context.Context) ([]CategoryCategory, error) {
	rows, err := q.db.QueryContext(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CategoryCategory
	for rows.Next() {
		var i CategoryCategory
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Slug,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertCategory = `-- name: UpsertCategory :one
INSERT INTO categories (id, name, slug, created_at, updated_at)
VALUES ($1, $2, $3, $4, $4)
ON CONFLICT (name) DO UPDATE
SET slug = EXCLUDED.slug, updated_at = EXCLUDED.updated_at
RETURNING id, name, slug, created_at, updated_at
`

type UpsertCategoryParams struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	UpdatedAt time.Time
}

func (q *Queries) UpsertCategory(ctx context.Context, arg UpsertCategoryParams) (CategoryCategory, error) {
	row := q.db.QueryRowContext(ctx, upsertCategory,
		arg.ID,
		arg.Name,
		arg.Slug,
		arg.UpdatedAt,
	)
	var i CategoryCategory
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Slug,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const pruneCategories = `-- name: PruneCategories :execrows
DELETE FROM categories c
WHERE NOT (c.name = ANY($1::text[]))
  AND NOT EXISTS (
    SELECT 1 FROM product_categories pc WHERE pc.category_id = c.id
  )
`

func (q *Queries) PruneCategories(ctx context.Context, keep []string) (int64, error) {
	result, err := q.db.ExecContext(ctx, pruneCategories, keep)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
