// source: products.sql

package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const insertProduct = `-- name: InsertProduct :exec
INSERT INTO products (id, owner_id, name, description, quantity, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

type InsertProductParams struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Quantity    int32
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) InsertProduct(ctx context.Context, arg InsertProductParams) error {
	_, err := q.db.ExecContext(ctx, insertProduct,
		arg.ID,
		arg.OwnerID,
		arg.Name,
		arg.Description,
		arg.Quantity,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const setProductCategories = `-- name: SetProductCategories :exec
INSERT INTO product_categories (product_id, category_id, position)
SELECT $1::uuid, c.id, c.ord - 1
FROM unnest($2::uuid[]) WITH ORDINALITY AS c(id, ord)
`

type SetProductCategoriesParams struct {
	ProductID   uuid.UUID
	CategoryIds []string
}

func (q *Queries) SetProductCategories(ctx context.Context, arg SetProductCategoriesParams) error {
	_, err := q.db.ExecContext(ctx, setProductCategories, arg.ProductID, arg.CategoryIds)
	return err
}

const clearProductCategories = `-- name: ClearProductCategories :exec
DELETE FROM product_categories WHERE product_id = $1
`

func (q *Queries) ClearProductCategories(ctx context.Context, productID uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, clearProductCategories, productID)
	return err
}

const getProductByID = `-- name: GetProductByID :one
SELECT id, owner_id, name, description, quantity, created_at, updated_at
FROM products
WHERE id = $1 AND owner_id = $2
`

type GetProductByIDParams struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
}

func (q *Queries) GetProductByID(ctx context.Context, arg GetProductByIDParams) (ProductProduct, error) {
	row := q.db.QueryRowContext(ctx, getProductByID, arg.ID, arg.OwnerID)
	var i ProductProduct
	err := row.Scan(
		&i.ID,
		&i.OwnerID,
		&i.Name,
		&i.Description,
		&i.Quantity,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listProducts = `-- name: ListProducts :many
SELECT p.id, p.owner_id, p.name, p.description, p.quantity, p.created_at, p.updated_at
FROM products p
WHERE p.owner_id = $1
  AND ($2::text = '' OR strpos(lower(p.name), lower($2::text)) > 0)
  AND (cardinality($3::uuid[]) = 0 OR EXISTS (
        SELECT 1 FROM product_categories pc
        WHERE pc.product_id = p.id AND pc.category_id = ANY($3::uuid[])
      ))
ORDER BY p.created_at DESC, p.id DESC
LIMIT $4 OFFSET $5
`

type ListProductsParams struct {
	OwnerID     uuid.UUID
	Search      string
	CategoryIds []string
	RowLimit    int32
	RowOffset   int32
}

func (q *Queries) ListProducts(ctx context.Context, arg ListProductsParams) ([]ProductProduct, error) {
	rows, err := q.db.QueryContext(ctx, listProducts,
		arg.OwnerID,
		arg.Search,
		arg.CategoryIds,
		arg.RowLimit,
		arg.RowOffset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ProductProduct
	for rows.Next() {
		var i ProductProduct
		if err := rows.Scan(
			&i.ID,
			&i.OwnerID,
			&i.Name,
			&i.Description,
			&i.Quantity,
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

const countProducts = `-- name: CountProducts :one
SELECT count(*)
FROM products p
WHERE p.owner_id = $1
  AND ($2::text = '' OR strpos(lower(p.name), lower($2::text)) > 0)
  AND (cardinality($3::uuid[]) = 0 OR EXISTS (
        SELECT 1 FROM product_categories pc
        WHERE pc.product_id = p.id AND pc.category_id = ANY($3::uuid[])
      ))
`

type CountProductsParams struct {
	OwnerID     uuid.UUID
	Search      string
	CategoryIds []string
}

func (q *Queries) CountProducts(ctx context.Context, arg CountProductsParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, countProducts, arg.OwnerID, arg.Search, arg.CategoryIds)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const listCategoriesForProducts = `-- name: ListCategoriesForProducts :many
SELECT pc.product_id, c.id, c.name
FROM product_categories pc
JOIN categories c ON c.id = pc.category_id
WHERE pc.product_id = ANY($1::uuid[])
ORDER BY pc.product_id, pc.position
`

func (q *Queries) ListCategoriesForProducts(ctx context.Context, productIds []string) ([]ProductCategoryRef, error) {
	rows, err := q.db.QueryContext(ctx, listCategoriesForProducts, productIds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ProductCategoryRef
	for rows.Next() {
		var i ProductCategoryRef
		if err := rows.Scan(&i.ProductID, &i.CategoryID, &i.CategoryName); err != nil {
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

const updateProduct = `-- name: UpdateProduct :execrows
UPDATE products
SET name = $3, description = $4, quantity = $5, updated_at = $6
WHERE id = $1 AND owner_id = $2
`

type UpdateProductParams struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Quantity    int32
	UpdatedAt   time.Time
}

func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateProduct,
		arg.ID,
		arg.OwnerID,
		arg.Name,
		arg.Description,
		arg.Quantity,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteProduct = `-- name: DeleteProduct :execrows
DELETE FROM products WHERE id = $1 AND owner_id = $2
`

type DeleteProductParams struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
}

func (q *Queries) DeleteProduct(ctx context.Context, arg DeleteProductParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteProduct, arg.ID, arg.OwnerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const productNameTaken = `-- name: ProductNameTaken :one
SELECT EXISTS (
  SELECT 1 FROM products
  WHERE owner_id = $1 AND lower(name) = lower($2) AND id <> $3
)
`

type ProductNameTakenParams struct {
	OwnerID   uuid.UUID
	Name      string
	ExcludeID uuid.UUID
}

func (q *Queries) ProductNameTaken(ctx context.Context, arg ProductNameTakenParams) (bool, error) {
	row := q.db.QueryRowContext(ctx, productNameTaken, arg.OwnerID, arg.Name, arg.ExcludeID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const countCategoriesByIDs = `-- name: CountCategoriesByIDs :one
SELECT count(*) FROM categories WHERE id = ANY($1::uuid[])
`

func (q *Queries) CountCategoriesByIDs(ctx context.Context, ids []string) (int64, error) {
	row := q.db.QueryRowContext(ctx, countCategoriesByIDs, ids)
	var count int64
	err := row.Scan(&count)
	return count, err
}
