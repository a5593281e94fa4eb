package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/inventory/pkg/database"
	"github.com/ghuser/inventory/pkg/events"
	productdomain "github.com/ghuser/inventory/services/product/domain"
	domainevents "github.com/ghuser/inventory/services/product/domain/events"
	"github.com/ghuser/inventory/services/product/domain/models"
	"github.com/ghuser/inventory/services/product/infrastructure/persistence/postgres/db"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	ownerNameIndex        = "products_owner_name_key"
	categoryFK            = "product_categories_category_id_fkey"
)

// ProductRepository implements repositories.ProductRepository against PostgreSQL.
type ProductRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewProductRepository returns a ProductRepository backed by the given pool.
// When bus is non-nil every write publishes its event in the same transaction.
func NewProductRepository(database *database.Database, bus *events.EventBus) *ProductRepository {
	return &ProductRepository{db: database, bus: bus}
}

// Create inserts p with its category links and publishes product.created.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	qty, err := quantityParam(p.Quantity)
	if err != nil {
		return nil, err
	}
	var stored *models.Product
	err = r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		if err := q.InsertProduct(ctx, db.InsertProductParams{
			ID:          p.ID,
			OwnerID:     p.OwnerID,
			Name:        p.Name.String(),
			Description: p.Description,
			Quantity:    qty,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		}); err != nil {
			return mapWriteError("insert product", err)
		}
		if err := q.SetProductCategories(ctx, db.SetProductCategoriesParams{
			ProductID:   p.ID,
			CategoryIds: uuidStrings(p.CategoryIDs()),
		}); err != nil {
			return mapWriteError("link categories", err)
		}

		var err error
		if stored, err = r.reload(ctx, q, p.OwnerID, p.ID); err != nil {
			return err
		}
		if r.bus == nil {
			return nil
		}
		return r.bus.PublishTx(ctx, tx, domainevents.TopicProductCreated, domainevents.ProductCreatedEvent{
			EventID:    uuid.New(),
			Version:    domainevents.EventVersion,
			Product:    snapshot(stored),
			OccurredAt: stored.CreatedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// GetByID returns ErrProductNotFound when the product does not exist or
// belongs to another owner.
func (r *ProductRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Product, error) {
	return r.reload(ctx, db.New(r.db.DB()), ownerID, id)
}

// List returns one newest-first page for q plus the total match count.
func (r *ProductRepository) List(ctx context.Context, q models.ListQuery) ([]*models.Product, int, error) {
	queries := db.New(r.db.DB())
	offset, limit := q.Window()
	categoryIDs := uuidStrings(q.CategoryIDs)

	total, err := queries.CountProducts(ctx, db.CountProductsParams{
		OwnerID:     q.OwnerID,
		Search:      q.Search,
		CategoryIds: categoryIDs,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	if total == 0 || int64(offset) >= total {
		return []*models.Product{}, int(total), nil
	}

	rows, err := queries.ListProducts(ctx, db.ListProductsParams{
		OwnerID:     q.OwnerID,
		Search:      q.Search,
		CategoryIds: categoryIDs,
		RowLimit:    int32(limit),
		RowOffset:   int32(offset),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("query products: %w", err)
	}

	products, err := r.withCategories(ctx, queries, rows)
	if err != nil {
		return nil, 0, err
	}
	return products, int(total), nil
}

// Update writes every editable field of p, replaces its category links, and
// publishes product.updated.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	qty, err := quantityParam(p.Quantity)
	if err != nil {
		return nil, err
	}
	var stored *models.Product
	err = r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		n, err := q.UpdateProduct(ctx, db.UpdateProductParams{
			ID:          p.ID,
			OwnerID:     p.OwnerID,
			Name:        p.Name.String(),
			Description: p.Description,
			Quantity:    qty,
			UpdatedAt:   p.UpdatedAt,
		})
		if err != nil {
			return mapWriteError("update product", err)
		}
		if n == 0 {
			return productdomain.ErrProductNotFound
		}
		if err := q.ClearProductCategories(ctx, p.ID); err != nil {
			return fmt.Errorf("clear categories: %w", err)
		}
		if err := q.SetProductCategories(ctx, db.SetProductCategoriesParams{
			ProductID:   p.ID,
			CategoryIds: uuidStrings(p.CategoryIDs()),
		}); err != nil {
			return mapWriteError("link categories", err)
		}

		if stored, err = r.reload(ctx, q, p.OwnerID, p.ID); err != nil {
			return err
		}
		if r.bus == nil {
			return nil
		}
		return r.bus.PublishTx(ctx, tx, domainevents.TopicProductUpdated, domainevents.ProductUpdatedEvent{
			EventID:    uuid.New(),
			Version:    domainevents.EventVersion,
			Product:    snapshot(stored),
			OccurredAt: stored.UpdatedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// Delete removes the product and publishes product.deleted. Category links go
// with it through ON DELETE CASCADE.
func (r *ProductRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		n, err := db.New(tx).DeleteProduct(ctx, db.DeleteProductParams{ID: id, OwnerID: ownerID})
		if err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		if n == 0 {
			return productdomain.ErrProductNotFound
		}
		if r.bus == nil {
			return nil
		}
		return r.bus.PublishTx(ctx, tx, domainevents.TopicProductDeleted, domainevents.ProductDeletedEvent{
			EventID:    uuid.New(),
			Version:    domainevents.EventVersion,
			ProductID:  id,
			OwnerID:    ownerID,
			OccurredAt: time.Now().UTC(),
		})
	})
}

// NameTaken reports whether ownerID has a product other than excludeID whose
// name matches case-insensitively.
func (r *ProductRepository) NameTaken(ctx context.Context, ownerID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	taken, err := db.New(r.db.DB()).ProductNameTaken(ctx, db.ProductNameTakenParams{
		OwnerID:   ownerID,
		Name:      name,
		ExcludeID: excludeID,
	})
	if err != nil {
		return false, fmt.Errorf("check product name: %w", err)
	}
	return taken, nil
}

// CategoriesExist reports whether every ID in ids is a stored category.
func (r *ProductRepository) CategoriesExist(ctx context.Context, ids []uuid.UUID) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	n, err := db.New(r.db.DB()).CountCategoriesByIDs(ctx, uuidStrings(ids))
	if err != nil {
		return false, fmt.Errorf("count categories: %w", err)
	}
	return n == int64(len(ids)), nil
}

// reload reads one product with resolved categories through q.
func (r *ProductRepository) reload(ctx context.Context, q *db.Queries, ownerID, id uuid.UUID) (*models.Product, error) {
	row, err := q.GetProductByID(ctx, db.GetProductByIDParams{ID: id, OwnerID: ownerID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, productdomain.ErrProductNotFound
		}
		return nil, fmt.Errorf("query product: %w", err)
	}
	products, err := r.withCategories(ctx, q, []db.ProductProduct{row})
	if err != nil {
		return nil, err
	}
	return products[0], nil
}

// withCategories maps rows to products and resolves their category names in
// one query.
func (r *ProductRepository) withCategories(ctx context.Context, q *db.Queries, rows []db.ProductProduct) ([]*models.Product, error) {
	products := make([]*models.Product, len(rows))
	byID := make(map[uuid.UUID]*models.Product, len(rows))
	ids := make([]string, len(rows))
	for i, row := range rows {
		p := rowToProduct(row)
		products[i] = p
		byID[p.ID] = p
		ids[i] = p.ID.String()
	}
	if len(ids) == 0 {
		return products, nil
	}

	refs, err := q.ListCategoriesForProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("query product categories: %w", err)
	}
	for _, ref := range refs {
		if p, ok := byID[ref.ProductID]; ok {
			p.Categories = append(p.Categories, models.CategoryRef{ID: ref.CategoryID, Name: ref.CategoryName})
		}
	}
	return products, nil
}

// quantityParam narrows q to the INTEGER column.
func quantityParam(q int) (int32, error) {
	if q < 0 || q > models.MaxQuantity {
		return 0, fmt.Errorf("%w: quantity %d out of range", productdomain.ErrInvalidProduct, q)
	}
	return int32(q), nil
}

// mapWriteError translates constraint violations into domain errors.
func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == ownerNameIndex:
			return productdomain.ErrDuplicateName
		case pgErr.Code == pgForeignKeyViolation && pgErr.ConstraintName == categoryFK:
			return productdomain.ErrUnknownCategory
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func rowToProduct(row db.ProductProduct) *models.Product {
	return &models.Product{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		Name:        models.ProductName(row.Name),
		Description: row.Description,
		Quantity:    int(row.Quantity),
		Categories:  []models.CategoryRef{},
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func snapshot(p *models.Product) domainevents.ProductSnapshot {
	cats := make([]domainevents.CategorySnapshot, len(p.Categories))
	for i, c := range p.Categories {
		cats[i] = domainevents.CategorySnapshot{ID: c.ID, Name: c.Name}
	}
	return domainevents.ProductSnapshot{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name.String(),
		Description: p.Description,
		Quantity:    p.Quantity,
		Categories:  cats,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
