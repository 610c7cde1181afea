package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/logiandes/ms-inventario/internal/domain"
	"github.com/logiandes/ms-inventario/internal/domain/entity"
	"github.com/logiandes/ms-inventario/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto bajo su categoría.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, category_id, name, description, sku, barcode, unit_price, stock, level_reorder,
			date_entry, expiration_date, weight_kg, length_cm, width_cm, height_cm, is_fragile,
			requires_refrigeration, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CategoryID, p.Name, p.Description, p.SKU, p.Barcode, p.UnitPrice, p.Stock, p.LevelReorder,
		p.DateEntry, p.ExpirationDate, p.WeightKg, p.LengthCm, p.WidthCm, p.HeightCm, p.IsFragile,
		p.RequiresRefrigeration, p.Status, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT id, category_id, name, description, sku, barcode, unit_price, stock, level_reorder,
			date_entry, expiration_date, weight_kg, length_cm, width_cm, height_cm, is_fragile,
			requires_refrigeration, status, created_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.SKU, &p.Barcode, &p.UnitPrice, &p.Stock, &p.LevelReorder,
		&p.DateEntry, &p.ExpirationDate, &p.WeightKg, &p.LengthCm, &p.WidthCm, &p.HeightCm, &p.IsFragile,
		&p.RequiresRefrigeration, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}
