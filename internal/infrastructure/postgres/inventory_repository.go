package postgres

import (
	"context"
	"fmt"

	"github.com/logiandes/ms-inventario/internal/domain"
	"github.com/logiandes/ms-inventario/internal/domain/entity"
	"github.com/logiandes/ms-inventario/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de persistencia para inventarios. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create persiste el vínculo store-product. Retorna domain.ErrDuplicate si el par ya existe.
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	query := `INSERT INTO inventories (id, store_id, product_id, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, inv.ID, inv.StoreID, inv.ProductID, inv.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// CountByStore cuenta los registros de inventario de un almacén.
// Un almacén solo puede eliminarse cuando este conteo es cero.
func (r *InventoryRepo) CountByStore(ctx context.Context, storeID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventories WHERE store_id = $1`, storeID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count inventories: %w", err)
	}
	return n, nil
}
