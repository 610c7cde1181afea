package repository

import (
	"context"

	"github.com/logiandes/ms-inventario/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para Inventory.
// Create retorna domain.ErrDuplicate si el par (store, product) ya existe.
type InventoryRepository interface {
	Create(ctx context.Context, inv *entity.Inventory) error
	CountByStore(ctx context.Context, storeID string) (int, error)
}
