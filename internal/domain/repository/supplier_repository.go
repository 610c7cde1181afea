package repository

import (
	"context"

	"github.com/logiandes/ms-inventario/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	GetByName(ctx context.Context, name string) (*entity.Supplier, error)
	Create(ctx context.Context, s *entity.Supplier) error
}
