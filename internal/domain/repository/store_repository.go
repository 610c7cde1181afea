package repository

import (
	"context"

	"github.com/logiandes/ms-inventario/internal/domain/entity"
)

// StoreRepository define el puerto de persistencia para Store.
// GetByCode devuelve (nil, nil) si no existe un almacén con ese código.
type StoreRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Store, error)
	Create(ctx context.Context, s *entity.Store) error
}
