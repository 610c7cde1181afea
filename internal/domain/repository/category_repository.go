package repository

import (
	"context"

	"github.com/logiandes/ms-inventario/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Create(ctx context.Context, c *entity.Category) error
}
