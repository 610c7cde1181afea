package repository

import (
	"context"

	"github.com/logiandes/ms-inventario/internal/domain/entity"
)

// DepartamentRepository define el puerto de persistencia para Departament (DIP).
// Los Get* devuelven (nil, nil) cuando no hay coincidencia.
type DepartamentRepository interface {
	GetByName(ctx context.Context, name string) (*entity.Departament, error)
	ListByNames(ctx context.Context, names []string) ([]*entity.Departament, error)
	Create(ctx context.Context, d *entity.Departament) error
	CreateBatch(ctx context.Context, ds []*entity.Departament) error
}
