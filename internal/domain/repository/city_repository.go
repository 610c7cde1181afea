package repository

import (
	"context"

	"github.com/logiandes/ms-inventario/internal/domain/entity"
)

// CityRepository define el puerto de persistencia para City.
// La clave natural es (departamentID, name).
type CityRepository interface {
	GetByDepartamentAndName(ctx context.Context, departamentID, name string) (*entity.City, error)
	ListByDepartamentIDs(ctx context.Context, departamentIDs []string) ([]*entity.City, error)
	Create(ctx context.Context, c *entity.City) error
	CreateBatch(ctx context.Context, cs []*entity.City) error
}
