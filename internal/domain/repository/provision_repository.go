package repository

import (
	"context"

	"github.com/logiandes/ms-inventario/internal/domain/entity"
)

// ProvisionRepository define el puerto de persistencia para Provision.
type ProvisionRepository interface {
	Create(ctx context.Context, p *entity.Provision) error
}
