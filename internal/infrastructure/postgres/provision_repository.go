package postgres

import (
	"context"
	"fmt"

	"github.com/logiandes/ms-inventario/internal/domain"
	"github.com/logiandes/ms-inventario/internal/domain/entity"
	"github.com/logiandes/ms-inventario/internal/domain/repository"
)

var _ repository.ProvisionRepository = (*ProvisionRepo)(nil)

// ProvisionRepo implementación del puerto ProvisionRepository sobre PostgreSQL (usable con pool o tx).
type ProvisionRepo struct {
	q Querier
}

// NewProvisionRepository construye el adaptador de persistencia para provisiones. Pasar pool o tx (Querier).
func NewProvisionRepository(q Querier) *ProvisionRepo {
	return &ProvisionRepo{q: q}
}

// Create persiste la asociación producto-proveedor.
func (r *ProvisionRepo) Create(ctx context.Context, p *entity.Provision) error {
	query := `INSERT INTO provisions (id, product_id, supplier_id, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, p.ID, p.ProductID, p.SupplierID, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert provision: %w", err)
	}
	return nil
}
