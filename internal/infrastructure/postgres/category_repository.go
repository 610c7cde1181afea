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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// GetByName obtiene una categoría por nombre. (nil, nil) si no existe.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	query := `SELECT id, name, created_at FROM categories WHERE name = $1`
	var c entity.Category
	err := r.q.QueryRow(ctx, query, name).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// Create persiste una nueva categoría. Retorna domain.ErrDuplicate si el
// nombre ya existe; ON CONFLICT DO NOTHING mantiene viva la transacción
// para que el llamador re-consulte la fila ganadora.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `INSERT INTO categories (id, name, created_at) VALUES ($1, $2, $3) ON CONFLICT (name) DO NOTHING`
	cmd, err := r.q.Exec(ctx, query, c.ID, c.Name, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrDuplicate
	}
	return nil
}
