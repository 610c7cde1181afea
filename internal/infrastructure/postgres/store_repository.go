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

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL (usable con pool o tx).
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador de persistencia para almacenes. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// GetByCode obtiene un almacén por su código de negocio. (nil, nil) si no existe.
func (r *StoreRepo) GetByCode(ctx context.Context, code string) (*entity.Store, error) {
	query := `
		SELECT id, code, name, address, postal_code, longitude, latitude, capacity, state, city_id, user_id, created_at
		FROM stores WHERE code = $1`
	var s entity.Store
	err := r.q.QueryRow(ctx, query, code).Scan(
		&s.ID, &s.Code, &s.Name, &s.Address, &s.PostalCode, &s.Longitude, &s.Latitude,
		&s.Capacity, &s.State, &s.CityID, &s.UserID, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store by code: %w", err)
	}
	return &s, nil
}

// Create persiste un nuevo almacén. Retorna domain.ErrDuplicate si el código ya existe.
func (r *StoreRepo) Create(ctx context.Context, s *entity.Store) error {
	query := `
		INSERT INTO stores (id, code, name, address, postal_code, longitude, latitude, capacity, state, city_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Code, s.Name, s.Address, s.PostalCode, s.Longitude, s.Latitude,
		s.Capacity, s.State, s.CityID, s.UserID, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}
