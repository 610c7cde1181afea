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

var _ repository.CityRepository = (*CityRepo)(nil)

// CityRepo implementación del puerto CityRepository sobre PostgreSQL (usable con pool o tx).
type CityRepo struct {
	q Querier
}

// NewCityRepository construye el adaptador de persistencia para municipios. Pasar pool o tx (Querier).
func NewCityRepository(q Querier) *CityRepo {
	return &CityRepo{q: q}
}

// GetByDepartamentAndName obtiene un municipio por su clave natural. (nil, nil) si no existe.
func (r *CityRepo) GetByDepartamentAndName(ctx context.Context, departamentID, name string) (*entity.City, error) {
	query := `SELECT id, name, departament_id, created_at FROM cities WHERE departament_id = $1 AND name = $2`
	var c entity.City
	err := r.q.QueryRow(ctx, query, departamentID, name).Scan(&c.ID, &c.Name, &c.DepartamentID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get city: %w", err)
	}
	return &c, nil
}

// ListByDepartamentIDs carga en bloque los municipios de los departamentos indicados.
func (r *CityRepo) ListByDepartamentIDs(ctx context.Context, departamentIDs []string) ([]*entity.City, error) {
	if len(departamentIDs) == 0 {
		return nil, nil
	}
	query := `SELECT id, name, departament_id, created_at FROM cities WHERE departament_id = ANY($1)`
	rows, err := r.q.Query(ctx, query, departamentIDs)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()
	var list []*entity.City
	for rows.Next() {
		var c entity.City
		if err := rows.Scan(&c.ID, &c.Name, &c.DepartamentID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Create persiste un nuevo municipio. Retorna domain.ErrDuplicate si
// (departamento, nombre) ya existe. ON CONFLICT DO NOTHING mantiene viva la
// transacción para que el llamador re-consulte la fila ganadora.
func (r *CityRepo) Create(ctx context.Context, c *entity.City) error {
	query := `INSERT INTO cities (id, name, departament_id, created_at) VALUES ($1, $2, $3, $4) ON CONFLICT (departament_id, name) DO NOTHING`
	cmd, err := r.q.Exec(ctx, query, c.ID, c.Name, c.DepartamentID, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert city: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrDuplicate
	}
	return nil
}

// CreateBatch inserta varios municipios en un solo round-trip (pgx.Batch).
func (r *CityRepo) CreateBatch(ctx context.Context, cs []*entity.City) error {
	if len(cs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, c := range cs {
		batch.Queue(`INSERT INTO cities (id, name, departament_id, created_at) VALUES ($1, $2, $3, $4) ON CONFLICT (departament_id, name) DO NOTHING`,
			c.ID, c.Name, c.DepartamentID, c.CreatedAt)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range cs {
		cmd, err := br.Exec()
		if err != nil {
			return fmt.Errorf("batch insert cities: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrDuplicate
		}
	}
	return nil
}
