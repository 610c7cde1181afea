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

var _ repository.DepartamentRepository = (*DepartamentRepo)(nil)

// DepartamentRepo implementación del puerto DepartamentRepository sobre PostgreSQL (usable con pool o tx).
type DepartamentRepo struct {
	q Querier
}

// NewDepartamentRepository construye el adaptador de persistencia para departamentos. Pasar pool o tx (Querier).
func NewDepartamentRepository(q Querier) *DepartamentRepo {
	return &DepartamentRepo{q: q}
}

// GetByName obtiene un departamento por nombre exacto. (nil, nil) si no existe.
func (r *DepartamentRepo) GetByName(ctx context.Context, name string) (*entity.Departament, error) {
	query := `SELECT id, name, created_at FROM departaments WHERE name = $1`
	var d entity.Departament
	err := r.q.QueryRow(ctx, query, name).Scan(&d.ID, &d.Name, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get departament: %w", err)
	}
	return &d, nil
}

// ListByNames carga en bloque los departamentos cuyo nombre esté en el conjunto.
func (r *DepartamentRepo) ListByNames(ctx context.Context, names []string) ([]*entity.Departament, error) {
	if len(names) == 0 {
		return nil, nil
	}
	query := `SELECT id, name, created_at FROM departaments WHERE name = ANY($1)`
	rows, err := r.q.Query(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("list departaments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Departament
	for rows.Next() {
		var d entity.Departament
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan departament: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Create persiste un nuevo departamento. Retorna domain.ErrDuplicate si el
// nombre ya existe. Se usa ON CONFLICT DO NOTHING para no abortar la
// transacción en curso: el llamador puede re-consultar la fila ganadora.
func (r *DepartamentRepo) Create(ctx context.Context, d *entity.Departament) error {
	query := `INSERT INTO departaments (id, name, created_at) VALUES ($1, $2, $3) ON CONFLICT (name) DO NOTHING`
	cmd, err := r.q.Exec(ctx, query, d.ID, d.Name, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert departament: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrDuplicate
	}
	return nil
}

// CreateBatch inserta varios departamentos en un solo round-trip (pgx.Batch).
// Si algún nombre ya existía retorna domain.ErrDuplicate para que el scope
// que lo contiene haga rollback y la corrida se repita sin estado a medias.
func (r *DepartamentRepo) CreateBatch(ctx context.Context, ds []*entity.Departament) error {
	if len(ds) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, d := range ds {
		batch.Queue(`INSERT INTO departaments (id, name, created_at) VALUES ($1, $2, $3) ON CONFLICT (name) DO NOTHING`,
			d.ID, d.Name, d.CreatedAt)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range ds {
		cmd, err := br.Exec()
		if err != nil {
			return fmt.Errorf("batch insert departaments: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrDuplicate
		}
	}
	return nil
}
