package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/logiandes/ms-inventario/internal/application/importer"
)

// Ensure TxRunner implements importer.TxRunner.
var _ importer.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Cada Run toma una conexión del pool, la ata a una transacción y la devuelve
// siempre al salir: commit si fn retorna nil, rollback en cualquier otro caso.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos *importer.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := &importer.TxRepos{
		Departaments: NewDepartamentRepository(tx),
		Cities:       NewCityRepository(tx),
		Stores:       NewStoreRepository(tx),
		Categories:   NewCategoryRepository(tx),
		Suppliers:    NewSupplierRepository(tx),
		Products:     NewProductRepository(tx),
		Provisions:   NewProvisionRepository(tx),
		Inventories:  NewInventoryRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
