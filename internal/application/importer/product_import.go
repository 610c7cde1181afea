package importer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/logiandes/ms-inventario/internal/domain/entity"
	"github.com/logiandes/ms-inventario/pkg/csvtext"
	"github.com/logiandes/ms-inventario/pkg/logger"
)

// ProductImportUseCase importa el archivo de productos: una transacción por
// fila que crea producto, provisión opcional e inventario bajo el almacén
// referenciado por código.
type ProductImportUseCase struct {
	tx   TxRunner
	opts Options
	log  *logger.Logger
}

// NewProductImportUseCase construye el caso de uso de importación de productos.
func NewProductImportUseCase(tx TxRunner, opts Options, log *logger.Logger) *ProductImportUseCase {
	return &ProductImportUseCase{tx: tx, opts: opts, log: log}
}

// ImportProducts procesa el CSV de productos (delimitado por ';', con BOM y
// comillas relajadas) y devuelve los totales. Un error de parseo es fatal y
// detiene la operación antes de cualquier escritura.
func (uc *ProductImportUseCase) ImportProducts(ctx context.Context, data []byte) (Summary, error) {
	records, err := csvtext.Parse(data, csvtext.Options{Delimiter: ';', StripBOM: true, LazyQuotes: true})
	if err != nil {
		return Summary{}, fmt.Errorf("parsear CSV de productos: %w", err)
	}

	rows := make([]ProductRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, productRowFrom(rec))
	}
	uc.log.Info().Int("filas", len(rows)).Msg("iniciando importación de productos")

	summary := runInGroups(uc.log, len(rows), uc.opts.GroupSize, uc.opts.MaxGroups, func(groupNumber, start, end int) Summary {
		var s Summary
		for i := start; i < end; i++ {
			if uc.importProductRow(ctx, rows[i], groupNumber, i-start+1) {
				s.Created++
			} else {
				s.Skipped++
			}
		}
		return s
	})

	uc.log.Info().Int("creados", summary.Created).Int("omitidos", summary.Skipped).
		Msg("importación de productos finalizada")
	return summary, nil
}

// importProductRow aplica la unidad de trabajo de una fila de producto.
// Devuelve true solo si producto e inventario quedaron confirmados.
func (uc *ProductImportUseCase) importProductRow(ctx context.Context, row ProductRow, groupNumber, rowInGroup int) bool {
	if missing := row.MissingFields(); len(missing) > 0 {
		uc.log.Warn().Int("grupo", groupNumber).Int("fila", rowInGroup).
			Str("id_producto", row.ProductID).Strs("faltantes", missing).
			Msg("producto: faltan campos requeridos, se omite la fila")
		return false
	}

	err := uc.tx.Run(ctx, func(repos *TxRepos) error {
		// Sin almacén no hay dónde inventariar el producto.
		store, err := repos.Stores.GetByCode(ctx, row.StoreCode)
		if err != nil {
			return err
		}
		if store == nil {
			uc.log.Warn().Int("grupo", groupNumber).Int("fila", rowInGroup).
				Str("id_producto", row.ProductID).Str("id_almacen", row.StoreCode).
				Msg("producto: almacén no encontrado, se omite la fila")
			return errRowSkipped
		}

		category, err := findOrCreateCategory(ctx, repos, row.Category)
		if err != nil {
			return err
		}

		dateEntry, err := parseDateDMY(row.LastRestock)
		if err != nil {
			return err
		}
		expirationDate := dateEntry
		if row.ExpirationDate != "" {
			expirationDate, err = parseDateDMY(row.ExpirationDate)
			if err != nil {
				return err
			}
		}

		lengthCm, widthCm, heightCm := parseDimensions(row.Dimensions)

		unitPrice, err := decimal.NewFromString(row.UnitPrice)
		if err != nil {
			return fmt.Errorf("precio unitario inválido %q: %w", row.UnitPrice, err)
		}
		stock, err := strconv.Atoi(row.Stock)
		if err != nil {
			return fmt.Errorf("stock inválido %q: %w", row.Stock, err)
		}
		levelReorder, err := strconv.Atoi(row.LevelReorder)
		if err != nil {
			return fmt.Errorf("nivel de reorden inválido %q: %w", row.LevelReorder, err)
		}
		weightKg, err := strconv.ParseFloat(row.WeightKg, 64)
		if err != nil {
			return fmt.Errorf("peso inválido %q: %w", row.WeightKg, err)
		}

		product := &entity.Product{
			ID:                    uuid.NewString(),
			CategoryID:            category.ID,
			Name:                  row.Name,
			Description:           row.Description,
			SKU:                   row.SKU,
			Barcode:               row.Barcode,
			UnitPrice:             unitPrice,
			Stock:                 stock,
			LevelReorder:          levelReorder,
			DateEntry:             dateEntry,
			ExpirationDate:        expirationDate,
			WeightKg:              weightKg,
			LengthCm:              lengthCm,
			WidthCm:               widthCm,
			HeightCm:              heightCm,
			IsFragile:             parseBoolCell(row.IsFragile),
			RequiresRefrigeration: parseBoolCell(row.RequiresRefrigeration),
			Status:                row.Status,
			CreatedAt:             time.Now(),
		}
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}

		if row.SupplierRef != "" {
			supplier, err := findOrCreateSupplier(ctx, repos, row.SupplierRef)
			if err != nil {
				return err
			}
			if err := repos.Provisions.Create(ctx, &entity.Provision{
				ID:         uuid.NewString(),
				ProductID:  product.ID,
				SupplierID: supplier.ID,
				CreatedAt:  time.Now(),
			}); err != nil {
				return err
			}
		} else {
			uc.log.Warn().Int("grupo", groupNumber).Int("fila", rowInGroup).
				Str("id_producto", row.ProductID).Msg("producto: sin id_proveedor, no se crea provisión")
		}

		if err := repos.Inventories.Create(ctx, &entity.Inventory{
			ID:        uuid.NewString(),
			StoreID:   store.ID,
			ProductID: product.ID,
			CreatedAt: time.Now(),
		}); err != nil {
			return err
		}

		if total, err := repos.Inventories.CountByStore(ctx, store.ID); err == nil {
			uc.log.Debug().Str("id_almacen", row.StoreCode).Int("inventarios", total).
				Msg("producto inventariado en el almacén")
		}
		return nil
	})

	switch {
	case err == nil:
		return true
	case errors.Is(err, errRowSkipped):
		return false
	default:
		uc.log.Error().Int("grupo", groupNumber).Int("fila", rowInGroup).
			Str("id_producto", row.ProductID).Err(err).Msg("producto: error procesando la fila, se omite")
		return false
	}
}
