package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category agrupación de productos; identidad por nombre, creada perezosamente
// cuando una fila de producto la referencia.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Product producto del catálogo. Pertenece a exactamente una categoría.
// ExpirationDate por defecto es DateEntry cuando el CSV no trae vencimiento.
type Product struct {
	ID                    string
	CategoryID            string
	Name                  string
	Description           string
	SKU                   string
	Barcode               string
	UnitPrice             decimal.Decimal
	Stock                 int
	LevelReorder          int
	DateEntry             time.Time
	ExpirationDate        time.Time
	WeightKg              float64
	LengthCm              float64
	WidthCm               float64
	HeightCm              float64
	IsFragile             bool
	RequiresRefrigeration bool
	Status                string
	CreatedAt             time.Time
}

// Supplier proveedor; identidad por nombre.
type Supplier struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Provision asociación producto-proveedor. Solo existe cuando la fila de
// producto trae un id_proveedor no vacío.
type Provision struct {
	ID         string
	ProductID  string
	SupplierID string
	CreatedAt  time.Time
}

// Inventory vincula exactamente un Store con un Product; es el paso terminal
// de la importación de productos.
type Inventory struct {
	ID        string
	StoreID   string
	ProductID string
	CreatedAt time.Time
}
