package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/logiandes/ms-inventario/pkg/csvtext"
)

// Filas tipadas por tipo de archivo. El CSV llega como mapas sueltos; aquí se
// fija la forma de cada registro y la enumeración explícita de campos
// requeridos, de modo que la validación falla campo por campo y no por acceso
// dinámico.

// GeoRow fila del archivo de jerarquía departamento/municipio.
type GeoRow struct {
	Departamento string
	Municipio    string
}

func geoRowFrom(rec csvtext.Record) GeoRow {
	return GeoRow{
		Departamento: rec["DEPARTAMENTO"],
		Municipio:    rec["MUNICIPIO"],
	}
}

// StoreRow fila del archivo de tiendas. Todos los campos son requeridos.
type StoreRow struct {
	Code        string // id_almacen, clave natural
	Name        string
	Address     string
	City        string
	Departament string
	Country     string
	PostalCode  string
	Latitude    string
	Longitude   string
	Manager     string
	Phone       string
	Email       string
	Capacity    string // capacidad_m2
	State       string
}

func storeRowFrom(rec csvtext.Record) StoreRow {
	return StoreRow{
		Code:        rec["id_almacen"],
		Name:        rec["nombre_almacen"],
		Address:     rec["direccion"],
		City:        rec["ciudad"],
		Departament: rec["departamento"],
		Country:     rec["pais"],
		PostalCode:  rec["codigo_postal"],
		Latitude:    rec["latitud"],
		Longitude:   rec["longitud"],
		Manager:     rec["gerente"],
		Phone:       rec["telefono"],
		Email:       rec["email"],
		Capacity:    rec["capacidad_m2"],
		State:       rec["estado"],
	}
}

// MissingFields enumera los campos requeridos que llegaron vacíos.
func (r StoreRow) MissingFields() []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"id_almacen", r.Code},
		{"nombre_almacen", r.Name},
		{"direccion", r.Address},
		{"ciudad", r.City},
		{"departamento", r.Departament},
		{"pais", r.Country},
		{"codigo_postal", r.PostalCode},
		{"latitud", r.Latitude},
		{"longitud", r.Longitude},
		{"gerente", r.Manager},
		{"telefono", r.Phone},
		{"email", r.Email},
		{"capacidad_m2", r.Capacity},
		{"estado", r.State},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// ProductRow fila del archivo de productos. fecha_vencimiento e id_proveedor
// son opcionales; es_fragil y requiere_refrigeracion aceptan "false" como
// valor presente (la ausencia solo aplica a la cadena vacía).
type ProductRow struct {
	ProductID             string // id_producto, solo para diagnóstico
	StoreCode             string // id_almacen
	Name                  string
	Category              string
	Description           string
	SKU                   string
	Barcode               string
	UnitPrice             string
	Stock                 string
	LevelReorder          string
	LastRestock           string // ultima_reposicion, DD/MM/YYYY
	WeightKg              string
	Dimensions            string // dimensiones_cm, "LxWxH"
	IsFragile             string
	RequiresRefrigeration string
	Status                string
	ExpirationDate        string // opcional
	SupplierRef           string // opcional
}

func productRowFrom(rec csvtext.Record) ProductRow {
	return ProductRow{
		ProductID:             rec["id_producto"],
		StoreCode:             rec["id_almacen"],
		Name:                  rec["nombre_producto"],
		Category:              rec["categoria"],
		Description:           rec["descripcion"],
		SKU:                   rec["sku"],
		Barcode:               rec["codigo_barras"],
		UnitPrice:             rec["precio_unitario"],
		Stock:                 rec["cantidad_stock"],
		LevelReorder:          rec["nivel_reorden"],
		LastRestock:           rec["ultima_reposicion"],
		WeightKg:              rec["peso_kg"],
		Dimensions:            rec["dimensiones_cm"],
		IsFragile:             rec["es_fragil"],
		RequiresRefrigeration: rec["requiere_refrigeracion"],
		Status:                rec["estado"],
		ExpirationDate:        rec["fecha_vencimiento"],
		SupplierRef:           rec["id_proveedor"],
	}
}

// MissingFields enumera los campos requeridos que llegaron vacíos. Los campos
// booleanos cuentan como presentes con cualquier valor no vacío ("false" es válido).
func (r ProductRow) MissingFields() []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"id_producto", r.ProductID},
		{"id_almacen", r.StoreCode},
		{"nombre_producto", r.Name},
		{"categoria", r.Category},
		{"descripcion", r.Description},
		{"sku", r.SKU},
		{"codigo_barras", r.Barcode},
		{"precio_unitario", r.UnitPrice},
		{"cantidad_stock", r.Stock},
		{"nivel_reorden", r.LevelReorder},
		{"ultima_reposicion", r.LastRestock},
		{"peso_kg", r.WeightKg},
		{"dimensiones_cm", r.Dimensions},
		{"es_fragil", r.IsFragile},
		{"requiere_refrigeracion", r.RequiresRefrigeration},
		{"estado", r.Status},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// parseDateDMY interpreta fechas DD/MM/YYYY del CSV.
func parseDateDMY(s string) (time.Time, error) {
	t, err := time.Parse("2/1/2006", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return t, nil
}

// parseDimensions separa "LxWxH" en largo, ancho y alto. Un componente ausente
// o no numérico vale 0 en lugar de invalidar la fila.
func parseDimensions(s string) (length, width, height float64) {
	parts := strings.Split(s, "x")
	dims := [3]float64{}
	for i := 0; i < len(parts) && i < 3; i++ {
		if v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64); err == nil {
			dims[i] = v
		}
	}
	return dims[0], dims[1], dims[2]
}

// parseBoolCell interpreta los booleanos del CSV: solo "true" (sin importar
// mayúsculas) es verdadero; cualquier otro valor es falso.
func parseBoolCell(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
