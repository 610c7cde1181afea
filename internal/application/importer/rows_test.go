package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateDMY_FormatoDiaMesAnio(t *testing.T) {
	got, err := parseDateDMY("15/03/2024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), got)

	// Sin ceros a la izquierda también es válido
	got, err = parseDateDMY("2/1/2023")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDateDMY_Invalida(t *testing.T) {
	_, err := parseDateDMY("2024-03-15")
	assert.Error(t, err, "formato ISO no es aceptado")

	_, err = parseDateDMY("")
	assert.Error(t, err)
}

func TestParseDimensions(t *testing.T) {
	cases := []struct {
		in      string
		l, w, h float64
	}{
		{"10x5x3", 10, 5, 3},
		{"10.5x5x3.25", 10.5, 5, 3.25},
		{"10x5", 10, 5, 0},       // componente ausente vale 0
		{"10", 10, 0, 0},
		{"axbxc", 0, 0, 0},       // no numérico vale 0, no invalida
		{"10x x3", 10, 0, 3},
		{"", 0, 0, 0},
	}
	for _, tc := range cases {
		l, w, h := parseDimensions(tc.in)
		assert.Equal(t, tc.l, l, "largo de %q", tc.in)
		assert.Equal(t, tc.w, w, "ancho de %q", tc.in)
		assert.Equal(t, tc.h, h, "alto de %q", tc.in)
	}
}

func TestParseBoolCell(t *testing.T) {
	assert.True(t, parseBoolCell("true"))
	assert.True(t, parseBoolCell("TRUE"))
	assert.True(t, parseBoolCell(" True "))
	assert.False(t, parseBoolCell("false"))
	assert.False(t, parseBoolCell("si"))
	assert.False(t, parseBoolCell("1"))
	assert.False(t, parseBoolCell(""))
}

func TestStoreRow_MissingFields(t *testing.T) {
	row := validStoreRow()
	assert.Empty(t, row.MissingFields())

	row.Email = ""
	row.Capacity = ""
	missing := row.MissingFields()
	assert.ElementsMatch(t, []string{"email", "capacidad_m2"}, missing)
}

func TestProductRow_MissingFields_BooleanosFalsePresentes(t *testing.T) {
	row := validProductRow()
	assert.Empty(t, row.MissingFields())

	// "false" cuenta como presente; solo la cadena vacía falta
	row.IsFragile = "false"
	assert.Empty(t, row.MissingFields())

	row.IsFragile = ""
	assert.Contains(t, row.MissingFields(), "es_fragil")
}

func TestProductRow_MissingFields_OpcionalesNoCuentan(t *testing.T) {
	row := validProductRow()
	row.ExpirationDate = ""
	row.SupplierRef = ""
	assert.Empty(t, row.MissingFields(),
		"fecha_vencimiento e id_proveedor son opcionales")
}

func validStoreRow() StoreRow {
	return StoreRow{
		Code:        "ALM001",
		Name:        "Almacén Central",
		Address:     "Calle 10 # 5-20",
		City:        "Manizales",
		Departament: "Caldas",
		Country:     "Colombia",
		PostalCode:  "170001",
		Latitude:    "5.0689",
		Longitude:   "-75.5174",
		Manager:     "Laura Gómez",
		Phone:       "3001234567",
		Email:       "laura.gomez@logiandes.com",
		Capacity:    "1200",
		State:       "activo",
	}
}

func validProductRow() ProductRow {
	return ProductRow{
		ProductID:             "PRD001",
		StoreCode:             "ALM001",
		Name:                  "Café tostado 500g",
		Category:              "Alimentos",
		Description:           "Café de origen regional",
		SKU:                   "CAF-500",
		Barcode:               "7701234567890",
		UnitPrice:             "18500.50",
		Stock:                 "40",
		LevelReorder:          "10",
		LastRestock:           "10/02/2024",
		WeightKg:              "0.5",
		Dimensions:            "20x10x8",
		IsFragile:             "false",
		RequiresRefrigeration: "false",
		Status:                "activo",
		ExpirationDate:        "10/02/2025",
		SupplierRef:           "PROV01",
	}
}
