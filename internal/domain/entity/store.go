package entity

import "time"

// Store almacén físico. Code es la clave natural del negocio (id_almacen del
// CSV) y es la que garantiza idempotencia al reimportar; el importador nunca
// la modifica después de creada.
type Store struct {
	ID         string
	Code       string
	Name       string
	Address    string
	PostalCode string
	Longitude  float64
	Latitude   float64
	Capacity   int // m², debe ser > 0
	State      string
	CityID     string
	UserID     string // identidad del gerente en ms-security
	CreatedAt  time.Time
}
