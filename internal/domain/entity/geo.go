package entity

import "time"

// Departament división político-administrativa de primer nivel.
// La identidad de negocio es el nombre (coincidencia exacta, sensible a mayúsculas).
type Departament struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// City municipio perteneciente a un departamento. La unicidad es por
// (DepartamentID, Name): dos departamentos pueden tener un "Centro" cada uno.
type City struct {
	ID            string
	Name          string
	DepartamentID string
	CreatedAt     time.Time
}
