package entity

import "time"

// Company representa una empresa dueña de productos y su inventario.
type Company struct {
	ID        string
	Name      string
	Branch    string // ramo o sector de la empresa
	CreatedAt time.Time
	UpdatedAt time.Time
}
