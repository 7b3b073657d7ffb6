package entity

import "time"

// Product representa un producto del inventario de una empresa.
// Un producto tiene exactamente un registro de Stock y cero o más movimientos
// y filas de previsión.
type Product struct {
	ID        string
	CompanyID string
	Name      string
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
