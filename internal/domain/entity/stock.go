package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa el estado actual de inventario de un producto (una fila por producto).
// QuantityAvailable lo muta solo el registro de movimientos; IdealStock lo escribe
// solo el motor de previsión y es nil hasta la primera corrida exitosa.
// Cada corrida lo sobreescribe, nunca lo acumula.
type Stock struct {
	ID                string
	ProductID         string
	QuantityAvailable int
	AverageCost       decimal.Decimal
	IdealStock        *float64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
