package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeEntry = "entry"
	MovementTypeExit  = "exit"
)

// StockMovement es un evento inmutable de entrada o salida de stock
// (ledger append-only). Total es siempre Quantity × UnitPrice.
type StockMovement struct {
	ID         string
	ProductID  string
	Type       string // entry | exit
	Quantity   int
	UnitPrice  decimal.Decimal
	Total      decimal.Decimal
	OccurredAt time.Time
	CreatedAt  time.Time
}
