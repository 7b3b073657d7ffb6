package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryRequest registra una entrada de stock. El precio unitario lo aporta el
// caller; el costo promedio se recalcula con él.
type EntryRequest struct {
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ExitRequest registra una salida de stock. La salida se valora al costo
// promedio vigente, por eso no lleva precio.
type ExitRequest struct {
	Quantity int `json:"quantity"`
}

// MovementResponse un movimiento del ledger.
type MovementResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Type       string          `json:"type"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Total      decimal.Decimal `json:"total"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// StockResponse la fila de stock de un producto.
type StockResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	QuantityAvailable int             `json:"quantity_available"`
	AverageCost       decimal.Decimal `json:"average_cost"`
	IdealStock        *float64        `json:"ideal_stock"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CreateProductRequest alta de producto (crea también su fila de stock en cero).
type CreateProductRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// CreateCompanyRequest alta de empresa.
type CreateCompanyRequest struct {
	Name   string `json:"name"`
	Branch string `json:"branch"`
}
