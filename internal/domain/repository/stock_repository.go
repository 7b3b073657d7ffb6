package repository

import (
	"context"

	"github.com/ssmai/stock-forecast-api/internal/domain/entity"
)

// StockDeviationRow fila cruda del join stock × producto para el ranking de
// desviaciones (solo filas con ideal_stock calculado).
type StockDeviationRow struct {
	Stock       entity.Stock
	ProductName string
	Category    string
}

// StockRepository define el puerto para la fila única de stock por producto.
// QuantityAvailable y AverageCost los escribe el registro de movimientos;
// IdealStock lo escribe solo el motor de previsión (escrituras disjuntas para
// no pisarse entre ambos caminos).
type StockRepository interface {
	Create(ctx context.Context, stock *entity.Stock) error
	GetByProductID(ctx context.Context, productID string) (*entity.Stock, error)
	// GetByProductIDForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de una tx.
	GetByProductIDForUpdate(ctx context.Context, productID string) (*entity.Stock, error)
	// UpdateQuantities actualiza cantidad disponible y costo promedio (camino de movimientos).
	UpdateQuantities(ctx context.Context, stock *entity.Stock) error
	// UpdateIdealStock sobreescribe ideal_stock sin tocar cantidades (camino de previsión).
	UpdateIdealStock(ctx context.Context, productID string, idealStock float64) error
	// ListWithIdealByCompany stocks de la empresa con ideal_stock no nulo,
	// con nombre y categoría del producto (insumo del ranking de desviaciones).
	ListWithIdealByCompany(ctx context.Context, companyID string) ([]StockDeviationRow, error)
}
