package repository

import (
	"context"

	"github.com/ssmai/stock-forecast-api/internal/domain/entity"
)

// MovementRepository define el puerto sobre el ledger append-only de movimientos.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByProduct devuelve todos los movimientos de un producto ordenados
	// ascendente por fecha (insumo del agregador diario).
	ListByProduct(ctx context.Context, productID string) ([]entity.StockMovement, error)
	// ListByProductPaged listado paginado para la API de consulta.
	ListByProductPaged(ctx context.Context, productID string, limit, offset int) ([]entity.StockMovement, error)
	// ProductIDsWithMovements IDs de productos de la empresa con al menos un
	// movimiento (los candidatos de la corrida batch).
	ProductIDsWithMovements(ctx context.Context, companyID string) ([]string, error)
}
