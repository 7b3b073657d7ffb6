package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ssmai/stock-forecast-api/internal/domain"
	"github.com/ssmai/stock-forecast-api/internal/domain/entity"
	"github.com/ssmai/stock-forecast-api/internal/domain/inventory"
	"github.com/ssmai/stock-forecast-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD (mismo contrato
// que el del motor de previsión; la implementación de postgres satisface ambos).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		forecastRepo repository.ForecastRepository,
	) error) error
}

// UseCase registra entradas y salidas de stock de forma transaccional con
// bloqueo de fila. Este camino muta quantity_available y average_cost; nunca
// toca ideal_stock (eso es del motor de previsión).
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
	movRepo     repository.MovementRepository
}

// NewUseCase construye el caso de uso de stock.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	movRepo repository.MovementRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, productRepo: productRepo, stockRepo: stockRepo, movRepo: movRepo}
}

// RegisterEntry registra una entrada: recalcula el costo promedio ponderado con
// el precio de la entrada, suma la cantidad y guarda el movimiento en el ledger.
func (uc *UseCase) RegisterEntry(ctx context.Context, productID string, quantity int, unitPrice decimal.Decimal) (*entity.StockMovement, error) {
	if quantity <= 0 || unitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}

	now := time.Now()
	movement := &entity.StockMovement{
		ProductID:  productID,
		Type:       entity.MovementTypeEntry,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Total:      unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		OccurredAt: now,
		CreatedAt:  now,
	}
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		_ repository.ForecastRepository,
	) error {
		stock, err := stockRepo.GetByProductIDForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if stock == nil {
			return domain.ErrNotFound
		}
		stock.AverageCost = inventory.AverageCost(stock.QuantityAvailable, stock.AverageCost, quantity, unitPrice)
		stock.QuantityAvailable += quantity
		stock.UpdatedAt = now
		if err := stockRepo.UpdateQuantities(ctx, stock); err != nil {
			return err
		}
		return movRepo.Create(ctx, movement)
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// RegisterExit registra una salida valorada al costo promedio vigente. Falla
// con ErrInsufficientStock si la cantidad disponible no alcanza.
func (uc *UseCase) RegisterExit(ctx context.Context, productID string, quantity int) (*entity.StockMovement, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}

	now := time.Now()
	var movement *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		_ repository.ForecastRepository,
	) error {
		stock, err := stockRepo.GetByProductIDForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if stock == nil {
			return domain.ErrNotFound
		}
		if stock.QuantityAvailable < quantity {
			return domain.ErrInsufficientStock
		}
		stock.QuantityAvailable -= quantity
		stock.UpdatedAt = now
		if err := stockRepo.UpdateQuantities(ctx, stock); err != nil {
			return err
		}
		movement = &entity.StockMovement{
			ProductID:  productID,
			Type:       entity.MovementTypeExit,
			Quantity:   quantity,
			UnitPrice:  stock.AverageCost,
			Total:      stock.AverageCost.Mul(decimal.NewFromInt(int64(quantity))),
			OccurredAt: now,
			CreatedAt:  now,
		}
		return movRepo.Create(ctx, movement)
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// GetStock devuelve la fila de stock del producto.
func (uc *UseCase) GetStock(ctx context.Context, productID string) (*entity.Stock, error) {
	stock, err := uc.stockRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	return stock, nil
}

// ListMovements listado paginado del ledger de un producto.
func (uc *UseCase) ListMovements(ctx context.Context, productID string, limit, offset int) ([]entity.StockMovement, error) {
	if err := uc.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	return uc.movRepo.ListByProductPaged(ctx, productID, limit, offset)
}

func (uc *UseCase) ensureProduct(ctx context.Context, productID string) error {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return nil
}
