package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ssmai/stock-forecast-api/internal/domain/entity"
	"github.com/ssmai/stock-forecast-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, product_id, quantity_available, average_cost, ideal_stock, created_at, updated_at`

// Create persiste la fila de stock inicial de un producto (ideal_stock nulo).
func (r *StockRepo) Create(ctx context.Context, stock *entity.Stock) error {
	query := `
		INSERT INTO stock (id, product_id, quantity_available, average_cost, ideal_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		stock.ID, stock.ProductID, stock.QuantityAvailable, stock.AverageCost,
		stock.IdealStock, stock.CreatedAt, stock.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

// GetByProductID obtiene el stock de un producto.
func (r *StockRepo) GetByProductID(ctx context.Context, productID string) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE product_id = $1`
	return r.scanOne(ctx, query, productID)
}

// GetByProductIDForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE).
// El lock serializa previsión y registro de movimientos sobre la misma fila.
func (r *StockRepo) GetByProductIDForUpdate(ctx context.Context, productID string) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE product_id = $1 FOR UPDATE`
	return r.scanOne(ctx, query, productID)
}

func (r *StockRepo) scanOne(ctx context.Context, query, productID string) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, productID).Scan(
		&s.ID, &s.ProductID, &s.QuantityAvailable, &s.AverageCost,
		&s.IdealStock, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// UpdateQuantities actualiza cantidad disponible y costo promedio (camino de
// movimientos; no toca ideal_stock).
func (r *StockRepo) UpdateQuantities(ctx context.Context, stock *entity.Stock) error {
	query := `
		UPDATE stock
		SET quantity_available = $2, average_cost = $3, updated_at = now()
		WHERE product_id = $1`
	tag, err := r.q.Exec(ctx, query, stock.ProductID, stock.QuantityAvailable, stock.AverageCost)
	if err != nil {
		return fmt.Errorf("update stock quantities: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock quantities: fila inexistente para producto %s", stock.ProductID)
	}
	return nil
}

// UpdateIdealStock sobreescribe ideal_stock (camino de previsión; no toca cantidades).
func (r *StockRepo) UpdateIdealStock(ctx context.Context, productID string, idealStock float64) error {
	query := `
		UPDATE stock
		SET ideal_stock = $2, updated_at = now()
		WHERE product_id = $1`
	tag, err := r.q.Exec(ctx, query, productID, idealStock)
	if err != nil {
		return fmt.Errorf("update ideal stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update ideal stock: fila inexistente para producto %s", productID)
	}
	return nil
}

// ListWithIdealByCompany stocks de la empresa con ideal_stock calculado, con
// nombre y categoría del producto. Insumo de solo lectura del ranking de desviaciones.
func (r *StockRepo) ListWithIdealByCompany(ctx context.Context, companyID string) ([]repository.StockDeviationRow, error) {
	query := `
		SELECT s.id, s.product_id, s.quantity_available, s.average_cost, s.ideal_stock,
		       s.created_at, s.updated_at, p.name, p.category
		FROM stock s
		JOIN products p ON p.id = s.product_id
		WHERE p.company_id = $1 AND s.ideal_stock IS NOT NULL`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list stock with ideal: %w", err)
	}
	defer rows.Close()

	var list []repository.StockDeviationRow
	for rows.Next() {
		var row repository.StockDeviationRow
		if err := rows.Scan(
			&row.Stock.ID, &row.Stock.ProductID, &row.Stock.QuantityAvailable,
			&row.Stock.AverageCost, &row.Stock.IdealStock,
			&row.Stock.CreatedAt, &row.Stock.UpdatedAt,
			&row.ProductName, &row.Category,
		); err != nil {
			return nil, fmt.Errorf("scan stock deviation row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
