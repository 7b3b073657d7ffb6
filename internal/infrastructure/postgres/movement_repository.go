package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ssmai/stock-forecast-api/internal/domain/entity"
	"github.com/ssmai/stock-forecast-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL del ledger de movimientos (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, product_id, type, quantity, unit_price, total, occurred_at, created_at`

// Create persiste un movimiento. El ledger es append-only: no hay update ni delete.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, type, quantity, unit_price, total, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.UnitPrice, movement.Total, movement.OccurredAt, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByProduct todos los movimientos de un producto, ascendente por fecha.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE product_id = $1
		ORDER BY occurred_at ASC`
	return r.list(ctx, query, productID)
}

// ListByProductPaged listado paginado, más reciente primero.
func (r *MovementRepo) ListByProductPaged(ctx context.Context, productID string, limit, offset int) ([]entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE product_id = $1
		ORDER BY occurred_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, productID, limit, offset)
}

// ProductIDsWithMovements IDs de productos de la empresa con al menos un movimiento.
func (r *MovementRepo) ProductIDsWithMovements(ctx context.Context, companyID string) ([]string, error) {
	query := `
		SELECT DISTINCT m.product_id
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		WHERE p.company_id = $1
		ORDER BY m.product_id`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("product ids with movements: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity,
			&m.UnitPrice, &m.Total, &m.OccurredAt, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
