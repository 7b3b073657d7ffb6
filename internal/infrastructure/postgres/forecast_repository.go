package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ssmai/stock-forecast-api/internal/domain/entity"
	"github.com/ssmai/stock-forecast-api/internal/domain/repository"
)

var _ repository.ForecastRepository = (*ForecastRepo)(nil)

// ForecastRepo implementación sobre PostgreSQL de las filas de previsión (usable con pool o tx).
type ForecastRepo struct {
	q Querier
}

// NewForecastRepository construye el adaptador. Pasar pool o tx (Querier).
func NewForecastRepository(q Querier) *ForecastRepo {
	return &ForecastRepo{q: q}
}

// ReplaceForProduct borra las filas de previsión del producto e inserta las
// nuevas en bloque (COPY). Debe invocarse dentro de la transacción de la
// corrida: delete e insert se confirman juntos o no se confirman.
func (r *ForecastRepo) ReplaceForProduct(ctx context.Context, productID string, forecasts []entity.Forecast) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM forecasts WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete forecasts: %w", err)
	}

	rows := make([][]any, 0, len(forecasts))
	for _, f := range forecasts {
		id := f.ID
		if id == "" {
			id = uuid.New().String()
		}
		rows = append(rows, []any{id, productID, f.Date, f.PredictedExit, f.CreatedAt})
	}
	_, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"forecasts"},
		[]string{"id", "product_id", "date", "predicted_exit", "created_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("bulk insert forecasts: %w", err)
	}
	return nil
}

// ListByProduct filas de previsión de un producto, ascendente por fecha.
func (r *ForecastRepo) ListByProduct(ctx context.Context, productID string) ([]entity.Forecast, error) {
	query := `
		SELECT id, product_id, date, predicted_exit, created_at
		FROM forecasts WHERE product_id = $1
		ORDER BY date ASC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list forecasts: %w", err)
	}
	defer rows.Close()

	var list []entity.Forecast
	for rows.Next() {
		var f entity.Forecast
		if err := rows.Scan(&f.ID, &f.ProductID, &f.Date, &f.PredictedExit, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan forecast: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}
