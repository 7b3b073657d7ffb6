package repository

import (
	"context"

	"github.com/ssmai/stock-forecast-api/internal/domain/entity"
)

// ForecastRepository define el puerto sobre las filas de previsión persistidas.
// El conjunto de un producto se reemplaza completo en cada corrida.
type ForecastRepository interface {
	// ReplaceForProduct borra todas las filas del producto e inserta las nuevas.
	// Debe ejecutarse dentro de la transacción de la corrida para que ningún
	// lector vea estados mixtos ni el vacío transitorio.
	ReplaceForProduct(ctx context.Context, productID string, rows []entity.Forecast) error
	// ListByProduct filas de previsión ordenadas ascendente por fecha.
	ListByProduct(ctx context.Context, productID string) ([]entity.Forecast, error)
}
