package forecast

import (
	"context"

	"github.com/ssmai/stock-forecast-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que borrar+insertar previsiones y
// actualizar ideal_stock se confirmen o reviertan juntos: nunca quedan
// previsiones a medio escribir.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		forecastRepo repository.ForecastRepository,
	) error) error
}
