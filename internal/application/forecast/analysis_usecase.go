package forecast

import (
	"context"

	"github.com/ssmai/stock-forecast-api/internal/application/dto"
	"github.com/ssmai/stock-forecast-api/internal/domain"
	"github.com/ssmai/stock-forecast-api/internal/domain/forecasting"
	"github.com/ssmai/stock-forecast-api/internal/domain/repository"
)

// AnalysisUseCase consultas de solo lectura sobre la previsión persistida:
// política de inventario bajo demanda y datos para el gráfico histórico+previsión.
type AnalysisUseCase struct {
	movRepo      repository.MovementRepository
	stockRepo    repository.StockRepository
	forecastRepo repository.ForecastRepository
	horizonDays  int
}

// NewAnalysisUseCase construye el caso de uso de análisis.
func NewAnalysisUseCase(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	forecastRepo repository.ForecastRepository,
	horizonDays int,
) *AnalysisUseCase {
	return &AnalysisUseCase{
		movRepo:      movRepo,
		stockRepo:    stockRepo,
		forecastRepo: forecastRepo,
		horizonDays:  horizonDays,
	}
}

// GetPolicy calcula la política de inventario con las últimas horizonDays
// filas de previsión persistidas y el stock disponible actual. No persiste
// nada: refleja el ideal vigente contra el disponible de hoy, aunque el
// disponible haya cambiado desde la última corrida.
// ErrForecastNotFound si el producto no tiene previsión persistida.
func (uc *AnalysisUseCase) GetPolicy(ctx context.Context, productID string, serviceLevel float64, leadTimeDays int) (*dto.PolicyResponse, error) {
	rows, err := uc.forecastRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrForecastNotFound
	}
	if len(rows) > uc.horizonDays {
		rows = rows[len(rows)-uc.horizonDays:]
	}

	stock, err := uc.stockRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}

	predicted := make([]float64, len(rows))
	for i, r := range rows {
		predicted[i] = r.PredictedExit
	}
	policy, err := forecasting.CalculatePolicy(predicted, stock.QuantityAvailable, serviceLevel, leadTimeDays)
	if err != nil {
		return nil, err
	}
	return &dto.PolicyResponse{
		DiaryAverage:       policy.DiaryAverage,
		DemandOverLeadTime: policy.DemandOverLeadTime,
		SafetyStock:        policy.SafetyStock,
		IdealStock:         policy.IdealStock,
		ReorderQuantity:    policy.ReorderQuantity,
	}, nil
}

// GetGraph arma la serie para graficar: el histórico denso de salidas diarias
// hasta la última fecha con movimientos, y las filas de previsión estrictamente
// posteriores a esa fecha.
func (uc *AnalysisUseCase) GetGraph(ctx context.Context, productID string) (*dto.GraphResponse, error) {
	forecasts, err := uc.forecastRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(forecasts) == 0 {
		return nil, domain.ErrForecastNotFound
	}

	movements, err := uc.movRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(movements) == 0 {
		return nil, domain.ErrNoHistory
	}

	series := forecasting.Densify(forecasting.AggregateDaily(movements))
	lastObserved := series[len(series)-1].Date

	resp := &dto.GraphResponse{
		Historical: make([]dto.HistoricalPointDTO, 0, len(series)),
		Forecast:   make([]dto.ForecastPointDTO, 0, len(forecasts)),
	}
	for _, p := range series {
		resp.Historical = append(resp.Historical, dto.HistoricalPointDTO{Date: p.Date, ExitQuantity: p.ExitQty})
	}
	for _, f := range forecasts {
		if !forecasting.Day(f.Date).After(lastObserved) {
			continue
		}
		resp.Forecast = append(resp.Forecast, dto.ForecastPointDTO{Date: f.Date, PredictedExit: f.PredictedExit})
	}
	return resp, nil
}
