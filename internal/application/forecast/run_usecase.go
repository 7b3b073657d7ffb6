package forecast

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ssmai/stock-forecast-api/internal/application/dto"
	"github.com/ssmai/stock-forecast-api/internal/domain"
	"github.com/ssmai/stock-forecast-api/internal/domain/entity"
	"github.com/ssmai/stock-forecast-api/internal/domain/forecasting"
	"github.com/ssmai/stock-forecast-api/internal/domain/repository"
	"github.com/ssmai/stock-forecast-api/pkg/logger"
	"github.com/ssmai/stock-forecast-api/pkg/metrics"
)

// Params parámetros de la corrida de previsión.
type Params struct {
	HorizonDays    int           // filas futuras a persistir por producto
	MinHistoryDays int           // días distintos mínimos de la serie densa para entrenar
	FitTimeout     time.Duration // tope por producto (series patológicas no bloquean el batch)
	MaxParallel    int           // productos concurrentes en la corrida batch
	ServiceLevel   float64       // nivel de servicio para el ideal_stock persistido
	LeadTimeDays   int           // lead time para el ideal_stock persistido
}

// RunUseCase ejecuta corridas de previsión: entrena el modelo por producto y
// persiste la cola del horizonte junto con el ideal_stock en una transacción
// por producto.
type RunUseCase struct {
	txRunner    TxRunner
	movRepo     repository.MovementRepository
	productRepo repository.ProductRepository
	companyRepo repository.CompanyRepository
	params      Params
	log         *logger.Logger
	mtr         *metrics.Metrics
}

// NewRunUseCase construye el caso de uso. mtr puede ser nil (tests).
func NewRunUseCase(
	txRunner TxRunner,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	params Params,
	log *logger.Logger,
	mtr *metrics.Metrics,
) *RunUseCase {
	return &RunUseCase{
		txRunner:    txRunner,
		movRepo:     movRepo,
		productRepo: productRepo,
		companyRepo: companyRepo,
		params:      params,
		log:         log,
		mtr:         mtr,
	}
}

// RunForProduct corre el ciclo completo para un producto: agrega el ledger a
// diario, densifica la serie, entrena un modelo efímero, y en una sola
// transacción reemplaza las filas de previsión y sobreescribe ideal_stock.
// Errores: ErrNotFound (producto inexistente), ErrNoHistory (cero movimientos),
// ErrInsufficientHistory (serie más corta que el mínimo configurado).
func (uc *RunUseCase) RunForProduct(ctx context.Context, productID string) error {
	started := time.Now()
	err := uc.runForProduct(ctx, productID)
	if uc.mtr != nil {
		uc.mtr.ForecastRuns.WithLabelValues(statusForErr(err)).Inc()
		uc.mtr.FitDuration.Observe(time.Since(started).Seconds())
	}
	return err
}

func (uc *RunUseCase) runForProduct(ctx context.Context, productID string) error {
	if uc.params.FitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.params.FitTimeout)
		defer cancel()
	}

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}

	movements, err := uc.movRepo.ListByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if len(movements) == 0 {
		return domain.ErrNoHistory
	}

	series := forecasting.Densify(forecasting.AggregateDaily(movements))
	if len(series) < uc.params.MinHistoryDays {
		return domain.ErrInsufficientHistory
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// Modelo efímero por producto y por corrida: sin estado compartido entre
	// corridas concurrentes.
	model := forecasting.NewModel()
	if err := model.Fit(series); err != nil {
		return err
	}
	frame, err := model.Predict(uc.params.HorizonDays)
	if err != nil {
		return err
	}
	tail := forecasting.HorizonTail(frame, uc.params.HorizonDays)

	now := time.Now()
	rows := make([]entity.Forecast, 0, len(tail))
	predicted := make([]float64, 0, len(tail))
	for _, p := range tail {
		rows = append(rows, entity.Forecast{
			ProductID:     productID,
			Date:          p.Date,
			PredictedExit: p.Point,
			CreatedAt:     now,
		})
		predicted = append(predicted, p.Point)
	}

	// Una transacción por producto: reemplazo de previsiones + ideal_stock se
	// confirman juntos; el lock de fila evita pisarse con el registro de
	// movimientos que muta quantity_available en paralelo.
	return uc.txRunner.Run(ctx, func(
		_ repository.MovementRepository,
		stockRepo repository.StockRepository,
		forecastRepo repository.ForecastRepository,
	) error {
		stock, err := stockRepo.GetByProductIDForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if stock == nil {
			return domain.ErrNotFound
		}
		if err := forecastRepo.ReplaceForProduct(ctx, productID, rows); err != nil {
			return err
		}
		policy, err := forecasting.CalculatePolicy(
			predicted, stock.QuantityAvailable, uc.params.ServiceLevel, uc.params.LeadTimeDays,
		)
		if err != nil {
			return err
		}
		return stockRepo.UpdateIdealStock(ctx, productID, policy.IdealStock)
	})
}

// RunForCompany itera los productos de la empresa con historial de movimientos
// y corre la previsión de cada uno en su propia transacción. Un producto que
// falla se reporta y no aborta la corrida; el resumen acumula por estado.
func (uc *RunUseCase) RunForCompany(ctx context.Context, companyID string) (*dto.BatchRunResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	productIDs, err := uc.movRepo.ProductIDsWithMovements(ctx, companyID)
	if err != nil {
		return nil, err
	}

	maxParallel := uc.params.MaxParallel
	if maxParallel <= 0 {
		maxParallel = 1
	}

	var mu sync.Mutex
	results := make([]dto.ProductRunResultDTO, 0, len(productIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for _, productID := range productIDs {
		productID := productID
		g.Go(func() error {
			runErr := uc.RunForProduct(gctx, productID)
			res := dto.ProductRunResultDTO{ProductID: productID, Status: statusForErr(runErr)}
			if runErr != nil {
				res.Error = runErr.Error()
				uc.log.Warn().Str("product_id", productID).Err(runErr).Msg("previsión de producto omitida o fallida")
			}
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			// No propagar: un producto fallido no cancela el resto del batch.
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &dto.BatchRunResponse{Total: len(results), Products: results}
	for _, r := range results {
		switch r.Status {
		case "ok":
			summary.Succeeded++
		case "no_history", "insufficient_history":
			summary.Skipped++
		default:
			summary.Failed++
		}
	}
	if uc.mtr != nil {
		uc.mtr.ForecastRowsSet.Set(float64(summary.Total))
	}
	uc.log.Info().
		Str("company_id", companyID).
		Int("total", summary.Total).
		Int("succeeded", summary.Succeeded).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Msg("corrida batch de previsión terminada")
	return summary, nil
}

func statusForErr(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNoHistory):
		return "no_history"
	case errors.Is(err, domain.ErrInsufficientHistory):
		return "insufficient_history"
	default:
		return "error"
	}
}
