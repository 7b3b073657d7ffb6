package forecast

import (
	"context"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ssmai/stock-forecast-api/internal/application/dto"
	"github.com/ssmai/stock-forecast-api/internal/domain/forecasting"
	"github.com/ssmai/stock-forecast-api/internal/domain/repository"
)

// DeviationUseCase ranking de lectura de las peores desviaciones entre stock
// disponible y stock ideal de una empresa.
type DeviationUseCase struct {
	stockRepo    repository.StockRepository
	defaultLimit int
}

// NewDeviationUseCase construye el caso de uso.
func NewDeviationUseCase(stockRepo repository.StockRepository, defaultLimit int) *DeviationUseCase {
	return &DeviationUseCase{stockRepo: stockRepo, defaultLimit: defaultLimit}
}

// WorstDeviations devuelve las `limit` peores desviaciones de la empresa,
// considerando solo productos con ideal_stock calculado. Orden total:
// excedente maximal (ideal 0 con stock) primero, luego porcentajes por
// magnitud absoluta descendente, indefinidas al final. Solo lectura.
func (uc *DeviationUseCase) WorstDeviations(ctx context.Context, companyID string, limit int) ([]dto.DeviationRowDTO, error) {
	if limit <= 0 {
		limit = uc.defaultLimit
	}

	stocks, err := uc.stockRepo.ListWithIdealByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	type ranked struct {
		row repository.StockDeviationRow
		dev forecasting.Deviation
	}
	rankedRows := make([]ranked, 0, len(stocks))
	for _, s := range stocks {
		if s.Stock.IdealStock == nil {
			continue
		}
		dev := forecasting.ClassifyDeviation(s.Stock.QuantityAvailable, *s.Stock.IdealStock)
		rankedRows = append(rankedRows, ranked{row: s, dev: dev})
	}

	sort.SliceStable(rankedRows, func(i, j int) bool {
		return rankedRows[i].dev.Worse(rankedRows[j].dev)
	})
	if len(rankedRows) > limit {
		rankedRows = rankedRows[:limit]
	}

	out := make([]dto.DeviationRowDTO, 0, len(rankedRows))
	for _, r := range rankedRows {
		ideal := *r.row.Stock.IdealStock
		diffQty := int(math.Round(float64(r.row.Stock.QuantityAvailable) - ideal))
		cashLoss := decimal.NewFromInt(int64(diffQty)).Mul(r.row.Stock.AverageCost)

		out = append(out, dto.DeviationRowDTO{
			Indicators: dto.DeviationIndicatorsDTO{
				Kind:               r.dev.Kind.String(),
				DifferencePercent:  r.dev.Magnitude() * sign(diffQty, r.dev),
				DifferenceQuantity: diffQty,
				BiggerThanExpected: diffQty > 0,
				CashLoss:           cashLoss,
			},
			Stock: dto.DeviationStockDTO{
				ProductID:         r.row.Stock.ProductID,
				ProductName:       r.row.ProductName,
				Category:          r.row.Category,
				QuantityAvailable: r.row.Stock.QuantityAvailable,
				AverageCost:       r.row.Stock.AverageCost,
				IdealStock:        ideal,
			},
		})
	}
	return out, nil
}

// sign conserva el signo del porcentaje reportado: positivo para excedente,
// negativo para faltante. Para desviaciones definidas el signo ya viene en el
// porcentaje; para el centinela lo da el excedente absoluto.
func sign(diffQty int, dev forecasting.Deviation) float64 {
	if dev.Kind == forecasting.DeviationPercent {
		if dev.Percent < 0 {
			return -1
		}
		return 1
	}
	if diffQty < 0 {
		return -1
	}
	return 1
}
