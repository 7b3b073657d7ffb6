package forecasting

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ssmai/stock-forecast-api/internal/domain"
)

// Policy es el resultado del cálculo de política de inventario sobre la cola
// de previsión de un producto.
type Policy struct {
	DiaryAverage       float64 // demanda diaria media prevista
	DemandOverLeadTime float64 // demanda esperada durante el lead time
	SafetyStock        float64 // colchón para la variabilidad al nivel de servicio dado
	IdealStock         float64 // demanda sobre lead time + safety stock
	ReorderQuantity    float64 // max(IdealStock - disponible, 0)
}

// CalculatePolicy deriva la política de inventario a partir de las salidas
// previstas del horizonte:
//
//	safety = probit(serviceLevel) × sd(previsto) × sqrt(leadTime)
//	ideal  = media(previsto) × leadTime + safety
//	pedir  = max(ideal - disponible, 0)
//
// Es un cálculo puro; la persistencia de IdealStock sobre la fila de stock la
// hace la corrida de previsión, no esta función.
func CalculatePolicy(predicted []float64, quantityAvailable int, serviceLevel float64, leadTimeDays int) (Policy, error) {
	if len(predicted) == 0 {
		return Policy{}, domain.ErrForecastNotFound
	}
	if serviceLevel <= 0 || serviceLevel >= 1 || leadTimeDays <= 0 {
		return Policy{}, domain.ErrInvalidInput
	}

	mean := stat.Mean(predicted, nil)
	sd := 0.0
	if len(predicted) > 1 {
		sd = stat.StdDev(predicted, nil)
	}

	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(serviceLevel)
	lead := float64(leadTimeDays)

	demand := mean * lead
	safety := z * sd * math.Sqrt(lead)
	ideal := demand + safety
	reorder := ideal - float64(quantityAvailable)
	if reorder < 0 {
		reorder = 0
	}

	return Policy{
		DiaryAverage:       mean,
		DemandOverLeadTime: demand,
		SafetyStock:        safety,
		IdealStock:         ideal,
		ReorderQuantity:    reorder,
	}, nil
}
