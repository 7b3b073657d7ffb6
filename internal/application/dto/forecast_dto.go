package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PolicyResponse indicadores de política de inventario calculados sobre la
// previsión persistida de un producto.
type PolicyResponse struct {
	DiaryAverage       float64 `json:"diary_average"`
	DemandOverLeadTime float64 `json:"demand_over_leadtime"`
	SafetyStock        float64 `json:"safety_stock"`
	IdealStock         float64 `json:"ideal_stock"`
	ReorderQuantity    float64 `json:"reorder_quantity"`
}

// HistoricalPointDTO un día del histórico de salidas para el gráfico.
type HistoricalPointDTO struct {
	Date         time.Time `json:"date"`
	ExitQuantity float64   `json:"exit_quantity"`
}

// ForecastPointDTO un día de la previsión persistida para el gráfico.
type ForecastPointDTO struct {
	Date          time.Time `json:"date"`
	PredictedExit float64   `json:"predicted_exit"`
}

// GraphResponse serie histórica densa más la cola de previsión de un producto.
type GraphResponse struct {
	Historical []HistoricalPointDTO `json:"historical"`
	Forecast   []ForecastPointDTO   `json:"forecast"`
}

// DeviationIndicatorsDTO indicadores de desviación de un producto frente a su
// stock ideal.
type DeviationIndicatorsDTO struct {
	Kind               string          `json:"kind"` // percent | maximal_surplus | undefined
	DifferencePercent  float64         `json:"difference_percent"`
	DifferenceQuantity int             `json:"difference_quantity"`
	BiggerThanExpected bool            `json:"bigger_than_expected"`
	CashLoss           decimal.Decimal `json:"cash_loss"` // positivo = capital inmovilizado; negativo = valor del faltante
}

// DeviationStockDTO vista del stock que acompaña a los indicadores.
type DeviationStockDTO struct {
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name"`
	Category          string          `json:"category"`
	QuantityAvailable int             `json:"quantity_available"`
	AverageCost       decimal.Decimal `json:"average_cost"`
	IdealStock        float64         `json:"ideal_stock"`
}

// DeviationRowDTO una fila del ranking de peores desviaciones.
type DeviationRowDTO struct {
	Indicators DeviationIndicatorsDTO `json:"indicators"`
	Stock      DeviationStockDTO      `json:"stock"`
}

// ProductRunResultDTO resultado por producto de una corrida batch.
type ProductRunResultDTO struct {
	ProductID string `json:"product_id"`
	Status    string `json:"status"` // ok | no_history | insufficient_history | error
	Error     string `json:"error,omitempty"`
}

// BatchRunResponse resumen de una corrida de previsión por empresa.
type BatchRunResponse struct {
	Total     int                   `json:"total"`
	Succeeded int                   `json:"succeeded"`
	Skipped   int                   `json:"skipped"`
	Failed    int                   `json:"failed"`
	Products  []ProductRunResultDTO `json:"products"`
}
