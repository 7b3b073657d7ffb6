package forecasting

import (
	"time"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ssmai/stock-forecast-api/internal/domain"
)

// intervalQuantile define el ancho de las bandas de incertidumbre: intervalo
// del 80% sobre los residuos (cuantil 0.90 de la normal estándar por cola).
const intervalQuantile = 0.90

// ForecastPoint es una fila del frame de previsión: estimación puntual con
// bandas de incertidumbre para un día.
type ForecastPoint struct {
	Date  time.Time
	Point float64
	Lower float64
	Upper float64
}

// Model es un modelo aditivo de series de tiempo: tendencia lineal (mínimos
// cuadrados sobre el índice del día) más estacionalidad semanal (efecto medio
// de los residuos por día de la semana). Se construye una instancia efímera
// por producto y por corrida; nunca se comparte entre corridas concurrentes
// para evitar contaminación de parámetros entre productos.
type Model struct {
	fitted    bool
	start     time.Time
	observed  int
	intercept float64
	slope     float64
	weekday   [7]float64
	residSD   float64
}

// NewModel crea un modelo sin entrenar.
func NewModel() *Model {
	return &Model{}
}

// Fit entrena el modelo con una serie diaria densa y ordenada ascendente.
// Con menos de dos fechas distintas no hay tendencia que estimar y el ajuste
// falla con ErrInsufficientHistory; el guard de historial mínimo configurable
// (dos semanas por defecto) vive en el caso de uso, antes de llegar aquí.
func (m *Model) Fit(series []SeriesPoint) error {
	if len(series) < 2 {
		return domain.ErrInsufficientHistory
	}

	n := len(series)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range series {
		xs[i] = float64(i)
		ys[i] = p.ExitQty
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	// Efecto estacional semanal: media de los residuos de la tendencia por día
	// de la semana. Días de la semana nunca observados quedan con efecto cero.
	var sums, counts [7]float64
	for i, p := range series {
		resid := ys[i] - (alpha + beta*xs[i])
		wd := int(p.Date.Weekday())
		sums[wd] += resid
		counts[wd]++
	}
	var weekday [7]float64
	for wd := range sums {
		if counts[wd] > 0 {
			weekday[wd] = sums[wd] / counts[wd]
		}
	}

	// Desviación estándar de los residuos finales (tendencia + estacionalidad)
	// para las bandas de incertidumbre.
	finals := make([]float64, n)
	for i, p := range series {
		finals[i] = ys[i] - (alpha + beta*xs[i] + weekday[int(p.Date.Weekday())])
	}
	residSD := stat.StdDev(finals, nil)
	if n < 3 || residSD != residSD { // NaN con una sola observación libre
		residSD = 0
	}

	m.fitted = true
	m.start = Day(series[0].Date)
	m.observed = n
	m.intercept = alpha
	m.slope = beta
	m.weekday = weekday
	m.residSD = residSD
	return nil
}

// Predict devuelve una fila por día desde la primera fecha observada hasta la
// última más horizonDays. Las primeras filas son el ajuste in-sample; la cola
// de horizonDays filas es la previsión futura que persiste el motor.
func (m *Model) Predict(horizonDays int) ([]ForecastPoint, error) {
	if !m.fitted {
		return nil, domain.ErrInsufficientHistory
	}
	if horizonDays < 0 {
		return nil, domain.ErrInvalidInput
	}

	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(intervalQuantile)
	width := z * m.residSD

	total := m.observed + horizonDays
	out := make([]ForecastPoint, 0, total)
	for i := 0; i < total; i++ {
		date := m.start.AddDate(0, 0, i)
		point := m.intercept + m.slope*float64(i) + m.weekday[int(date.Weekday())]
		out = append(out, ForecastPoint{
			Date:  date,
			Point: point,
			Lower: point - width,
			Upper: point + width,
		})
	}
	return out, nil
}

// HorizonTail devuelve las últimas horizonDays filas de un frame de previsión
// (la parte estrictamente futura, que es lo único que consume el resto del motor).
func HorizonTail(frame []ForecastPoint, horizonDays int) []ForecastPoint {
	if horizonDays <= 0 || len(frame) < horizonDays {
		return nil
	}
	return frame[len(frame)-horizonDays:]
}
