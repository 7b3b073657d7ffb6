package forecasting

import "time"

// SeriesPoint es un día de la serie densa de demanda que consume el modelo.
type SeriesPoint struct {
	Date    time.Time
	ExitQty float64
}

// Densify convierte los agregados diarios de UN producto en una serie diaria
// densa de salidas: reindexa sobre cada día calendario entre la fecha mínima y
// la máxima observadas (inclusive), rellenando con demanda cero los días sin
// movimientos, ordenada ascendente. El modelo necesita un calendario continuo
// para aprender patrones semanales; los huecos sesgarían la varianza hacia abajo.
// No agrega nada por sí misma: es un resampleo sobre datos ya agregados.
func Densify(aggregates []DailyAggregate) []SeriesPoint {
	if len(aggregates) == 0 {
		return nil
	}

	first := Day(aggregates[0].Date)
	last := first
	exits := make(map[time.Time]float64, len(aggregates))
	for _, a := range aggregates {
		d := Day(a.Date)
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
		exits[d] += float64(a.ExitQty)
	}

	days := int(last.Sub(first).Hours()/24) + 1
	series := make([]SeriesPoint, 0, days)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		series = append(series, SeriesPoint{Date: d, ExitQty: exits[d]})
	}
	return series
}
