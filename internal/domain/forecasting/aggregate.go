package forecasting

import (
	"sort"
	"time"

	"github.com/ssmai/stock-forecast-api/internal/domain/entity"
)

// DailyAggregate es el registro intermedio tipado entre el ledger de movimientos
// y el preparador de series: una fila por (producto, día calendario) con al menos
// un movimiento.
type DailyAggregate struct {
	ProductID    string
	Date         time.Time // truncado a día UTC
	ExitQty      int
	EntryQty     int
	AvgUnitPrice float64
	TotalValue   float64
}

// Day trunca un timestamp a su día calendario en UTC.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AggregateDaily colapsa movimientos crudos en agregados diarios por producto:
// suma cantidades de salida y de entrada por separado, promedia el precio
// unitario sobre todos los movimientos del día y suma el valor total.
// Pura y determinista: el resultado sale ordenado por producto y fecha.
func AggregateDaily(movements []entity.StockMovement) []DailyAggregate {
	type key struct {
		productID string
		date      time.Time
	}
	type acc struct {
		exitQty   int
		entryQty  int
		priceSum  float64
		count     int
		totalSum  float64
	}

	byDay := make(map[key]*acc)
	for _, m := range movements {
		k := key{productID: m.ProductID, date: Day(m.OccurredAt)}
		a, ok := byDay[k]
		if !ok {
			a = &acc{}
			byDay[k] = a
		}
		switch m.Type {
		case entity.MovementTypeExit:
			a.exitQty += m.Quantity
		case entity.MovementTypeEntry:
			a.entryQty += m.Quantity
		}
		a.priceSum += m.UnitPrice.InexactFloat64()
		a.count++
		a.totalSum += m.Total.InexactFloat64()
	}

	out := make([]DailyAggregate, 0, len(byDay))
	for k, a := range byDay {
		out = append(out, DailyAggregate{
			ProductID:    k.productID,
			Date:         k.date,
			ExitQty:      a.exitQty,
			EntryQty:     a.entryQty,
			AvgUnitPrice: a.priceSum / float64(a.count),
			TotalValue:   a.totalSum,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
