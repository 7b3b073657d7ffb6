package inventory

import "github.com/shopspring/decimal"

// AverageCost implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual × CostoActual) + (CantEntrada × PrecioEntrada)) / (StockActual + CantEntrada)
func AverageCost(currentQty int, currentCost decimal.Decimal, entryQty int, entryPrice decimal.Decimal) decimal.Decimal {
	cur := decimal.NewFromInt(int64(currentQty))
	ent := decimal.NewFromInt(int64(entryQty))
	sum := cur.Add(ent)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := cur.Mul(currentCost).Add(ent.Mul(entryPrice))
	return num.Div(sum)
}
