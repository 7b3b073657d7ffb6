package forecasting

import "math"

// DeviationKind etiqueta el tipo de desviación entre stock disponible y stock
// ideal. El caso ideal=0 se modela explícito en vez de mezclar centinelas
// numéricos con porcentajes reales.
type DeviationKind int

const (
	// DeviationPercent desviación relativa bien definida (ideal > 0).
	DeviationPercent DeviationKind = iota
	// DeviationMaximalSurplus ideal es 0 pero hay stock: la desviación relativa
	// es indefinida pero el excedente absoluto es real; rankea primero siempre.
	DeviationMaximalSurplus
	// DeviationUndefined ideal es 0 y no hay stock (o es negativo): sin desviación.
	DeviationUndefined
)

// SentinelPercent magnitud reportada para DeviationMaximalSurplus, donde el
// porcentaje relativo no existe.
const SentinelPercent = 1e6

// Deviation es la desviación clasificada de un producto.
type Deviation struct {
	Kind    DeviationKind
	Percent float64 // solo significativo cuando Kind == DeviationPercent
}

// ClassifyDeviation etiqueta la desviación de un producto: porcentaje relativo
// cuando ideal > 0, excedente maximal cuando ideal es 0 con stock positivo,
// e indefinida cuando ideal es 0 sin stock.
func ClassifyDeviation(quantityAvailable int, idealStock float64) Deviation {
	if idealStock == 0 {
		if quantityAvailable > 0 {
			return Deviation{Kind: DeviationMaximalSurplus}
		}
		return Deviation{Kind: DeviationUndefined}
	}
	pct := (float64(quantityAvailable) - idealStock) / idealStock * 100
	return Deviation{Kind: DeviationPercent, Percent: pct}
}

// Magnitude devuelve la magnitud absoluta usada para reportar y rankear:
// |porcentaje| para desviaciones definidas, el centinela para excedente maximal
// y 0 para indefinidas.
func (d Deviation) Magnitude() float64 {
	switch d.Kind {
	case DeviationMaximalSurplus:
		return SentinelPercent
	case DeviationUndefined:
		return 0
	default:
		return math.Abs(d.Percent)
	}
}

// Worse define el orden total del ranking: primero por etiqueta
// (MaximalSurplus > Percent > Undefined) y dentro de Percent por magnitud
// absoluta descendente.
func (d Deviation) Worse(other Deviation) bool {
	rank := func(k DeviationKind) int {
		switch k {
		case DeviationMaximalSurplus:
			return 2
		case DeviationPercent:
			return 1
		default:
			return 0
		}
	}
	if rank(d.Kind) != rank(other.Kind) {
		return rank(d.Kind) > rank(other.Kind)
	}
	return math.Abs(d.Percent) > math.Abs(other.Percent)
}

// String para logs y respuestas.
func (k DeviationKind) String() string {
	switch k {
	case DeviationMaximalSurplus:
		return "maximal_surplus"
	case DeviationUndefined:
		return "undefined"
	default:
		return "percent"
	}
}
