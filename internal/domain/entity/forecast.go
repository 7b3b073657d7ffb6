package entity

import "time"

// Forecast es una fila de previsión: salida prevista de un producto para un día
// futuro dentro del horizonte. El conjunto de filas de un producto se borra y
// reemplaza completo en cada corrida; no hay versionado de previsiones anteriores.
type Forecast struct {
	ID            string
	ProductID     string
	Date          time.Time
	PredictedExit float64
	CreatedAt     time.Time
}
