package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Taxonomía del motor de previsión.
	// ErrNoHistory: el producto no tiene movimientos; no hay nada que entrenar.
	// ErrInsufficientHistory: hay movimientos pero muy pocos días distintos para
	// un ajuste estacional confiable.
	// ErrForecastNotFound: se pidió política o gráfico sin previsión persistida.
	ErrNoHistory           = errors.New("producto sin historial de movimientos")
	ErrInsufficientHistory = errors.New("historial insuficiente para entrenar el modelo")
	ErrForecastNotFound    = errors.New("previsión no encontrada para el producto")
)
