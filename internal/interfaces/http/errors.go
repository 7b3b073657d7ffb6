package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ssmai/stock-forecast-api/internal/application/dto"
	"github.com/ssmai/stock-forecast-api/internal/domain"
)

// mapDomainError traduce errores de dominio a respuestas HTTP.
// La taxonomía del motor distingue "sin historial" (conflicto: no se puede
// prever) de "sin previsión" (404: todavía no corrió) y de "historial corto"
// (422: hay datos pero no alcanzan).
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrForecastNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "FORECAST_NOT_FOUND", Message: "el producto no tiene previsión calculada"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrNoHistory):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_HISTORY", Message: "el producto no tiene movimientos registrados"})
	case errors.Is(err, domain.ErrInsufficientHistory):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_HISTORY", Message: "historial insuficiente para entrenar el modelo"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
