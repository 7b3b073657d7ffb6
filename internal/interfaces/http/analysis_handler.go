package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ssmai/stock-forecast-api/internal/application/dto"
	"github.com/ssmai/stock-forecast-api/internal/application/forecast"
)

// AnalysisHandler maneja las peticiones HTTP del motor de previsión.
type AnalysisHandler struct {
	run       *forecast.RunUseCase
	analysis  *forecast.AnalysisUseCase
	deviation *forecast.DeviationUseCase
	// defaults de la consulta de política (el handler los aplica cuando el
	// query string viene vacío)
	serviceLevel float64
	leadTimeDays int
}

// NewAnalysisHandler construye el handler.
func NewAnalysisHandler(
	run *forecast.RunUseCase,
	analysis *forecast.AnalysisUseCase,
	deviation *forecast.DeviationUseCase,
	serviceLevel float64,
	leadTimeDays int,
) *AnalysisHandler {
	return &AnalysisHandler{
		run:          run,
		analysis:     analysis,
		deviation:    deviation,
		serviceLevel: serviceLevel,
		leadTimeDays: leadTimeDays,
	}
}

// RunForCompany corre la previsión de todos los productos con historial de la
// empresa. Devuelve el resumen por producto; un producto fallido no aborta la corrida.
func (h *AnalysisHandler) RunForCompany(c *fiber.Ctx) error {
	summary, err := h.run.RunForCompany(c.Context(), c.Params("companyID"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(summary)
}

// RunForProduct corre la previsión de un solo producto.
func (h *AnalysisHandler) RunForProduct(c *fiber.Ctx) error {
	if err := h.run.RunForProduct(c.Context(), c.Params("productID")); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "previsión actualizada"})
}

// GetPolicy política de inventario bajo demanda.
// Query: service_level (0-1, default configurado), lead_time (días, default configurado).
func (h *AnalysisHandler) GetPolicy(c *fiber.Ctx) error {
	serviceLevel := h.serviceLevel
	if s := c.Query("service_level"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "service_level inválido"})
		}
		serviceLevel = v
	}
	leadTime := h.leadTimeDays
	if s := c.Query("lead_time"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lead_time inválido"})
		}
		leadTime = v
	}

	policy, err := h.analysis.GetPolicy(c.Context(), c.Params("productID"), serviceLevel, leadTime)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(policy)
}

// GetGraph serie histórica densa + previsión persistida para graficar.
func (h *AnalysisHandler) GetGraph(c *fiber.Ctx) error {
	graph, err := h.analysis.GetGraph(c.Context(), c.Params("productID"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(graph)
}

// GetWorstDeviations ranking de peores desviaciones de la empresa.
// Query: limit (default configurado).
func (h *AnalysisHandler) GetWorstDeviations(c *fiber.Ctx) error {
	limit := 0
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "limit inválido"})
		}
		limit = v
	}
	rows, err := h.deviation.WorstDeviations(c.Context(), c.Params("companyID"), limit)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(rows)
}
