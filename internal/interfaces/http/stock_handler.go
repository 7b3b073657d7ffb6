package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ssmai/stock-forecast-api/internal/application/dto"
	appstock "github.com/ssmai/stock-forecast-api/internal/application/stock"
	"github.com/ssmai/stock-forecast-api/internal/domain/entity"
)

// StockHandler maneja entradas/salidas de stock y consultas del ledger.
type StockHandler struct {
	uc *appstock.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *appstock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// RegisterEntry registra una entrada de stock para el producto.
func (h *StockHandler) RegisterEntry(c *fiber.Ctx) error {
	var in dto.EntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.uc.RegisterEntry(c.Context(), c.Params("productID"), in.Quantity, in.UnitPrice)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(movement))
}

// RegisterExit registra una salida de stock valorada al costo promedio vigente.
func (h *StockHandler) RegisterExit(c *fiber.Ctx) error {
	var in dto.ExitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.uc.RegisterExit(c.Context(), c.Params("productID"), in.Quantity)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(movement))
}

// GetStock devuelve la fila de stock del producto (ideal_stock nulo hasta la
// primera corrida de previsión).
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	stock, err := h.uc.GetStock(c.Context(), c.Params("productID"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.StockResponse{
		ID:                stock.ID,
		ProductID:         stock.ProductID,
		QuantityAvailable: stock.QuantityAvailable,
		AverageCost:       stock.AverageCost,
		IdealStock:        stock.IdealStock,
		UpdatedAt:         stock.UpdatedAt,
	})
}

// ListMovements listado paginado del ledger del producto.
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	movements, err := h.uc.ListMovements(c.Context(), c.Params("productID"), page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for i := range movements {
		out = append(out, toMovementResponse(&movements[i]))
	}
	return c.JSON(out)
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:         m.ID,
		ProductID:  m.ProductID,
		Type:       m.Type,
		Quantity:   m.Quantity,
		UnitPrice:  m.UnitPrice,
		Total:      m.Total,
		OccurredAt: m.OccurredAt,
	}
}
