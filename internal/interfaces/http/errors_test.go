package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssmai/stock-forecast-api/internal/application/dto"
	"github.com/ssmai/stock-forecast-api/internal/domain"
)

// TestMapDomainError_Taxonomia cada error de dominio tiene un código HTTP y un
// código de error estables: los clientes distinguen "sin historial" (409) de
// "sin previsión" (404) y de "historial corto" (422).
func TestMapDomainError_Taxonomia(t *testing.T) {
	casos := []struct {
		nombre string
		err    error
		status int
		code   string
	}{
		{"validación", domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{"sin previsión", domain.ErrForecastNotFound, fiber.StatusNotFound, "FORECAST_NOT_FOUND"},
		{"no encontrado", domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"sin historial", domain.ErrNoHistory, fiber.StatusConflict, "NO_HISTORY"},
		{"historial corto", domain.ErrInsufficientHistory, fiber.StatusUnprocessableEntity, "INSUFFICIENT_HISTORY"},
		{"stock insuficiente", domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{"duplicado", domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{"desconocido", assert.AnError, fiber.StatusInternalServerError, "INTERNAL"},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			app := fiber.New()
			app.Get("/x", func(ctx *fiber.Ctx) error {
				return mapDomainError(ctx, c.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, c.status, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var er dto.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &er))
			assert.Equal(t, c.code, er.Code, "el código de error debe ser estable para los clientes")
		})
	}
}
