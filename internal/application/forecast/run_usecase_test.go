package forecast_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssmai/stock-forecast-api/internal/application/forecast"
	"github.com/ssmai/stock-forecast-api/internal/domain"
	"github.com/ssmai/stock-forecast-api/internal/domain/entity"
	"github.com/ssmai/stock-forecast-api/pkg/logger"
)

// env arma el grafo completo del caso de uso sobre dobles en memoria.
type env struct {
	companies *fakeCompanyRepo
	products  *fakeProductRepo
	movements *fakeMovementRepo
	stocks    *fakeStockRepo
	forecasts *fakeForecastRepo
	run       *forecast.RunUseCase
}

func newEnv(t *testing.T, params forecast.Params) *env {
	t.Helper()
	e := &env{
		companies: &fakeCompanyRepo{companies: map[string]*entity.Company{}},
		products:  &fakeProductRepo{products: map[string]*entity.Product{}},
		movements: &fakeMovementRepo{byProduct: map[string][]entity.StockMovement{}, companyOf: map[string]string{}},
		stocks:    &fakeStockRepo{byProduct: map[string]*entity.Stock{}},
		forecasts: &fakeForecastRepo{byProduct: map[string][]entity.Forecast{}},
	}
	tx := &fakeTxRunner{movRepo: e.movements, stockRepo: e.stocks, forecastRepo: e.forecasts}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	e.run = forecast.NewRunUseCase(tx, e.movements, e.products, e.companies, params, log, nil)
	return e
}

func defaultParams() forecast.Params {
	return forecast.Params{
		HorizonDays:    15,
		MinHistoryDays: 14,
		FitTimeout:     5 * time.Second,
		MaxParallel:    1,
		ServiceLevel:   0.95,
		LeadTimeDays:   7,
	}
}

// addProduct registra empresa, producto y su fila de stock.
func (e *env) addProduct(companyID, productID string, qty int) {
	if _, ok := e.companies.companies[companyID]; !ok {
		e.companies.companies[companyID] = &entity.Company{ID: companyID, Name: "ACME"}
	}
	e.products.products[productID] = &entity.Product{ID: productID, CompanyID: companyID, Name: "producto " + productID}
	e.stocks.byProduct[productID] = &entity.Stock{
		ID:                "stk-" + productID,
		ProductID:         productID,
		QuantityAvailable: qty,
		AverageCost:       decimal.NewFromInt(100),
	}
	e.movements.companyOf[productID] = companyID
}

// addExitHistory registra `days` días consecutivos de salidas constantes.
func (e *env) addExitHistory(productID string, days int, qtyPerDay int) time.Time {
	base := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	price := decimal.NewFromInt(100)
	for i := 0; i < days; i++ {
		e.movements.byProduct[productID] = append(e.movements.byProduct[productID], entity.StockMovement{
			ProductID:  productID,
			Type:       entity.MovementTypeExit,
			Quantity:   qtyPerDay,
			UnitPrice:  price,
			Total:      price.Mul(decimal.NewFromInt(int64(qtyPerDay))),
			OccurredAt: base.AddDate(0, 0, i),
		})
	}
	return base.AddDate(0, 0, days-1)
}

// TestRunForProduct_PersisteHorizonteEIdeal el camino feliz: 14 días de salidas
// constantes de 10 producen 15 filas futuras de ~10 y un ideal_stock de 70
// (demanda 10 × lead 7, sin variabilidad).
func TestRunForProduct_PersisteHorizonteEIdeal(t *testing.T) {
	e := newEnv(t, defaultParams())
	e.addProduct("c1", "p1", 50)
	último := e.addExitHistory("p1", 14, 10)

	require.NoError(t, e.run.RunForProduct(context.Background(), "p1"))

	rows, _ := e.forecasts.ListByProduct(context.Background(), "p1")
	require.Len(t, rows, 15, "debe persistirse exactamente la cola del horizonte")
	for i, r := range rows {
		assert.InDelta(t, 10.0, r.PredictedExit, 1e-6)
		assert.True(t, r.Date.After(último.Truncate(24*time.Hour)),
			"la fila %d debe ser estrictamente futura", i)
	}
	assert.Equal(t, último.UTC().Truncate(24*time.Hour).AddDate(0, 0, 1), rows[0].Date,
		"la previsión empieza el día siguiente al último observado")

	stock, _ := e.stocks.GetByProductID(context.Background(), "p1")
	require.NotNil(t, stock.IdealStock, "la corrida debe escribir ideal_stock")
	assert.InDelta(t, 70.0, *stock.IdealStock, 1e-6)
}

// TestRunForProduct_ReemplazoIdempotente correr dos veces deja el mismo número
// de filas: cada corrida reemplaza el conjunto completo, no acumula.
func TestRunForProduct_ReemplazoIdempotente(t *testing.T) {
	e := newEnv(t, defaultParams())
	e.addProduct("c1", "p1", 50)
	e.addExitHistory("p1", 14, 10)

	require.NoError(t, e.run.RunForProduct(context.Background(), "p1"))
	require.NoError(t, e.run.RunForProduct(context.Background(), "p1"))

	rows, _ := e.forecasts.ListByProduct(context.Background(), "p1")
	assert.Len(t, rows, 15, "la segunda corrida reemplaza, no acumula")
	assert.Equal(t, 2, e.forecasts.replaces)
}

func TestRunForProduct_ProductoInexistente(t *testing.T) {
	e := newEnv(t, defaultParams())
	err := e.run.RunForProduct(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestRunForProduct_SinMovimientos un producto sin ledger no puede preverse.
func TestRunForProduct_SinMovimientos(t *testing.T) {
	e := newEnv(t, defaultParams())
	e.addProduct("c1", "p1", 50)

	err := e.run.RunForProduct(context.Background(), "p1")
	assert.ErrorIs(t, err, domain.ErrNoHistory)

	rows, _ := e.forecasts.ListByProduct(context.Background(), "p1")
	assert.Empty(t, rows, "sin historia no debe persistirse nada")
}

// TestRunForProduct_HistorialCorto menos días distintos que el mínimo
// configurado rechaza la corrida sin tocar la previsión existente.
func TestRunForProduct_HistorialCorto(t *testing.T) {
	e := newEnv(t, defaultParams())
	e.addProduct("c1", "p1", 50)
	e.addExitHistory("p1", 5, 10)

	err := e.run.RunForProduct(context.Background(), "p1")
	assert.ErrorIs(t, err, domain.ErrInsufficientHistory)
	assert.Equal(t, 0, e.forecasts.replaces)
}

// TestRunForProduct_SinFilaDeStock si el producto no tiene fila de stock la
// transacción falla antes de reemplazar previsiones.
func TestRunForProduct_SinFilaDeStock(t *testing.T) {
	e := newEnv(t, defaultParams())
	e.addProduct("c1", "p1", 50)
	e.addExitHistory("p1", 14, 10)
	delete(e.stocks.byProduct, "p1")

	err := e.run.RunForProduct(context.Background(), "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, e.forecasts.replaces)
}

// TestRunForCompany_ResumenPorEstado la corrida batch clasifica cada producto
// y un fallo individual no aborta el resto.
func TestRunForCompany_ResumenPorEstado(t *testing.T) {
	e := newEnv(t, defaultParams())
	e.addProduct("c1", "ok", 50)
	e.addExitHistory("ok", 14, 10)
	e.addProduct("c1", "corto", 20)
	e.addExitHistory("corto", 5, 3)
	// producto con movimientos pero sin fila en el repo de productos
	e.addProduct("c1", "roto", 10)
	e.addExitHistory("roto", 14, 2)
	delete(e.products.products, "roto")

	resumen, err := e.run.RunForCompany(context.Background(), "c1")
	require.NoError(t, err, "un producto fallido no debe abortar el batch")

	assert.Equal(t, 3, resumen.Total)
	assert.Equal(t, 1, resumen.Succeeded)
	assert.Equal(t, 1, resumen.Skipped, "historial corto cuenta como omitido")
	assert.Equal(t, 1, resumen.Failed)
	require.Len(t, resumen.Products, 3)

	porProducto := map[string]string{}
	for _, r := range resumen.Products {
		porProducto[r.ProductID] = r.Status
	}
	assert.Equal(t, "ok", porProducto["ok"])
	assert.Equal(t, "insufficient_history", porProducto["corto"])
	assert.Equal(t, "error", porProducto["roto"])

	rows, _ := e.forecasts.ListByProduct(context.Background(), "ok")
	assert.Len(t, rows, 15, "el producto sano del batch sí persiste su previsión")
}

// TestRunForCompany_Paralelo el batch con varios trabajadores produce el mismo
// resumen que el secuencial.
func TestRunForCompany_Paralelo(t *testing.T) {
	params := defaultParams()
	params.MaxParallel = 4
	e := newEnv(t, params)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		e.addProduct("c1", id, 30)
		e.addExitHistory(id, 14, 5)
	}

	resumen, err := e.run.RunForCompany(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 5, resumen.Total)
	assert.Equal(t, 5, resumen.Succeeded)
	assert.Zero(t, resumen.Failed)
}

func TestRunForCompany_EmpresaInexistente(t *testing.T) {
	e := newEnv(t, defaultParams())
	_, err := e.run.RunForCompany(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestRunForCompany_SinProductos una empresa sin movimientos devuelve un
// resumen vacío, no un error.
func TestRunForCompany_SinProductos(t *testing.T) {
	e := newEnv(t, defaultParams())
	e.companies.companies["c1"] = &entity.Company{ID: "c1", Name: "vacía"}

	resumen, err := e.run.RunForCompany(context.Background(), "c1")
	require.NoError(t, err)
	assert.Zero(t, resumen.Total)
	assert.Empty(t, resumen.Products)
}
