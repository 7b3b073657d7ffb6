package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appstock "github.com/ssmai/stock-forecast-api/internal/application/stock"
	"github.com/ssmai/stock-forecast-api/internal/domain"
	"github.com/ssmai/stock-forecast-api/internal/domain/entity"
	"github.com/ssmai/stock-forecast-api/internal/domain/repository"
)

// Dobles en memoria mínimos para el caso de uso de stock.

type memProductRepo struct{ products map[string]*entity.Product }

func (m *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	m.products[p.ID] = p
	return nil
}
func (m *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return m.products[id], nil
}
func (m *memProductRepo) ListByCompany(_ context.Context, _ string, _, _ int) ([]entity.Product, error) {
	return nil, nil
}

type memStockRepo struct{ byProduct map[string]*entity.Stock }

func (m *memStockRepo) Create(_ context.Context, s *entity.Stock) error {
	m.byProduct[s.ProductID] = s
	return nil
}
func (m *memStockRepo) GetByProductID(_ context.Context, productID string) (*entity.Stock, error) {
	s, ok := m.byProduct[productID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}
func (m *memStockRepo) GetByProductIDForUpdate(ctx context.Context, productID string) (*entity.Stock, error) {
	return m.GetByProductID(ctx, productID)
}
func (m *memStockRepo) UpdateQuantities(_ context.Context, s *entity.Stock) error {
	cp := *s
	m.byProduct[s.ProductID] = &cp
	return nil
}
func (m *memStockRepo) UpdateIdealStock(_ context.Context, _ string, _ float64) error { return nil }
func (m *memStockRepo) ListWithIdealByCompany(_ context.Context, _ string) ([]repository.StockDeviationRow, error) {
	return nil, nil
}

type memMovementRepo struct{ movements []entity.StockMovement }

func (m *memMovementRepo) Create(_ context.Context, mv *entity.StockMovement) error {
	m.movements = append(m.movements, *mv)
	return nil
}
func (m *memMovementRepo) ListByProduct(_ context.Context, productID string) ([]entity.StockMovement, error) {
	var out []entity.StockMovement
	for _, mv := range m.movements {
		if mv.ProductID == productID {
			out = append(out, mv)
		}
	}
	return out, nil
}
func (m *memMovementRepo) ListByProductPaged(ctx context.Context, productID string, limit, offset int) ([]entity.StockMovement, error) {
	all, _ := m.ListByProduct(ctx, productID)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
func (m *memMovementRepo) ProductIDsWithMovements(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

type directTxRunner struct {
	movRepo   repository.MovementRepository
	stockRepo repository.StockRepository
}

func (d *directTxRunner) Run(_ context.Context, fn func(
	repository.MovementRepository,
	repository.StockRepository,
	repository.ForecastRepository,
) error) error {
	return fn(d.movRepo, d.stockRepo, nil)
}

type stockEnv struct {
	products  *memProductRepo
	stocks    *memStockRepo
	movements *memMovementRepo
	uc        *appstock.UseCase
}

func newStockEnv(qty int, avgCost int64) *stockEnv {
	e := &stockEnv{
		products:  &memProductRepo{products: map[string]*entity.Product{}},
		stocks:    &memStockRepo{byProduct: map[string]*entity.Stock{}},
		movements: &memMovementRepo{},
	}
	e.products.products["p1"] = &entity.Product{ID: "p1", CompanyID: "c1", Name: "café"}
	e.stocks.byProduct["p1"] = &entity.Stock{
		ID:                "stk-1",
		ProductID:         "p1",
		QuantityAvailable: qty,
		AverageCost:       decimal.NewFromInt(avgCost),
	}
	tx := &directTxRunner{movRepo: e.movements, stockRepo: e.stocks}
	e.uc = appstock.NewUseCase(tx, e.products, e.stocks, e.movements)
	return e
}

// TestRegisterEntry_RecalculaCostoPromedio una entrada a precio distinto mueve
// el costo promedio ponderado y suma la cantidad.
func TestRegisterEntry_RecalculaCostoPromedio(t *testing.T) {
	e := newStockEnv(10, 100)

	mov, err := e.uc.RegisterEntry(context.Background(), "p1", 10, decimal.NewFromInt(200))
	require.NoError(t, err)

	assert.Equal(t, entity.MovementTypeEntry, mov.Type)
	assert.True(t, mov.Total.Equal(decimal.NewFromInt(2000)), "Total = cantidad × precio")

	stock, _ := e.stocks.GetByProductID(context.Background(), "p1")
	assert.Equal(t, 20, stock.QuantityAvailable)
	assert.True(t, stock.AverageCost.Equal(decimal.NewFromInt(150)),
		"10@100 + 10@200 debe promediar 150, llegó %s", stock.AverageCost)

	require.Len(t, e.movements.movements, 1, "la entrada queda en el ledger")
}

// TestRegisterExit_ValoradaAlCostoPromedio la salida no lleva precio propio:
// se valora al costo promedio vigente.
func TestRegisterExit_ValoradaAlCostoPromedio(t *testing.T) {
	e := newStockEnv(10, 150)

	mov, err := e.uc.RegisterExit(context.Background(), "p1", 4)
	require.NoError(t, err)

	assert.Equal(t, entity.MovementTypeExit, mov.Type)
	assert.True(t, mov.UnitPrice.Equal(decimal.NewFromInt(150)),
		"la salida se valora al costo promedio, llegó %s", mov.UnitPrice)
	assert.True(t, mov.Total.Equal(decimal.NewFromInt(600)))

	stock, _ := e.stocks.GetByProductID(context.Background(), "p1")
	assert.Equal(t, 6, stock.QuantityAvailable)
	assert.True(t, stock.AverageCost.Equal(decimal.NewFromInt(150)),
		"la salida no cambia el costo promedio")
}

// TestRegisterExit_StockInsuficiente sacar más de lo disponible falla y no
// deja rastro ni en el stock ni en el ledger.
func TestRegisterExit_StockInsuficiente(t *testing.T) {
	e := newStockEnv(3, 100)

	_, err := e.uc.RegisterExit(context.Background(), "p1", 5)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stock, _ := e.stocks.GetByProductID(context.Background(), "p1")
	assert.Equal(t, 3, stock.QuantityAvailable, "el disponible no debe cambiar")
	assert.Empty(t, e.movements.movements, "no debe registrarse movimiento")
}

func TestRegisterEntry_Validaciones(t *testing.T) {
	e := newStockEnv(0, 0)

	_, err := e.uc.RegisterEntry(context.Background(), "p1", 0, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero es inválida")

	_, err = e.uc.RegisterEntry(context.Background(), "p1", 5, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio negativo es inválido")

	_, err = e.uc.RegisterEntry(context.Background(), "fantasma", 5, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterExit_Validaciones(t *testing.T) {
	e := newStockEnv(10, 100)

	_, err := e.uc.RegisterExit(context.Background(), "p1", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.uc.RegisterExit(context.Background(), "fantasma", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestRegisterEntry_PrimeraEntrada sobre stock en cero el costo promedio pasa a
// ser el precio de la entrada.
func TestRegisterEntry_PrimeraEntrada(t *testing.T) {
	e := newStockEnv(0, 0)

	_, err := e.uc.RegisterEntry(context.Background(), "p1", 7, decimal.NewFromFloat(12.5))
	require.NoError(t, err)

	stock, _ := e.stocks.GetByProductID(context.Background(), "p1")
	assert.Equal(t, 7, stock.QuantityAvailable)
	assert.True(t, stock.AverageCost.Equal(decimal.NewFromFloat(12.5)))
}

func TestGetStock(t *testing.T) {
	e := newStockEnv(5, 100)

	stock, err := e.uc.GetStock(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, stock.QuantityAvailable)

	_, err = e.uc.GetStock(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestListMovements el listado pagina el ledger del producto.
func TestListMovements(t *testing.T) {
	e := newStockEnv(0, 0)
	for i := 0; i < 5; i++ {
		_, err := e.uc.RegisterEntry(context.Background(), "p1", 1, decimal.NewFromInt(10))
		require.NoError(t, err)
	}

	page, err := e.uc.ListMovements(context.Background(), "p1", 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	resto, err := e.uc.ListMovements(context.Background(), "p1", 10, 4)
	require.NoError(t, err)
	assert.Len(t, resto, 1)
}
