package forecast_test

import (
	"context"
	"sync"

	"github.com/ssmai/stock-forecast-api/internal/domain/entity"
	"github.com/ssmai/stock-forecast-api/internal/domain/repository"
)

// Dobles en memoria de los puertos de persistencia. Guardan estado mutable
// bajo mutex para que las corridas concurrentes del batch no disparen el race
// detector.

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func (f *fakeCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	f.companies[c.ID] = c
	return nil
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return f.companies[id], nil
}

func (f *fakeCompanyRepo) List(_ context.Context, _, _ int) ([]entity.Company, error) {
	out := make([]entity.Company, 0, len(f.companies))
	for _, c := range f.companies {
		out = append(out, *c)
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range f.products {
		if p.CompanyID == companyID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeMovementRepo struct {
	mu        sync.Mutex
	byProduct map[string][]entity.StockMovement
	companyOf map[string]string // productID -> companyID
}

func (f *fakeMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byProduct[m.ProductID] = append(f.byProduct[m.ProductID], *m)
	return nil
}

func (f *fakeMovementRepo) ListByProduct(_ context.Context, productID string) ([]entity.StockMovement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.StockMovement(nil), f.byProduct[productID]...), nil
}

func (f *fakeMovementRepo) ListByProductPaged(ctx context.Context, productID string, limit, offset int) ([]entity.StockMovement, error) {
	all, _ := f.ListByProduct(ctx, productID)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeMovementRepo) ProductIDsWithMovements(_ context.Context, companyID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for productID, movs := range f.byProduct {
		if len(movs) > 0 && f.companyOf[productID] == companyID {
			out = append(out, productID)
		}
	}
	return out, nil
}

type fakeStockRepo struct {
	mu        sync.Mutex
	byProduct map[string]*entity.Stock
	rows      []repository.StockDeviationRow // respuesta fija del ranking
}

func (f *fakeStockRepo) Create(_ context.Context, s *entity.Stock) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byProduct[s.ProductID] = s
	return nil
}

func (f *fakeStockRepo) GetByProductID(_ context.Context, productID string) (*entity.Stock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byProduct[productID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStockRepo) GetByProductIDForUpdate(ctx context.Context, productID string) (*entity.Stock, error) {
	return f.GetByProductID(ctx, productID)
}

func (f *fakeStockRepo) UpdateQuantities(_ context.Context, s *entity.Stock) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.byProduct[s.ProductID] = &cp
	return nil
}

func (f *fakeStockRepo) UpdateIdealStock(_ context.Context, productID string, idealStock float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byProduct[productID]
	if !ok {
		return nil
	}
	ideal := idealStock
	s.IdealStock = &ideal
	return nil
}

func (f *fakeStockRepo) ListWithIdealByCompany(_ context.Context, _ string) ([]repository.StockDeviationRow, error) {
	return f.rows, nil
}

type fakeForecastRepo struct {
	mu        sync.Mutex
	byProduct map[string][]entity.Forecast
	replaces  int
}

func (f *fakeForecastRepo) ReplaceForProduct(_ context.Context, productID string, rows []entity.Forecast) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byProduct[productID] = append([]entity.Forecast(nil), rows...)
	f.replaces++
	return nil
}

func (f *fakeForecastRepo) ListByProduct(_ context.Context, productID string) ([]entity.Forecast, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Forecast(nil), f.byProduct[productID]...), nil
}

// fakeTxRunner ejecuta el closure directamente con los mismos repos (sin
// transacción real).
type fakeTxRunner struct {
	movRepo      repository.MovementRepository
	stockRepo    repository.StockRepository
	forecastRepo repository.ForecastRepository
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	repository.MovementRepository,
	repository.StockRepository,
	repository.ForecastRepository,
) error) error {
	return fn(f.movRepo, f.stockRepo, f.forecastRepo)
}
