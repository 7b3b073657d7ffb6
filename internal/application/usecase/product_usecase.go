package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ssmai/stock-forecast-api/internal/domain"
	"github.com/ssmai/stock-forecast-api/internal/domain/entity"
	"github.com/ssmai/stock-forecast-api/internal/domain/repository"
)

// ProductUseCase altas y consultas de productos. Al crear un producto se crea
// también su fila de stock en cero (ideal_stock queda nulo hasta la primera
// corrida de previsión).
type ProductUseCase struct {
	productRepo repository.ProductRepository
	companyRepo repository.CompanyRepository
	stockRepo   repository.StockRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	stockRepo repository.StockRepository,
) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, companyRepo: companyRepo, stockRepo: stockRepo}
}

// Create valida la empresa, crea el producto y su stock inicial.
func (uc *ProductUseCase) Create(ctx context.Context, companyID, name, category string) (*entity.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		Category:  strings.TrimSpace(category),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	stock := &entity.Stock{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		AverageCost: decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.stockRepo.Create(ctx, stock); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID devuelve un producto o ErrNotFound.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// ListByCompany listado paginado de productos de una empresa.
func (uc *ProductUseCase) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]entity.Product, error) {
	return uc.productRepo.ListByCompany(ctx, companyID, limit, offset)
}
