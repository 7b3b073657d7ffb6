package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ssmai/stock-forecast-api/internal/application/forecast"
	appstock "github.com/ssmai/stock-forecast-api/internal/application/stock"
	"github.com/ssmai/stock-forecast-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC    *usecase.CompanyUseCase
	ProductUC    *usecase.ProductUseCase
	StockUC      *appstock.UseCase
	RunUC        *forecast.RunUseCase
	AnalysisUC   *forecast.AnalysisUseCase
	DeviationUC  *forecast.DeviationUseCase
	ServiceLevel float64
	LeadTimeDays int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Companies
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:companyID", companyHandler.GetByID)

	// Products (scoped por empresa)
	productHandler := NewProductHandler(deps.ProductUC)
	companies.Post("/:companyID/products", productHandler.Create)
	companies.Get("/:companyID/products", productHandler.ListByCompany)
	api.Get("/products/:productID", productHandler.GetByID)

	// Stock: ledger de movimientos y fila de stock
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup := api.Group("/stock")
	stockGroup.Post("/:productID/entry", stockHandler.RegisterEntry)
	stockGroup.Post("/:productID/exit", stockHandler.RegisterExit)
	stockGroup.Get("/:productID", stockHandler.GetStock)
	stockGroup.Get("/:productID/movements", stockHandler.ListMovements)

	// Motor de previsión
	analysisHandler := NewAnalysisHandler(
		deps.RunUC, deps.AnalysisUC, deps.DeviationUC,
		deps.ServiceLevel, deps.LeadTimeDays,
	)
	companies.Put("/:companyID/analysis", analysisHandler.RunForCompany)
	companies.Get("/:companyID/analysis/worst-stocks", analysisHandler.GetWorstDeviations)

	analysis := api.Group("/analysis")
	analysis.Put("/:productID", analysisHandler.RunForProduct)
	analysis.Get("/:productID", analysisHandler.GetPolicy)
	analysis.Get("/:productID/graph", analysisHandler.GetGraph)
}
