package server

import (
	"github.com/gofiber/fiber/v2"
)

// Handlers bundles everything the router needs. The finance handler is
// optional; without a Postgres DSN those routes are not registered.
type Handlers struct {
	Stock   *StockHandler
	PDF     *PDFHandler
	Vectors *VectorHandler
	Finance *FinanceHandler
}

func RegisterRoutes(app *fiber.App, h Handlers) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return ok(c, "ok", nil)
	})

	stock := app.Group("/stock")
	stock.Post("/process/:ticker", h.Stock.Process)

	pdf := app.Group("/pdf")
	pdf.Get("/documents", h.PDF.List)
	pdf.Get("/documents/stock/:ticker", h.PDF.GetByTicker)
	pdf.Get("/documents/stock/:ticker/html", h.PDF.Preview)
	pdf.Get("/documents/:id", h.PDF.Get)
	pdf.Put("/documents/:id/status", h.PDF.UpdateStatus)
	pdf.Delete("/documents/:id", h.PDF.Delete)
	pdf.Post("/cleanup-duplicates", h.PDF.CleanupDuplicates)

	vectors := app.Group("/vectors")
	vectors.Post("/store/:ticker", h.Vectors.Store)
	vectors.Post("/search/vector", h.Vectors.SearchVector)
	vectors.Post("/search/keyword", h.Vectors.SearchKeyword)
	vectors.Post("/search/hybrid", h.Vectors.SearchHybrid)
	vectors.Get("/documents/:ticker/exists", h.Vectors.Exists)
	vectors.Get("/documents/:ticker/chunks", h.Vectors.Scroll)
	vectors.Delete("/documents/:ticker", h.Vectors.Delete)
	vectors.Get("/collection/info", h.Vectors.CollectionInfo)

	if h.Finance != nil {
		finance := app.Group("/finance")
		finance.Get("/count", h.Finance.Count)
		finance.Get("/:ticker", h.Finance.GetByTicker)
	}
}
