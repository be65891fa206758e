package server

import (
	"github.com/gofiber/fiber/v2"

	"finance-rag/internal/report"
)

type StockHandler struct {
	reports *report.Service
}

func NewStockHandler(reports *report.Service) *StockHandler {
	return &StockHandler{reports: reports}
}

// Process runs the full ingestion pipeline for one ticker. Partial page
// failures still return 200; the response carries the failed page numbers.
func (h *StockHandler) Process(c *fiber.Ctx) error {
	ticker := c.Params("ticker")
	if ticker == "" {
		return fail(c, fiber.StatusBadRequest, "ticker is required")
	}
	promptType := c.Query("prompt_type", "default")

	res, err := h.reports.ProcessTicker(c.UserContext(), ticker, promptType)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return ok(c, "report processed", res)
}
