package server

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/bun"

	"finance-rag/internal/financedb"
)

type FinanceHandler struct {
	db *bun.DB
}

func NewFinanceHandler(db *bun.DB) *FinanceHandler {
	return &FinanceHandler{db: db}
}

func (h *FinanceHandler) Count(c *fiber.Ctx) error {
	count, err := financedb.Count(c.UserContext(), h.db)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return ok(c, "finance data counted", fiber.Map{"count": count})
}

func (h *FinanceHandler) GetByTicker(c *fiber.Ctx) error {
	row, err := financedb.ByTicker(c.UserContext(), h.db, c.Params("ticker"))
	if errors.Is(err, sql.ErrNoRows) {
		return fail(c, fiber.StatusNotFound, "no finance data for ticker")
	}
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return ok(c, "finance data found", row)
}
