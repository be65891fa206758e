package server

import (
	"github.com/gofiber/fiber/v2"

	"finance-rag/internal/vectorstore"
)

type VectorHandler struct {
	vectors *vectorstore.Service
}

func NewVectorHandler(vectors *vectorstore.Service) *VectorHandler {
	return &VectorHandler{vectors: vectors}
}

type searchRequest struct {
	Query         string  `json:"query"`
	Limit         int     `json:"limit"`
	VectorWeight  float64 `json:"vector_weight"`
	KeywordWeight float64 `json:"keyword_weight"`
}

func (r *searchRequest) normalize() {
	if r.Limit <= 0 {
		r.Limit = 10
	}
}

// Store chunks and embeds a processed document. deduplicate defaults to true
// so repeated calls replace the ticker's chunks instead of stacking them.
func (h *VectorHandler) Store(c *fiber.Ctx) error {
	ticker := c.Params("ticker")
	if ticker == "" {
		return fail(c, fiber.StatusBadRequest, "ticker is required")
	}
	deduplicate := c.QueryBool("deduplicate", true)

	result, err := h.vectors.EmbedAndStore(c.UserContext(), ticker, deduplicate)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	if !result.Success {
		return respond(c, fiber.StatusUnprocessableEntity, false, result.Message, result)
	}
	return ok(c, result.Message, result)
}

func (h *VectorHandler) SearchVector(c *fiber.Ctx) error {
	var req searchRequest
	if err := c.BodyParser(&req); err != nil || req.Query == "" {
		return fail(c, fiber.StatusBadRequest, "query is required")
	}
	req.normalize()

	results, err := h.vectors.SearchVector(c.UserContext(), req.Query, req.Limit)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return ok(c, "vector search finished", fiber.Map{"results": results, "count": len(results)})
}

func (h *VectorHandler) SearchKeyword(c *fiber.Ctx) error {
	var req searchRequest
	if err := c.BodyParser(&req); err != nil || req.Query == "" {
		return fail(c, fiber.StatusBadRequest, "query is required")
	}
	req.normalize()

	results, err := h.vectors.SearchKeyword(c.UserContext(), req.Query, req.Limit)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return ok(c, "keyword search finished", fiber.Map{"results": results, "count": len(results)})
}

func (h *VectorHandler) SearchHybrid(c *fiber.Ctx) error {
	var req searchRequest
	if err := c.BodyParser(&req); err != nil || req.Query == "" {
		return fail(c, fiber.StatusBadRequest, "query is required")
	}
	req.normalize()

	results, err := h.vectors.SearchHybrid(c.UserContext(), req.Query, req.Limit, req.VectorWeight, req.KeywordWeight)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return ok(c, "hybrid search finished", fiber.Map{"results": results, "count": len(results)})
}

func (h *VectorHandler) Exists(c *fiber.Ctx) error {
	ticker := c.Params("ticker")
	exists, count, err := h.vectors.Exists(c.UserContext(), ticker)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return ok(c, "existence checked", fiber.Map{
		"ticker": ticker,
		"exists": exists,
		"count":  count,
	})
}

func (h *VectorHandler) Delete(c *fiber.Ctx) error {
	ticker := c.Params("ticker")
	deleted, err := h.vectors.DeleteByTicker(c.UserContext(), ticker)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return ok(c, "chunks deleted", fiber.Map{
		"ticker":        ticker,
		"deleted_count": deleted,
	})
}

func (h *VectorHandler) Scroll(c *fiber.Ctx) error {
	ticker := c.Params("ticker")
	skip := int64(c.QueryInt("skip", 0))
	limit := int64(c.QueryInt("limit", 50))

	chunks, err := h.vectors.Scroll(c.UserContext(), ticker, skip, limit)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return ok(c, "chunks listed", fiber.Map{"chunks": chunks, "count": len(chunks)})
}

func (h *VectorHandler) CollectionInfo(c *fiber.Ctx) error {
	info, err := h.vectors.Info(c.UserContext())
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return ok(c, "collection info", info)
}
