package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"finance-rag/internal/docstore"
	"finance-rag/internal/models"
	"finance-rag/internal/render"
)

type PDFHandler struct {
	docs *docstore.Store
}

func NewPDFHandler(docs *docstore.Store) *PDFHandler {
	return &PDFHandler{docs: docs}
}

// List returns stored documents, newest first, with optional status filter
// and skip/limit paging.
func (h *PDFHandler) List(c *fiber.Ctx) error {
	skip := int64(c.QueryInt("skip", 0))
	limit := int64(c.QueryInt("limit", 20))
	status := c.Query("status")

	docs, err := h.docs.List(c.UserContext(), skip, limit, status)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	total, err := h.docs.Count(c.UserContext(), status)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return ok(c, "documents listed", fiber.Map{
		"documents": docs,
		"total":     total,
		"skip":      skip,
		"limit":     limit,
	})
}

func (h *PDFHandler) Get(c *fiber.Ctx) error {
	doc, err := h.docs.Get(c.UserContext(), c.Params("id"))
	if errors.Is(err, docstore.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, "document not found")
	}
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return ok(c, "document found", doc)
}

func (h *PDFHandler) GetByTicker(c *fiber.Ctx) error {
	doc, err := h.docs.GetByTicker(c.UserContext(), c.Params("ticker"))
	if errors.Is(err, docstore.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, "document not found")
	}
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return ok(c, "document found", doc)
}

// Preview renders a document's merged markdown content as HTML.
func (h *PDFHandler) Preview(c *fiber.Ctx) error {
	doc, err := h.docs.GetByTicker(c.UserContext(), c.Params("ticker"))
	if errors.Is(err, docstore.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, "document not found")
	}
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}

	page, err := render.MarkdownToHTML(doc.ParsedContent)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(page)
}

func (h *PDFHandler) UpdateStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	switch req.Status {
	case models.StatusPending, models.StatusProcessed, models.StatusCompleted:
	default:
		return fail(c, fiber.StatusBadRequest, "invalid status "+req.Status)
	}

	updated, err := h.docs.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	if !updated {
		return fail(c, fiber.StatusNotFound, "document not found")
	}
	return ok(c, "status updated", fiber.Map{"status": req.Status})
}

func (h *PDFHandler) Delete(c *fiber.Ctx) error {
	deleted, err := h.docs.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	if !deleted {
		return fail(c, fiber.StatusNotFound, "document not found")
	}
	return ok(c, "document deleted", nil)
}

// CleanupDuplicates removes redundant documents left over from before
// ticker-keyed upserts, keeping the most recent one per ticker.
func (h *PDFHandler) CleanupDuplicates(c *fiber.Ctx) error {
	result, err := h.docs.CleanupDuplicates(c.UserContext())
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return ok(c, "duplicate cleanup finished", result)
}
