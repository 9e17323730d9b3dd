package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/amakita/arsel-docs-api/internal/application/docstore"
	"github.com/amakita/arsel-docs-api/internal/application/dto"
	"github.com/amakita/arsel-docs-api/internal/domain"
)

// DocumentHandler gère la consultation, la suppression et l'export PDF
// des documents enregistrés.
type DocumentHandler struct {
	store *docstore.Store
	pdfUC *docstore.PDFUseCase
}

// NewDocumentHandler construit le handler de documents.
func NewDocumentHandler(store *docstore.Store, pdfUC *docstore.PDFUseCase) *DocumentHandler {
	return &DocumentHandler{store: store, pdfUC: pdfUC}
}

// List godoc
// @Summary      Lister les documents enregistrés
// @Tags         documents
// @Produce      json
// @Success      200  {array}  entity.Document
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.store.Documents())
}

// GetByID godoc
// @Summary      Consulter un document
// @Tags         documents
// @Produce      json
// @Param        id  path  string  true  "ID du document"
// @Success      200  {object}  entity.Document
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	document, err := h.store.GetDocument(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "document introuvable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(document)
}

// DownloadPDF godoc
// @Summary      Télécharger un document en PDF
// @Tags         documents
// @Produce      application/pdf
// @Param        id  path  string  true  "ID du document"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/pdf [get]
func (h *DocumentHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdfUC.DownloadDocumentPDF(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "document introuvable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}

// Delete godoc
// @Summary      Supprimer un document
// @Tags         admin
// @Param        id  path  string  true  "ID du document"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.DeleteDocument(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "document introuvable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
