package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/amakita/arsel-docs-api/internal/application/docstore"
	"github.com/amakita/arsel-docs-api/internal/application/dto"
	"github.com/amakita/arsel-docs-api/internal/domain"
	"github.com/amakita/arsel-docs-api/internal/domain/entity"
)

// SessionHandler gère le brouillon de document en cours: cycle de vie,
// infos client, lignes de produits et finalisation.
type SessionHandler struct {
	store *docstore.Store
}

// NewSessionHandler construit le handler de session.
func NewSessionHandler(store *docstore.Store) *SessionHandler {
	return &SessionHandler{store: store}
}

// sessionError mappe les erreurs du store vers une réponse HTTP.
func sessionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNoSession):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "aucun brouillon en cours"})
	case errors.Is(err, domain.ErrMissingType):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_TYPE", Message: "le type de document doit être choisi avant l'enregistrement"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "produit introuvable"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// Create godoc
// @Summary      Ouvrir un nouveau brouillon
// @Tags         session
// @Produce      json
// @Success      201  {object}  entity.DocumentSession
// @Router       /api/session [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	session := h.store.CreateNewSession(c.Context())
	return c.Status(fiber.StatusCreated).JSON(session)
}

// Get godoc
// @Summary      Brouillon en cours
// @Tags         session
// @Produce      json
// @Success      200  {object}  entity.DocumentSession
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/session [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	session := h.store.CurrentSession()
	if session == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "aucun brouillon en cours"})
	}
	return c.JSON(session)
}

// Clear godoc
// @Summary      Abandonner le brouillon
// @Tags         session
// @Success      204
// @Router       /api/session [delete]
func (h *SessionHandler) Clear(c *fiber.Ctx) error {
	h.store.ClearSession(c.Context())
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateType godoc
// @Summary      Choisir le type de document
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateSessionTypeRequest  true  "facture, devis, proforma ou autre"
// @Success      200   {object}  entity.DocumentSession
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/session/type [put]
func (h *SessionHandler) UpdateType(c *fiber.Ctx) error {
	var in dto.UpdateSessionTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	if err := h.store.UpdateSessionType(c.Context(), in.Type); err != nil {
		return sessionError(c, err)
	}
	return c.JSON(h.store.CurrentSession())
}

// UpdateClient godoc
// @Summary      Compléter les infos client
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  entity.ClientInfoPatch  true  "champs partiels du client"
// @Success      200   {object}  entity.DocumentSession
// @Router       /api/session/client [put]
func (h *SessionHandler) UpdateClient(c *fiber.Ctx) error {
	var patch entity.ClientInfoPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	if err := h.store.UpdateClientInfo(c.Context(), patch); err != nil {
		return sessionError(c, err)
	}
	return c.JSON(h.store.CurrentSession())
}

// SetStep godoc
// @Summary      Avancer dans les étapes du formulaire
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetStepRequest  true  "step"
// @Success      200   {object}  entity.DocumentSession
// @Router       /api/session/step [put]
func (h *SessionHandler) SetStep(c *fiber.Ctx) error {
	var in dto.SetStepRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	if err := h.store.SetCurrentStep(c.Context(), in.Step); err != nil {
		return sessionError(c, err)
	}
	return c.JSON(h.store.CurrentSession())
}

// AddProduct godoc
// @Summary      Ajouter une ligne de produit
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddProductRequest  true  "ligne de produit"
// @Success      201   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/session/products [post]
func (h *SessionHandler) AddProduct(c *fiber.Ctx) error {
	var in dto.AddProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	product, err := h.store.AddProduct(c.Context(), in)
	if err != nil {
		return sessionError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// UpdateProduct godoc
// @Summary      Modifier une ligne de produit
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID du produit"
// @Param        body  body  dto.UpdateProductRequest  true  "champs partiels"
// @Success      200   {object}  entity.Product
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/session/products/{id} [put]
func (h *SessionHandler) UpdateProduct(c *fiber.Ctx) error {
	var patch dto.UpdateProductRequest
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	product, err := h.store.UpdateProduct(c.Context(), c.Params("id"), patch)
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(product)
}

// RemoveProduct godoc
// @Summary      Retirer une ligne de produit
// @Tags         session
// @Param        id  path  string  true  "ID du produit"
// @Success      204
// @Router       /api/session/products/{id} [delete]
func (h *SessionHandler) RemoveProduct(c *fiber.Ctx) error {
	if err := h.store.RemoveProduct(c.Context(), c.Params("id")); err != nil {
		return sessionError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Save godoc
// @Summary      Finaliser le brouillon en document
// @Tags         session
// @Produce      json
// @Success      201  {object}  entity.Document
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/session/save [post]
func (h *SessionHandler) Save(c *fiber.Ctx) error {
	document, err := h.store.SaveDocument(c.Context())
	if err != nil {
		return sessionError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(document)
}
