package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/amakita/arsel-docs-api/internal/application/contact"
	"github.com/amakita/arsel-docs-api/internal/application/dto"
	"github.com/amakita/arsel-docs-api/internal/domain"
)

// ContactHandler relaie les messages du formulaire de contact.
type ContactHandler struct {
	uc *contact.UseCase
}

// NewContactHandler construit le handler de contact.
func NewContactHandler(uc *contact.UseCase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// Send godoc
// @Summary      Envoyer un message de contact
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContactRequest  true  "name, email, message, mode optionnel (mail|whatsapp)"
// @Success      200   {object}  dto.ContactResponse
// @Failure      400   {object}  dto.ContactResponse
// @Failure      502   {object}  dto.ContactResponse
// @Router       /api/contact [post]
func (h *ContactHandler) Send(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ContactResponse{Success: false, Error: "corps invalide"})
	}
	if err := h.uc.Send(c.Context(), in); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ContactResponse{Success: false, Error: "champs manquants ou invalides"})
		}
		// Les détails du transport restent dans les logs; le client ne
		// reçoit qu'un échec générique.
		return c.Status(fiber.StatusBadGateway).JSON(dto.ContactResponse{Success: false, Error: "l'envoi du message a échoué"})
	}
	return c.JSON(dto.ContactResponse{Success: true})
}
