package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/amakita/arsel-docs-api/internal/application/authstore"
	"github.com/amakita/arsel-docs-api/internal/application/dto"
	"github.com/amakita/arsel-docs-api/internal/domain"
)

// AuthHandler gère connexion, déconnexion, session invité et le
// registre des administrateurs.
type AuthHandler struct {
	store *authstore.Store
}

// NewAuthHandler construit le handler d'auth.
func NewAuthHandler(store *authstore.Store) *AuthHandler {
	return &AuthHandler{store: store}
}

// Login godoc
// @Summary      Se connecter
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email et password sont requis"})
	}
	out, err := h.store.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identifiants invalides"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Se déconnecter
// @Tags         auth
// @Produce      json
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.store.Logout(c.Context())
	return c.SendStatus(fiber.StatusNoContent)
}

// Guest godoc
// @Summary      Ouvrir une session invité
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.LoginResponse
// @Router       /api/auth/guest [post]
func (h *AuthHandler) Guest(c *fiber.Ctx) error {
	out, err := h.store.CreateGuestSession(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Identité courante
// @Tags         auth
// @Produce      json
// @Success      200  {object}  entity.User
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := h.store.CurrentUser()
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_USER", Message: "aucune identité active"})
	}
	return c.JSON(user)
}

// ListAdmins godoc
// @Summary      Lister les administrateurs
// @Tags         admin
// @Produce      json
// @Success      200  {array}  entity.User
// @Router       /api/admin/admins [get]
func (h *AuthHandler) ListAdmins(c *fiber.Ctx) error {
	return c.JSON(h.store.Admins())
}

// AddAdmin godoc
// @Summary      Ajouter un administrateur
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddAdminRequest  true  "email, password"
// @Success      201   {object}  entity.User
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/admins [post]
func (h *AuthHandler) AddAdmin(c *fiber.Ctx) error {
	var in dto.AddAdminRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	admin, err := h.store.AddAdmin(c.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email requis"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ADMIN_EXISTS", Message: "cet email est déjà administrateur"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(admin)
}

// RemoveAdmin godoc
// @Summary      Retirer un administrateur
// @Tags         admin
// @Produce      json
// @Param        id   path  string  true  "ID de l'administrateur"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/admins/{id} [delete]
func (h *AuthHandler) RemoveAdmin(c *fiber.Ctx) error {
	if err := h.store.RemoveAdmin(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrProtectedAdmin) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "PROTECTED_ADMIN", Message: "l'administrateur principal ne peut pas être retiré"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
