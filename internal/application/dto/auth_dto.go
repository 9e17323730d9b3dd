package dto

import "github.com/amakita/arsel-docs-api/internal/domain/entity"

// LoginRequest identifiants de connexion.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse jeton de session et identité de l'utilisateur.
type LoginResponse struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

// AddAdminRequest ajout d'une entrée au roster admin. Le mot de passe est
// accepté par compatibilité avec le formulaire mais n'est pas conservé:
// la connexion admin vérifie le secret administratif partagé.
type AddAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
