package dto

// Modes d'acheminement du formulaire de contact. Un mode vide signifie
// "envoyer par les deux canaux".
const (
	ContactModeMail     = "mail"
	ContactModeWhatsApp = "whatsapp"
)

// ContactRequest message du formulaire de contact.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
	Mode    string `json:"mode" validate:"omitempty,oneof=mail whatsapp"`
}

// ContactResponse résultat de l'envoi.
type ContactResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
