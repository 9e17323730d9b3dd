package entity

// Rôles valides pour User.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultAdminID identifiant de l'admin intégré, toujours présent dans le
// roster et jamais supprimable.
const DefaultAdminID = "admin-1"

// User représente un utilisateur (invité, connecté ou admin).
// Le rôle ne change jamais après la création.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"` // user | admin
	SessionID string `json:"sessionId,omitempty"`
}
