// Package repository définit les ports de persistance de l'état.
// L'état vit en mémoire dans les stores; chaque mutation réussie est
// suivie d'une sérialisation best effort du blob correspondant.
package repository

import (
	"context"

	"github.com/amakita/arsel-docs-api/internal/domain/entity"
)

// Noms des blobs d'état persistés (clés fixes).
const (
	BlobDocumentStore = "document-store"
	BlobAuthStore     = "auth-store"
)

// DocumentState contenu du blob "document-store".
type DocumentState struct {
	Documents      []entity.Document       `json:"documents"`
	CurrentSession *entity.DocumentSession `json:"currentSession"`
}

// AuthState contenu du blob "auth-store".
type AuthState struct {
	User            *entity.User  `json:"user"`
	Admins          []entity.User `json:"admins"`
	IsAuthenticated bool          `json:"isAuthenticated"`
}

// DocumentStateRepository persistance du blob document-store.
// Load renvoie (nil, nil) si le blob n'existe pas encore.
type DocumentStateRepository interface {
	Load(ctx context.Context) (*DocumentState, error)
	Save(ctx context.Context, state *DocumentState) error
}

// AuthStateRepository persistance du blob auth-store.
// Load renvoie (nil, nil) si le blob n'existe pas encore.
type AuthStateRepository interface {
	Load(ctx context.Context) (*AuthState, error)
	Save(ctx context.Context, state *AuthState) error
}
