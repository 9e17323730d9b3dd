// Package storage fournit les passerelles de persistance des blobs
// d'état: fichiers JSON locaux ou table clé/valeur PostgreSQL.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/amakita/arsel-docs-api/internal/domain/repository"
)

// FileStore écrit chaque blob nommé dans un fichier JSON de dataDir.
// L'écriture passe par un fichier temporaire puis un rename, pour ne
// jamais laisser un blob tronqué en cas de coupure en cours d'écriture.
type FileStore struct {
	dataDir string
}

// NewFileStore prépare le répertoire de données.
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("créer le répertoire de données: %w", err)
	}
	return &FileStore{dataDir: dataDir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dataDir, name+".json")
}

func (s *FileStore) load(name string, out any) (bool, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("lire le blob %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("décoder le blob %s: %w", name, err)
	}
	return true, nil
}

func (s *FileStore) save(name string, in any) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("encoder le blob %s: %w", name, err)
	}
	tmp := s.path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("écrire le blob %s: %w", name, err)
	}
	if err := os.Rename(tmp, s.path(name)); err != nil {
		return fmt.Errorf("publier le blob %s: %w", name, err)
	}
	return nil
}

// DocumentStateFileRepo persistance fichier du blob document-store.
type DocumentStateFileRepo struct {
	store *FileStore
}

var _ repository.DocumentStateRepository = (*DocumentStateFileRepo)(nil)

// NewDocumentStateFileRepo construit l'adaptateur.
func NewDocumentStateFileRepo(store *FileStore) *DocumentStateFileRepo {
	return &DocumentStateFileRepo{store: store}
}

// Load relit le blob; (nil, nil) s'il n'existe pas encore.
func (r *DocumentStateFileRepo) Load(context.Context) (*repository.DocumentState, error) {
	var state repository.DocumentState
	ok, err := r.store.load(repository.BlobDocumentStore, &state)
	if err != nil || !ok {
		return nil, err
	}
	return &state, nil
}

// Save écrit le blob.
func (r *DocumentStateFileRepo) Save(_ context.Context, state *repository.DocumentState) error {
	return r.store.save(repository.BlobDocumentStore, state)
}

// AuthStateFileRepo persistance fichier du blob auth-store.
type AuthStateFileRepo struct {
	store *FileStore
}

var _ repository.AuthStateRepository = (*AuthStateFileRepo)(nil)

// NewAuthStateFileRepo construit l'adaptateur.
func NewAuthStateFileRepo(store *FileStore) *AuthStateFileRepo {
	return &AuthStateFileRepo{store: store}
}

// Load relit le blob; (nil, nil) s'il n'existe pas encore.
func (r *AuthStateFileRepo) Load(context.Context) (*repository.AuthState, error) {
	var state repository.AuthState
	ok, err := r.store.load(repository.BlobAuthStore, &state)
	if err != nil || !ok {
		return nil, err
	}
	return &state, nil
}

// Save écrit le blob.
func (r *AuthStateFileRepo) Save(_ context.Context, state *repository.AuthState) error {
	return r.store.save(repository.BlobAuthStore, state)
}
