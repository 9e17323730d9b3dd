package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amakita/arsel-docs-api/internal/domain/repository"
)

func loadBlob(ctx context.Context, pool *pgxpool.Pool, name string, out any) (bool, error) {
	const query = `SELECT payload FROM app_state WHERE name = $1`
	var payload []byte
	err := pool.QueryRow(ctx, query, name).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lire le blob %s: %w", name, err)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return false, fmt.Errorf("décoder le blob %s: %w", name, err)
	}
	return true, nil
}

func saveBlob(ctx context.Context, pool *pgxpool.Pool, name string, in any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoder le blob %s: %w", name, err)
	}
	const query = `
		INSERT INTO app_state (name, payload, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`
	if _, err := pool.Exec(ctx, query, name, payload); err != nil {
		return fmt.Errorf("écrire le blob %s: %w", name, err)
	}
	return nil
}

// DocumentStateRepo persistance PostgreSQL du blob document-store.
type DocumentStateRepo struct {
	pool *pgxpool.Pool
}

var _ repository.DocumentStateRepository = (*DocumentStateRepo)(nil)

// NewDocumentStateRepo construit l'adaptateur.
func NewDocumentStateRepo(pool *pgxpool.Pool) *DocumentStateRepo {
	return &DocumentStateRepo{pool: pool}
}

// Load relit le blob; (nil, nil) si la ligne n'existe pas encore.
func (r *DocumentStateRepo) Load(ctx context.Context) (*repository.DocumentState, error) {
	var state repository.DocumentState
	ok, err := loadBlob(ctx, r.pool, repository.BlobDocumentStore, &state)
	if err != nil || !ok {
		return nil, err
	}
	return &state, nil
}

// Save écrit le blob (upsert).
func (r *DocumentStateRepo) Save(ctx context.Context, state *repository.DocumentState) error {
	return saveBlob(ctx, r.pool, repository.BlobDocumentStore, state)
}

// AuthStateRepo persistance PostgreSQL du blob auth-store.
type AuthStateRepo struct {
	pool *pgxpool.Pool
}

var _ repository.AuthStateRepository = (*AuthStateRepo)(nil)

// NewAuthStateRepo construit l'adaptateur.
func NewAuthStateRepo(pool *pgxpool.Pool) *AuthStateRepo {
	return &AuthStateRepo{pool: pool}
}

// Load relit le blob; (nil, nil) si la ligne n'existe pas encore.
func (r *AuthStateRepo) Load(ctx context.Context) (*repository.AuthState, error) {
	var state repository.AuthState
	ok, err := loadBlob(ctx, r.pool, repository.BlobAuthStore, &state)
	if err != nil || !ok {
		return nil, err
	}
	return &state, nil
}

// Save écrit le blob (upsert).
func (r *AuthStateRepo) Save(ctx context.Context, state *repository.AuthState) error {
	return saveBlob(ctx, r.pool, repository.BlobAuthStore, state)
}
