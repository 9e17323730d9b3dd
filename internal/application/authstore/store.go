// Package authstore porte l'identité courante et le roster des admins.
package authstore

import (
	"context"
	"crypto/subtle"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/amakita/arsel-docs-api/internal/application/dto"
	"github.com/amakita/arsel-docs-api/internal/domain"
	"github.com/amakita/arsel-docs-api/internal/domain/entity"
	"github.com/amakita/arsel-docs-api/internal/domain/repository"
	"github.com/amakita/arsel-docs-api/pkg/jwt"
	"github.com/amakita/arsel-docs-api/pkg/logger"
)

// GuestEmail adresse attribuée aux sessions invité.
const GuestEmail = "guest@temporary.com"

// Config paramètres du store d'authentification. AdminSecret est l'unique
// mot de passe accepté pour l'ensemble du roster admin: les entrées du
// roster ne portent pas de mot de passe propre (modèle hérité de
// l'application d'origine, la sécurité des identifiants n'est pas un
// objectif de ce service).
type Config struct {
	AdminEmail  string // email de l'admin intégré
	AdminSecret string
}

// JWTConfig paramètres d'émission des jetons de session.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Store possède l'utilisateur courant et le roster admin. Comme pour le
// store de documents, les mutations sont sérialisées par un mutex et
// chaque mutation réussie est suivie d'une sauvegarde best effort.
type Store struct {
	mu    sync.Mutex
	state repository.AuthState

	repo     repository.AuthStateRepository
	log      *logger.Logger
	cfg      Config
	jwtCfg   JWTConfig
	validate *validator.Validate
}

// New construit le store avec le roster initial réduit à l'admin intégré.
func New(repo repository.AuthStateRepository, log *logger.Logger, cfg Config, jwtCfg JWTConfig) *Store {
	s := &Store{
		repo:     repo,
		log:      log,
		cfg:      cfg,
		jwtCfg:   jwtCfg,
		validate: validator.New(),
	}
	s.state.Admins = []entity.User{s.defaultAdmin()}
	return s
}

func (s *Store) defaultAdmin() entity.User {
	return entity.User{
		ID:    entity.DefaultAdminID,
		Email: s.cfg.AdminEmail,
		Role:  entity.RoleAdmin,
	}
}

// LoadState relit le blob persisté et garantit la présence de l'admin
// intégré quel que soit le contenu rechargé.
func (s *Store) LoadState(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	loaded, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if loaded != nil {
		s.state = *loaded
	}
	for _, admin := range s.state.Admins {
		if admin.ID == entity.DefaultAdminID {
			return nil
		}
	}
	s.state.Admins = append([]entity.User{s.defaultAdmin()}, s.state.Admins...)
	return nil
}

// Login authentifie selon exactement deux chemins:
//   - l'email figure au roster admin ET le mot de passe égale le secret
//     administratif -> l'admin devient l'utilisateur courant;
//   - l'email est syntaxiquement valide ET le mot de passe fait au moins
//     4 caractères -> un nouvel utilisateur non-admin est créé avec une
//     session fraîche.
//
// Tout autre cas échoue avec ErrUnauthorized, sans distinguer la cause.
func (s *Store) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if admin := s.findAdminByEmail(email); admin != nil && s.secretMatches(password) {
		s.state.User = admin
		s.state.IsAuthenticated = true
		s.persist(ctx)
		return s.loginResponse(*admin)
	}

	if s.validate.Var(email, "required,email") == nil && len(password) >= 4 {
		user := entity.User{
			ID:        uuid.New().String(),
			Email:     email,
			Role:      entity.RoleUser,
			SessionID: uuid.New().String(),
		}
		s.state.User = &user
		s.state.IsAuthenticated = true
		s.persist(ctx)
		return s.loginResponse(user)
	}

	return nil, domain.ErrUnauthorized
}

// Logout efface l'utilisateur courant, inconditionnellement.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = nil
	s.state.IsAuthenticated = false
	s.persist(ctx)
}

// CreateGuestSession crée une identité invité non-admin sans contrôle
// d'identifiants, pour démarrer un document sans compte.
func (s *Store) CreateGuestSession(ctx context.Context) (*dto.LoginResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	guest := entity.User{
		ID:        uuid.New().String(),
		Email:     GuestEmail,
		Role:      entity.RoleUser,
		SessionID: uuid.New().String(),
	}
	s.state.User = &guest
	s.state.IsAuthenticated = true
	s.persist(ctx)
	return s.loginResponse(guest)
}

// AddAdmin ajoute une entrée au roster. Échoue si l'email y figure déjà.
// Le mot de passe fourni est accepté mais pas conservé: la connexion
// admin vérifie le secret partagé (voir Config).
func (s *Store) AddAdmin(ctx context.Context, email, _ string) (*entity.User, error) {
	if email == "" {
		return nil, domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findAdminByEmail(email) != nil {
		return nil, domain.ErrDuplicate
	}
	admin := entity.User{
		ID:    uuid.New().String(),
		Email: email,
		Role:  entity.RoleAdmin,
	}
	s.state.Admins = append(s.state.Admins, admin)
	s.persist(ctx)
	out := admin
	return &out, nil
}

// RemoveAdmin retire une entrée du roster. L'admin intégré est
// insupprimable; un id absent est un no-op.
func (s *Store) RemoveAdmin(ctx context.Context, id string) error {
	if id == entity.DefaultAdminID {
		return domain.ErrProtectedAdmin
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Admins {
		if s.state.Admins[i].ID == id {
			s.state.Admins = append(s.state.Admins[:i:i], s.state.Admins[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return nil
}

// IsAdmin indique si l'utilisateur courant a le rôle admin.
func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.User != nil && s.state.User.Role == entity.RoleAdmin
}

// CurrentUser renvoie une copie de l'utilisateur courant, ou nil.
func (s *Store) CurrentUser() *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User == nil {
		return nil
	}
	out := *s.state.User
	return &out
}

// Admins renvoie une copie du roster.
func (s *Store) Admins() []entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.User(nil), s.state.Admins...)
}

func (s *Store) findAdminByEmail(email string) *entity.User {
	for i := range s.state.Admins {
		if s.state.Admins[i].Email == email {
			return &s.state.Admins[i]
		}
	}
	return nil
}

func (s *Store) secretMatches(password string) bool {
	if s.cfg.AdminSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminSecret)) == 1
}

func (s *Store) loginResponse(user entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(s.jwtCfg.Secret, user.ID, user.Role, user.SessionID, s.jwtCfg.Issuer, s.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: user}, nil
}

// persist sérialise l'état courant. Appelé mutex tenu.
func (s *Store) persist(ctx context.Context) {
	if s.repo == nil {
		return
	}
	snapshot := repository.AuthState{
		User:            s.state.User,
		Admins:          append([]entity.User(nil), s.state.Admins...),
		IsAuthenticated: s.state.IsAuthenticated,
	}
	if err := s.repo.Save(ctx, &snapshot); err != nil && s.log != nil {
		s.log.Warn().Err(err).Str("blob", repository.BlobAuthStore).Msg("sauvegarde de l'état échouée")
	}
}
