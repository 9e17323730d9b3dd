// Package docstore porte l'état du brouillon courant et des documents
// finalisés, avec les opérations du parcours de création.
package docstore

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amakita/arsel-docs-api/internal/application/dto"
	"github.com/amakita/arsel-docs-api/internal/domain"
	"github.com/amakita/arsel-docs-api/internal/domain/docnum"
	"github.com/amakita/arsel-docs-api/internal/domain/entity"
	"github.com/amakita/arsel-docs-api/internal/domain/pricing"
	"github.com/amakita/arsel-docs-api/internal/domain/repository"
	"github.com/amakita/arsel-docs-api/pkg/logger"
)

// Palette des couleurs de thème attribuées aux nouvelles sessions.
var themeColors = []string{
	"#3b82f6", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6",
	"#06b6d4", "#84cc16", "#f97316", "#ec4899", "#6366f1",
}

// Store possède la session courante (brouillon unique) et la liste des
// documents finalisés. Les mutations sont sérialisées par un mutex: les
// handlers Fiber tournent en parallèle, contrairement au modèle
// coopératif de l'application d'origine. Après chaque mutation réussie
// l'état est sauvegardé via le port de persistance, en best effort: un
// échec d'écriture est journalisé mais ne fait pas échouer l'opération.
type Store struct {
	mu    sync.Mutex
	state repository.DocumentState

	repo repository.DocumentStateRepository
	log  *logger.Logger
	now  func() time.Time
}

// New construit le store. repo peut être nil (état purement en mémoire).
func New(repo repository.DocumentStateRepository, log *logger.Logger) *Store {
	return &Store{
		state: repository.DocumentState{Documents: []entity.Document{}},
		repo:  repo,
		log:   log,
		now:   time.Now,
	}
}

// LoadState relit le blob persisté (appelé une fois au démarrage).
func (s *Store) LoadState(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	loaded, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	if loaded == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = *loaded
	if s.state.Documents == nil {
		s.state.Documents = []entity.Document{}
	}
	return nil
}

// CreateNewSession remplace tout brouillon existant par une session
// vierge (nouvel id, produits vides, étape 1, couleur de thème tirée au
// sort). Ne peut pas échouer.
func (s *Store) CreateNewSession(ctx context.Context) entity.DocumentSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := entity.DocumentSession{
		ID:          uuid.New().String(),
		ClientInfo:  entity.ClientInfo{},
		Products:    []entity.Product{},
		CurrentStep: 1,
		ThemeColor:  themeColors[rand.Intn(len(themeColors))],
	}
	s.state.CurrentSession = &session
	s.persist(ctx)
	return copySession(session)
}

// UpdateSessionType fixe le type de document de la session, sans toucher
// aux autres champs.
func (s *Store) UpdateSessionType(ctx context.Context, docType string) error {
	if !entity.ValidDocumentType(docType) {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentSession == nil {
		return domain.ErrNoSession
	}
	s.state.CurrentSession.Type = docType
	s.persist(ctx)
	return nil
}

// UpdateClientInfo fusionne les champs fournis dans les coordonnées du
// client (dernier écrit gagne, champ par champ).
func (s *Store) UpdateClientInfo(ctx context.Context, patch entity.ClientInfoPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentSession == nil {
		return domain.ErrNoSession
	}
	s.state.CurrentSession.ClientInfo.Merge(patch)
	s.persist(ctx)
	return nil
}

// AddProduct calcule le total de la ligne, lui attribue un id et
// l'ajoute en fin de liste (l'ordre d'insertion est préservé).
func (s *Store) AddProduct(ctx context.Context, in dto.AddProductRequest) (*entity.Product, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PricingMode != entity.ModeUnitaire && in.PricingMode != entity.ModeGros {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice.IsNegative() || in.Kilos.IsNegative() || in.PricePerPackage.IsNegative() ||
		in.Cartons < 0 || in.Sacs < 0 {
		return nil, domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentSession == nil {
		return nil, domain.ErrNoSession
	}

	product := entity.Product{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Description:     in.Description,
		PricingMode:     in.PricingMode,
		UnitPrice:       in.UnitPrice,
		Kilos:           in.Kilos,
		Cartons:         in.Cartons,
		Sacs:            in.Sacs,
		PricePerPackage: in.PricePerPackage,
	}
	product.Total = pricing.ProductTotal(product)

	s.state.CurrentSession.Products = append(s.state.CurrentSession.Products, product)
	s.persist(ctx)
	out := product
	return &out, nil
}

// UpdateProduct fusionne les champs fournis dans la ligne identifiée et
// recalcule son total; les autres lignes ne sont pas touchées.
func (s *Store) UpdateProduct(ctx context.Context, id string, patch dto.UpdateProductRequest) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentSession == nil {
		return nil, domain.ErrNoSession
	}
	products := s.state.CurrentSession.Products
	for i := range products {
		if products[i].ID != id {
			continue
		}
		p := products[i]
		applyProductPatch(&p, patch)
		if p.Name == "" || (p.PricingMode != entity.ModeUnitaire && p.PricingMode != entity.ModeGros) {
			return nil, domain.ErrInvalidInput
		}
		if p.UnitPrice.IsNegative() || p.Kilos.IsNegative() || p.PricePerPackage.IsNegative() ||
			p.Cartons < 0 || p.Sacs < 0 {
			return nil, domain.ErrInvalidInput
		}
		p.Total = pricing.ProductTotal(p)
		products[i] = p
		s.persist(ctx)
		out := p
		return &out, nil
	}
	return nil, domain.ErrNotFound
}

// RemoveProduct retire la ligne identifiée si elle existe; sinon no-op.
func (s *Store) RemoveProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentSession == nil {
		return domain.ErrNoSession
	}
	products := s.state.CurrentSession.Products
	for i := range products {
		if products[i].ID == id {
			s.state.CurrentSession.Products = append(products[:i:i], products[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return nil
}

// SetCurrentStep enregistre la position du wizard telle quelle.
func (s *Store) SetCurrentStep(ctx context.Context, step int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentSession == nil {
		return domain.ErrNoSession
	}
	s.state.CurrentSession.CurrentStep = step
	s.persist(ctx)
	return nil
}

// SaveDocument fige la session en Document immuable: instantané des
// coordonnées et des produits par valeur, total = somme des totaux de
// lignes, numéro généré depuis le type et l'instant courant. La session
// n'est PAS effacée; ClearSession est une opération séparée.
func (s *Store) SaveDocument(ctx context.Context) (*entity.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := s.state.CurrentSession
	if session == nil {
		return nil, domain.ErrNoSession
	}
	if session.Type == "" {
		return nil, domain.ErrMissingType
	}

	now := s.now()
	doc := entity.Document{
		ID:             uuid.New().String(),
		Type:           session.Type,
		ClientInfo:     session.ClientInfo,
		Products:       append([]entity.Product(nil), session.Products...),
		Total:          pricing.DocumentTotal(session.Products),
		ThemeColor:     session.ThemeColor,
		CreatedAt:      now,
		DocumentNumber: docnum.Generate(session.Type, now),
	}
	s.state.Documents = append(s.state.Documents, doc)
	s.persist(ctx)
	out := doc
	return &out, nil
}

// ClearSession abandonne le brouillon courant. Irréversible.
func (s *Store) ClearSession(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentSession = nil
	s.persist(ctx)
}

// CurrentSession renvoie une copie de la session courante, ou nil.
func (s *Store) CurrentSession() *entity.DocumentSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentSession == nil {
		return nil
	}
	session := copySession(*s.state.CurrentSession)
	return &session
}

// Documents renvoie une copie de la liste des documents finalisés,
// dans l'ordre de finalisation.
func (s *Store) Documents() []entity.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Document, len(s.state.Documents))
	for i, doc := range s.state.Documents {
		out[i] = copyDocument(doc)
	}
	return out
}

// GetDocument renvoie le document identifié.
func (s *Store) GetDocument(id string) (*entity.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.state.Documents {
		if doc.ID == id {
			out := copyDocument(doc)
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// DeleteDocument supprime un document finalisé (opération admin).
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Documents {
		if s.state.Documents[i].ID == id {
			s.state.Documents = append(s.state.Documents[:i:i], s.state.Documents[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return domain.ErrNotFound
}

// persist sérialise l'état courant. Appelé mutex tenu.
func (s *Store) persist(ctx context.Context) {
	if s.repo == nil {
		return
	}
	snapshot := repository.DocumentState{
		Documents:      append([]entity.Document(nil), s.state.Documents...),
		CurrentSession: s.state.CurrentSession,
	}
	if err := s.repo.Save(ctx, &snapshot); err != nil && s.log != nil {
		s.log.Warn().Err(err).Str("blob", repository.BlobDocumentStore).Msg("sauvegarde de l'état échouée")
	}
}

func copySession(session entity.DocumentSession) entity.DocumentSession {
	session.Products = append([]entity.Product(nil), session.Products...)
	return session
}

func copyDocument(doc entity.Document) entity.Document {
	doc.Products = append([]entity.Product(nil), doc.Products...)
	return doc
}

func applyProductPatch(p *entity.Product, patch dto.UpdateProductRequest) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.PricingMode != nil {
		p.PricingMode = *patch.PricingMode
	}
	if patch.UnitPrice != nil {
		p.UnitPrice = *patch.UnitPrice
	}
	if patch.Kilos != nil {
		p.Kilos = *patch.Kilos
	}
	if patch.Cartons != nil {
		p.Cartons = *patch.Cartons
	}
	if patch.Sacs != nil {
		p.Sacs = *patch.Sacs
	}
	if patch.PricePerPackage != nil {
		p.PricePerPackage = *patch.PricePerPackage
	}
}
