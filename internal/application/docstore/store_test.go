package docstore_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amakita/arsel-docs-api/internal/application/docstore"
	"github.com/amakita/arsel-docs-api/internal/application/dto"
	"github.com/amakita/arsel-docs-api/internal/domain"
	"github.com/amakita/arsel-docs-api/internal/domain/entity"
	"github.com/amakita/arsel-docs-api/internal/domain/repository"
)

// memoryDocumentRepo capture les sauvegardes pour vérifier la
// sérialisation après mutation.
type memoryDocumentRepo struct {
	saved *repository.DocumentState
	calls int
}

func (m *memoryDocumentRepo) Load(context.Context) (*repository.DocumentState, error) {
	return m.saved, nil
}

func (m *memoryDocumentRepo) Save(_ context.Context, state *repository.DocumentState) error {
	m.saved = state
	m.calls++
	return nil
}

func newStore(t *testing.T) (*docstore.Store, *memoryDocumentRepo) {
	t.Helper()
	repo := &memoryDocumentRepo{}
	return docstore.New(repo, nil), repo
}

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func ciment() dto.AddProductRequest {
	return dto.AddProductRequest{
		Name:        "Ciment",
		PricingMode: entity.ModeUnitaire,
		UnitPrice:   d("1000"),
		Kilos:       d("5"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Session
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateNewSession_RemplaceLeBrouillon(t *testing.T) {
	store, repo := newStore(t)
	ctx := context.Background()

	first := store.CreateNewSession(ctx)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, 1, first.CurrentStep)
	assert.NotEmpty(t, first.ThemeColor)
	assert.Empty(t, first.Products)

	second := store.CreateNewSession(ctx)
	assert.NotEqual(t, first.ID, second.ID, "une nouvelle session remplace l'ancienne")

	current := store.CurrentSession()
	require.NotNil(t, current)
	assert.Equal(t, second.ID, current.ID)
	assert.GreaterOrEqual(t, repo.calls, 2, "chaque mutation est persistée")
}

func TestUpdateSessionType(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	// Sans session active: échec explicite
	assert.ErrorIs(t, store.UpdateSessionType(ctx, entity.TypeFacture), domain.ErrNoSession)

	store.CreateNewSession(ctx)
	require.NoError(t, store.UpdateSessionType(ctx, entity.TypeDevis))
	assert.Equal(t, entity.TypeDevis, store.CurrentSession().Type)

	// Type inconnu refusé
	assert.ErrorIs(t, store.UpdateSessionType(ctx, "memo"), domain.ErrInvalidInput)
}

func TestUpdateClientInfo_FusionPartielle(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	store.CreateNewSession(ctx)

	prenom := "Awa"
	require.NoError(t, store.UpdateClientInfo(ctx, entity.ClientInfoPatch{FirstName: &prenom}))
	tel := "+241 06 12 34 56"
	ville := "Libreville"
	require.NoError(t, store.UpdateClientInfo(ctx, entity.ClientInfoPatch{Phone: &tel, City: &ville}))

	info := store.CurrentSession().ClientInfo
	assert.Equal(t, "Awa", info.FirstName, "les champs déjà posés survivent aux fusions suivantes")
	assert.Equal(t, tel, info.Phone)
	assert.Equal(t, ville, info.City)

	// Dernier écrit gagne, champ par champ
	autre := "Marie"
	require.NoError(t, store.UpdateClientInfo(ctx, entity.ClientInfoPatch{FirstName: &autre}))
	assert.Equal(t, "Marie", store.CurrentSession().ClientInfo.FirstName)
}

func TestSetCurrentStep_SansValidation(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	store.CreateNewSession(ctx)

	// La valeur est stockée telle quelle, même hors plage 1..4
	require.NoError(t, store.SetCurrentStep(ctx, 9))
	assert.Equal(t, 9, store.CurrentSession().CurrentStep)
}

// ──────────────────────────────────────────────────────────────────────────────
// Produits
// ──────────────────────────────────────────────────────────────────────────────

func TestAddProduct_CalculeLeTotal(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	store.CreateNewSession(ctx)

	p, err := store.AddProduct(ctx, ciment())
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.True(t, p.Total.Equal(d("5000")), "total = 1000 * 5")

	gros, err := store.AddProduct(ctx, dto.AddProductRequest{
		Name:            "Riz parfumé",
		PricingMode:     entity.ModeGros,
		Cartons:         3,
		Sacs:            2,
		PricePerPackage: d("7500"),
	})
	require.NoError(t, err)
	assert.True(t, gros.Total.Equal(d("37500")), "total = (3+2) * 7500")

	// L'ordre d'insertion est préservé
	products := store.CurrentSession().Products
	require.Len(t, products, 2)
	assert.Equal(t, "Ciment", products[0].Name)
	assert.Equal(t, "Riz parfumé", products[1].Name)
}

func TestAddProduct_Validation(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	_, err := store.AddProduct(ctx, ciment())
	assert.ErrorIs(t, err, domain.ErrNoSession)

	store.CreateNewSession(ctx)

	_, err = store.AddProduct(ctx, dto.AddProductRequest{PricingMode: entity.ModeUnitaire})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nom requis")

	_, err = store.AddProduct(ctx, dto.AddProductRequest{Name: "Sucre", PricingMode: "forfait"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "mode inconnu refusé")

	_, err = store.AddProduct(ctx, dto.AddProductRequest{
		Name: "Sucre", PricingMode: entity.ModeUnitaire, UnitPrice: d("-5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "prix négatif refusé")
}

// addProduct puis removeProduct avec le même id restaure la liste.
func TestAddRemoveProduct_AllerRetour(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	store.CreateNewSession(ctx)

	keep, err := store.AddProduct(ctx, ciment())
	require.NoError(t, err)
	before := store.CurrentSession().Products

	added, err := store.AddProduct(ctx, dto.AddProductRequest{
		Name: "Farine", PricingMode: entity.ModeUnitaire, UnitPrice: d("450"), Kilos: d("10"),
	})
	require.NoError(t, err)
	require.NoError(t, store.RemoveProduct(ctx, added.ID))

	after := store.CurrentSession().Products
	assert.Equal(t, before, after, "la liste revient à son état antérieur")
	require.Len(t, after, 1)
	assert.Equal(t, keep.ID, after[0].ID)

	// Retrait d'un id inconnu: no-op
	require.NoError(t, store.RemoveProduct(ctx, "id-inexistant"))
	assert.Len(t, store.CurrentSession().Products, 1)
}

func TestUpdateProduct_RecalculeLeTotal(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	store.CreateNewSession(ctx)

	p, err := store.AddProduct(ctx, ciment())
	require.NoError(t, err)
	other, err := store.AddProduct(ctx, dto.AddProductRequest{
		Name: "Farine", PricingMode: entity.ModeUnitaire, UnitPrice: d("450"), Kilos: d("10"),
	})
	require.NoError(t, err)

	kilos := d("8")
	updated, err := store.UpdateProduct(ctx, p.ID, dto.UpdateProductRequest{Kilos: &kilos})
	require.NoError(t, err)
	assert.True(t, updated.Total.Equal(d("8000")), "total recalculé après fusion")
	assert.Equal(t, "Ciment", updated.Name, "les champs non fournis sont conservés")

	// Les autres lignes ne bougent pas
	products := store.CurrentSession().Products
	assert.True(t, products[1].Total.Equal(other.Total))

	// Id absent: la liste reste intacte
	_, err = store.UpdateProduct(ctx, "id-inexistant", dto.UpdateProductRequest{Kilos: &kilos})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, store.CurrentSession().Products, 2)
}

// Changer de mode de tarification recalcule selon le nouveau mode.
func TestUpdateProduct_ChangementDeMode(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	store.CreateNewSession(ctx)

	p, err := store.AddProduct(ctx, ciment())
	require.NoError(t, err)

	mode := entity.ModeGros
	cartons := int64(4)
	prix := d("6000")
	updated, err := store.UpdateProduct(ctx, p.ID, dto.UpdateProductRequest{
		PricingMode: &mode, Cartons: &cartons, PricePerPackage: &prix,
	})
	require.NoError(t, err)
	assert.True(t, updated.Total.Equal(d("24000")), "total = 4 * 6000 en mode gros")
}

// ──────────────────────────────────────────────────────────────────────────────
// Finalisation
// ──────────────────────────────────────────────────────────────────────────────

func TestSaveDocument_SansTypeEchoue(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	_, err := store.SaveDocument(ctx)
	assert.ErrorIs(t, err, domain.ErrNoSession)

	store.CreateNewSession(ctx)
	_, err = store.SaveDocument(ctx)
	assert.ErrorIs(t, err, domain.ErrMissingType)
	assert.Empty(t, store.Documents(), "rien n'est ajouté à la liste en cas d'échec")
}

func TestSaveDocument_TotalEtNumero(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	store.CreateNewSession(ctx)
	require.NoError(t, store.UpdateSessionType(ctx, entity.TypeFacture))

	_, err := store.AddProduct(ctx, ciment())
	require.NoError(t, err)
	_, err = store.AddProduct(ctx, dto.AddProductRequest{
		Name: "Riz", PricingMode: entity.ModeGros, Cartons: 2, Sacs: 1, PricePerPackage: d("5000"),
	})
	require.NoError(t, err)

	doc, err := store.SaveDocument(ctx)
	require.NoError(t, err)
	assert.True(t, doc.Total.Equal(d("20000")), "5000 + 15000")
	assert.True(t, strings.HasPrefix(doc.DocumentNumber, "FAC-"))
	assert.False(t, doc.CreatedAt.IsZero())

	// La session n'est pas effacée par la finalisation
	require.NotNil(t, store.CurrentSession())

	// L'instantané n'est pas lié à la session: une mutation ultérieure
	// du brouillon ne touche pas le document.
	_, err = store.AddProduct(ctx, dto.AddProductRequest{
		Name: "Huile", PricingMode: entity.ModeUnitaire, UnitPrice: d("900"), Kilos: d("2"),
	})
	require.NoError(t, err)
	saved, err := store.GetDocument(doc.ID)
	require.NoError(t, err)
	assert.Len(t, saved.Products, 2)
}

// Scénario complet du parcours: session -> facture -> Ciment 5x1000 -> 5000.
func TestScenario_FactureCiment(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	store.CreateNewSession(ctx)
	require.NoError(t, store.UpdateSessionType(ctx, entity.TypeFacture))

	p, err := store.AddProduct(ctx, ciment())
	require.NoError(t, err)
	assert.True(t, p.Total.Equal(d("5000")))

	doc, err := store.SaveDocument(ctx)
	require.NoError(t, err)
	assert.True(t, doc.Total.Equal(d("5000")))
	assert.True(t, strings.HasPrefix(doc.DocumentNumber, "FAC-"))
}

func TestClearSession(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	store.CreateNewSession(ctx)
	store.ClearSession(ctx)
	assert.Nil(t, store.CurrentSession())
}

func TestDeleteDocument(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	store.CreateNewSession(ctx)
	require.NoError(t, store.UpdateSessionType(ctx, entity.TypeDevis))
	doc, err := store.SaveDocument(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, store.DeleteDocument(ctx, "absent"), domain.ErrNotFound)
	require.NoError(t, store.DeleteDocument(ctx, doc.ID))
	assert.Empty(t, store.Documents())
}

// L'état rechargé au démarrage reprend session et documents.
func TestLoadState(t *testing.T) {
	repo := &memoryDocumentRepo{}
	first := docstore.New(repo, nil)
	ctx := context.Background()
	first.CreateNewSession(ctx)
	require.NoError(t, first.UpdateSessionType(ctx, entity.TypeProforma))
	_, err := first.SaveDocument(ctx)
	require.NoError(t, err)

	second := docstore.New(repo, nil)
	require.NoError(t, second.LoadState(ctx))
	require.NotNil(t, second.CurrentSession())
	assert.Equal(t, entity.TypeProforma, second.CurrentSession().Type)
	assert.Len(t, second.Documents(), 1)
}
