package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amakita/arsel-docs-api/internal/application/authstore"
	"github.com/amakita/arsel-docs-api/internal/application/contact"
	"github.com/amakita/arsel-docs-api/internal/application/docstore"
	"github.com/amakita/arsel-docs-api/internal/application/dto"
	"github.com/amakita/arsel-docs-api/internal/domain/entity"
	"github.com/amakita/arsel-docs-api/internal/domain/repository"
	apphttp "github.com/amakita/arsel-docs-api/internal/interfaces/http"
	pkgjwt "github.com/amakita/arsel-docs-api/pkg/jwt"
	"github.com/amakita/arsel-docs-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testAdminEmail = "admin@example.com"
	testSecret     = "secret-partage"
	testIssuer     = "arsel-docs-api-test"
)

// Dépôts en mémoire pour isoler les handlers du disque.
type memDocRepo struct{ saved *repository.DocumentState }

func (r *memDocRepo) Load(context.Context) (*repository.DocumentState, error) { return r.saved, nil }
func (r *memDocRepo) Save(_ context.Context, s *repository.DocumentState) error {
	r.saved = s
	return nil
}

type memAuthRepo struct{ saved *repository.AuthState }

func (r *memAuthRepo) Load(context.Context) (*repository.AuthState, error) { return r.saved, nil }
func (r *memAuthRepo) Save(_ context.Context, s *repository.AuthState) error {
	r.saved = s
	return nil
}

type fakeMailer struct{ sent int }

func (m *fakeMailer) Send(context.Context, contact.EmailMessage) error {
	m.sent++
	return nil
}

// buildTestApp assemble une application Fiber complète avec des dépôts
// en mémoire, comme le ferait cmd/api/main.go.
func buildTestApp(t *testing.T) (*fiber.App, *fakeMailer) {
	t.Helper()
	log := logger.New(logger.Config{Env: "test", Level: "error"})

	docStore := docstore.New(&memDocRepo{}, log)
	authStore := authstore.New(
		&memAuthRepo{},
		log,
		authstore.Config{AdminEmail: testAdminEmail, AdminSecret: testSecret},
		authstore.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer},
	)
	mailer := &fakeMailer{}
	contactUC := contact.New(mailer, nil, log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		DocStore:  docStore,
		AuthStore: authStore,
		ContactUC: contactUC,
		PDFUC:     docstore.NewPDFUseCase(docStore, nil),
		JWTSecret: testJWTSecret,
	})
	return app, mailer
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, authHeader string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// adminToken se connecte en admin et renvoie l'en-tête Bearer.
func adminToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login",
		dto.LoginRequest{Email: testAdminEmail, Password: testSecret}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, out.Token)
	return "Bearer " + out.Token
}

// ──────────────────────────────────────────────────────────────────────────────
// Session de document
// ──────────────────────────────────────────────────────────────────────────────

func TestSessionLifecycleOverHTTP(t *testing.T) {
	app, _ := buildTestApp(t)

	// Pas de brouillon au départ.
	resp := doJSON(t, app, http.MethodGet, "/api/session/", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Ouvrir un brouillon.
	resp = doJSON(t, app, http.MethodPost, "/api/session/", nil, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	session := decode[entity.DocumentSession](t, resp)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, 1, session.CurrentStep)
	assert.NotEmpty(t, session.ThemeColor)

	// Choisir le type puis ajouter un produit.
	resp = doJSON(t, app, http.MethodPut, "/api/session/type",
		dto.UpdateSessionTypeRequest{Type: entity.TypeFacture}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/session/products", fiber.Map{
		"name":        "Ciment",
		"pricingMode": "unitaire",
		"unitPrice":   "1000",
		"kilos":       "5",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	product := decode[entity.Product](t, resp)
	assert.Equal(t, "5000", product.Total.String())

	// Finaliser.
	resp = doJSON(t, app, http.MethodPost, "/api/session/save", nil, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	document := decode[entity.Document](t, resp)
	assert.Regexp(t, `^FAC-\d{6}$`, document.DocumentNumber)
	assert.Equal(t, "5000", document.Total.String())

	// Le document apparaît dans la liste publique.
	resp = doJSON(t, app, http.MethodGet, "/api/documents/", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	docs := decode[[]entity.Document](t, resp)
	require.Len(t, docs, 1)
	assert.Equal(t, document.ID, docs[0].ID)
}

func TestSessionValidationOverHTTP(t *testing.T) {
	app, _ := buildTestApp(t)

	// Type invalide.
	doJSON(t, app, http.MethodPost, "/api/session/", nil, "")
	resp := doJSON(t, app, http.MethodPut, "/api/session/type",
		dto.UpdateSessionTypeRequest{Type: "reçu"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Finaliser sans type choisi.
	resp = doJSON(t, app, http.MethodPost, "/api/session/save", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Finaliser sans brouillon.
	resp = doJSON(t, app, http.MethodDelete, "/api/session/", nil, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPost, "/api/session/save", nil, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Produit inconnu.
	doJSON(t, app, http.MethodPost, "/api/session/", nil, "")
	resp = doJSON(t, app, http.MethodPut, "/api/session/products/absent",
		dto.UpdateProductRequest{}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth et espace admin
// ──────────────────────────────────────────────────────────────────────────────

func TestLoginAndGuestOverHTTP(t *testing.T) {
	app, _ := buildTestApp(t)

	// Admin avec le secret partagé.
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login",
		dto.LoginRequest{Email: testAdminEmail, Password: testSecret}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.LoginResponse](t, resp)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)

	// Email mal formé: refusé.
	resp = doJSON(t, app, http.MethodPost, "/api/auth/login",
		dto.LoginRequest{Email: "pas-un-email", Password: "longmotdepasse"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Session invité.
	resp = doJSON(t, app, http.MethodPost, "/api/auth/guest", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	guest := decode[dto.LoginResponse](t, resp)
	assert.Equal(t, authstore.GuestEmail, guest.User.Email)
	assert.Equal(t, entity.RoleUser, guest.User.Role)
}

func TestAdminGateOverHTTP(t *testing.T) {
	app, _ := buildTestApp(t)

	// Sans token.
	resp := doJSON(t, app, http.MethodGet, "/api/admin/admins", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Token d'utilisateur simple: refusé.
	userTok, err := pkgjwt.Generate(testJWTSecret, "user-1", entity.RoleUser, "sess-1", testIssuer, 60)
	require.NoError(t, err)
	resp = doJSON(t, app, http.MethodGet, "/api/admin/admins", nil, "Bearer "+userTok)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Token admin: accès au registre.
	token := adminToken(t, app)
	resp = doJSON(t, app, http.MethodGet, "/api/admin/admins", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	admins := decode[[]entity.User](t, resp)
	require.Len(t, admins, 1)
	assert.Equal(t, entity.DefaultAdminID, admins[0].ID)
}

func TestAdminRosterOverHTTP(t *testing.T) {
	app, _ := buildTestApp(t)
	token := adminToken(t, app)

	// Ajouter, doublon, retirer.
	resp := doJSON(t, app, http.MethodPost, "/api/admin/admins",
		dto.AddAdminRequest{Email: "second@example.com", Password: "ignoré"}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	added := decode[entity.User](t, resp)
	assert.Equal(t, entity.RoleAdmin, added.Role)

	resp = doJSON(t, app, http.MethodPost, "/api/admin/admins",
		dto.AddAdminRequest{Email: "second@example.com"}, token)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/admin/admins/"+added.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// L'admin principal est protégé.
	resp = doJSON(t, app, http.MethodDelete, "/api/admin/admins/"+entity.DefaultAdminID, nil, token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDeleteDocumentRequiresAdmin(t *testing.T) {
	app, _ := buildTestApp(t)

	// Créer et finaliser un document.
	doJSON(t, app, http.MethodPost, "/api/session/", nil, "")
	doJSON(t, app, http.MethodPut, "/api/session/type",
		dto.UpdateSessionTypeRequest{Type: entity.TypeDevis}, "")
	resp := doJSON(t, app, http.MethodPost, "/api/session/save", nil, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	document := decode[entity.Document](t, resp)

	// La suppression publique n'existe pas.
	resp = doJSON(t, app, http.MethodDelete, "/api/documents/"+document.ID, nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	// Sous /admin avec token.
	token := adminToken(t, app)
	resp = doJSON(t, app, http.MethodDelete, "/api/admin/documents/"+document.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/admin/documents/"+document.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Contact
// ──────────────────────────────────────────────────────────────────────────────

func TestContactOverHTTP(t *testing.T) {
	app, mailer := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/contact",
		dto.ContactRequest{Name: "Awa", Email: "awa@example.com", Message: "Bonjour", Mode: dto.ContactModeMail}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ContactResponse](t, resp)
	assert.True(t, out.Success)
	assert.Equal(t, 1, mailer.sent)

	// Champs manquants.
	resp = doJSON(t, app, http.MethodPost, "/api/contact",
		dto.ContactRequest{Name: "Awa"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Canal WhatsApp non configuré: échec générique.
	resp = doJSON(t, app, http.MethodPost, "/api/contact",
		dto.ContactRequest{Name: "Awa", Email: "awa@example.com", Message: "Bonjour", Mode: dto.ContactModeWhatsApp}, "")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	failed := decode[dto.ContactResponse](t, resp)
	assert.False(t, failed.Success)
	assert.NotContains(t, failed.Error, "twilio")
}
