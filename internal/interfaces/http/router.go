package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amakita/arsel-docs-api/internal/application/authstore"
	"github.com/amakita/arsel-docs-api/internal/application/contact"
	"github.com/amakita/arsel-docs-api/internal/application/docstore"
)

// RouterDeps dépendances pour le router.
type RouterDeps struct {
	DocStore  *docstore.Store
	AuthStore *authstore.Store
	ContactUC *contact.UseCase
	PDFUC     *docstore.PDFUseCase
	JWTSecret string
}

// Router enregistre les routes de l'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthStore)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Post("/guest", authHandler.Guest)
	authGroup.Get("/me", authHandler.Me)

	// Brouillon de document (public: le formulaire fonctionne sans compte)
	sessionHandler := NewSessionHandler(deps.DocStore)
	session := api.Group("/session")
	session.Post("/", sessionHandler.Create)
	session.Get("/", sessionHandler.Get)
	session.Delete("/", sessionHandler.Clear)
	session.Put("/type", sessionHandler.UpdateType)
	session.Put("/client", sessionHandler.UpdateClient)
	session.Put("/step", sessionHandler.SetStep)
	session.Post("/products", sessionHandler.AddProduct)
	session.Put("/products/:id", sessionHandler.UpdateProduct)
	session.Delete("/products/:id", sessionHandler.RemoveProduct)
	session.Post("/save", sessionHandler.Save)

	// Documents enregistrés (public en lecture)
	documentHandler := NewDocumentHandler(deps.DocStore, deps.PDFUC)
	documents := api.Group("/documents")
	documents.Get("/", documentHandler.List)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Get("/:id/pdf", documentHandler.DownloadPDF)

	// Contact (public)
	contactHandler := NewContactHandler(deps.ContactUC)
	api.Post("/contact", contactHandler.Send)

	// Espace admin (Bearer Token avec rôle admin)
	admin := api.Group("/admin", AuthMiddleware(deps.JWTSecret), RequireAdmin())
	admin.Get("/documents", documentHandler.List)
	admin.Delete("/documents/:id", documentHandler.Delete)
	admin.Get("/admins", authHandler.ListAdmins)
	admin.Post("/admins", authHandler.AddAdmin)
	admin.Delete("/admins/:id", authHandler.RemoveAdmin)
}
