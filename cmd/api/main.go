package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/amakita/arsel-docs-api/internal/application/authstore"
	"github.com/amakita/arsel-docs-api/internal/application/contact"
	"github.com/amakita/arsel-docs-api/internal/application/docstore"
	"github.com/amakita/arsel-docs-api/internal/domain/repository"
	inframail "github.com/amakita/arsel-docs-api/internal/infrastructure/mail"
	infrapdf "github.com/amakita/arsel-docs-api/internal/infrastructure/pdf"
	"github.com/amakita/arsel-docs-api/internal/infrastructure/storage"
	infrapg "github.com/amakita/arsel-docs-api/internal/infrastructure/storage/postgres"
	"github.com/amakita/arsel-docs-api/internal/infrastructure/whatsapp"
	httpRouter "github.com/amakita/arsel-docs-api/internal/interfaces/http"
	"github.com/amakita/arsel-docs-api/pkg/config"
	"github.com/amakita/arsel-docs-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("charger la configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx := context.Background()

	// Persistance: PostgreSQL quand DATABASE_URL est fourni, sinon des
	// fichiers JSON dans le répertoire de données.
	var (
		docRepo  repository.DocumentStateRepository
		authRepo repository.AuthStateRepository
	)
	if cfg.Store.DatabaseURL != "" {
		pool, err := infrapg.NewPool(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("connexion à PostgreSQL")
		}
		defer pool.Close()
		if err := infrapg.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("schéma PostgreSQL")
		}
		docRepo = infrapg.NewDocumentStateRepo(pool)
		authRepo = infrapg.NewAuthStateRepo(pool)
		log.Info().Msg("persistance: PostgreSQL")
	} else {
		fileStore, err := storage.NewFileStore(cfg.Store.DataDir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.Store.DataDir).Msg("répertoire de données")
		}
		docRepo = storage.NewDocumentStateFileRepo(fileStore)
		authRepo = storage.NewAuthStateFileRepo(fileStore)
		log.Info().Str("dir", cfg.Store.DataDir).Msg("persistance: fichiers JSON")
	}

	docStore := docstore.New(docRepo, log)
	if err := docStore.LoadState(ctx); err != nil {
		log.Warn().Err(err).Msg("état des documents non rechargé, démarrage à vide")
	}

	authStore := authstore.New(authRepo, log,
		authstore.Config{
			AdminEmail:  cfg.Auth.AdminEmail,
			AdminSecret: cfg.Auth.AdminSecret,
		},
		authstore.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	)
	if err := authStore.LoadState(ctx); err != nil {
		log.Warn().Err(err).Msg("état d'auth non rechargé, registre par défaut")
	}

	// Canaux de contact: chacun n'est branché que s'il est configuré.
	var mailer contact.Mailer
	if cfg.Mail.Host != "" {
		smtpSender, err := inframail.NewSMTPSender(cfg.Mail)
		if err != nil {
			log.Fatal().Err(err).Msg("client SMTP")
		}
		mailer = smtpSender
		log.Info().Str("host", cfg.Mail.Host).Msg("canal mail activé")
	}
	var relay contact.MessageRelay
	if cfg.Twilio.AccountSID != "" {
		relay = whatsapp.NewTwilioRelay(cfg.Twilio)
		log.Info().Msg("canal WhatsApp activé")
	}
	contactUC := contact.New(mailer, relay, log)

	pdfUC := docstore.NewPDFUseCase(docStore, infrapdf.NewMarotoGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Arsel Docs API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		DocStore:  docStore,
		AuthStore: authStore,
		ContactUC: contactUC,
		PDFUC:     pdfUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP arrêté")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}
