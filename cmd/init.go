package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/commands"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/query"
	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/auth"
	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/config"
	dbi "github.com/Builder-Lawyers/tutorials-backend/internal/infra/db"
	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/i18n"
	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/mail"
	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/search"
	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/storage"
	"github.com/Builder-Lawyers/tutorials-backend/internal/presentation/rest"
	"github.com/Builder-Lawyers/tutorials-backend/internal/presentation/scheduler"
	"github.com/Builder-Lawyers/tutorials-backend/pkg/db"
	"github.com/Builder-Lawyers/tutorials-backend/web"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func Init() {
	loadDotenv()
	ctx := context.Background()

	// Configs
	serverConfig := config.NewServerConfig()
	siteConfig := config.NewSiteConfig()
	searchConfig := search.NewSearchConfig()
	storageConfig := storage.NewStorageConfig()
	mailConfig := mail.NewMailConfig()
	authConfig := auth.NewAuthConfig()
	outboxConfig := scheduler.NewOutboxConfig()
	languages := i18n.NewLanguages(siteConfig.Languages)

	// DB
	pool := connect(ctx, serverConfig.Migrate)
	uowFactory := db.NewUoWFactory(pool)

	// Search
	index := search.NewTutorialIndex(searchConfig)
	if storageConfig.Enabled() {
		sync := commands.NewSyncIndex(index, languages.Locales(), newStorage(ctx, storageConfig), storageConfig.Prefix)
		if err := sync.Execute(ctx); err != nil {
			slog.Error("serving with the local search index", "err", err)
		}
	}

	// Mail
	mailServer := mail.NewMailServer(mailConfig)
	htmlMail, textMail, err := web.CommentMailTemplates()
	if err != nil {
		log.Panic(err)
	}

	handlers := &application.Handlers{
		GetWebsite:      query.NewGetWebsite(uowFactory, siteConfig.WebsiteID),
		GetUser:         query.NewGetUser(uowFactory),
		ListTutorials:   query.NewListTutorials(uowFactory),
		GetTutorial:     query.NewGetTutorial(uowFactory),
		SearchTutorials: query.NewSearchTutorials(uowFactory, index),
		PublishComment:  commands.NewPublishComment(uowFactory, siteConfig.Comments),
		SendCommentMail: commands.NewSendCommentMail(mailServer, uowFactory, commands.CommentMailConfig{
			SiteTitle:   siteConfig.Title,
			BaseURL:     siteConfig.BaseURL,
			Sender:      mailConfig.Sender,
			DefaultLang: languages.Default(),
		}, htmlMail, textMail),
	}

	// Identity
	authCtx, cancelAuth := context.WithCancel(ctx)
	verifier, err := auth.NewVerifier(authCtx, authConfig)
	if err != nil {
		log.Panic("can't set up token verification: ", err)
	}

	sessions := session.New(session.Config{
		Expiration:     serverConfig.SessionTTL,
		KeyLookup:      "cookie:session_id",
		KeyGenerator:   uuid.NewString,
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})
	server := rest.NewServer(handlers, siteConfig, languages, sessions)
	app := fiber.New(fiber.Config{
		IdleTimeout:  serverConfig.IdleTimeout,
		Views:        rest.NewViews(web.Views()),
		ErrorHandler: server.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(rest.IdentityMiddleware(verifier, sessions, authConfig.CookieName))
	rest.RegisterHandlers(app, server)

	outboxPoller := scheduler.NewOutboxPoller(handlers, uowFactory, outboxConfig)
	go outboxPoller.Start()

	go func() {
		if err := app.Listen(serverConfig.Addr); err != nil {
			log.Panic(err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	_ = <-c
	fmt.Println("Gracefully shutting down...")
	_ = app.Shutdown()
	outboxPoller.Stop()

	fmt.Println("Running cleanup tasks...")

	cancelAuth()
	uowFactory.Pool.Close()
	fmt.Println("Fiber was successfully shutdown.")
}

func loadDotenv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("can't load .env", "err", err)
	}
}

func connect(ctx context.Context, migrate bool) *pgxpool.Pool {
	pool, err := db.NewPool(ctx, db.NewConfig())
	if err != nil {
		log.Panic(err)
	}
	if migrate {
		if err = dbi.Migrate(ctx, pool); err != nil {
			log.Panicf("failed to migrate: %v", err)
		}
	}
	return pool
}

func newStorage(ctx context.Context, cfg *storage.StorageConfig) *storage.Storage {
	awsCfg, err := awsConfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Panic("can't load aws config", err)
	}
	return storage.NewStorage(awsCfg, cfg)
}
