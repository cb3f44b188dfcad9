package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mfarias/biblioteca-api/internal/config"
	"github.com/mfarias/biblioteca-api/internal/platform/logger"
	"github.com/mfarias/biblioteca-api/internal/platform/postgres"
	"github.com/mfarias/biblioteca-api/internal/service"
	"github.com/mfarias/biblioteca-api/internal/service/auth"
	"github.com/mfarias/biblioteca-api/internal/store"
)

// application holds all shared dependencies for the server. The stores and
// services are created once during initialization and injected into the
// handlers when the router is built.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore   store.UserStore
	bookStore   store.BookStore
	authorStore store.AuthorStore
	genreStore  store.GenreStore

	catalogService   service.CatalogService
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
}

// initializeApp loads configuration and sets up all application components:
// logging, the database connection pool, migrations, stores and services.
// Returns the assembled application or an error if any step fails.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if err := runMigrations(db, appLogger); err != nil {
		closeDatabase(db, appLogger)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		closeDatabase(db, appLogger)
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	bcryptVerifier := auth.NewBcryptVerifier()

	userStore := postgres.NewPostgresUserStore(db, appLogger)
	bookStore := postgres.NewPostgresBookStore(db, appLogger)
	authorStore := postgres.NewPostgresAuthorStore(db, appLogger)
	genreStore := postgres.NewPostgresGenreStore(db, appLogger)

	catalogService := service.NewCatalogService(bookStore, authorStore, genreStore, appLogger)

	return &application{
		config:           cfg,
		logger:           appLogger,
		db:               db,
		userStore:        userStore,
		bookStore:        bookStore,
		authorStore:      authorStore,
		genreStore:       genreStore,
		catalogService:   catalogService,
		jwtService:       jwtService,
		passwordHasher:   bcryptVerifier,
		passwordVerifier: bcryptVerifier,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		closeDatabase(app.db, app.logger)
	}
}
