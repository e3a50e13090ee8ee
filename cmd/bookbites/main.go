package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"bookbites/internal/app"
	"bookbites/internal/config"
	"bookbites/internal/domains/identity"
	"bookbites/internal/store"
	"bookbites/pkg/logger"
	"bookbites/pkg/session"
)

// main boots the domain core standalone: load config, pick a storage
// backend, resolve the session, and report the outcome. The embedding
// shell does the same wiring and then hands the App to its views.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", err)
		os.Exit(1)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("starting", map[string]interface{}{
		"app":     cfg.App.Name,
		"version": cfg.App.Version,
		"env":     cfg.App.Environment,
		"backend": cfg.Storage.Backend,
	})

	ctx := context.Background()

	var db store.Store
	switch cfg.Storage.Backend {
	case "redis":
		rs := store.NewRedisStore(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := rs.Ping(ctx); err != nil {
			logger.Error("redis unavailable", err)
			os.Exit(1)
		}
		defer rs.Close()
		db = rs
	default:
		fs, err := store.NewFileStore(cfg.Storage.DataDir)
		if err != nil {
			logger.Error("file store init failed", err)
			os.Exit(1)
		}
		db = fs
	}

	// The ambient identity normally comes from the embedding host; for the
	// standalone binary it can be injected through the environment.
	ambient := identity.Ambient{
		UserID: os.Getenv("AMBIENT_USER_ID"),
		Name:   os.Getenv("AMBIENT_USER_NAME"),
	}

	a := app.New(ctx, app.Options{
		Store:    db,
		Tokens:   session.NewManager(cfg.Session.Secret, cfg.Session.AdminTTL),
		Verifier: identity.NewBcryptVerifier(cfg.Admin.ID, cfg.Admin.SecretHash),
		Ambient:  ambient,
	})

	fields := map[string]interface{}{
		"view":    string(a.CurrentView()),
		"books":   len(a.Books()),
		"shelves": len(a.Bookshelves()),
	}
	if u := a.User(); u != nil {
		fields["user"] = u.ID
		fields["tier"] = string(u.Tier)
	}
	logger.Info("session resolved", fields)
}
