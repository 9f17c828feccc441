package main

import (
	"context"
	"log"
	"net/http"

	"github.com/Helbert77/Vigil/internal/assist"
	"github.com/Helbert77/Vigil/internal/config"
	"github.com/Helbert77/Vigil/internal/feed"
	"github.com/Helbert77/Vigil/internal/httpapi"
	"github.com/Helbert77/Vigil/internal/persistence"
	"github.com/Helbert77/Vigil/internal/repository"
	"github.com/Helbert77/Vigil/internal/seed"
	"github.com/jackc/pgx/v5/pgxpool"
)

// openKV picks the backend for the saved-post key. The returned func releases it.
func openKV(ctx context.Context, cfg config.Config) (repository.KVRepository, func()) {
	switch cfg.Storage {
	case config.StoragePostgres:
		pcfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("parse dsn: ", err)
		}
		pool, err := pgxpool.NewWithConfig(ctx, pcfg)
		if err != nil {
			log.Fatal("failed to connect database: ", err)
		}
		repo := repository.NewPostgresKVRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal("failed to prepare schema: ", err)
		}
		return repo, pool.Close
	case config.StorageMemory:
		return repository.NewMemoryKVRepository(), func() {}
	default:
		repo, err := repository.NewFileKVRepository(cfg.DataDir)
		if err != nil {
			log.Fatal("failed to open data dir: ", err)
		}
		return repo, func() {}
	}
}

func main() {
	ctx := context.Background()
	cfg := config.Load()

	kv, closeKV := openKV(ctx, cfg)
	defer closeKV()

	store := feed.NewStore(ctx, seed.Load(), feed.Options{
		Saved: persistence.NewSavedPosts(kv),
	})

	r := httpapi.NewRouter(httpapi.Deps{
		Store:          store,
		Assist:         assist.NewService(cfg.AssistDelay),
		AllowedOrigins: cfg.AllowedOrigins,
		PollRefresh:    cfg.PollRefresh,
	})

	log.Printf("Server starting on %s (storage: %s)", cfg.Addr, cfg.Storage)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal(err)
	}
}
