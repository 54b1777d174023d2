// Command ragdex-seed loads the bundled sample corpus into the index.
package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/corvid-labs/ragdex/internal/config"
	dbRedis "github.com/corvid-labs/ragdex/internal/db/redis"
	logpkg "github.com/corvid-labs/ragdex/internal/logger"
	"github.com/corvid-labs/ragdex/internal/metrics"
	documentrepo "github.com/corvid-labs/ragdex/internal/repository/document"
	"github.com/corvid-labs/ragdex/internal/repository/embcache"
	indexrepo "github.com/corvid-labs/ragdex/internal/repository/index"
	"github.com/corvid-labs/ragdex/internal/seed"
	openaiEmb "github.com/corvid-labs/ragdex/internal/transport/openai"
	embeddinguc "github.com/corvid-labs/ragdex/internal/usecase/embedding"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	metrics.Register()

	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})
	cached := embcache.New(base, store, cfg.Embedding.Model, metrics.EmbeddingCacheTotal, logger)
	gateway := embeddinguc.NewGateway(cached, cfg.Embedding.Model, cfg.Embedding.Dimensions, logger)

	indexMgr := indexrepo.New(store, indexrepo.Config{
		VectorDim:       cfg.Embedding.Dimensions,
		HNSWM:           cfg.Index.HNSWM,
		HNSWEFConstruct: cfg.Index.HNSWEFConstruct,
	}, logger)
	if err := indexMgr.Ensure(ctx); err != nil {
		logger.Fatal("Failed to ensure document index", zap.Error(err))
	}

	docRepo := documentrepo.New(store)
	loader := seed.NewLoader(docRepo, gateway, logger)

	summary, err := loader.Load(ctx)
	if err != nil {
		logger.Fatal("Seeding failed", zap.Error(err))
	}

	fmt.Printf("Seeded %d documents (%d already present)\n", summary.Loaded, summary.Skipped)

	categories := make([]string, 0, len(summary.ByCategory))
	for c := range summary.ByCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		fmt.Printf("  %-14s %d\n", c, summary.ByCategory[c])
	}
}
