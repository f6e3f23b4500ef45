package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kailas-cloud/semrank/internal/config"
	"github.com/kailas-cloud/semrank/internal/corpus"
	dbRedis "github.com/kailas-cloud/semrank/internal/db/redis"
	logpkg "github.com/kailas-cloud/semrank/internal/logger"
	"github.com/kailas-cloud/semrank/internal/metrics"
	documentrepo "github.com/kailas-cloud/semrank/internal/repository/document"
	"github.com/kailas-cloud/semrank/internal/transport/openai"
	indexinguc "github.com/kailas-cloud/semrank/internal/usecase/indexing"
	"github.com/kailas-cloud/semrank/internal/version"
)

func main() {
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting semrank indexer",
		zap.String("version", version.Version),
		zap.String("env", env),
		zap.String("corpus", cfg.Corpus.Path),
		zap.String("index", cfg.Index.Name),
	)

	records, err := corpus.LoadFile(cfg.Corpus.Path)
	if err != nil {
		logger.Fatal("Failed to load corpus", zap.Error(err))
	}
	logger.Info("Corpus parsed", zap.Int("records", len(records)))

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Store.Addrs,
		Password: cfg.Store.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Store.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Store not ready", zap.Error(err))
	}
	logger.Info("Connected to store")

	metrics.RegisterModelMetrics()

	encoder, err := openai.NewEncoder(ctx, &openai.Config{
		APIKey:     cfg.Encoder.APIKey,
		BaseURL:    cfg.Encoder.BaseURL,
		Model:      cfg.Encoder.Model,
		Dimensions: cfg.Encoder.Dimensions,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal("Failed to load encoder model", zap.Error(err))
	}

	docRepo := documentrepo.New(store, cfg.Index.Name)
	if cfg.Index.Recreate {
		logger.Info("Dropping existing index", zap.String("index", cfg.Index.Name))
		if err := docRepo.ResetIndex(ctx); err != nil {
			logger.Fatal("Failed to drop index", zap.Error(err))
		}
	}
	if err := docRepo.EnsureIndex(ctx, documentrepo.IndexParams{
		Dimensions:  cfg.Encoder.Dimensions,
		HNSWM:       cfg.Index.HNSWM,
		EFConstruct: cfg.Index.HNSWEFConstruct,
	}); err != nil {
		logger.Fatal("Failed to create index", zap.Error(err))
	}

	indexer := indexinguc.NewService(encoder, docRepo, cfg.Encoder.BatchSize, logger)
	if err := indexer.Run(ctx, records); err != nil {
		logger.Fatal("Indexing failed", zap.Error(err))
	}

	// FT indexing is synchronous on HSET; a final ping confirms the store is
	// still reachable after the bulk load.
	if err := store.Ping(ctx); err != nil {
		logger.Fatal("Store unreachable after load", zap.Error(err))
	}
	logger.Info("Index ready",
		zap.String("index", cfg.Index.Name),
		zap.Int("documents", len(records)),
	)
}
