// Command worker rebuilds every per-region vector file from the corpus
// source-of-record and exits. Run it after corpus imports, or on a schedule.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/address-similarity/app/config"
	"github.com/address-similarity/app/services"
	"github.com/address-similarity/internal/interpret"
	"github.com/address-similarity/internal/segment"
	"github.com/address-similarity/internal/similarity"
)

func main() {
	configPath := flag.String("config", "config/engine.yaml", "engine config path")
	regionKey := flag.String("region", "", "rebuild only this region key")
	flag.Parse()

	if err := config.Load(*configPath); err != nil {
		log.Printf("Warning: cannot read engine config, using defaults: %v", err)
		config.Default()
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}
	defer logger.Sync()

	mongoURL := os.Getenv("MONGO_URL")
	if mongoURL == "" {
		logger.Fatal("MONGO_URL is required")
	}

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURL))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "address_similarity"
	}

	corpusStore, err := services.NewCorpusStore(client.Database(dbName), logger)
	if err != nil {
		logger.Fatal("Failed to initialize corpus store", zap.Error(err))
	}

	gaz, err := interpret.LoadGazetteer(config.C.GazetteerPath)
	if err != nil {
		logger.Fatal("Failed to load gazetteer", zap.Error(err))
	}

	store := similarity.NewVectorStore(config.C.CacheDir, false, logger)
	computer := similarity.NewComputer(
		interpret.NewAddressInterpreter(gaz, logger),
		segment.NewSimpleSegmenter(),
		store,
		logger,
	)
	service := services.NewSimilarityService(computer, nil, corpusStore, logger)

	ctx := context.Background()
	start := time.Now()

	if *regionKey != "" {
		count, err := service.RebuildRegion(ctx, *regionKey)
		if err != nil {
			logger.Fatal("Region rebuild failed",
				zap.String("region_key", *regionKey),
				zap.Error(err))
		}
		logger.Info("Region rebuilt",
			zap.String("region_key", *regionKey),
			zap.Int("documents", count),
			zap.Duration("took", time.Since(start)))
		return
	}

	keys, err := corpusStore.RegionKeys(ctx)
	if err != nil {
		logger.Fatal("Failed to list region keys", zap.Error(err))
	}

	total := 0
	for _, key := range keys {
		count, err := service.RebuildRegion(ctx, key)
		if err != nil {
			logger.Fatal("Region rebuild failed",
				zap.String("region_key", key),
				zap.Error(err))
		}
		total += count
	}

	logger.Info("Corpus rebuild completed",
		zap.Int("regions", len(keys)),
		zap.Int("documents", total),
		zap.Duration("took", time.Since(start)))
}
