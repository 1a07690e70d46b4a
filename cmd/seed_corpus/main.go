// Command seed_corpus imports raw addresses (one per line) into the corpus
// collection, interpreting each line to derive its region key.
package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/address-similarity/app/config"
	"github.com/address-similarity/internal/interpret"
	"github.com/address-similarity/internal/similarity"
)

func main() {
	configPath := flag.String("config", "config/engine.yaml", "engine config path")
	input := flag.String("input", "", "newline-delimited address file")
	startID := flag.Int64("start-id", 1, "first doc id to assign")
	flag.Parse()

	if *input == "" {
		log.Fatal("-input is required")
	}

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
	collection := client.Database(dbName).Collection("addresses")

	gaz, err := interpret.LoadGazetteer(config.C.GazetteerPath)
	if err != nil {
		logger.Fatal("Failed to load gazetteer", zap.Error(err))
	}
	interpreter := interpret.NewAddressInterpreter(gaz, logger)

	file, err := os.Open(*input)
	if err != nil {
		logger.Fatal("Failed to open input file", zap.Error(err))
	}
	defer file.Close()

	ctx := context.Background()
	docID := *startID
	inserted, skipped := 0, 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		addr, err := interpreter.Interpret(line)
		if err != nil || !addr.HasProvince() || !addr.HasCity() || !addr.HasCounty() {
			skipped++
			continue
		}

		doc := bson.D{
			bson.E{Key: "doc_id", Value: docID},
			bson.E{Key: "region_key", Value: similarity.BuildCacheKey(addr)},
			bson.E{Key: "text", Value: line},
		}
		if _, err := collection.InsertOne(ctx, doc); err != nil {
			logger.Error("Insert failed", zap.Int64("doc_id", docID), zap.Error(err))
			continue
		}
		docID++
		inserted++
	}
	if err := scanner.Err(); err != nil {
		logger.Fatal("Read input failed", zap.Error(err))
	}

	logger.Info("Corpus seeded",
		zap.Int("inserted", inserted),
		zap.Int("skipped", skipped))
}
