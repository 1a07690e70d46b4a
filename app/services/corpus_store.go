package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// CorpusRecord is one raw address row from the source-of-record collection.
type CorpusRecord struct {
	ID        int64  `bson:"doc_id" json:"doc_id"`
	RegionKey string `bson:"region_key" json:"region_key"`
	Text      string `bson:"text" json:"text"`
}

// CorpusStore reads the address source-of-record used to (re)build the
// per-region vector files. Backed by the "addresses" collection.
type CorpusStore struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewCorpusStore(db *mongo.Database, logger *zap.Logger) (*CorpusStore, error) {
	collection := db.Collection("addresses")

	indexModels := []mongo.IndexModel{
		{
			Keys: bson.D{bson.E{Key: "region_key", Value: 1}},
		},
		{
			Keys:    bson.D{bson.E{Key: "doc_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.Warn("could not create indexes for addresses", zap.Error(err))
	}

	return &CorpusStore{collection: collection, logger: logger}, nil
}

// RegionKeys lists every distinct region key present in the corpus.
func (cs *CorpusStore) RegionKeys(ctx context.Context) ([]string, error) {
	values, err := cs.collection.Distinct(ctx, "region_key", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("distinct region keys: %w", err)
	}

	keys := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			keys = append(keys, s)
		}
	}
	return keys, nil
}

// AddressesByRegion streams every corpus record for one region key.
func (cs *CorpusStore) AddressesByRegion(ctx context.Context, regionKey string) ([]CorpusRecord, error) {
	cursor, err := cs.collection.Find(ctx, bson.D{bson.E{Key: "region_key", Value: regionKey}})
	if err != nil {
		return nil, fmt.Errorf("find addresses for %s: %w", regionKey, err)
	}
	defer cursor.Close(ctx)

	var records []CorpusRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode addresses for %s: %w", regionKey, err)
	}

	cs.logger.Debug("loaded corpus region",
		zap.String("region_key", regionKey),
		zap.Int("records", len(records)))
	return records, nil
}

// Count returns the corpus size for health reporting.
func (cs *CorpusStore) Count(ctx context.Context) (int64, error) {
	return cs.collection.CountDocuments(ctx, bson.D{})
}
