package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/address-similarity/app/config"
	"github.com/address-similarity/app/controllers"
	"github.com/address-similarity/app/services"
	"github.com/address-similarity/internal/interpret"
	"github.com/address-similarity/internal/segment"
	"github.com/address-similarity/internal/similarity"
	"github.com/address-similarity/routes"
)

func main() {
	// 1. Load configuration
	loadConfig()
	if err := config.Load(viper.GetString("engine.config_path")); err != nil {
		log.Printf("Warning: cannot read engine config, using defaults: %v", err)
		config.Default()
	}

	// 2. Logger
	logger := initLogger()
	defer logger.Sync()

	logger.Info("Starting Address Similarity Service")

	// 3. Gazetteer and interpreter
	gaz, err := interpret.LoadGazetteer(config.C.GazetteerPath)
	if err != nil {
		logger.Fatal("Failed to load gazetteer", zap.Error(err))
	}
	interpreter := interpret.NewAddressInterpreter(gaz, logger)
	segmenter := segment.NewSimpleSegmenter()

	// 4. Vector store and computer
	store := similarity.NewVectorStore(config.C.CacheDir, config.C.CacheVectorsInMemory, logger)
	computer := similarity.NewComputer(interpreter, segmenter, store, logger)

	logger.Info("Vector store ready",
		zap.String("dir", store.Dir()),
		zap.Bool("in_memory", config.C.CacheVectorsInMemory))

	// 5. Query-result cache: Redis when configured, in-process LRU otherwise
	var queryCache services.IQueryCache
	if redisURL := getEnv("REDIS_URL", ""); redisURL != "" {
		redisCache, err := services.NewRedisQueryCache(redisURL, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Redis query cache", zap.Error(err))
		}
		queryCache = redisCache
		logger.Info("Using Redis query cache")
	} else {
		lruCache, err := services.NewLRUQueryCache(getEnvInt("QUERY_CACHE_SIZE", 4096))
		if err != nil {
			logger.Fatal("Failed to initialize LRU query cache", zap.Error(err))
		}
		queryCache = lruCache
		logger.Info("Using in-process LRU query cache")
	}
	defer queryCache.Close()

	// 6. Corpus store (optional; rebuild endpoints need it)
	var corpusStore *services.CorpusStore
	if mongoDB := initMongoDB(logger); mongoDB != nil {
		defer func() {
			if err := mongoDB.Client().Disconnect(context.Background()); err != nil {
				logger.Error("Error disconnecting MongoDB", zap.Error(err))
			}
		}()
		corpusStore, err = services.NewCorpusStore(mongoDB, logger)
		if err != nil {
			logger.Fatal("Failed to initialize corpus store", zap.Error(err))
		}
	} else {
		logger.Warn("Running without corpus store; rebuild endpoints disabled")
	}

	// 7. Services and controllers
	similarityService := services.NewSimilarityService(computer, queryCache, corpusStore, logger)
	similarityController := controllers.NewSimilarityController(similarityService, logger)
	adminController := controllers.NewAdminController(similarityService, logger)

	// 8. Router
	if getEnv("APP_ENV", "development") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupAllRoutes(router, similarityController, adminController)

	// 9. Serve
	port := getEnv("APP_PORT", "8080")
	logger.Info("Address Similarity Service starting", zap.String("port", port))

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// loadConfig loads app-level settings from file and env vars.
func loadConfig() {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("engine.config_path", "config/engine.yaml")
	viper.SetDefault("mongo.url", "")
	viper.SetDefault("redis.url", "")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Cannot read config file: %v", err)
	}
}

func initLogger() *zap.Logger {
	env := getEnv("APP_ENV", "development")

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}
	return logger
}

// initMongoDB connects to the corpus database. Returns nil when no URL is
// configured or the connection fails.
func initMongoDB(logger *zap.Logger) *mongo.Database {
	mongoURL := getEnv("MONGO_URL", viper.GetString("mongo.url"))
	if mongoURL == "" {
		return nil
	}

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURL))
	if err != nil {
		logger.Warn("Failed to connect to MongoDB", zap.Error(err))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Warn("Failed to ping MongoDB", zap.Error(err))
		return nil
	}

	dbName := getEnv("MONGO_DB", "address_similarity")
	logger.Info("Connected to MongoDB", zap.String("database", dbName))
	return client.Database(dbName)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
