package main

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/defai/walletgate/adapters/events"
	"github.com/defai/walletgate/adapters/records"
	"github.com/defai/walletgate/adapters/store"
	"github.com/defai/walletgate/adapters/tokenizer"
	"github.com/defai/walletgate/service"
	transport "github.com/defai/walletgate/transport/http"
	"github.com/redis/go-redis/v9"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	// Generate a new ECDSA key pair (you would normally load this from somewhere secure)
	signKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		log.Fatalf("Failed to generate signing key: %v", err)
	}

	redisURL := envOr("REDIS_URL", "redis://localhost:6379/0")
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opts)

	// Initialize Watermill Redis publisher
	wmLogger := watermill.NewStdLogger(false, false)
	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{
			Client: redisClient,
		},
		wmLogger,
	)
	if err != nil {
		log.Fatalf("Failed to create Redis publisher: %v", err)
	}

	chainID, err := strconv.ParseInt(envOr("SIWE_CHAIN_ID", "1"), 10, 64)
	if err != nil {
		log.Fatalf("Invalid SIWE_CHAIN_ID: %v", err)
	}
	siwe := service.SIWEConfig{
		Domain:  envOr("SIWE_DOMAIN", "vaults.defai.app"),
		URI:     envOr("SIWE_URI", "https://vaults.defai.app"),
		Version: "1",
		ChainID: chainID,
	}

	authService := service.NewAuthService(
		tokenizer.NewJWTTokenizer(signKey),
		store.NewRedisStore(redisClient),
		events.NewWatermillPublisher(publisher),
		siwe,
		logger,
	)
	vaultService := service.NewVaultService(records.NewRedisStore(redisClient))

	router := transport.SetupRouter(authService, vaultService, logger)

	addr := envOr("LISTEN_ADDR", ":9000")
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
