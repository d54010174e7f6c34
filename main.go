package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Dubemernest23/akuko/api"
	"github.com/Dubemernest23/akuko/config"
	"github.com/Dubemernest23/akuko/database"
	"github.com/Dubemernest23/akuko/session"
)

func main() {
	setupOnly := flag.Bool("setup", false, "run schema setup and exit")
	flag.Parse()

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	cfg := config.New()
	development := config.IsDevelopment(cfg)
	if development {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := openDatabase(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Database connection failed")
		os.Exit(1)
	}

	cipher, err := buildFieldCipher(cfg, development)
	if err != nil {
		log.Error().Err(err).Msg("Field encryption setup failed")
		os.Exit(1)
	}

	currentDB := database.New(db, cipher)

	adminUsername := config.GetString(cfg, config.KeyAdminUsername, "admin")
	adminPassword := config.GetString(cfg, config.KeyAdminPassword, "admin123")

	ctx := context.Background()
	if err := currentDB.SetupSchema(ctx, adminUsername, adminPassword); err != nil {
		log.Error().Err(err).Msg("Schema setup failed")
		os.Exit(1)
	}
	if *setupOnly {
		log.Info().Msg("Setup complete")
		return
	}

	rdb, err := openRedis(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("Redis connection failed")
		os.Exit(1)
	}

	sessionTTL := time.Duration(config.GetInt(cfg, config.KeySessionMaxAge, 86400000)) * time.Millisecond
	sessions := session.NewManager(rdb, sessionTTL)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, sessions, rdb, cfg)
	if err != nil {
		log.Error().Err(err).Msg("Error initializing server")
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)

	if err := rdb.Close(); err != nil {
		log.Warn().Err(err).Msg("Error closing redis client")
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Warn().Err(err).Msg("Error closing database")
		}
	}
}

// openDatabase connects to postgres and verifies the connection before any
// component gets the handle.
func openDatabase(cfg map[string]string) (*gorm.DB, error) {
	gormLog := gormlogger.New(
		&zerologWriter{},
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: config.DatabaseDSN(cfg),
	}), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Needed for the uuid column defaults.
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"pgcrypto\"").Error; err != nil {
		return nil, fmt.Errorf("enabling pgcrypto extension: %w", err)
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, err
	}
	return db, nil
}

// buildFieldCipher resolves ENCRYPTION_KEY. A missing key is fatal in
// production; development falls back to a fixed key with a warning so local
// setups keep working.
func buildFieldCipher(cfg map[string]string, development bool) (*database.FieldCipher, error) {
	passphrase := config.GetString(cfg, config.KeyEncryptionKey, "")
	if passphrase == "" {
		if !development {
			return nil, fmt.Errorf("%s must be set outside development", config.KeyEncryptionKey)
		}
		log.Warn().Msg("ENCRYPTION_KEY not set; using the development default key")
		passphrase = "akuko-dev-encryption-key"
	}
	return database.NewFieldCipher(passphrase)
}

func openRedis(ctx context.Context, cfg map[string]string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.GetString(cfg, config.KeyRedisAddr, "localhost:6379"),
		Password: config.GetString(cfg, config.KeyRedisPassword, ""),
		DB:       config.GetInt(cfg, config.KeyRedisDB, 0),
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

// zerologWriter lets the gorm logger emit through zerolog.
type zerologWriter struct{}

func (zerologWriter) Printf(format string, args ...any) {
	log.Warn().Msgf(format, args...)
}
