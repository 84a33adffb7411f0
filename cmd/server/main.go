package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"

	"github.com/fbcbank/card-intake/internal/api"
	"github.com/fbcbank/card-intake/internal/config"
	"github.com/fbcbank/card-intake/internal/document"
	"github.com/fbcbank/card-intake/internal/notify"
	"github.com/fbcbank/card-intake/internal/pkg/logger"
	"github.com/fbcbank/card-intake/internal/repository/dynamo"
	"github.com/fbcbank/card-intake/internal/repository/memory"
	"github.com/fbcbank/card-intake/internal/repository/postgres"
	"github.com/fbcbank/card-intake/internal/service/application"
	"github.com/fbcbank/card-intake/internal/storage"
)

// repository is what the server needs from any application store.
type repository interface {
	application.Repository
	Ping(ctx context.Context) error
}

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config/config.yaml"
}

func extractHost(dsn string) string {
	at := strings.Index(dsn, "@")
	if at < 0 {
		return "(unknown)"
	}
	rest := dsn[at+1:]
	if slash := strings.Index(rest, "/"); slash >= 0 {
		rest = rest[:slash]
	}
	return rest
}

func main() {
	cfg, err := config.LoadFromEnv(configPath())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.SetLevel(logger.ParseLevel(cfg.Log.Level))
	logger.SetRedactPII(cfg.Log.RedactPII)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo, closeRepo, err := openRepository(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize %s repository: %v", cfg.Database.Driver, err)
	}
	defer closeRepo()

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize document storage: %v", err)
	}

	renderer, err := document.NewRenderer(document.Options{
		Brand: document.Brand{
			BankName:  cfg.Brand.BankName,
			CardBrand: cfg.Brand.CardBrand,
			Title:     cfg.Brand.Title,
		},
		LogoPath: cfg.Brand.LogoPath,
		Compress: cfg.Document.Compress,
	})
	if err != nil {
		log.Fatalf("Failed to initialize document renderer: %v", err)
	}

	composer, err := notify.NewComposer(notify.BrandNames{
		ShortName: cfg.Brand.ShortName,
		Product:   cfg.Brand.Product,
		BankName:  cfg.Brand.DisplayName,
	}, notify.Templates{})
	if err != nil {
		log.Fatalf("Failed to parse email templates: %v", err)
	}

	sender, err := newSender(ctx, cfg.Mail)
	if err != nil {
		log.Fatalf("Failed to initialize %s mail sender: %v", cfg.Mail.Provider, err)
	}

	var rdb *redis.Client
	var redisPinger api.Pinger
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("Invalid REDIS_URL: %v", err)
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()
		redisPinger = api.RedisPinger{Client: rdb}
		logger.Info("redis configured", "addr", opts.Addr)
	}

	svc := application.NewService(repo, application.Config{
		Renderer:              renderer,
		Store:                 store,
		Composer:              composer,
		Sender:                sender,
		IsolateRenderFailures: cfg.Intake.IsolateRenderFailures,
		AttachDocument:        cfg.Mail.AttachDocument,
	})

	server := api.NewServer(cfg.Server, api.Deps{
		Applications: svc,
		Documents:    store,
		Health:       api.NewHealthChecker(repo, redisPinger, store),
		Limiter:      api.NewRateLimiter(rdb, cfg.Redis.RateLimitPerMinute),
	})

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("starting server", "addr", cfg.Server.Addr(),
			"database", cfg.Database.Driver, "storage", cfg.Storage.Type, "mail", cfg.Mail.Provider)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	logger.Info("server stopped")
}

func openRepository(ctx context.Context, cfg config.DatabaseConfig) (repository, func(), error) {
	switch cfg.Driver {
	case "postgres":
		if cfg.URL == "" {
			return nil, nil, errors.New("DATABASE_URL is required for the postgres driver")
		}
		db, err := sql.Open("postgres", cfg.URL)
		if err != nil {
			return nil, nil, err
		}
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns / 2)
		db.SetConnMaxLifetime(30 * time.Minute)

		pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ping %s: %w", extractHost(cfg.URL), err)
		}
		logger.Info("connected to postgres", "host", extractHost(cfg.URL))
		return postgres.NewApplicationRepo(db), func() { db.Close() }, nil

	case "dynamodb":
		repo, err := dynamo.NewApplicationRepoFromConfig(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using dynamodb", "table", cfg.DynamoDBTable, "region", cfg.AWSRegion)
		return repo, func() {}, nil

	case "memory":
		logger.Warn("using in-memory repository; applications are lost on restart")
		return memory.NewApplicationRepo(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}

func newSender(ctx context.Context, cfg config.MailConfig) (notify.Sender, error) {
	switch cfg.Provider {
	case "smtp":
		return notify.NewSMTPSender(notify.SMTPConfig{
			Host:     cfg.Host,
			Port:     cfg.Port,
			Username: cfg.Username,
			Password: cfg.Password,
			From:     cfg.From,
			Secure:   cfg.Secure,
			Timeout:  cfg.Timeout(),
		}), nil
	case "ses":
		return notify.NewSESSenderFromConfig(ctx, notify.SESConfig{
			Region:    cfg.SESRegion,
			AccessKey: cfg.SESAccessKey,
			SecretKey: cfg.SESSecretKey,
			From:      cfg.From,
		})
	case "none":
		logger.Warn("mail disabled; confirmations will be reported as undelivered")
		return notify.Disabled{}, nil
	}
	return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
}
