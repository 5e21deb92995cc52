package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"aliyevr/binascraper/config"
	"aliyevr/binascraper/helpers"
	"aliyevr/binascraper/internal/scraper"
	"aliyevr/binascraper/logger"
	"aliyevr/binascraper/services/cache"
	"aliyevr/binascraper/services/publisher"
	"aliyevr/binascraper/services/storage"
	"aliyevr/binascraper/services/worker"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("base_url", cfg.BaseURL).
		Int("limit", cfg.Limit).
		Int("batch_size", cfg.BatchSize).
		Msg("Starting scrape run")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	session := helpers.NewSession(cfg.BaseURL, cfg.RequestTimeout)

	cacheSvc := initializeCache(&cfg)
	pub := initializePublisher(ctx, &cfg)
	defer pub.Close()

	checkpoints := initializeCheckpoints(&cfg)
	snapshot := storage.NewCSVWriter(cfg.CSVFile)

	discoverer := scraper.NewSitemapDiscoverer(session, cfg.BaseURL)
	fetcher := scraper.NewListingFetcher(scraper.FetcherConfig{
		Session:   session,
		Extractor: scraper.NewExtractor(scraper.DefaultSelectors()),
		Phones:    scraper.NewHTTPPhoneResolver(session, cfg.BaseURL),
		CacheSvc:  cacheSvc,
		CacheKey:  "bina_rate_limited",
		DelayMin:  cfg.DelayMin,
		DelayMax:  cfg.DelayMax,
	})

	w := worker.NewWorker(
		discoverer,
		fetcher,
		checkpoints,
		snapshot,
		pub,
		&helpers.ZerologAdapter{},
		cfg.Limit,
		cfg.BatchSize,
	)

	// Run the worker; the run proceeds to completion, a signal abandons
	// the final snapshot but keeps every checkpointed batch on disk
	done := make(chan struct{})
	go func() {
		w.Start()
		close(done)
	}()

	select {
	case sig := <-sigChan:
		log.Warn().
			Str("signal", sig.String()).
			Msg("Interrupted; completed batches remain in the spreadsheet checkpoint")
	case <-done:
		log.Info().Msg("Scrape run finished")
	}
}

// initializeCache returns the memcache-backed cooldown cache, or a no-op
// cache when no address is configured
func initializeCache(cfg *config.Config) cache.CacheService {
	if cfg.MemcacheAddr == "" {
		return cache.NewNoopCache()
	}
	logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)
	return cache.NewMemcacheService(cfg.MemcacheAddr)
}

// initializePublisher returns the Redis stream publisher, or a no-op
// publisher when no address is configured
func initializePublisher(ctx context.Context, cfg *config.Config) publisher.Publisher {
	if cfg.RedisAddr == "" {
		return publisher.NewNoopPublisher()
	}
	logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)",
		cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	return publisher.NewRedisPublisher(
		ctx,
		cfg.RedisAddr,
		cfg.RedisDB,
		cfg.RedisStream,
		cfg.RedisStreamCount,
		cfg.RedisStreamMaxLength,
	)
}

// initializeCheckpoints builds the per-batch checkpoint sinks. The
// spreadsheet is always on; Postgres joins when a DSN is configured.
func initializeCheckpoints(cfg *config.Config) []storage.BatchAppender {
	checkpoints := []storage.BatchAppender{
		storage.NewExcelWriter(cfg.ExcelFile),
	}

	if cfg.PostgresDSN != "" {
		pg, err := storage.NewPostgresWriter(cfg.PostgresDSN)
		if err != nil {
			logger.Error("Postgres checkpoint disabled: %v", err)
		} else {
			logger.Info("Postgres checkpoint enabled")
			checkpoints = append(checkpoints, pg)
		}
	}

	return checkpoints
}
