package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Target site
	BaseURL string

	// Scrape run parameters
	Limit          int
	BatchSize      int
	DelayMin       time.Duration
	DelayMax       time.Duration
	RequestTimeout time.Duration

	// Output files (written to the working directory)
	ExcelFile string
	CSVFile   string

	// Memcache configuration (optional; empty disables the cooldown cache)
	MemcacheAddr string

	// Redis configuration (optional; empty RedisAddr disables publishing)
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int

	// Postgres configuration (optional; empty disables the DB checkpoint)
	PostgresDSN string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	limit, _ := strconv.Atoi(getEnv("SCRAPE_LIMIT", "30000"))
	batchSize, _ := strconv.Atoi(getEnv("BATCH_SIZE", "500"))
	delayMin, _ := strconv.Atoi(getEnv("DELAY_MIN_SECONDS", "2"))
	delayMax, _ := strconv.Atoi(getEnv("DELAY_MAX_SECONDS", "5"))
	timeout, _ := strconv.Atoi(getEnv("REQUEST_TIMEOUT_SECONDS", "15"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamCount, _ := strconv.Atoi(getEnv("REDIS_STREAM_COUNT", "1"))
	streamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))

	return Config{
		BaseURL:              getEnv("BINA_BASE_URL", "https://bina.az"),
		Limit:                limit,
		BatchSize:            batchSize,
		DelayMin:             time.Duration(delayMin) * time.Second,
		DelayMax:             time.Duration(delayMax) * time.Second,
		RequestTimeout:       time.Duration(timeout) * time.Second,
		ExcelFile:            getEnv("EXCEL_FILE", "bina_az_data.xlsx"),
		CSVFile:              getEnv("CSV_FILE", "bina_az_data.csv"),
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", ""),
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "listings"),
		RedisStreamCount:     streamCount,
		RedisStreamMaxLength: streamMaxLen,
		PostgresDSN:          getEnv("DATABASE_URL", ""),
		Environment:          getEnv("BINA_ENVIRONMENT", "development"),
	}
}

// Validate checks that the configuration is usable
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL must not be empty")
	}
	if c.Limit <= 0 {
		return fmt.Errorf("scrape limit must be positive, got %d", c.Limit)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if c.DelayMin > c.DelayMax {
		return fmt.Errorf("delay range is inverted: min %s > max %s", c.DelayMin, c.DelayMax)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.ExcelFile == "" || c.CSVFile == "" {
		return fmt.Errorf("output file names must not be empty")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
