package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"aliyevr/binascraper/internal/scraper"
	"aliyevr/binascraper/logger"
)

// PostgresWriter checkpoints listing batches into PostgreSQL. It is an
// optional additional sink next to the spreadsheet checkpoint.
type PostgresWriter struct {
	db  *sql.DB
	log *logger.Logger
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db, log: logger.ForStorage("postgres")}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS listings (
			id            SERIAL PRIMARY KEY,
			listing_id    TEXT         UNIQUE NOT NULL,
			title         TEXT         NOT NULL DEFAULT '',
			updated_date  TEXT         NOT NULL DEFAULT '',
			category      TEXT         NOT NULL DEFAULT '',
			building_type TEXT         NOT NULL DEFAULT '',
			renovation    TEXT         NOT NULL DEFAULT '',
			area          TEXT         NOT NULL DEFAULT '',
			rooms         TEXT         NOT NULL DEFAULT '',
			deal_type     TEXT         NOT NULL DEFAULT '',
			price         TEXT         NOT NULL DEFAULT '',
			currency      TEXT         NOT NULL DEFAULT '',
			price_type    TEXT         NOT NULL DEFAULT '',
			phone         TEXT         NOT NULL DEFAULT '',
			location      TEXT         NOT NULL DEFAULT '',
			scraped_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_listings_deal_type ON listings(deal_type);
		CREATE INDEX IF NOT EXISTS idx_listings_category  ON listings(category);
		CREATE INDEX IF NOT EXISTS idx_listings_location  ON listings(location);
	`)
	return err
}

// AppendBatch upserts the batch keyed by listing_id, so re-scraped
// listings refresh their row instead of duplicating it
func (pw *PostgresWriter) AppendBatch(records []*scraper.ListingRecord) error {
	if len(records) == 0 {
		return nil
	}

	const insertBatch = 50
	for i := 0; i < len(records); i += insertBatch {
		end := i + insertBatch
		if end > len(records) {
			end = len(records)
		}
		if err := pw.insertBatch(records[i:end]); err != nil {
			return err
		}
	}

	pw.log.Debug().Int("count", len(records)).Msg("Batch checkpointed")
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*scraper.ListingRecord) error {
	const cols = 14
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, r := range batch {
		base := idx * cols
		placeholders := make([]string, cols)
		for j := 0; j < cols; j++ {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ", ")+")")
		valueArgs = append(valueArgs,
			r.ListingID, r.Title, r.UpdatedDate, r.Category, r.BuildingType,
			r.Renovation, r.Area, r.Rooms, r.DealType, r.Price,
			r.Currency, r.PriceType, r.Phone, r.Location,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO listings (
			listing_id, title, updated_date, category, building_type,
			renovation, area, rooms, deal_type, price,
			currency, price_type, phone, location
		) VALUES %s
		ON CONFLICT (listing_id) DO UPDATE SET
			title         = EXCLUDED.title,
			updated_date  = EXCLUDED.updated_date,
			category      = EXCLUDED.category,
			building_type = EXCLUDED.building_type,
			renovation    = EXCLUDED.renovation,
			area          = EXCLUDED.area,
			rooms         = EXCLUDED.rooms,
			deal_type     = EXCLUDED.deal_type,
			price         = EXCLUDED.price,
			currency      = EXCLUDED.currency,
			price_type    = EXCLUDED.price_type,
			phone         = EXCLUDED.phone,
			location      = EXCLUDED.location,
			scraped_at    = NOW()
	`, strings.Join(valueStrings, ", "))

	if _, err := pw.db.Exec(query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert batch: %w", err)
	}
	return nil
}

// Close closes the database connection
func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
