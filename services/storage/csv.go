package storage

import (
	"encoding/csv"
	"fmt"
	"os"

	"aliyevr/binascraper/internal/scraper"
	"aliyevr/binascraper/logger"
)

// utf8BOM makes the CSV open correctly in spreadsheet tools
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes the complete accumulated result set to a flat file in
// one shot. This is the authoritative output of a run.
type CSVWriter struct {
	path string
	log  *logger.Logger
}

// NewCSVWriter creates a writer for the given CSV path
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{
		path: path,
		log:  logger.ForStorage("csv"),
	}
}

// WriteSnapshot writes a header row and every record, UTF-8 with a
// byte-order marker, replacing any previous file
func (w *CSVWriter) WriteSnapshot(records []*scraper.ListingRecord) error {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", w.path, err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return fmt.Errorf("csv: write BOM: %w", err)
	}

	writer := csv.NewWriter(f)

	if err := writer.Write(scraper.Header()); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, r := range records {
		if err := writer.Write(r.Row()); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}

	w.log.Info().Int("count", len(records)).Str("file", w.path).Msg("Snapshot written")
	return nil
}
