package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"aliyevr/binascraper/internal/scraper"
	"aliyevr/binascraper/logger"
	pkgerrors "aliyevr/binascraper/pkg/errors"
)

// ExcelWriter appends listing batches to a running spreadsheet. The file
// is a progress checkpoint: it is created with a header row on the first
// batch and extended row-by-row on later ones, so it may be incomplete if
// the process is interrupted.
type ExcelWriter struct {
	path  string
	sheet string
	log   *logger.Logger
}

// NewExcelWriter creates a writer for the given spreadsheet path
func NewExcelWriter(path string) *ExcelWriter {
	return &ExcelWriter{
		path:  path,
		sheet: "Sheet1",
		log:   logger.ForStorage("excel"),
	}
}

// AppendBatch writes the batch after the last existing row of the sheet,
// creating the file with a header row when it does not exist yet
func (w *ExcelWriter) AppendBatch(records []*scraper.ListingRecord) error {
	if len(records) == 0 {
		return nil
	}

	var err error
	if w.exists() {
		err = w.appendRows(records)
	} else {
		err = w.createWithRows(records)
	}

	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			w.log.Error().Msg("Excel file is currently open, batch could not be written")
		}
		return pkgerrors.NewStorage("excel", fmt.Sprintf("batch of %d rows", len(records)), err)
	}

	return nil
}

// exists checks the target path through filesystem metadata
func (w *ExcelWriter) exists() bool {
	_, err := os.Stat(w.path)
	return err == nil
}

// createWithRows creates a new spreadsheet holding the header row and the
// first batch
func (w *ExcelWriter) createWithRows(records []*scraper.ListingRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(w.sheet, "A1", rowValues(scraper.Header())); err != nil {
		return err
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(w.sheet, cell, rowValues(r.Row())); err != nil {
			return err
		}
	}

	return f.SaveAs(w.path)
}

// appendRows opens the existing spreadsheet and writes the batch starting
// right after its last row, with no header repeated
func (w *ExcelWriter) appendRows(records []*scraper.ListingRecord) error {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(w.sheet)
	if err != nil {
		return err
	}
	start := len(rows) + 1

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, start+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(w.sheet, cell, rowValues(r.Row())); err != nil {
			return err
		}
	}

	return f.Save()
}

func rowValues(row []string) *[]interface{} {
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}
	return &values
}
