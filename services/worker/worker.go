package worker

import (
	"encoding/json"

	"aliyevr/binascraper/helpers"
	"aliyevr/binascraper/internal/scraper"
	"aliyevr/binascraper/services/publisher"
	"aliyevr/binascraper/services/storage"
)

// Worker drives a full scrape run: discovery, batched sequential fetching,
// per-batch checkpointing and the final snapshot. It never returns an
// error; every failure class is contained and logged, and the run outcome
// is observable only through logs and the output files.
type Worker struct {
	discoverer  scraper.Discoverer
	fetcher     scraper.Fetcher
	checkpoints []storage.BatchAppender
	snapshot    storage.SnapshotWriter
	publisher   publisher.Publisher
	logger      helpers.LoggerInterface
	limit       int
	batchSize   int
}

// NewWorker creates a new worker
func NewWorker(
	discoverer scraper.Discoverer,
	fetcher scraper.Fetcher,
	checkpoints []storage.BatchAppender,
	snapshot storage.SnapshotWriter,
	pub publisher.Publisher,
	logger helpers.LoggerInterface,
	limit int,
	batchSize int,
) *Worker {
	return &Worker{
		discoverer:  discoverer,
		fetcher:     fetcher,
		checkpoints: checkpoints,
		snapshot:    snapshot,
		publisher:   pub,
		logger:      logger,
		limit:       limit,
		batchSize:   batchSize,
	}
}

// Start runs the scrape to completion
func (w *Worker) Start() {
	urls, err := w.discoverer.Discover(w.limit)
	if err != nil {
		w.logger.LogError("discoverer", err)
		return
	}
	if len(urls) == 0 {
		w.logger.LogInfo("No listings found")
		return
	}

	totalBatches := ((len(urls) - 1) / w.batchSize) + 1
	var all []*scraper.ListingRecord

	for i := 0; i < len(urls); i += w.batchSize {
		end := i + w.batchSize
		if end > len(urls) {
			end = len(urls)
		}
		batchURLs := urls[i:end]
		batchNum := (i / w.batchSize) + 1

		w.logger.LogInfo("Starting batch %d/%d (%d listings)...", batchNum, totalBatches, len(batchURLs))

		batch := w.fetchBatch(batchURLs)
		all = append(all, batch...)

		// Durable checkpoint: a failed append loses only this batch's
		// checkpoint, never the in-memory accumulation
		if len(batch) > 0 {
			checkpointed := true
			for _, cp := range w.checkpoints {
				if err := cp.AppendBatch(batch); err != nil {
					w.logger.LogError("storage", err)
					checkpointed = false
				}
			}
			if checkpointed {
				w.logger.LogInfo("Batch %d written (%d records)", batchNum, len(batch))
			}
		}
	}

	if err := w.publisher.TrimStreams(); err != nil {
		w.logger.LogError("publisher", err)
	}

	if len(all) == 0 {
		w.logger.LogInfo("No data collected")
		return
	}

	if err := w.snapshot.WriteSnapshot(all); err != nil {
		w.logger.LogError("snapshot", err)
		return
	}
	w.logger.LogInfo("SUCCESS! Total %d listings saved", len(all))
}

// fetchBatch fetches one chunk of URLs sequentially. A failed listing is
// skipped, not fatal.
func (w *Worker) fetchBatch(urls []string) []*scraper.ListingRecord {
	var records []*scraper.ListingRecord
	for _, url := range urls {
		record, err := w.fetcher.Fetch(url)
		if err != nil {
			w.logger.LogError("fetcher", err)
			continue
		}
		records = append(records, record)
		w.publish(record)
	}
	return records
}

// publish sends a record to the configured publisher, best effort
func (w *Worker) publish(record *scraper.ListingRecord) {
	data, err := json.Marshal(record)
	if err != nil {
		w.logger.LogError("publisher", err)
		return
	}
	if err := w.publisher.Publish(record.ListingID, data); err != nil {
		w.logger.LogError("publisher", err)
	}
}
