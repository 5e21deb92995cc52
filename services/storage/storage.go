package storage

import (
	"aliyevr/binascraper/internal/scraper"
)

// BatchAppender is the interface for incremental checkpoint storage. Each
// completed batch of fetches is appended immediately so partial progress
// survives a crash in a later batch.
type BatchAppender interface {
	AppendBatch(records []*scraper.ListingRecord) error
}

// SnapshotWriter is the interface for the authoritative complete output
// written once at the end of a run.
type SnapshotWriter interface {
	WriteSnapshot(records []*scraper.ListingRecord) error
}
