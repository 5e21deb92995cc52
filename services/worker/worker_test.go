package worker

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aliyevr/binascraper/helpers"
	"aliyevr/binascraper/internal/scraper"
	"aliyevr/binascraper/services/publisher"
	"aliyevr/binascraper/services/storage"
)

// MockDiscoverer implements the scraper.Discoverer interface for testing
type MockDiscoverer struct {
	urls []string
	err  error
}

var _ scraper.Discoverer = (*MockDiscoverer)(nil)

func (m *MockDiscoverer) Discover(limit int) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.urls) > limit {
		return m.urls[:limit], nil
	}
	return m.urls, nil
}

// MockFetcher implements the scraper.Fetcher interface for testing
type MockFetcher struct {
	failing map[string]bool
}

var _ scraper.Fetcher = (*MockFetcher)(nil)

func (m *MockFetcher) Fetch(url string) (*scraper.ListingRecord, error) {
	if m.failing[url] {
		return nil, errors.New("fetch failed: " + url)
	}
	return &scraper.ListingRecord{
		Title:     "Listing " + url,
		ListingID: helpers.LastPathSegment(url),
	}, nil
}

// RecordingAppender records every batch it receives and can fail on
// selected calls
type RecordingAppender struct {
	batches [][]*scraper.ListingRecord
	failOn  map[int]error
}

var _ storage.BatchAppender = (*RecordingAppender)(nil)

func (r *RecordingAppender) AppendBatch(records []*scraper.ListingRecord) error {
	call := len(r.batches)
	r.batches = append(r.batches, records)
	if err, ok := r.failOn[call]; ok {
		return err
	}
	return nil
}

// RecordingSnapshot records the final snapshot
type RecordingSnapshot struct {
	records []*scraper.ListingRecord
	err     error
}

var _ storage.SnapshotWriter = (*RecordingSnapshot)(nil)

func (r *RecordingSnapshot) WriteSnapshot(records []*scraper.ListingRecord) error {
	r.records = records
	return r.err
}

// MockLogger implements helpers.LoggerInterface for testing
type MockLogger struct {
	errors []string
	infos  []string
}

var _ helpers.LoggerInterface = (*MockLogger)(nil)

func (m *MockLogger) LogError(component string, err error) {
	m.errors = append(m.errors, component+": "+err.Error())
}

func (m *MockLogger) LogInfo(format string, args ...interface{}) {
	m.infos = append(m.infos, fmt.Sprintf(format, args...))
}

func urlsFor(n int) []string {
	urls := make([]string, n)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://bina.az/items/%d", i)
	}
	return urls
}

func newTestWorker(d scraper.Discoverer, f scraper.Fetcher, appender *RecordingAppender, snapshot *RecordingSnapshot, log *MockLogger, limit, batchSize int) *Worker {
	return NewWorker(
		d, f,
		[]storage.BatchAppender{appender},
		snapshot,
		publisher.NewNoopPublisher(),
		log,
		limit, batchSize,
	)
}

func TestWorkerPartitionsBatches(t *testing.T) {
	appender := &RecordingAppender{}
	snapshot := &RecordingSnapshot{}
	log := &MockLogger{}

	w := newTestWorker(
		&MockDiscoverer{urls: urlsFor(501)},
		&MockFetcher{},
		appender, snapshot, log,
		501, 500,
	)
	w.Start()

	require.Len(t, appender.batches, 2, "501 records with batch size 500 need two appends")
	assert.Len(t, appender.batches[0], 500)
	assert.Len(t, appender.batches[1], 1)
	assert.Len(t, snapshot.records, 501)
	assert.Empty(t, log.errors)
}

func TestWorkerSkipsFailedListings(t *testing.T) {
	appender := &RecordingAppender{}
	snapshot := &RecordingSnapshot{}
	log := &MockLogger{}

	w := newTestWorker(
		&MockDiscoverer{urls: urlsFor(3)},
		&MockFetcher{failing: map[string]bool{"https://bina.az/items/1": true}},
		appender, snapshot, log,
		10, 500,
	)
	w.Start()

	require.Len(t, appender.batches, 1)
	assert.Len(t, appender.batches[0], 2, "the failed listing is dropped, not fatal")
	assert.Len(t, snapshot.records, 2)
	require.Len(t, log.errors, 1)
	assert.Contains(t, log.errors[0], "items/1")
}

func TestWorkerCheckpointFailureDoesNotStopRun(t *testing.T) {
	appender := &RecordingAppender{failOn: map[int]error{0: os.ErrPermission}}
	snapshot := &RecordingSnapshot{}
	log := &MockLogger{}

	w := newTestWorker(
		&MockDiscoverer{urls: urlsFor(4)},
		&MockFetcher{},
		appender, snapshot, log,
		4, 2,
	)
	w.Start()

	require.Len(t, appender.batches, 2, "the second batch is still attempted")
	assert.Len(t, snapshot.records, 4, "a lost checkpoint does not remove records from the final output")
	require.NotEmpty(t, log.errors)
	assert.Contains(t, log.errors[0], "storage")
}

func TestWorkerDiscoveryFailureAbortsGracefully(t *testing.T) {
	appender := &RecordingAppender{}
	snapshot := &RecordingSnapshot{}
	log := &MockLogger{}

	w := newTestWorker(
		&MockDiscoverer{err: errors.New("sitemap unreachable")},
		&MockFetcher{},
		appender, snapshot, log,
		10, 500,
	)
	w.Start()

	assert.Empty(t, appender.batches)
	assert.Nil(t, snapshot.records)
	require.Len(t, log.errors, 1)
	assert.Contains(t, log.errors[0], "sitemap unreachable")
}

func TestWorkerNoListingsFound(t *testing.T) {
	appender := &RecordingAppender{}
	snapshot := &RecordingSnapshot{}
	log := &MockLogger{}

	w := newTestWorker(
		&MockDiscoverer{urls: nil},
		&MockFetcher{},
		appender, snapshot, log,
		10, 500,
	)
	w.Start()

	assert.Empty(t, appender.batches)
	assert.Nil(t, snapshot.records)
	assert.Empty(t, log.errors)

	found := false
	for _, msg := range log.infos {
		if strings.Contains(msg, "No listings found") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestWorkerAllFetchesFail(t *testing.T) {
	failing := make(map[string]bool)
	for _, u := range urlsFor(2) {
		failing[u] = true
	}

	appender := &RecordingAppender{}
	snapshot := &RecordingSnapshot{}
	log := &MockLogger{}

	w := newTestWorker(
		&MockDiscoverer{urls: urlsFor(2)},
		&MockFetcher{failing: failing},
		appender, snapshot, log,
		10, 500,
	)
	w.Start()

	assert.Empty(t, appender.batches, "empty batches are not checkpointed")
	assert.Nil(t, snapshot.records, "no snapshot when nothing was collected")
}

func TestWorkerSnapshotFailureIsLogged(t *testing.T) {
	appender := &RecordingAppender{}
	snapshot := &RecordingSnapshot{err: errors.New("disk full")}
	log := &MockLogger{}

	w := newTestWorker(
		&MockDiscoverer{urls: urlsFor(1)},
		&MockFetcher{},
		appender, snapshot, log,
		10, 500,
	)
	w.Start()

	require.NotEmpty(t, log.errors)
	assert.Contains(t, log.errors[len(log.errors)-1], "disk full")
}
