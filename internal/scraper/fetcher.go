package scraper

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/PuerkitoBio/goquery"

	"aliyevr/binascraper/helpers"
	"aliyevr/binascraper/logger"
	pkgerrors "aliyevr/binascraper/pkg/errors"
	"aliyevr/binascraper/services/cache"
)

// FetcherConfig contains configuration for a ListingFetcher
type FetcherConfig struct {
	Session   *helpers.Session
	Extractor *Extractor
	Phones    PhoneResolver
	CacheSvc  cache.CacheService
	CacheKey  string
	BlockTime time.Duration
	DelayMin  time.Duration
	DelayMax  time.Duration
}

// ListingFetcher retrieves one listing page at a time: randomized delay,
// bounded GET, HTML parse, field extraction and phone merge. Every failure
// is returned as an error the caller treats as "skip this listing".
type ListingFetcher struct {
	session   *helpers.Session
	extractor *Extractor
	phones    PhoneResolver
	cacheSvc  cache.CacheService
	cacheKey  string
	blockTime time.Duration
	delayMin  time.Duration
	delayMax  time.Duration
	sleep     func(time.Duration)
	log       *logger.Logger
}

// NewListingFetcher creates a fetcher from the given configuration
func NewListingFetcher(cfg FetcherConfig) *ListingFetcher {
	if cfg.BlockTime == 0 {
		cfg.BlockTime = 5 * time.Minute
	}
	return &ListingFetcher{
		session:   cfg.Session,
		extractor: cfg.Extractor,
		phones:    cfg.Phones,
		cacheSvc:  cfg.CacheSvc,
		cacheKey:  cfg.CacheKey,
		blockTime: cfg.BlockTime,
		delayMin:  cfg.DelayMin,
		delayMax:  cfg.DelayMax,
		sleep:     time.Sleep,
		log:       logger.ForFetcher(),
	}
}

// Fetch retrieves and extracts a single listing
func (f *ListingFetcher) Fetch(url string) (*ListingRecord, error) {
	f.log.Info().Str("url", url).Msg("Analyzing listing")
	f.delay()

	// Cooldown check: after a rate-limit response no further requests are
	// sent until the block expires
	if f.cacheSvc != nil && f.cacheKey != "" {
		if _, err := f.cacheSvc.Get(f.cacheKey); err == nil {
			return nil, pkgerrors.NewRateLimit("fetcher", f.blockTime)
		}
	}

	body, err := f.session.Get(url, nil)
	if err != nil {
		if errors.Is(err, helpers.ErrRateLimited) && f.cacheSvc != nil && f.cacheKey != "" {
			cooldown := fmt.Sprintf("%d", f.blockTime/time.Second)
			if setErr := f.cacheSvc.Set(f.cacheKey, []byte(cooldown), f.blockTime); setErr != nil {
				f.log.Warn().Err(setErr).Msg("Failed to set cooldown")
			}
		}
		return nil, pkgerrors.NewNetwork("fetcher", url, err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, pkgerrors.NewParsing("fetcher", url, err)
	}

	record := f.extractor.Extract(doc, url)
	record.Phone = f.phones.Resolve(record.ListingID)

	return record, nil
}

// delay throttles the request rate with a uniform random pause
func (f *ListingFetcher) delay() {
	if f.delayMax <= f.delayMin {
		if f.delayMin > 0 {
			f.sleep(f.delayMin)
		}
		return
	}
	span := f.delayMax - f.delayMin
	f.sleep(f.delayMin + time.Duration(rand.Int63n(int64(span))))
}
