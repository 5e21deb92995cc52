package scraper

import (
	"fmt"
	"io"
	"regexp"

	"aliyevr/binascraper/helpers"
	"aliyevr/binascraper/logger"
	pkgerrors "aliyevr/binascraper/pkg/errors"
)

// SitemapDiscoverer finds recently published listing URLs through the
// site's sitemap index. Sub-sitemaps are assumed ordered most-recent-first
// by the upstream site, so only the first match is fetched.
type SitemapDiscoverer struct {
	session   *helpers.Session
	baseURL   string
	sitemapRe *regexp.Regexp
	itemRe    *regexp.Regexp
	log       *logger.Logger
}

// NewSitemapDiscoverer creates a discoverer for the given site
func NewSitemapDiscoverer(session *helpers.Session, baseURL string) *SitemapDiscoverer {
	quoted := regexp.QuoteMeta(baseURL)
	return &SitemapDiscoverer{
		session:   session,
		baseURL:   baseURL,
		sitemapRe: regexp.MustCompile(quoted + `/uploads/attachment/[^<]+_az1\.xml`),
		itemRe:    regexp.MustCompile(quoted + `/items/\d+`),
		log:       logger.ForDiscoverer(),
	}
}

// Discover fetches the sitemap index, scans the freshest sub-sitemap and
// returns up to limit deduplicated listing URLs. The selection under a
// limit smaller than the discovered count is arbitrary because truncation
// happens after set-deduplication.
func (d *SitemapDiscoverer) Discover(limit int) ([]string, error) {
	d.log.Info().Msg("Reading sitemap...")

	body, err := d.fetchText(d.baseURL + "/sitemap.xml")
	if err != nil {
		return nil, pkgerrors.NewDiscovery("failed to fetch sitemap index", err)
	}

	sitemaps := d.sitemapRe.FindAllString(body, -1)
	if len(sitemaps) == 0 {
		return nil, pkgerrors.NewDiscovery("no sub-sitemap found in index", nil)
	}

	// The first sub-sitemap contains the most recent listings
	subBody, err := d.fetchText(sitemaps[0])
	if err != nil {
		return nil, pkgerrors.NewDiscovery(fmt.Sprintf("failed to fetch sub-sitemap %s", sitemaps[0]), err)
	}

	matches := d.itemRe.FindAllString(subBody, -1)
	d.log.Info().Int("count", len(matches)).Msg("Found listing URLs from sitemap")

	// Set semantics: map iteration order is not preserved, so the
	// selection under the limit is arbitrary
	seen := make(map[string]struct{}, len(matches))
	for _, u := range matches {
		seen[u] = struct{}{}
	}
	urls := make([]string, 0, len(seen))
	for u := range seen {
		urls = append(urls, u)
	}

	if len(urls) > limit {
		urls = urls[:limit]
	}

	return urls, nil
}

func (d *SitemapDiscoverer) fetchText(url string) (string, error) {
	reader, err := d.session.Get(url, nil)
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
