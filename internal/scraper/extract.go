package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"aliyevr/binascraper/helpers"
)

// Extractor pulls the fixed field set out of a parsed listing page. It is
// a pure function over the document and the source URL; every sub-step
// independently degrades to an empty string when its node is missing.
type Extractor struct {
	sel Selectors
}

// NewExtractor creates an extractor with the given selector set
func NewExtractor(sel Selectors) *Extractor {
	return &Extractor{sel: sel}
}

// Extract builds a ListingRecord from the document. The Phone field is
// left empty; the fetcher merges it from the phone resolver.
func (e *Extractor) Extract(doc *goquery.Document, pageURL string) *ListingRecord {
	breadcrumbs := e.breadcrumbs(doc)
	props := e.properties(doc)

	price, currency, priceType := e.price(doc)

	return &ListingRecord{
		Title:        strings.TrimSpace(doc.Find(e.sel.Title).First().Text()),
		UpdatedDate:  e.updatedDate(doc),
		Category:     props[e.sel.CategoryKey],
		BuildingType: e.buildingType(props),
		Renovation:   props[e.sel.RenovationKey],
		Area:         props[e.sel.AreaKey],
		Rooms:        props[e.sel.RoomsKey],
		DealType:     e.dealType(breadcrumbs),
		Price:        price,
		Currency:     currency,
		PriceType:    priceType,
		Location:     e.location(doc, breadcrumbs),
		ListingID:    helpers.LastPathSegment(pageURL),
	}
}

// price returns the value, currency and period of the price block. The
// period defaults to "Total" when the node is absent.
func (e *Extractor) price(doc *goquery.Document) (string, string, string) {
	price := strings.TrimSpace(doc.Find(e.sel.PriceValue).First().Text())
	currency := strings.TrimSpace(doc.Find(e.sel.PriceCur).First().Text())

	priceType := e.sel.DefaultPriceType
	if per := doc.Find(e.sel.PricePer); per.Length() > 0 {
		priceType = strings.TrimSpace(per.First().Text())
	}

	return price, currency, priceType
}

// properties builds a lowercase-label to value map from the property rows.
// Duplicate labels keep the last occurrence.
func (e *Extractor) properties(doc *goquery.Document) map[string]string {
	props := make(map[string]string)
	doc.Find(e.sel.PropertyRow).Each(func(i int, row *goquery.Selection) {
		label := row.Find(e.sel.PropertyLabel).First()
		value := row.Find(e.sel.PropertyValue).First()
		if label.Length() > 0 && value.Length() > 0 {
			key := strings.ToLower(strings.TrimSpace(label.Text()))
			props[key] = strings.TrimSpace(value.Text())
		}
	})
	return props
}

// buildingType falls back from the primary to the secondary property key
func (e *Extractor) buildingType(props map[string]string) string {
	if v, ok := props[e.sel.BuildingTypeKey]; ok {
		return v
	}
	return props[e.sel.BuildingTypeAltKey]
}

// breadcrumbs collects the trimmed breadcrumb texts in document order
func (e *Extractor) breadcrumbs(doc *goquery.Document) []string {
	var crumbs []string
	doc.Find(e.sel.Breadcrumb).Each(func(i int, s *goquery.Selection) {
		crumbs = append(crumbs, strings.TrimSpace(s.Text()))
	})
	return crumbs
}

// dealType classifies the listing from the breadcrumb trail. The rent
// keyword is checked before the sale keyword.
func (e *Extractor) dealType(breadcrumbs []string) string {
	for _, b := range breadcrumbs {
		if strings.Contains(strings.ToLower(b), e.sel.RentKeyword) {
			return DealTypeRent
		}
	}
	for _, b := range breadcrumbs {
		if strings.Contains(strings.ToLower(b), e.sel.SaleKeyword) {
			return DealTypeSale
		}
	}
	return DealTypeUnknown
}

// updatedDate scans the statistics texts for the update entry. When
// several entries match, the last one wins.
func (e *Extractor) updatedDate(doc *goquery.Document) string {
	date := ""
	doc.Find(e.sel.Statistics).Each(func(i int, s *goquery.Selection) {
		text := s.Text()
		if strings.Contains(text, e.sel.UpdatedLabel) {
			date = strings.TrimSpace(strings.Replace(text, e.sel.UpdatedLabel+":", "", 1))
		}
	})
	return date
}

// location resolves the listing location with a three-tier fallback:
// map link text, then breadcrumb-derived text, then the location node.
func (e *Extractor) location(doc *goquery.Document, breadcrumbs []string) string {
	location := strings.TrimSpace(doc.Find(e.sel.MapLink).First().Text())

	if location == "" && len(breadcrumbs) > 0 {
		last := breadcrumbs[len(breadcrumbs)-1]
		lower := strings.ToLower(last)
		// A deal-type keyword in the last breadcrumb means it is not a
		// location; use the one before it instead
		if strings.Contains(lower, e.sel.SaleKeyword) || strings.Contains(lower, e.sel.RentKeyword) {
			if len(breadcrumbs) > 1 {
				location = breadcrumbs[len(breadcrumbs)-2]
			}
		} else {
			location = last
		}
	}

	if location == "" {
		location = strings.TrimSpace(doc.Find(e.sel.Location).First().Text())
	}

	return location
}
