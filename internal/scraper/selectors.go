package scraper

// Selectors contains the CSS selectors and site-specific keywords used to
// extract fields from a listing page
type Selectors struct {
	Title      string
	PriceValue string
	PriceCur   string
	PricePer   string

	PropertyRow   string
	PropertyLabel string
	PropertyValue string

	Breadcrumb string
	Statistics string
	MapLink    string
	Location   string

	// Case-insensitive keywords found in breadcrumb texts
	RentKeyword string
	SaleKeyword string

	// Prefix of the statistics entry carrying the update date
	UpdatedLabel string

	// Lowercase property-row keys
	CategoryKey         string
	BuildingTypeKey     string
	BuildingTypeAltKey  string
	RenovationKey       string
	AreaKey             string
	RoomsKey            string

	// Default price period when the page omits it
	DefaultPriceType string
}

// DefaultSelectors returns the selector set for bina.az listing pages
func DefaultSelectors() Selectors {
	return Selectors{
		Title:      "h1.product-title",
		PriceValue: "span.price-val",
		PriceCur:   "span.price-cur",
		PricePer:   "span.price-per",

		PropertyRow: ".product-properties__i",
		// Matches any element whose class attribute contains the token,
		// mirroring a relaxed class-name regex
		PropertyLabel: "[class*='label'], [class*='name']",
		PropertyValue: "[class*='value']",

		Breadcrumb: ".product-breadcrumbs__i-link",
		Statistics: ".product-statistics__i-text",
		MapLink:    "a.open_map",
		Location:   ".product-location",

		RentKeyword: "kirayə",
		SaleKeyword: "satış",

		UpdatedLabel: "Yeniləndi",

		CategoryKey:        "kateqoriya",
		BuildingTypeKey:    "tikili növü",
		BuildingTypeAltKey: "lahiyə",
		RenovationKey:      "təmir",
		AreaKey:            "sahə",
		RoomsKey:           "otaq sayı",

		DefaultPriceType: "Total",
	}
}
