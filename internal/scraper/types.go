package scraper

// ListingRecord is a single scraped real-estate listing. Every field is
// always present; extraction degrades to an empty string when the source
// node is missing.
type ListingRecord struct {
	Title        string `json:"title"`
	UpdatedDate  string `json:"updated_date"`
	Category     string `json:"category"`
	BuildingType string `json:"building_type"`
	Renovation   string `json:"renovation"`
	Area         string `json:"area"`
	Rooms        string `json:"rooms"`
	DealType     string `json:"deal_type"`
	Price        string `json:"price"`
	Currency     string `json:"currency"`
	PriceType    string `json:"price_type"`
	Phone        string `json:"phone"`
	Location     string `json:"location"`
	ListingID    string `json:"listing_id"`
}

// Header returns the column names in persisted order
func Header() []string {
	return []string{
		"Title",
		"Updated date",
		"Category",
		"Building type",
		"Renovation",
		"Area",
		"Rooms",
		"Deal type",
		"Price",
		"Currency",
		"Price type",
		"Phone",
		"Location",
		"Listing ID",
	}
}

// Row returns the record values in Header order
func (r *ListingRecord) Row() []string {
	return []string{
		r.Title,
		r.UpdatedDate,
		r.Category,
		r.BuildingType,
		r.Renovation,
		r.Area,
		r.Rooms,
		r.DealType,
		r.Price,
		r.Currency,
		r.PriceType,
		r.Phone,
		r.Location,
		r.ListingID,
	}
}

// Deal type classifications
const (
	DealTypeRent    = "Rent"
	DealTypeSale    = "Sale"
	DealTypeUnknown = "Unknown"
)

// PhoneNotFound is substituted when the phone lookup fails for any reason
const PhoneNotFound = "Not found"

// Discoverer produces the set of listing URLs for a run
type Discoverer interface {
	// Discover returns up to limit deduplicated listing URLs
	Discover(limit int) ([]string, error)
}

// Fetcher retrieves and parses a single listing
type Fetcher interface {
	// Fetch returns the extracted record for a listing URL
	Fetch(url string) (*ListingRecord, error)
}

// PhoneResolver resolves a listing's contact phone number
type PhoneResolver interface {
	// Resolve returns the phone number text, or a sentinel on failure
	Resolve(itemID string) string
}
