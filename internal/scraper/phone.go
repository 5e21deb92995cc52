package scraper

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"aliyevr/binascraper/helpers"
	"aliyevr/binascraper/logger"
)

// HTTPPhoneResolver resolves phone numbers through the per-listing AJAX
// endpoint. It is an isolated failure domain: any error yields the
// sentinel value and is never propagated.
type HTTPPhoneResolver struct {
	session *helpers.Session
	baseURL string
	log     *logger.Logger
}

// NewHTTPPhoneResolver creates a resolver for the given site
func NewHTTPPhoneResolver(session *helpers.Session, baseURL string) *HTTPPhoneResolver {
	return &HTTPPhoneResolver{
		session: session,
		baseURL: baseURL,
		log:     logger.ForComponent("phones"),
	}
}

// Resolve fetches the phones sub-resource and joins the numbers into one
// string. Any non-200 status, decode error or network failure returns
// "Not found".
func (r *HTTPPhoneResolver) Resolve(itemID string) string {
	url := fmt.Sprintf("%s/items/%s/phones", r.baseURL, itemID)

	body, status, err := r.session.GetJSON(url, map[string]string{
		"X-Requested-With": "XMLHttpRequest",
	})
	if err != nil {
		r.log.Debug().Err(err).Str("item_id", itemID).Msg("Phone lookup failed")
		return PhoneNotFound
	}
	if status != http.StatusOK {
		r.log.Debug().Int("status", status).Str("item_id", itemID).Msg("Phone lookup rejected")
		return PhoneNotFound
	}

	var payload struct {
		Phones []string `json:"phones"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		r.log.Debug().Err(err).Str("item_id", itemID).Msg("Phone payload decode failed")
		return PhoneNotFound
	}

	return strings.Join(payload.Phones, ", ")
}
