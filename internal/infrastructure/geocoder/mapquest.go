// Package geocoder resolves free-form addresses into locations.
package geocoder

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
)

// MapQuest calls the MapQuest geocoding API.
type MapQuest struct {
	BaseURL string
	APIKey  string
	client  *http.Client
}

func NewMapQuest(baseURL, apiKey string) *MapQuest {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 3
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = 10 * time.Second
	return &MapQuest{BaseURL: baseURL, APIKey: apiKey, client: client.StandardClient()}
}

// Geocode returns the best match for address. An address the service cannot
// place is a validation error; transport and API failures are upstream errors.
func (m *MapQuest) Geocode(ctx context.Context, address string) (*entity.Location, error) {
	q := url.Values{}
	q.Set("key", m.APIKey)
	q.Set("location", address)
	q.Set("maxResults", "1")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, apperror.Upstream("geocoder request", err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, apperror.Upstream("geocoder unavailable", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperror.Upstream("geocoder read", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperror.Upstream("geocoder failed", fmt.Errorf("status %d", resp.StatusCode))
	}
	return parseMapQuest(body, address)
}

func parseMapQuest(body []byte, address string) (*entity.Location, error) {
	if !gjson.ValidBytes(body) {
		return nil, apperror.Upstream("geocoder failed", fmt.Errorf("malformed response"))
	}
	if code := gjson.GetBytes(body, "info.statuscode").Int(); code != 0 {
		msg := gjson.GetBytes(body, "info.messages.0").String()
		return nil, apperror.Upstream("geocoder failed", fmt.Errorf("statuscode %d: %s", code, msg))
	}
	loc := gjson.GetBytes(body, "results.0.locations.0")
	if !loc.Exists() {
		return nil, apperror.Validation(fmt.Sprintf("could not geocode address %q", address))
	}
	lat := loc.Get("latLng.lat")
	lng := loc.Get("latLng.lng")
	if !lat.Exists() || !lng.Exists() {
		return nil, apperror.Validation(fmt.Sprintf("could not geocode address %q", address))
	}

	out := entity.NewPoint(lng.Float(), lat.Float())
	out.Street = loc.Get("street").String()
	out.City = loc.Get("adminArea5").String()
	out.State = loc.Get("adminArea3").String()
	out.Zipcode = loc.Get("postalCode").String()
	out.Country = loc.Get("adminArea1").String()
	out.FormattedAddress = formatAddress(out)
	return out, nil
}

// formatAddress renders "street, city, state zipcode, country", skipping
// empty parts.
func formatAddress(l *entity.Location) string {
	var parts []string
	for _, p := range []string{l.Street, l.City, strings.TrimSpace(l.State + " " + l.Zipcode), l.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
