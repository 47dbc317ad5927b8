package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
)

const bostonResponse = `{
  "info": {"statuscode": 0, "messages": []},
  "results": [{
    "providedLocation": {"location": "233 Bay State Rd Boston MA 02215"},
    "locations": [{
      "street": "233 Bay State Rd",
      "adminArea5": "Boston",
      "adminArea3": "MA",
      "adminArea1": "US",
      "postalCode": "02215",
      "latLng": {"lat": 42.350846, "lng": -71.10372}
    }]
  }]
}`

func TestGeocode(t *testing.T) {
	var gotKey, gotLocation string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		gotLocation = r.URL.Query().Get("location")
		_, _ = w.Write([]byte(bostonResponse))
	}))
	defer srv.Close()

	loc, err := NewMapQuest(srv.URL, "k1").Geocode(context.Background(), "233 Bay State Rd Boston MA 02215")
	require.NoError(t, err)
	assert.Equal(t, "k1", gotKey)
	assert.Equal(t, "233 Bay State Rd Boston MA 02215", gotLocation)

	assert.Equal(t, "Point", loc.Type)
	assert.Equal(t, -71.10372, loc.Lng())
	assert.Equal(t, 42.350846, loc.Lat())
	assert.Equal(t, "Boston", loc.City)
	assert.Equal(t, "02215", loc.Zipcode)
	assert.Equal(t, "233 Bay State Rd, Boston, MA 02215, US", loc.FormattedAddress)
}

func TestGeocodeNoMatch(t *testing.T) {
	_, err := parseMapQuest([]byte(`{"info":{"statuscode":0},"results":[{"locations":[]}]}`), "nowhere")
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestGeocodeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"info":{"statuscode":403,"messages":["bad key"]}}`))
	}))
	defer srv.Close()

	_, err := NewMapQuest(srv.URL, "bad").Geocode(context.Background(), "x")
	assert.ErrorIs(t, err, apperror.ErrUpstream)
}
