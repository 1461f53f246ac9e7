package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileBody = `[{
	"symbol": "TXG",
	"sector": "Technology",
	"industry": "Software",
	"country": "USA",
	"description": "A software company",
	"exchangeShortName": "NASDAQ",
	"companyName": "ABC Inc.",
	"ipoDate": "2020-01-01",
	"price": 54.12
}]`

func newFMPTestClient(t *testing.T, handler http.HandlerFunc) *FMPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewFMPClient("test-key", WithFMPBaseURL(srv.URL), WithFMPRateLimit(1000))
}

func TestCompanyProfile(t *testing.T) {
	var gotPath, gotKey string
	c := newFMPTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("apikey")
		w.Write([]byte(profileBody))
	})

	profile, err := c.CompanyProfile(context.Background(), "TXG")
	require.NoError(t, err)

	assert.Equal(t, "/profile/TXG", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "Technology", profile.Sector)
	assert.Equal(t, "Software", profile.Industry)
	assert.Equal(t, "USA", profile.Country)
	assert.Equal(t, "A software company", profile.Description)
	assert.Equal(t, "NASDAQ", profile.Exchange)
	assert.Equal(t, "ABC Inc.", profile.CompanyName)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), profile.IPODate)
}

func TestCompanyProfileEmptyResponse(t *testing.T) {
	for _, body := range []string{"", "null", "[]"} {
		c := newFMPTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})
		_, err := c.CompanyProfile(context.Background(), "TXG")
		require.Error(t, err, "body %q", body)

		var perr *ProviderError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "empty response", perr.Message)
	}
}

func TestCompanyProfileErrorMarker(t *testing.T) {
	c := newFMPTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Error Message": "Limit Reach . Please upgrade your plan"}`))
	})

	_, err := c.CompanyProfile(context.Background(), "TXG")
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "Limit Reach")
}

func TestCompanyProfileMissingField(t *testing.T) {
	c := newFMPTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"sector": "Technology"}]`))
	})

	_, err := c.CompanyProfile(context.Background(), "TXG")
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "missing field")
}

func TestCompanyProfileHTTPError(t *testing.T) {
	c := newFMPTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	})

	_, err := c.CompanyProfile(context.Background(), "TXG")
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "http 403")
}

func TestRatingScores(t *testing.T) {
	c := newFMPTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{
			"symbol": "TXG",
			"rating": "S",
			"ratingScore": 5,
			"ratingRecommendation": "Strong Buy",
			"ratingDetailsDCFScore": 5,
			"ratingDetailsDCFRecommendation": "Strong Buy"
		}]`))
	})

	scores, err := c.RatingScores(context.Background(), "TXG")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{
		"ratingScore":           5,
		"ratingDetailsDCFScore": 5,
	}, scores)
}

func TestRatingScoresEmptyAndError(t *testing.T) {
	c := newFMPTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null"))
	})
	_, err := c.RatingScores(context.Background(), "TXG")
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)

	c = newFMPTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Error Message": "Invalid API KEY"}`))
	})
	_, err = c.RatingScores(context.Background(), "TXG")
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, err.Error(), "rating")
}
