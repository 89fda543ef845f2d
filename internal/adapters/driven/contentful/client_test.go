package contentful

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/domain"
)

// testRateLimit is high enough that tests never block on the limiter.
var testRateLimit = RateLimitConfig{RequestsPerSecond: 1000, BurstSize: 100}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(context.Background(), Config{
		SpaceID:       "spc",
		EnvironmentID: "master",
		Token:         "cma-token",
		BaseURL:       srv.URL,
		RateLimit:     testRateLimit,
	})
	return client, srv
}

func TestClient_Validate_OK(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer cma-token", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/spaces/spc", "/spaces/spc/environments/master":
			fmt.Fprint(w, `{"sys":{"id":"x"}}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	assert.NoError(t, client.Validate(context.Background()))
}

func TestClient_Validate_BadToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"sys":{"id":"AccessTokenInvalid"},"message":"The access token you sent could not be found"}`)
	}))

	err := client.Validate(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthInvalid)
}

func TestClient_Validate_UnknownSpace(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"sys":{"id":"NotFound"}}`)
	}))

	err := client.Validate(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_Validate_UnknownEnvironment(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/spaces/spc" {
			fmt.Fprint(w, `{"sys":{"id":"spc"}}`)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"sys":{"id":"NotFound"}}`)
	}))

	err := client.Validate(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "environment master")
}

func TestClient_HasContentType(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/spaces/spc/environments/master/content_types", r.URL.Path)
		fmt.Fprint(w, `{"total":2,"items":[{"sys":{"id":"blogPost"},"name":"Blog Post"},{"sys":{"id":"author"},"name":"Author"}]}`)
	}))

	ok, err := client.HasContentType(context.Background(), "blogPost")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.HasContentType(context.Background(), "landingPage")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClient_Locales_DefaultFirstAndCached(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "/spaces/spc/environments/master/locales", r.URL.Path)
		fmt.Fprint(w, `{"total":2,"items":[{"code":"de-DE","default":false},{"code":"en-US","default":true}]}`)
	}))

	locales, err := client.Locales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"en-US", "de-DE"}, locales)

	_, err = client.Locales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestClient_RateLimitedResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(HeaderRateLimitReset, "3")
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	err := client.Validate(context.Background())

	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	// Backoff is recorded on the limiter, so nothing may proceed
	// immediately.
	assert.False(t, client.limiter.Allow())
}

func TestClient_APIErrorMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message":"Validation error"}`)
	}))

	err := client.getJSON(context.Background(), "/spaces/spc", nil)

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 422, apiErr.StatusCode)
	assert.Equal(t, "Validation error", apiErr.Message)
}
