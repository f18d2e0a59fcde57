package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestClient(endpoint string) *Client {
	return NewClient(Options{
		Endpoint:     endpoint,
		FallbackRate: decimal.NewFromFloat(175.0),
		Timeout:      time.Second * 2,
	})
}

func TestFetchLive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/latest/GBP", r.URL.Path)
			_, _ = w.Write([]byte(`{
				"result": "success",
				"rates": {"GBP": 1, "KES": 184.131702, "USD": 1.2708},
				"time_last_update_unix": 1700000000
			}`))
		},
	))
	defer server.Close()

	quote, err := newTestClient(server.URL).
		FetchLive(context.Background(), "GBP", "KES")
	require.NoError(t, err)

	require.Equal(t, "GBP", quote.Base)
	require.Equal(t, "KES", quote.Target)
	require.Equal(t, SourceLive, quote.Source)
	require.Equal(t, "184.131702", quote.Rate.String())
	require.Equal(t, time.Unix(1700000000, 0), quote.UpdatedAt)
}

func TestFetchLiveFailures(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		errLike string
	}{
		{
			name:    "http error status",
			status:  http.StatusInternalServerError,
			body:    `{"result": "success"}`,
			errLike: "status",
		},
		{
			name:    "malformed json",
			status:  http.StatusOK,
			body:    `{"result": "succ`,
			errLike: "parse",
		},
		{
			name:    "empty body",
			status:  http.StatusOK,
			body:    "",
			errLike: "parse",
		},
		{
			name:    "provider reports failure",
			status:  http.StatusOK,
			body:    `{"result": "error", "error-type": "invalid-key"}`,
			errLike: "result",
		},
		{
			name:    "result marker missing",
			status:  http.StatusOK,
			body:    `{"rates": {"KES": 184.13}}`,
			errLike: "result",
		},
		{
			name:    "target currency absent",
			status:  http.StatusOK,
			body:    `{"result": "success", "rates": {"USD": 1.2708}, "time_last_update_unix": 1700000000}`,
			errLike: "KES",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(testCase.status)
					_, _ = w.Write([]byte(testCase.body))
				},
			))
			defer server.Close()

			_, err := newTestClient(server.URL).
				FetchLive(context.Background(), "GBP", "KES")
			require.ErrorContains(t, err, testCase.errLike)
		})
	}
}

func TestResolveDegradesToFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		},
	))
	defer server.Close()

	quote := newTestClient(server.URL).
		Resolve(context.Background(), "GBP", "KES")

	require.Equal(t, SourceFallback, quote.Source)
	require.True(t, quote.Rate.Equal(decimal.NewFromFloat(175.0)))
	require.False(t, quote.UpdatedAt.IsZero())
}

func TestResolveDeadServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {},
	))
	server.Close()

	quote := newTestClient(server.URL).
		Resolve(context.Background(), "GBP", "KES")

	require.Equal(t, SourceFallback, quote.Source)
	require.True(t, quote.Rate.Equal(decimal.NewFromFloat(175.0)))
}

func TestResolveFallsBackWhenTargetAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{
				"result": "success",
				"rates": {"USD": 1.27},
				"time_last_update_unix": 1700000000
			}`))
		},
	))
	defer server.Close()

	quote := newTestClient(server.URL).
		Resolve(context.Background(), "GBP", "KES")

	require.Equal(t, SourceFallback, quote.Source)
	require.True(t, quote.Rate.Equal(decimal.NewFromFloat(175.0)))
	require.False(t, quote.UpdatedAt.IsZero())
}

func TestResolvePrefersLiveRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{
				"result": "success",
				"rates": {"KES": 151.5},
				"time_last_update_unix": 1700000000
			}`))
		},
	))
	defer server.Close()

	quote := newTestClient(server.URL).
		Resolve(context.Background(), "GBP", "KES")

	require.Equal(t, SourceLive, quote.Source)
	require.Equal(t, "151.5", quote.Rate.String())
}
