package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waypost/waypost/pkg/location"
)

func testPosition() location.Position {
	return location.Position{
		Latitude:  decimal.RequireFromString("34.05"),
		Longitude: decimal.RequireFromString("-118.25"),
	}
}

func TestClient_Report_Success(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/location", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1,"latitude":34.05,"longitude":-118.25,` +
			`"createdAt":"2024-05-04T12:00:00Z","updatedAt":"2024-05-04T12:00:00Z"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, zerolog.Nop())
	record, err := c.Report(context.Background(), testPosition())

	require.NoError(t, err)
	assert.Equal(t, int64(1), record.ID)
	assert.Equal(t, "34.05", record.Latitude.String())
	assert.Equal(t, "-118.25", record.Longitude.String())

	// Coordinates must go on the wire as bare JSON numbers, not strings.
	assert.Contains(t, gotBody, `"latitude":34.05`)
	assert.Contains(t, gotBody, `"longitude":-118.25`)
}

func TestClient_Report_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to update location","message":"insert failed"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, zerolog.Nop())
	record, err := c.Report(context.Background(), testPosition())

	assert.Nil(t, record)
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusInternalServerError, svcErr.StatusCode)
	assert.Equal(t, "insert failed", svcErr.Message)
}

func TestClient_Report_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, time.Second, zerolog.Nop())
	record, err := c.Report(context.Background(), testPosition())

	assert.Nil(t, record)
	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestClient_FetchLatest_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":3,"latitude":37.7749,"longitude":-122.4194,` +
			`"createdAt":"2024-05-04T12:00:00Z","updatedAt":"2024-05-04T12:00:00Z"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, zerolog.Nop())
	record, err := c.FetchLatest(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), record.ID)
	assert.Equal(t, "37.7749", record.Latitude.String())
	assert.Equal(t, "-122.4194", record.Longitude.String())
}

func TestClient_FetchLatest_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"No location found"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, zerolog.Nop())
	record, err := c.FetchLatest(context.Background())

	assert.Nil(t, record)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_FetchLatest_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, time.Second, zerolog.Nop())
	record, err := c.FetchLatest(context.Background())

	assert.Nil(t, record)
	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
	assert.False(t, errors.Is(err, ErrNotFound))
}
