package shiprocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/skupulse/skupulse-manager/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shipmentsBody = `{
	"data": [
		{"channel_order_id": "1001", "current_status": "DELIVERED", "shipment_status": 7, "picked_up_date": "2026-08-12 14:05:00"},
		{"channel_order_id": "1002", "current_status": "RTO INITIATED", "shipment_status": 9, "picked_up_date": "2026-08-13 09:00:00"},
		{"channel_order_id": "1003", "current_status": "CANCELED", "shipment_status": 8, "picked_up_date": "0000-00-00 00:00:00"},
		{"channel_order_id": "1004", "current_status": "RTO DELIVERED", "shipment_status": 999, "picked_up_date": ""}
	]
}`

func TestShipments(t *testing.T) {
	logins := 0
	var gotAuth, gotFrom, gotTo, gotPerPage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/external/auth/login":
			logins++
			var req loginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "ops@example.com", req.Email)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"token": "session-token"}`))
		case "/v1/external/shipments":
			gotAuth = r.Header.Get("Authorization")
			gotFrom = r.URL.Query().Get("from")
			gotTo = r.URL.Query().Get("to")
			gotPerPage = r.URL.Query().Get("per_page")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(shipmentsBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	cli := New(&Config{
		BaseURL:  server.URL,
		Email:    "ops@example.com",
		Password: "secret",
	})

	from := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	recs, err := cli.Shipments(context.Background(), from, to)
	require.NoError(t, err)

	assert.Equal(t, "Bearer session-token", gotAuth)
	assert.Equal(t, "2026-08-10", gotFrom)
	assert.Equal(t, "2026-08-24", gotTo)
	assert.Equal(t, shipmentsLimit, gotPerPage)

	require.Len(t, recs, 4)

	assert.Equal(t, "1001", recs[0].OrderReference)
	assert.Equal(t, entity.ShipmentDelivered, recs[0].Status)
	require.True(t, recs[0].PickupAt.Valid)
	assert.Equal(t, "2026-08-12", recs[0].PickupAt.Time.Format("2006-01-02"))

	assert.Equal(t, entity.ShipmentRTO, recs[1].Status)
	assert.Equal(t, 9, recs[1].RawStatusCode)

	assert.Equal(t, entity.ShipmentCancelled, recs[2].Status)
	assert.False(t, recs[2].PickupAt.Valid, "pickup sentinel maps to null")
	assert.True(t, recs[2].IsCancelled())

	// Unmapped code falls back to the status text; RTO wins over the
	// DELIVERED substring.
	assert.Equal(t, entity.ShipmentRTO, recs[3].Status)
	assert.False(t, recs[3].PickupAt.Valid)

	// Second call reuses the cached session token.
	_, err = cli.Shipments(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, 1, logins)
}

func TestShipmentsLoginFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "bad credentials"}`))
	}))
	defer server.Close()

	cli := New(&Config{BaseURL: server.URL, Email: "ops@example.com", Password: "wrong"})

	_, err := cli.Shipments(context.Background(), time.Now(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not get session token")
}

func TestTokenRefreshNearExpiry(t *testing.T) {
	logins := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logins++
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"token": "fresh"}`))
	}))
	defer server.Close()

	ts := NewTokenSource(&Config{BaseURL: server.URL, Email: "a", Password: "b"})

	tok, err := ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok)
	assert.Equal(t, 1, logins)

	// Force the cached token inside the refresh margin.
	ts.expiry = time.Now().Add(30 * time.Minute)

	_, err = ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, logins)
}

func TestTokenEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ts := NewTokenSource(&Config{BaseURL: server.URL})

	_, err := ts.Token(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no token")
}
