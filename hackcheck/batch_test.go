package hackcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CheckMany(t *testing.T) {
	var inFlight, peak int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inFlight, 1)
		defer atomic.AddInt32(&inFlight, -1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}

		var body CheckOptions
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		switch body.Query {
		case "bad":
			writeJSON(w, http.StatusBadRequest, `{"error":"bad query"}`)
		default:
			json.NewEncoder(w).Encode(map[string]bool{"found": body.Query == "leaked@example.com"})
		}
	})
	client.concurrency = 2

	checks := []CheckOptions{
		{Field: SearchFieldEmail, Query: "leaked@example.com"},
		{Field: SearchFieldEmail, Query: "clean@example.com"},
		{Field: SearchFieldEmail, Query: "bad"},
		{Field: "ssn", Query: "123"},
	}

	results, err := client.CheckMany(context.Background(), checks)
	require.NoError(t, err)
	require.Len(t, results, len(checks))

	assert.True(t, results[0].Found)
	assert.NoError(t, results[0].Err)
	assert.False(t, results[1].Found)
	assert.NoError(t, results[1].Err)
	assert.EqualError(t, results[2].Err, "bad query")
	assert.ErrorIs(t, results[3].Err, ErrInvalidOptions)

	for i, r := range results {
		assert.Equal(t, checks[i], r.Options)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestClient_CheckMany_StopsOnRateLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-HackCheck-Limit", "10")
		w.Header().Set("X-HackCheck-Remaining", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	results, err := client.CheckMany(context.Background(), []CheckOptions{
		{Field: SearchFieldEmail, Query: "a@b.com"},
		{Field: SearchFieldEmail, Query: "c@d.com"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Len(t, results, 2)
}

func TestClient_CheckMany_Empty(t *testing.T) {
	client, err := NewClient("test-key", zerolog.Nop())
	require.NoError(t, err)

	results, err := client.CheckMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
