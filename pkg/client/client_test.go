package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCachesWithinTTL(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		json.NewEncoder(w).Encode(map[string]string{"name": "Teeth Cleaning"})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, CacheTTL: time.Minute})

	var out map[string]string
	require.NoError(t, c.Get(context.Background(), "/services/1", &out))
	require.NoError(t, c.Get(context.Background(), "/services/1", &out))

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, "Teeth Cleaning", out["name"])
}

func TestWriteInvalidatesResourcePrefix(t *testing.T) {
	var gets atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			gets.Add(1)
		}
		json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, CacheTTL: time.Minute})

	var out map[string]string
	require.NoError(t, c.Get(context.Background(), "/appointments/7", &out))
	require.NoError(t, c.Post(context.Background(), "/appointments/7/cancel", map[string]string{}, nil))
	require.NoError(t, c.Get(context.Background(), "/appointments/7", &out))

	assert.Equal(t, int32(2), gets.Load(), "write must evict cached appointment reads")
}

func TestWriteUnderMountedPrefixKeepsOtherResourcesCached(t *testing.T) {
	var serviceGets, appointmentGets atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			switch {
			case strings.HasPrefix(r.URL.Path, "/api/v1/services"):
				serviceGets.Add(1)
			case strings.HasPrefix(r.URL.Path, "/api/v1/appointments"):
				appointmentGets.Add(1)
			}
		}
		json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, CacheTTL: time.Minute})

	var out map[string]string
	require.NoError(t, c.Get(context.Background(), "/api/v1/services/1", &out))
	require.NoError(t, c.Get(context.Background(), "/api/v1/appointments/7", &out))
	require.NoError(t, c.Post(context.Background(), "/api/v1/appointments/7/cancel", map[string]string{}, nil))

	// The cancel must evict cached appointments but leave services cached.
	require.NoError(t, c.Get(context.Background(), "/api/v1/services/1", &out))
	require.NoError(t, c.Get(context.Background(), "/api/v1/appointments/7", &out))

	assert.Equal(t, int32(1), serviceGets.Load())
	assert.Equal(t, int32(2), appointmentGets.Load(), "write must evict cached appointment reads")
}

func TestResourcePrefix(t *testing.T) {
	assert.Equal(t, "/appointments", resourcePrefix("/appointments/42/cancel"))
	assert.Equal(t, "/api/v1/appointments", resourcePrefix("/api/v1/appointments/7/cancel"))
	assert.Equal(t, "/api/v2/patients", resourcePrefix("/api/v2/patients/9"))
	assert.Equal(t, "/api/v1", resourcePrefix("/api/v1"))
}

func TestGetWithoutCacheAlwaysFetches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		json.NewEncoder(w).Encode(map[string]int{"n": int(hits.Load())})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})

	var out map[string]int
	require.NoError(t, c.Get(context.Background(), "/queue/current", &out))
	require.NoError(t, c.Get(context.Background(), "/queue/current", &out))

	assert.Equal(t, 2, out["n"])
}

func TestNon2xxReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})

	var out map[string]string
	err := c.Get(context.Background(), "/queue/current", &out)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "boom")
}

func TestExplicitInvalidate(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		json.NewEncoder(w).Encode([]string{})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, CacheTTL: time.Minute})

	var out []string
	require.NoError(t, c.Get(context.Background(), "/patients", &out))
	c.Invalidate("/patients")
	require.NoError(t, c.Get(context.Background(), "/patients", &out))

	assert.Equal(t, int32(2), hits.Load())
}

func TestListDecodesBareArrayAndEnvelope(t *testing.T) {
	var bare List[string]
	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &bare))
	assert.Equal(t, []string{"a", "b"}, bare.Items)

	var enveloped List[string]
	require.NoError(t, json.Unmarshal([]byte(`{"results":["c"]}`), &enveloped))
	assert.Equal(t, []string{"c"}, enveloped.Items)

	var bad List[string]
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}

func TestListDecodesSuccessEnvelope(t *testing.T) {
	var wrappedArray List[string]
	require.NoError(t, json.Unmarshal([]byte(`{"success":true,"data":["a","b"]}`), &wrappedArray))
	assert.Equal(t, []string{"a", "b"}, wrappedArray.Items)

	var wrappedObject List[string]
	require.NoError(t, json.Unmarshal([]byte(`{"success":true,"data":{"results":["c"],"total":1}}`), &wrappedObject))
	assert.Equal(t, []string{"c"}, wrappedObject.Items)
}
