package adguard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/oracledns/oracle/internal/adguard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_HostNormalization(t *testing.T) {
	cases := map[string]string{
		"192.168.1.2:3000":         "http://192.168.1.2:3000",
		"http://adguard.local":     "http://adguard.local",
		"https://adguard.local/":   "https://adguard.local",
		"  adguard.local:8080/  ":  "http://adguard.local:8080",
		"https://adguard.local///": "https://adguard.local",
	}

	for in, want := range cases {
		c := adguard.New(in, "", "", nil)
		assert.Equal(t, want, c.BaseURL(), "input %q", in)
	}
}

func TestRule(t *testing.T) {
	assert.Equal(t,
		"||ads.example.com^$client='192.168.1.50'",
		adguard.Rule("192.168.1.50", "ads.example.com"))
}

func TestClients_WrappedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/control/clients", r.URL.Path)
		w.Write([]byte(`{"clients": [{"ip":"10.0.0.2"}], "auto_clients": ["10.0.0.3"]}`))
	}))
	defer srv.Close()

	c := adguard.New(srv.URL, "", "", nil)
	records, err := c.Clients(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "10.0.0.2", records[0].IP)
	assert.Equal(t, "10.0.0.2", records[0].Name, "name falls back to the address")

	assert.Equal(t, "10.0.0.3", records[1].IP)
	assert.Equal(t, "10.0.0.3", records[1].Name)
	assert.Equal(t, []string{"10.0.0.3"}, records[1].IDs)
}

func TestClients_BareListShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name":"laptop","ids":["aa:bb"],"ip":"10.0.0.5"}, {"client_ip":"10.0.0.6","hostname":"tv"}]`))
	}))
	defer srv.Close()

	c := adguard.New(srv.URL, "", "", nil)
	records, err := c.Clients(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "laptop", records[0].Name)
	assert.Equal(t, []string{"aa:bb"}, records[0].IDs)
	assert.Equal(t, "10.0.0.6", records[1].IP)
	assert.Equal(t, "tv", records[1].Name)
}

func TestClients_MalformedEntriesCoerced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"ids": "not-a-list", "ip": 42}, 17]`))
	}))
	defer srv.Close()

	c := adguard.New(srv.URL, "", "", nil)
	records, err := c.Clients(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2, "malformed entries must be coerced, not dropped")
	assert.Equal(t, "17", records[1].Name)
}

func TestClients_Non200Propagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := adguard.New(srv.URL, "", "", nil)
	_, err := c.Clients(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestClients_SendsBasicAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "admin", user)
		assert.Equal(t, "hunter2", pass)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := adguard.New(srv.URL, "admin", "hunter2", nil)
	_, err := c.Clients(context.Background())
	require.NoError(t, err)
}

func TestQueries_FiltersByClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/control/querylog", r.URL.Path)
		assert.Equal(t, "10.0.0.2", r.URL.Query().Get("search"))
		w.Write([]byte(`{"data": [{"ts": 1700000000, "question": {"name": "example.com"}}, {"time": "2023-11-14T22:13:20Z"}]}`))
	}))
	defer srv.Close()

	c := adguard.New(srv.URL, "", "", nil)
	entries := c.Queries(context.Background(), "10.0.0.2")
	require.Len(t, entries, 2)
	assert.Equal(t, "example.com", entries[0].Domain)
	assert.Equal(t, adguard.TimestampEpoch, entries[0].Timestamp.Kind)
	assert.Equal(t, adguard.TimestampISO, entries[1].Timestamp.Kind)
}

func TestQueries_FailuresReturnEmpty(t *testing.T) {
	t.Run("non-200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := adguard.New(srv.URL, "", "", nil)
		assert.Empty(t, c.Queries(context.Background(), "x"))
	})

	t.Run("bad json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data": "oops`))
		}))
		defer srv.Close()

		c := adguard.New(srv.URL, "", "", nil)
		assert.Empty(t, c.Queries(context.Background(), "x"))
	})

	t.Run("connection refused", func(t *testing.T) {
		c := adguard.New("http://127.0.0.1:1", "", "", nil)
		assert.Empty(t, c.Queries(context.Background(), "x"))
	})
}

// fakeFilteringAPI emulates the appliance's filtering endpoints with an
// in-memory rule list.
type fakeFilteringAPI struct {
	mu    sync.Mutex
	rules []string
}

func (f *fakeFilteringAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/control/filtering/status", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{"user_rules": f.rules})
	})
	mux.HandleFunc("/control/filtering/set_rules", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Rules []string `json:"rules"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.rules = body.Rules
		f.mu.Unlock()
	})
	return mux
}

func TestBlockDomain_IdempotentAppend(t *testing.T) {
	fake := &fakeFilteringAPI{rules: []string{"||other.example^"}}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	c := adguard.New(srv.URL, "", "", nil)

	require.True(t, c.BlockDomain(context.Background(), "192.168.1.50", "ads.example.com"))
	require.True(t, c.BlockDomain(context.Background(), "192.168.1.50", "ads.example.com"))

	want := adguard.Rule("192.168.1.50", "ads.example.com")
	count := 0
	for _, r := range fake.rules {
		if r == want {
			count++
		}
	}
	assert.Equal(t, 1, count, "calling BlockDomain twice must produce exactly one rule")
	assert.Contains(t, fake.rules, "||other.example^", "existing rules must survive the full-list replace")
}

func TestBlockDomain_FailureModes(t *testing.T) {
	t.Run("status endpoint down", func(t *testing.T) {
		c := adguard.New("http://127.0.0.1:1", "", "", nil)
		assert.False(t, c.BlockDomain(context.Background(), "a", "b"))
	})

	t.Run("set_rules rejects", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/control/filtering/status" {
				w.Write([]byte(`{"user_rules": []}`))
				return
			}
			http.Error(w, "denied", http.StatusUnauthorized)
		}))
		defer srv.Close()

		c := adguard.New(srv.URL, "", "", nil)
		assert.False(t, c.BlockDomain(context.Background(), "a", "b"))
	})
}
