package vpic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"carpick/internal/metrics"
	"carpick/internal/models"
	"carpick/internal/registry"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode: %v", err)
	}
}

func TestManufacturers_SortedCaseInsensitive(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		if r.URL.Path != "/GetAllManufacturers/" {
			t.Errorf("Expected path /GetAllManufacturers/, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("format") != "json" {
			t.Errorf("Expected format=json, got %q", r.URL.RawQuery)
		}
		writeJSON(t, w, models.Response[models.Manufacturer]{
			Count:   2,
			Message: "Response returned successfully",
			Results: []models.Manufacturer{
				{ID: 2, Name: "Zeta", Country: "GERMANY"},
				{ID: 1, Name: "acme", Country: "USA"},
			},
		})
	})

	c := New(Config{BaseURL: srv.URL})
	res := c.Manufacturers(context.Background())

	if res.Outcome != registry.OutcomeOK {
		t.Fatalf("Expected ok outcome, got %s (%v)", res.Outcome, res.Err)
	}
	if len(res.Items) != 2 || res.Items[0].Name != "acme" || res.Items[1].Name != "Zeta" {
		t.Errorf("Expected [acme Zeta], got %+v", res.Items)
	}
}

func TestMakesAndModels_Paths(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/GetMakeForManufacturer/955":
			writeJSON(t, w, models.Response[models.Make]{
				Count:          1,
				SearchCriteria: "Manufacturer:955",
				Results:        []models.Make{{ID: 441, Name: "TESLA", Manufacturer: "TESLA, INC."}},
			})
		case "/GetModelsForMakeId/441":
			writeJSON(t, w, models.Response[models.Model]{
				Count: 2,
				Results: []models.Model{
					{MakeID: 441, MakeName: "TESLA", ID: 2, Name: "Model S"},
					{MakeID: 441, MakeName: "TESLA", ID: 1, Name: "Model 3"},
				},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	c := New(Config{BaseURL: srv.URL})
	ctx := context.Background()

	makes := c.Makes(ctx, 955)
	if len(makes.Items) != 1 || makes.Items[0].ID != 441 {
		t.Fatalf("unexpected makes %+v", makes)
	}

	mdls := c.Models(ctx, 441)
	if len(mdls.Items) != 2 || mdls.Items[0].Name != "Model 3" {
		t.Fatalf("unexpected models %+v", mdls)
	}
}

func TestFailuresYieldEmptyList(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"Message":"not found"}`))
		}},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>maintenance</html>`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.handler)
			c := New(Config{BaseURL: srv.URL})
			ctx := context.Background()

			man := c.Manufacturers(ctx)
			mk := c.Makes(ctx, 1)
			md := c.Models(ctx, 1)

			if man.Items == nil || mk.Items == nil || md.Items == nil {
				t.Fatal("expected non-nil items on failure")
			}
			if len(man.Items)+len(mk.Items)+len(md.Items) != 0 {
				t.Error("expected empty items on failure")
			}
			for _, o := range []registry.Outcome{man.Outcome, mk.Outcome, md.Outcome} {
				if o != registry.OutcomeFailed {
					t.Errorf("expected failed outcome, got %s", o)
				}
			}
			if man.Err == nil {
				t.Error("expected error to be kept on the result")
			}
		})
	}
}

func TestNetworkErrorYieldsEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(Config{BaseURL: url})
	res := c.Makes(context.Background(), 7)
	if res.Outcome != registry.OutcomeFailed || res.Items == nil || len(res.Items) != 0 {
		t.Errorf("expected empty failed result, got %+v", res)
	}
}

func TestEmptyResultsAreNotFailures(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Count":0,"Message":"Response returned successfully","SearchCriteria":"Make ID:1","Results":null}`))
	})

	c := New(Config{BaseURL: srv.URL})
	res := c.Models(context.Background(), 1)
	if res.Outcome != registry.OutcomeEmpty {
		t.Errorf("expected empty outcome, got %s", res.Outcome)
	}
	if res.Items == nil {
		t.Error("expected non-nil items")
	}
}

func TestCacheTTL(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(t, w, models.Response[models.Make]{Results: []models.Make{{ID: 1, Name: "A"}}})
	})

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	c := New(Config{BaseURL: srv.URL, CacheTTL: time.Minute, Metrics: m})
	ctx := context.Background()

	first := c.Makes(ctx, 3)
	first.Items[0].Name = "mutated"
	second := c.Makes(ctx, 3)

	if hits.Load() != 1 {
		t.Errorf("expected 1 request with memo enabled, got %d", hits.Load())
	}
	if second.Items[0].Name != "A" {
		t.Errorf("memo should hand out copies, got %q", second.Items[0].Name)
	}
	if got := testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues(registry.EndpointMakes.Name)); got != 1 {
		t.Errorf("expected 1 cache hit, got %v", got)
	}

	c.Makes(ctx, 4)
	if hits.Load() != 2 {
		t.Errorf("different identifier must not be served from memo, got %d requests", hits.Load())
	}
}

func TestNoCacheByDefault(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(t, w, models.Response[models.Manufacturer]{Results: []models.Manufacturer{{ID: 1, Name: "A"}}})
	})

	c := New(Config{BaseURL: srv.URL})
	c.Manufacturers(context.Background())
	c.Manufacturers(context.Background())

	if hits.Load() != 2 {
		t.Errorf("expected a fresh request per lookup, got %d", hits.Load())
	}
}

func TestFailuresAreNotCached(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeJSON(t, w, models.Response[models.Model]{Results: []models.Model{{ID: 1, Name: "X"}}})
	})

	c := New(Config{BaseURL: srv.URL, CacheTTL: time.Minute})
	if res := c.Models(context.Background(), 9); res.Outcome != registry.OutcomeFailed {
		t.Fatalf("expected failure first, got %s", res.Outcome)
	}
	if res := c.Models(context.Background(), 9); res.Outcome != registry.OutcomeOK {
		t.Fatalf("expected retry to reach the server, got %s", res.Outcome)
	}
}

func TestMetricsRecordOutcomes(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	m := metrics.New(prometheus.NewRegistry())
	c := New(Config{BaseURL: srv.URL, Metrics: m})
	c.Manufacturers(context.Background())

	got := testutil.ToFloat64(m.FetchesTotal.WithLabelValues(registry.EndpointManufacturers.Name, "failed"))
	if got != 1 {
		t.Errorf("expected 1 failed fetch recorded, got %v", got)
	}
}

func TestRateLimiterCancelledContext(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(t, w, models.Response[models.Make]{Results: []models.Make{{ID: 1, Name: "A"}}})
	})

	c := New(Config{BaseURL: srv.URL, Rate: 0.001, Burst: 1})
	if res := c.Makes(context.Background(), 1); res.Outcome != registry.OutcomeOK {
		t.Fatalf("expected first request to pass, got %s", res.Outcome)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	res := c.Makes(ctx, 2)
	if res.Outcome != registry.OutcomeFailed {
		t.Errorf("expected limiter wait to fail, got %s", res.Outcome)
	}
	if hits.Load() != 1 {
		t.Errorf("expected limited request to stay local, got %d requests", hits.Load())
	}
}
