package insight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vampirenirmal/codeintel/internal/engine"
)

func TestClientFetch(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if got := r.URL.Query().Get("technology"); got != "postgresql" {
			t.Errorf("technology query = %q, want postgresql", got)
		}
		json.NewEncoder(w).Encode(engine.Context7Data{
			Insights: &engine.InsightBundle{
				Patterns: []string{"use connection pooling"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(
		WithBaseURL(server.URL),
		WithTimeout(2*time.Second),
		WithRateLimit(600, 10),
	)

	data, err := client.Fetch(context.Background(), "postgresql")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if data == nil || data.Insights == nil || len(data.Insights.Patterns) != 1 {
		t.Fatalf("unexpected bundle: %+v", data)
	}
	if requests != 1 {
		t.Errorf("requests = %d, want 1", requests)
	}
}

func TestClientFetchUsesCache(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		json.NewEncoder(w).Encode(engine.Context7Data{
			Insights: &engine.InsightBundle{Patterns: []string{"p"}},
		})
	}))
	defer server.Close()

	client := NewClient(
		WithBaseURL(server.URL),
		WithRateLimit(600, 10),
		WithCache(NewResponseCache(NewMemoryStore(), time.Hour)),
	)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := client.Fetch(ctx, "react"); err != nil {
			t.Fatalf("Fetch %d: %v", i, err)
		}
	}
	if requests != 1 {
		t.Errorf("requests = %d, want 1 (later fetches must hit the cache)", requests)
	}
}

func TestClientDegradesGracefully(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "broker error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "upstream outage", http.StatusBadGateway)
			},
		},
		{
			name: "undecodable payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(WithBaseURL(server.URL), WithRateLimit(600, 10))
			data, err := client.Fetch(context.Background(), "nodejs")
			if err != nil {
				t.Fatalf("degraded path must not error, got %v", err)
			}
			if data != nil {
				t.Errorf("degraded path must yield a nil bundle, got %+v", data)
			}
		})
	}
}

func TestClientUnreachableBroker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening anymore

	client := NewClient(WithBaseURL(server.URL), WithRateLimit(600, 10))
	data, err := client.Fetch(context.Background(), "nodejs")
	if err != nil {
		t.Fatalf("unreachable broker must not error, got %v", err)
	}
	if data != nil {
		t.Errorf("unreachable broker must yield a nil bundle, got %+v", data)
	}
}
