package dispatch

import (
	"context"
	"fmt"
	"testing"

	"github.com/vampirenirmal/codeintel/internal/engine"
)

func TestBatchRunPreservesOrder(t *testing.T) {
	d := New(nil)
	b := NewBatchAnalyzer(d, 4, nil)

	items := make([]BatchItem, 10)
	for i := range items {
		items[i] = BatchItem{
			Name:       fmt.Sprintf("fragment-%02d", i),
			Code:       "SELECT * FROM users",
			Technology: "postgresql",
		}
	}

	results := b.Run(context.Background(), items, nil)
	if len(results) != len(items) {
		t.Fatalf("results = %d, want %d", len(results), len(items))
	}
	for i, res := range results {
		if res.Name != items[i].Name {
			t.Errorf("result %d named %q, want %q", i, res.Name, items[i].Name)
		}
		if res.Err != nil {
			t.Errorf("result %d errored: %v", i, res.Err)
		}
		if res.Category != "database" {
			t.Errorf("result %d category = %q, want database", i, res.Category)
		}
		if res.Analysis == nil || res.Analysis.Quality == nil {
			t.Errorf("result %d missing analysis", i)
		}
	}
}

func TestBatchRunMixedCategories(t *testing.T) {
	d := New(nil)
	b := NewBatchAnalyzer(d, 2, nil)

	items := []BatchItem{
		{Name: "schema.sql", Code: "CREATE TABLE t (id SERIAL PRIMARY KEY);", Technology: "postgresql"},
		{Name: "server.js", Code: "app.listen(3000);", Technology: "nodejs"},
		{Name: "view.jsx", Code: `<img src="x.png" />`, Technology: "react"},
		{Name: "broken", Code: "", Category: "embedded"},
	}

	results := b.Run(context.Background(), items, nil)
	if len(results) != 4 {
		t.Fatalf("results = %d, want 4", len(results))
	}

	wantCategories := []string{"database", "backend", "frontend"}
	for i, want := range wantCategories {
		if results[i].Err != nil {
			t.Errorf("item %d errored: %v", i, results[i].Err)
			continue
		}
		if results[i].Category != want {
			t.Errorf("item %d category = %q, want %q", i, results[i].Category, want)
		}
	}

	if results[3].Err == nil || !engine.IsUnsupportedCategory(results[3].Err) {
		t.Errorf("unroutable item: got %v, want unsupported-category error", results[3].Err)
	}
}

func TestBatchRunEmpty(t *testing.T) {
	b := NewBatchAnalyzer(New(nil), 0, nil)
	if got := b.Run(context.Background(), nil, nil); got != nil {
		t.Errorf("empty batch = %v, want nil", got)
	}
}

func TestBatchRunCancelledContext(t *testing.T) {
	b := NewBatchAnalyzer(New(nil), 2, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := make([]BatchItem, 8)
	for i := range items {
		items[i] = BatchItem{Name: fmt.Sprintf("f%d", i), Code: "x", Technology: "go"}
	}

	results := b.Run(ctx, items, nil)
	if len(results) != len(items) {
		t.Fatalf("results = %d, want %d", len(results), len(items))
	}
}
