package extract

import (
	"testing"
	"time"
)

func TestTextCacheRoundTrip(t *testing.T) {
	cache, err := NewTextCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewTextCache() error = %v", err)
	}

	want := &Result{Strategy: StrategyLayout, Pages: 3, Text: "抽出されたテキスト"}
	if err := cache.Set("S100ABCD", StrategyAuto, 0, 0, want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok := cache.Get("S100ABCD", StrategyAuto, 0, 0)
	if !ok {
		t.Fatal("Get() miss, want hit")
	}
	if got.Strategy != want.Strategy || got.Pages != want.Pages || got.Text != want.Text {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestTextCacheKeySeparation(t *testing.T) {
	cache, err := NewTextCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewTextCache() error = %v", err)
	}

	if err := cache.Set("S100ABCD", StrategyAuto, 0, 0, &Result{Text: "full"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	tests := []struct {
		name     string
		docID    string
		strategy StrategyName
		start    int
		end      int
	}{
		{"different doc id", "S100EFGH", StrategyAuto, 0, 0},
		{"different strategy", "S100ABCD", StrategyOCR, 0, 0},
		{"different page window", "S100ABCD", StrategyAuto, 1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := cache.Get(tt.docID, tt.strategy, tt.start, tt.end); ok {
				t.Error("Get() hit, want miss")
			}
		})
	}
}

func TestTextCacheExpiry(t *testing.T) {
	cache, err := NewTextCache(t.TempDir(), -time.Second) // already expired
	if err != nil {
		t.Fatalf("NewTextCache() error = %v", err)
	}
	if err := cache.Set("S100ABCD", StrategyAuto, 0, 0, &Result{Text: "stale"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok := cache.Get("S100ABCD", StrategyAuto, 0, 0); ok {
		t.Error("Get() returned expired entry")
	}
}
