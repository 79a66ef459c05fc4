package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCachePutGet(t *testing.T) {
	c, err := New(true, t.TempDir(), 3600)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	key := "test-key"
	if err := c.Put(key, `{"rewrites":[]}`); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("Get miss after Put")
	}
	if got != `{"rewrites":[]}` {
		t.Errorf("Get = %q", got)
	}
}

func TestCacheMiss(t *testing.T) {
	c, err := New(true, t.TempDir(), 3600)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if _, ok := c.Get("absent"); ok {
		t.Error("Get hit for absent key")
	}
}

func TestCacheDisabled(t *testing.T) {
	c, err := New(false, "", 3600)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if err := c.Put("k", "v"); err != nil {
		t.Errorf("Put on disabled cache error: %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("disabled cache returned a hit")
	}
	if c.Enabled() {
		t.Error("Enabled() = true for disabled cache")
	}
}

func TestCacheExpiry(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 60)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if err := c.Put("k", "v"); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	// Backdate the entry past its TTL.
	path := c.entryPath("k")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatal(err)
	}
	entry.CreatedAt = time.Now().Add(-2 * time.Minute)
	data, _ = json.Marshal(entry)
	os.WriteFile(path, data, 0o644)

	if _, ok := c.Get("k"); ok {
		t.Error("Get hit for expired entry")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expired entry not removed on read")
	}
}

func TestCacheZeroTTLNeverExpires(t *testing.T) {
	c, err := New(true, t.TempDir(), 0)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if err := c.Put("k", "v"); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("k"); !ok {
		t.Error("zero-TTL entry expired")
	}
}

func TestCacheClear(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 3600)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	c.Put("a", "1")
	c.Put("b", "2")

	// Non-cache files survive a clear.
	other := filepath.Join(dir, "notes.txt")
	os.WriteFile(other, []byte("keep"), 0o644)

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if _, ok := c.Get("a"); ok {
		t.Error("entry survived Clear")
	}
	if _, err := os.Stat(other); err != nil {
		t.Error("non-cache file removed by Clear")
	}
}

func TestCacheStats(t *testing.T) {
	c, err := New(true, t.TempDir(), 3600)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	c.Put("a", "1")
	c.Put("b", "2")

	stats, err := c.GetStats()
	if err != nil {
		t.Fatalf("GetStats error: %v", err)
	}
	if stats.Entries != 2 {
		t.Errorf("Entries = %d, want 2", stats.Entries)
	}
	if stats.TotalBytes == 0 {
		t.Error("TotalBytes = 0")
	}
	if stats.Expired != 0 {
		t.Errorf("Expired = %d, want 0", stats.Expired)
	}
}

func TestBuildKey(t *testing.T) {
	base := BuildKey("anthropic", "model", "mentor", "snippet", []string{"a", "b"})

	if BuildKey("anthropic", "model", "mentor", "snippet", []string{"a", "b"}) != base {
		t.Error("identical inputs produced different keys")
	}
	different := []string{
		BuildKey("openai", "model", "mentor", "snippet", []string{"a", "b"}),
		BuildKey("anthropic", "other", "mentor", "snippet", []string{"a", "b"}),
		BuildKey("anthropic", "model", "tech_lead", "snippet", []string{"a", "b"}),
		BuildKey("anthropic", "model", "mentor", "changed", []string{"a", "b"}),
		BuildKey("anthropic", "model", "mentor", "snippet", []string{"b", "a"}),
		BuildKey("anthropic", "model", "mentor", "snippet", []string{"ab"}),
	}
	for i, k := range different {
		if k == base {
			t.Errorf("variant %d collided with base key", i)
		}
	}
}

func TestHashKeyStable(t *testing.T) {
	if HashKey("x") != HashKey("x") {
		t.Error("HashKey not stable")
	}
	if len(HashKey("x")) != 64 {
		t.Errorf("HashKey length = %d, want 64 hex chars", len(HashKey("x")))
	}
}
