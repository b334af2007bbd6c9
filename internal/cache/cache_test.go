// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU[string, int](2, 0)
	c.Add("a", 1)
	c.Add("b", 2)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a missing")
	}
	c.Add("c", 3) // evicts b

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v", v, ok)
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Errorf("Get(c) = %d, %v", v, ok)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestLRUReplaceKeepsSize(t *testing.T) {
	c := NewLRU[int, string](3, 0)
	c.Add(1, "x")
	c.Add(1, "y")
	if v, _ := c.Get(1); v != "y" {
		t.Errorf("Get(1) = %q, want y", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestLRUExpiry(t *testing.T) {
	c := NewLRU[string, int](10, time.Minute)
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	c.Add("k", 1)
	now = now.Add(30 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("entry expired early")
	}
	now = now.Add(31 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatal("entry should have expired")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not collected, Len() = %d", c.Len())
	}
}

func TestLRUStatsAndPurge(t *testing.T) {
	c := NewLRU[string, int](0, 0)
	if c.capacity != DefaultCapacity {
		t.Errorf("capacity = %d, want %d", c.capacity, DefaultCapacity)
	}
	c.Add("a", 1)
	c.Get("a")
	c.Get("missing")
	hits, misses, size := c.Stats()
	if hits != 1 || misses != 1 || size != 1 {
		t.Errorf("Stats() = %d, %d, %d", hits, misses, size)
	}
	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len() after Purge = %d", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("purged entry still present")
	}
}

func TestLRUConcurrent(t *testing.T) {
	c := NewLRU[int, int](64, 0)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				c.Add(g*1000+i, i)
				c.Get(g*1000 + i/2)
			}
		}(g)
	}
	wg.Wait()
	if c.Len() > 64 {
		t.Errorf("Len() = %d exceeds capacity", c.Len())
	}
}

func TestTriePrefix(t *testing.T) {
	tr := NewTrie()
	titles := []string{"The Dark Knight", "The Dark Knight Rises", "Dark Shadows", "Avatar", "Knight and Day"}
	for i, title := range titles {
		tr.Insert(title, i)
	}
	tr.Insert("Duplicate ID", 0)
	tr.Insert("   ", 99)

	if tr.Size() != len(titles) {
		t.Errorf("Size() = %d, want %d", tr.Size(), len(titles))
	}

	tests := []struct {
		prefix string
		limit  int
		want   []string
	}{
		{"dark", 10, []string{"Dark Shadows", "The Dark Knight", "The Dark Knight Rises"}},
		{"KNI", 10, []string{"Knight and Day", "The Dark Knight", "The Dark Knight Rises"}},
		{"the dark knight r", 10, []string{"The Dark Knight Rises"}},
		{"ava", 1, []string{"Avatar"}},
		{"dark", 1, []string{"Dark Shadows"}},
		{"zzz", 10, nil},
		{"", 10, nil},
		{"rises", 0, nil},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.prefix, tt.limit), func(t *testing.T) {
			got := tr.Prefix(tt.prefix, tt.limit)
			if len(got) != len(tt.want) {
				t.Fatalf("Prefix() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i].Value != tt.want[i] {
					t.Errorf("Prefix()[%d] = %q, want %q", i, got[i].Value, tt.want[i])
				}
			}
		})
	}
}

func TestWordSuffixes(t *testing.T) {
	got := wordSuffixes("(500) days of summer")
	want := []string{"(500) days of summer", "500) days of summer", "days of summer", "of summer", "summer"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("wordSuffixes() = %q, want %q", got, want)
	}
}
