// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend/catalog"
)

func newTestService(t *testing.T, src catalog.Source) *Service {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Workers = 2
	s, err := NewService(src, cfg, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return s
}

func TestServiceNotReady(t *testing.T) {
	s := newTestService(t, &fakeSource{movies: testCatalog()})

	if s.Ready() {
		t.Error("Ready() = true before Reload")
	}
	if _, err := s.Recommend(context.Background(), Request{Mode: ModeMovie, Value: "Bank Job"}); !errors.Is(err, ErrNotReady) {
		t.Errorf("Recommend() error = %v, want ErrNotReady", err)
	}
	if st := s.Status(); st.Ready || st.Version != 0 {
		t.Errorf("Status() = %+v, want not ready", st)
	}
}

func TestServiceRecommend(t *testing.T) {
	s := newTestService(t, &fakeSource{movies: testCatalog()})
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	tests := []struct {
		name    string
		req     Request
		wantErr error
		wantLen int
	}{
		{"movie", Request{Mode: "movie", Value: "Bank Job", TopN: 3}, nil, 3},
		{"movie default k", Request{Mode: "Movie", Value: "Bank Job"}, nil, 5},
		{"mood", Request{Mode: "mood", Value: "excited", TopN: 2}, nil, 2},
		{"unknown movie", Request{Mode: "movie", Value: "Missing"}, ErrMovieNotFound, 0},
		{"unknown mood", Request{Mode: "mood", Value: "unknown_mood"}, ErrUnmappedMood, 0},
		{"bad mode", Request{Mode: "genre", Value: "x"}, ErrInvalidMode, 0},
		{"empty mode", Request{Value: "x"}, ErrInvalidMode, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := s.Recommend(context.Background(), tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				if resp != nil {
					t.Errorf("response %+v returned with error", resp)
				}
				return
			}
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if len(resp.Results) != tt.wantLen {
				t.Errorf("len(Results) = %d, want %d", len(resp.Results), tt.wantLen)
			}
			if resp.Snapshot != 1 {
				t.Errorf("Snapshot = %d, want 1", resp.Snapshot)
			}
		})
	}
}

func TestServiceRecordsMetrics(t *testing.T) {
	s := newTestService(t, &fakeSource{movies: testCatalog()})
	if err := s.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}

	c := metrics.RecommendationsTotal.WithLabelValues(ModeMovie, "not_found")
	before := testutil.ToFloat64(c)
	_, _ = s.Recommend(context.Background(), Request{Mode: ModeMovie, Value: "Nope"})
	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Errorf("not_found counter delta = %v, want 1", got)
	}
}

func TestServiceReloadSwapsSnapshot(t *testing.T) {
	src := &fakeSource{movies: testCatalog()}
	s := newTestService(t, src)
	ctx := context.Background()

	if err := s.Reload(ctx); err != nil {
		t.Fatal(err)
	}
	first, _ := s.Engine()

	src.set(append(testCatalog(), movie(10, "Fresh Arrival", "new release", []string{"Comedy"}, nil)), nil)
	if err := s.Reload(ctx); err != nil {
		t.Fatal(err)
	}
	second, _ := s.Engine()

	if first == second {
		t.Fatal("Reload() did not publish a new engine")
	}
	if first.Len() != 9 || second.Len() != 10 {
		t.Errorf("Len() = %d, %d; want 9, 10", first.Len(), second.Len())
	}
	if first.Version() != 1 || second.Version() != 2 {
		t.Errorf("versions = %d, %d; want 1, 2", first.Version(), second.Version())
	}

	// The old snapshot keeps answering for in-flight callers.
	if _, err := first.RecommendByTitle(ctx, "Fresh Arrival", 1); !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("old snapshot sees new title: %v", err)
	}
	if _, err := second.RecommendByTitle(ctx, "Fresh Arrival", 1); err != nil {
		t.Errorf("new snapshot RecommendByTitle() error = %v", err)
	}
}

func TestServiceFailedReloadKeepsSnapshot(t *testing.T) {
	src := &fakeSource{movies: testCatalog()}
	s := newTestService(t, src)
	ctx := context.Background()

	if err := s.Reload(ctx); err != nil {
		t.Fatal(err)
	}
	src.set(nil, errors.New("disk on fire"))
	if err := s.Reload(ctx); err == nil {
		t.Fatal("Reload() error = nil, want failure")
	}

	st := s.Status()
	if !st.Ready || st.Version != 1 || st.Failures != 1 || st.LastError == "" {
		t.Errorf("Status() = %+v", st)
	}
	if _, err := s.Recommend(ctx, Request{Mode: ModeMood, Value: "happy"}); err != nil {
		t.Errorf("Recommend() after failed reload error = %v", err)
	}
}

func TestServiceConcurrentReloadAndQuery(t *testing.T) {
	s := newTestService(t, &fakeSource{movies: testCatalog()})
	ctx := context.Background()
	if err := s.Reload(ctx); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 5; i++ {
			if err := s.Reload(ctx); err != nil {
				t.Errorf("Reload() error = %v", err)
			}
		}
	}()
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if _, err := s.Recommend(ctx, Request{Mode: ModeMovie, Value: "Bank Job", TopN: 2}); err != nil {
					t.Errorf("Recommend() error = %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if v := s.Status().Version; v != 6 {
		t.Errorf("Version = %d, want 6", v)
	}
}

func TestNewServiceValidation(t *testing.T) {
	if _, err := NewService(nil, nil, zerolog.New(io.Discard)); err == nil {
		t.Error("NewService(nil source) should fail")
	}
	cfg := DefaultConfig()
	cfg.MaxFeatures = -1
	if _, err := NewService(&fakeSource{}, cfg, zerolog.New(io.Discard)); err == nil {
		t.Error("NewService(invalid config) should fail")
	}
}

func TestServiceResultCache(t *testing.T) {
	src := &fakeSource{movies: testCatalog()}
	s := newTestService(t, src)
	ctx := context.Background()
	if err := s.Reload(ctx); err != nil {
		t.Fatal(err)
	}

	hits := metrics.ResultCacheLookups.WithLabelValues("hit")
	before := testutil.ToFloat64(hits)

	first, err := s.Recommend(ctx, Request{Mode: ModeMovie, Value: "Bank Job", TopN: 3})
	if err != nil {
		t.Fatal(err)
	}
	// TopN 0 and the default k share one entry with an explicit 5.
	if _, err := s.Recommend(ctx, Request{Mode: ModeMovie, Value: "Bank Job"}); err != nil {
		t.Fatal(err)
	}
	second, err := s.Recommend(ctx, Request{Mode: ModeMovie, Value: "Bank Job", TopN: 3})
	if err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(hits) - before; got != 1 {
		t.Errorf("cache hit delta = %v, want 1", got)
	}
	if s.results.Len() != 2 {
		t.Errorf("cache entries = %d, want 2", s.results.Len())
	}

	// Callers own their slices.
	second.Results[0] = Recommendation{}
	third, _ := s.Recommend(ctx, Request{Mode: ModeMovie, Value: "Bank Job", TopN: 3})
	if third.Results[0].Movie == nil || third.Results[0].Movie.ID != first.Results[0].Movie.ID {
		t.Errorf("cached results were mutated through a response: %+v", third.Results[0])
	}

	if err := s.Reload(ctx); err != nil {
		t.Fatal(err)
	}
	if s.results.Len() != 0 {
		t.Errorf("cache entries after reload = %d, want 0", s.results.Len())
	}
	after, err := s.Recommend(ctx, Request{Mode: ModeMovie, Value: "Bank Job", TopN: 3})
	if err != nil {
		t.Fatal(err)
	}
	if after.Snapshot != 2 {
		t.Errorf("Snapshot = %d, want 2", after.Snapshot)
	}
}

func TestServiceResultCacheDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 2
	cfg.ResultCacheSize = 0
	s, err := NewService(&fakeSource{movies: testCatalog()}, cfg, zerolog.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.results != nil {
		t.Fatal("result cache created with size 0")
	}
	resp, err := s.Recommend(context.Background(), Request{Mode: ModeMovie, Value: "Bank Job", TopN: 2})
	if err != nil || len(resp.Results) != 2 {
		t.Errorf("Recommend() = %+v, %v", resp, err)
	}
}
