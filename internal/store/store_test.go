package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(id, category string, started time.Time) *Run {
	return &Run{
		ID:           id,
		ExportID:     "e0f9c0de-" + id,
		Category:     category,
		StartedAt:    started,
		FinishedAt:   started.Add(2 * time.Second),
		PostCount:    42,
		HashtagCount: 10,
	}
}

func TestRunRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	started := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	run := sampleRun("v_20250820_120000_1234", "technology", started)
	if err := s.CreateRun(ctx, run); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	got, err := s.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Category != "technology" {
		t.Errorf("category = %q, want technology", got.Category)
	}
	if got.ExportID != run.ExportID {
		t.Errorf("export id = %q, want %q", got.ExportID, run.ExportID)
	}
	if got.PostCount != 42 || got.HashtagCount != 10 {
		t.Errorf("counts = %d/%d, want 42/10", got.PostCount, got.HashtagCount)
	}
	if !got.StartedAt.Equal(started) {
		t.Errorf("started_at = %v, want %v", got.StartedAt, started)
	}
}

func TestGetRunMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetRun(context.Background(), "nope"); err == nil {
		t.Fatal("expected error for missing run")
	}
}

func TestListRunsOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"v_a", "v_b", "v_c"} {
		run := sampleRun(id, "sports", base.Add(time.Duration(i)*time.Hour))
		if err := s.CreateRun(ctx, run); err != nil {
			t.Fatalf("CreateRun %s: %v", id, err)
		}
	}

	runs, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].ID != "v_c" || runs[1].ID != "v_b" {
		t.Errorf("order = %s, %s; want v_c, v_b", runs[0].ID, runs[1].ID)
	}
}

func TestLatestRunID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.LatestRunID(ctx, "technology")
	if err != nil {
		t.Fatalf("LatestRunID on empty store: %v", err)
	}
	if id != "" {
		t.Errorf("expected empty id on empty store, got %q", id)
	}

	base := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	s.CreateRun(ctx, sampleRun("v_old_tech", "technology", base))
	s.CreateRun(ctx, sampleRun("v_sports", "sports", base.Add(time.Hour)))
	s.CreateRun(ctx, sampleRun("v_new_tech", "technology", base.Add(2*time.Hour)))

	id, err = s.LatestRunID(ctx, "technology")
	if err != nil {
		t.Fatalf("LatestRunID: %v", err)
	}
	if id != "v_new_tech" {
		t.Errorf("latest technology run = %q, want v_new_tech", id)
	}

	id, err = s.LatestRunID(ctx, "")
	if err != nil {
		t.Fatalf("LatestRunID any: %v", err)
	}
	if id != "v_new_tech" {
		t.Errorf("latest any run = %q, want v_new_tech", id)
	}
}

func TestSaveAndListTrends(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	started := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	run := sampleRun("v_run1", "technology", started)
	if err := s.CreateRun(ctx, run); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	trends := []HashtagTrend{
		{
			RunID: run.ID, Rank: 1, Hashtag: "ai", Category: "technology",
			PostCount: 12, TotalEngagement: 5400, Likes: 4000, Comments: 1000, Shares: 400,
			AvgLikes: 333.33, AvgComments: 83.33, AvgShares: 33.33, AvgEngagement: 450.0,
			EngagementScore: 5.75, TrendingScore: 88.2,
			Sentiment: "positive", SentimentScore: 0.4,
			HashtagURL: "https://www.facebook.com/hashtag/ai",
		},
		{
			RunID: run.ID, Rank: 2, Hashtag: "cloud", Category: "technology",
			PostCount: 5, TotalEngagement: 900,
			EngagementScore: 3.1, TrendingScore: 61.5,
			Sentiment: "neutral", Estimated: true,
		},
		{
			RunID: run.ID, Rank: 3, Hashtag: "golang", Category: "technology",
			PostCount: 3, TotalEngagement: 300,
			EngagementScore: 2.9, TrendingScore: 40.0,
			Sentiment: "negative", SentimentScore: -0.2,
		},
	}
	if err := s.SaveTrends(ctx, trends); err != nil {
		t.Fatalf("SaveTrends: %v", err)
	}
	for i := range trends {
		if trends[i].ID == 0 {
			t.Errorf("trend %d: ID not assigned", i)
		}
	}

	got, err := s.ListTrends(ctx, TrendListOpts{RunID: run.ID})
	if err != nil {
		t.Fatalf("ListTrends: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d trends, want 3", len(got))
	}
	if got[0].Hashtag != "ai" || got[2].Hashtag != "golang" {
		t.Errorf("order = %s..%s, want ai..golang", got[0].Hashtag, got[2].Hashtag)
	}
	if !got[1].Estimated {
		t.Errorf("cloud should be estimated")
	}
	if got[0].AvgLikes != 333.33 {
		t.Errorf("avg likes = %v, want 333.33", got[0].AvgLikes)
	}

	got, err = s.ListTrends(ctx, TrendListOpts{RunID: run.ID, MinScore: 50})
	if err != nil {
		t.Fatalf("ListTrends min score: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("min score 50: got %d trends, want 2", len(got))
	}

	got, err = s.ListTrends(ctx, TrendListOpts{RunID: run.ID, Limit: 1})
	if err != nil {
		t.Fatalf("ListTrends limit: %v", err)
	}
	if len(got) != 1 || got[0].Rank != 1 {
		t.Errorf("limit 1: got %d trends, first rank %d", len(got), got[0].Rank)
	}
}

func TestListTrendsByCategory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	started := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	s.CreateRun(ctx, sampleRun("v_t", "technology", started))
	s.CreateRun(ctx, sampleRun("v_s", "sports", started))

	trends := []HashtagTrend{
		{RunID: "v_t", Rank: 1, Hashtag: "ai", Category: "technology", TrendingScore: 80},
		{RunID: "v_s", Rank: 1, Hashtag: "football", Category: "sports", TrendingScore: 70},
	}
	if err := s.SaveTrends(ctx, trends); err != nil {
		t.Fatalf("SaveTrends: %v", err)
	}

	got, err := s.ListTrends(ctx, TrendListOpts{Category: "sports"})
	if err != nil {
		t.Fatalf("ListTrends: %v", err)
	}
	if len(got) != 1 || got[0].Hashtag != "football" {
		t.Fatalf("category filter returned %d rows", len(got))
	}
}

func TestTrendTieBreak(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	started := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	s.CreateRun(ctx, sampleRun("v_tie", "technology", started))

	trends := []HashtagTrend{
		{RunID: "v_tie", Rank: 1, Hashtag: "lowtag", Category: "technology", TrendingScore: 50, EngagementScore: 3, PostCount: 2},
		{RunID: "v_tie", Rank: 2, Hashtag: "hightag", Category: "technology", TrendingScore: 50, EngagementScore: 7, PostCount: 2},
	}
	if err := s.SaveTrends(ctx, trends); err != nil {
		t.Fatalf("SaveTrends: %v", err)
	}

	got, err := s.ListTrends(ctx, TrendListOpts{RunID: "v_tie"})
	if err != nil {
		t.Fatalf("ListTrends: %v", err)
	}
	if got[0].Hashtag != "hightag" {
		t.Errorf("tie break: first = %s, want hightag", got[0].Hashtag)
	}
}
