package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Run records one analysis pass over a category. ID is the version
// token stamped on files and logs; ExportID is the UUID that correlates
// rows across export targets.
type Run struct {
	ID           string    `db:"id" json:"id"`
	ExportID     string    `db:"export_id" json:"export_id"`
	Category     string    `db:"category" json:"category"`
	StartedAt    time.Time `db:"started_at" json:"started_at"`
	FinishedAt   time.Time `db:"finished_at" json:"finished_at"`
	PostCount    int       `db:"post_count" json:"post_count"`
	HashtagCount int       `db:"hashtag_count" json:"hashtag_count"`
}

// HashtagTrend is one ranked hashtag in a finished run.
type HashtagTrend struct {
	ID              int64   `db:"id" json:"-"`
	RunID           string  `db:"run_id" json:"run_id,omitempty"`
	Rank            int     `db:"rank" json:"rank"`
	Hashtag         string  `db:"hashtag" json:"hashtag"`
	Category        string  `db:"category" json:"category"`
	PostCount       int     `db:"post_count" json:"post_count"`
	TotalEngagement int     `db:"total_engagement" json:"total_engagement"`
	Likes           int     `db:"likes" json:"likes"`
	Comments        int     `db:"comments" json:"comments"`
	Shares          int     `db:"shares" json:"shares"`
	AvgLikes        float64 `db:"avg_likes" json:"avg_likes"`
	AvgComments     float64 `db:"avg_comments" json:"avg_comments"`
	AvgShares       float64 `db:"avg_shares" json:"avg_shares"`
	AvgEngagement   float64 `db:"avg_engagement" json:"avg_engagement"`
	EngagementScore float64 `db:"engagement_score" json:"engagement_score"`
	TrendingScore   float64 `db:"trending_score" json:"trending_score"`
	Sentiment       string  `db:"sentiment" json:"sentiment"`
	SentimentScore  float64 `db:"sentiment_score" json:"sentiment_score"`
	Estimated       bool    `db:"estimated" json:"estimated"`
	HashtagURL      string  `db:"hashtag_url" json:"hashtag_url"`
}

// TrendListOpts controls trend listing.
type TrendListOpts struct {
	RunID    string
	Category string
	MinScore float64
	Limit    int
}

// Store is the persistence interface.
type Store interface {
	CreateRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	LatestRunID(ctx context.Context, category string) (string, error)

	SaveTrends(ctx context.Context, trends []HashtagTrend) error
	ListTrends(ctx context.Context, opts TrendListOpts) ([]HashtagTrend, error)

	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// New opens a SQLite database and runs migrations.
func New(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, run *Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, export_id, category, started_at, finished_at, post_count, hashtag_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.ExportID, run.Category, run.StartedAt, run.FinishedAt,
		run.PostCount, run.HashtagCount)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	return nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := s.db.GetContext(ctx, &run, "SELECT * FROM runs WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return &run, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	var runs []Run
	err := s.db.SelectContext(ctx, &runs,
		"SELECT * FROM runs ORDER BY started_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// LatestRunID returns the most recent run for a category, or for any
// category when category is empty. No runs yet is not an error.
func (s *SQLiteStore) LatestRunID(ctx context.Context, category string) (string, error) {
	query := "SELECT id FROM runs"
	var args []any
	if category != "" {
		query += " WHERE category = ?"
		args = append(args, category)
	}
	query += " ORDER BY started_at DESC LIMIT 1"

	var id string
	err := s.db.GetContext(ctx, &id, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("latest run: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) SaveTrends(ctx context.Context, trends []HashtagTrend) error {
	for i := range trends {
		t := &trends[i]
		res, err := s.db.ExecContext(ctx, `
			INSERT INTO hashtag_trends (run_id, rank, hashtag, category, post_count,
				total_engagement, likes, comments, shares,
				avg_likes, avg_comments, avg_shares, avg_engagement,
				engagement_score, trending_score, sentiment, sentiment_score,
				estimated, hashtag_url)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, t.RunID, t.Rank, t.Hashtag, t.Category, t.PostCount,
			t.TotalEngagement, t.Likes, t.Comments, t.Shares,
			t.AvgLikes, t.AvgComments, t.AvgShares, t.AvgEngagement,
			t.EngagementScore, t.TrendingScore, t.Sentiment, t.SentimentScore,
			t.Estimated, t.HashtagURL)
		if err != nil {
			return fmt.Errorf("insert trend %s: %w", t.Hashtag, err)
		}
		t.ID, _ = res.LastInsertId()
	}
	return nil
}

func (s *SQLiteStore) ListTrends(ctx context.Context, opts TrendListOpts) ([]HashtagTrend, error) {
	query := "SELECT * FROM hashtag_trends WHERE 1=1"
	var args []any

	if opts.RunID != "" {
		query += " AND run_id = ?"
		args = append(args, opts.RunID)
	}
	if opts.Category != "" {
		query += " AND category = ?"
		args = append(args, opts.Category)
	}
	if opts.MinScore > 0 {
		query += " AND trending_score >= ?"
		args = append(args, opts.MinScore)
	}

	query += " ORDER BY trending_score DESC, engagement_score DESC, post_count DESC"

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " LIMIT ?"
	args = append(args, limit)

	var trends []HashtagTrend
	if err := s.db.SelectContext(ctx, &trends, query, args...); err != nil {
		return nil, fmt.Errorf("list trends: %w", err)
	}
	return trends, nil
}
