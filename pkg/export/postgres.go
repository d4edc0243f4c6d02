package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/elonfeng/hashradar/internal/store"
)

// Connect opens and verifies the remote Postgres database used for
// trend export.
func Connect(url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// Postgres inserts ranked trends into a remote table, one row per
// hashtag, keyed by the run's export ID so rows from different export
// targets correlate.
type Postgres struct {
	db       *sql.DB
	table    string
	platform string
}

// NewPostgres creates a Postgres exporter writing to table. The
// platform label tags every row with the network the posts came from.
func NewPostgres(db *sql.DB, table, platform string) *Postgres {
	return &Postgres{db: db, table: table, platform: platform}
}

func (p *Postgres) Name() string { return "postgres" }

// rowMetadata is the JSON blob stored alongside the scalar columns.
type rowMetadata struct {
	Category      string  `json:"category"`
	TrendingScore float64 `json:"trending_score"`
	AvgEngagement float64 `json:"avg_engagement"`
	Likes         int     `json:"likes"`
	Comments      int     `json:"comments"`
	Shares        int     `json:"shares"`
	AvgLikes      float64 `json:"avg_likes"`
	AvgComments   float64 `json:"avg_comments"`
	AvgShares     float64 `json:"avg_shares"`
	HashtagURL    string  `json:"hashtag_url"`
	IsEstimated   bool    `json:"is_estimated"`
	Rank          int     `json:"rank"`
}

func (p *Postgres) Export(ctx context.Context, run *store.Run, trends []store.HashtagTrend) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin export tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (platform, hashtag, engagement_score, sentiment_polarity,
			sentiment_label, posts, views, version_id, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.table))
	if err != nil {
		return fmt.Errorf("prepare export insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range trends {
		meta, err := json.Marshal(rowMetadata{
			Category:      t.Category,
			TrendingScore: t.TrendingScore,
			AvgEngagement: t.AvgEngagement,
			Likes:         t.Likes,
			Comments:      t.Comments,
			Shares:        t.Shares,
			AvgLikes:      t.AvgLikes,
			AvgComments:   t.AvgComments,
			AvgShares:     t.AvgShares,
			HashtagURL:    t.HashtagURL,
			IsEstimated:   t.Estimated,
			Rank:          t.Rank,
		})
		if err != nil {
			return fmt.Errorf("marshal metadata %s: %w", t.Hashtag, err)
		}

		if _, err := stmt.ExecContext(ctx,
			p.platform, t.Hashtag, t.EngagementScore, t.SentimentScore,
			t.Sentiment, t.PostCount, t.TotalEngagement, run.ExportID,
			string(meta)); err != nil {
			return fmt.Errorf("insert trend %s: %w", t.Hashtag, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit export tx: %w", err)
	}
	return nil
}
