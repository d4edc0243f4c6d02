package trend

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/elonfeng/hashradar/internal/logging"
	"github.com/elonfeng/hashradar/internal/metrics"
	"github.com/elonfeng/hashradar/internal/store"
	"github.com/elonfeng/hashradar/pkg/engage"
	"github.com/elonfeng/hashradar/pkg/feed"
	"github.com/elonfeng/hashradar/pkg/sentiment"
)

// Options tune an analysis engine.
type Options struct {
	Weights     Weights
	MaxPosts    int    // total post budget per run, split across search terms
	TopN        int    // ranked hashtags kept per run
	URLTemplate string // hashtag link template, %s = tag
	Rand        *rand.Rand
	Logger      logging.Logger
	Metrics     *metrics.Metrics // optional, nil = no metrics
}

// Engine runs the analysis pipeline for one category at a time: fetch
// posts from every source, complete their engagement metrics, fold them
// into per-hashtag aggregates, score, rank, and persist.
type Engine struct {
	store     store.Store
	sources   []feed.Source
	scorer    *Scorer
	estimator *engage.Estimator
	analyzer  *sentiment.Analyzer
	rng       *rand.Rand
	log       logging.Logger
	metrics   *metrics.Metrics

	maxPosts    int
	topN        int
	urlTemplate string

	// mu serializes runs: the rng and per-run aggregation are
	// single-writer.
	mu sync.Mutex
}

// NewEngine creates an analysis engine over a store and post sources.
func NewEngine(db store.Store, sources []feed.Source, opts Options) *Engine {
	if opts.MaxPosts <= 0 {
		opts.MaxPosts = 50
	}
	if opts.TopN <= 0 {
		opts.TopN = 10
	}
	if opts.URLTemplate == "" {
		opts.URLTemplate = "https://www.facebook.com/hashtag/%s"
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = logging.New()
	}

	return &Engine{
		store:       db,
		sources:     sources,
		scorer:      NewScorer(opts.Weights),
		estimator:   engage.NewEstimator(opts.Rand),
		analyzer:    sentiment.NewAnalyzer(),
		rng:         opts.Rand,
		log:         opts.Logger,
		metrics:     opts.Metrics,
		maxPosts:    opts.MaxPosts,
		topN:        opts.TopN,
		urlTemplate: opts.URLTemplate,
	}
}

// Analyze collects posts for one category, ranks its hashtags, and
// persists the run with its top trends. A run that collects nothing
// still produces a full ranked list via the fallback set.
func (e *Engine) Analyze(ctx context.Context, cat Category) (*store.Run, []store.HashtagTrend, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	started := time.Now().UTC()
	runID := newRunID(started, e.rng)

	log := e.log.WithFields(logging.Fields{"category": cat.Name, "run": runID})
	log.Info("starting analysis")

	posts := e.collect(ctx, cat, log)
	folded := e.fold(cat, posts)

	trends := e.rank(folded)
	if len(trends) == 0 {
		log.Warn("no hashtags found, using fallback")
		trends = Fallback(cat, e.rng, e.urlTemplate)
	}

	run := &store.Run{
		ID:           runID,
		ExportID:     uuid.NewString(),
		Category:     cat.Name,
		StartedAt:    started,
		FinishedAt:   time.Now().UTC(),
		PostCount:    folded.posts,
		HashtagCount: len(trends),
	}
	for i := range trends {
		trends[i].RunID = run.ID
	}

	if err := e.store.CreateRun(ctx, run); err != nil {
		e.countRun(cat.Name, "error", started)
		return nil, nil, fmt.Errorf("create run: %w", err)
	}
	if err := e.store.SaveTrends(ctx, trends); err != nil {
		e.countRun(cat.Name, "error", started)
		return nil, nil, fmt.Errorf("save trends: %w", err)
	}

	if e.metrics != nil {
		e.metrics.HashtagsRanked.WithLabelValues(cat.Name).Add(float64(len(trends)))
	}
	e.countRun(cat.Name, "ok", started)

	log.WithFields(logging.Fields{
		"posts":    run.PostCount,
		"hashtags": run.HashtagCount,
	}).Info("analysis finished")

	return run, trends, nil
}

// collect fetches posts from every source for the category's search
// terms. Each term gets an equal share of the post budget; fetch
// failures are logged and skipped.
func (e *Engine) collect(ctx context.Context, cat Category, log logging.Entry) []feed.Post {
	terms := cat.SearchTerms()
	if len(terms) == 0 {
		return nil
	}

	budget := e.maxPosts / len(terms)
	if budget < 1 {
		budget = 1
	}

	type job struct {
		src  feed.Source
		term string
	}
	var jobs []job
	for _, src := range e.sources {
		for _, term := range terms {
			jobs = append(jobs, job{src: src, term: term})
		}
	}

	results := make([][]feed.Post, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			posts, err := j.src.Fetch(gctx, j.term, budget)
			if err != nil {
				log.WithFields(logging.Fields{
					"source": j.src.Name(),
					"term":   j.term,
				}).WithError(err).Warn("fetch failed")
				return nil
			}
			if e.metrics != nil {
				e.metrics.PostsCollected.WithLabelValues(j.src.Name()).Add(float64(len(posts)))
			}
			results[i] = posts
			return nil
		})
	}
	g.Wait()

	var all []feed.Post
	for _, posts := range results {
		all = append(all, posts...)
	}
	return all
}

// foldResult carries the aggregates and the count of posts that
// actually contributed after dedup and length filtering.
type foldResult struct {
	aggs  []*Aggregate
	posts int
}

// fold completes each post's metrics and merges it into per-hashtag
// aggregates. Near-duplicate posts (same leading text) and fragments
// under 30 characters are skipped.
func (e *Engine) fold(cat Category, posts []feed.Post) foldResult {
	agg := NewAggregator(cat)
	seen := make(map[string]bool)
	count := 0

	for _, p := range posts {
		if len(p.Text) < 30 {
			continue
		}
		key := textKey(p.Text)
		if seen[key] {
			continue
		}
		seen[key] = true

		m := e.estimator.Estimate(
			engage.ParseCount(p.LikesRaw),
			engage.ParseCount(p.CommentsRaw),
			engage.ParseCount(p.SharesRaw),
			p.Text,
		)
		if m.Estimated && e.metrics != nil {
			e.metrics.PostsEstimated.Inc()
		}

		res := e.analyzer.Analyze(p.Text)
		agg.Fold(ExtractTags(p.Text, cat.Hashtags), m, res.Polarity)
		count++
	}

	return foldResult{aggs: agg.Aggregates(), posts: count}
}

// rank finalizes aggregates into ranked trend records, keeping the top
// N by (trending score, engagement score, post count) descending.
func (e *Engine) rank(folded foldResult) []store.HashtagTrend {
	now := time.Now().UTC()

	trends := make([]store.HashtagTrend, 0, len(folded.aggs))
	for _, a := range folded.aggs {
		trends = append(trends, store.HashtagTrend{
			Hashtag:         a.Hashtag,
			Category:        a.Category,
			PostCount:       a.PostCount,
			TotalEngagement: a.TotalEngagement,
			Likes:           a.Likes,
			Comments:        a.Comments,
			Shares:          a.Shares,
			AvgLikes:        a.AvgLikes(),
			AvgComments:     a.AvgComments(),
			AvgShares:       a.AvgShares(),
			AvgEngagement:   a.AvgEngagement(),
			EngagementScore: a.EngagementScore(),
			TrendingScore:   e.scorer.Score(a, now),
			Sentiment:       a.SentimentLabel(),
			SentimentScore:  a.AvgPolarity(),
			Estimated:       a.Estimated,
			HashtagURL:      fmt.Sprintf(e.urlTemplate, a.Hashtag),
		})
	}

	sort.SliceStable(trends, func(i, j int) bool {
		if trends[i].TrendingScore != trends[j].TrendingScore {
			return trends[i].TrendingScore > trends[j].TrendingScore
		}
		if trends[i].EngagementScore != trends[j].EngagementScore {
			return trends[i].EngagementScore > trends[j].EngagementScore
		}
		return trends[i].PostCount > trends[j].PostCount
	})

	if len(trends) > e.topN {
		trends = trends[:e.topN]
	}
	for i := range trends {
		trends[i].Rank = i + 1
	}
	return trends
}

func (e *Engine) countRun(category, status string, started time.Time) {
	if e.metrics == nil {
		return
	}
	e.metrics.RunsTotal.WithLabelValues(category, status).Inc()
	e.metrics.RunDuration.WithLabelValues(category).Observe(time.Since(started).Seconds())
}

// textKey hashes the leading text of a post for duplicate detection.
func textKey(text string) string {
	if len(text) > 200 {
		text = text[:200]
	}
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}

// newRunID builds the version token stamped on a run.
func newRunID(now time.Time, rng *rand.Rand) string {
	return fmt.Sprintf("v_%s_%04d", now.Format("20060102_150405"), 1000+rng.Intn(9000))
}
