package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/elonfeng/hashradar/internal/config"
	"github.com/elonfeng/hashradar/internal/logging"
	"github.com/elonfeng/hashradar/internal/metrics"
	"github.com/elonfeng/hashradar/internal/report"
	"github.com/elonfeng/hashradar/internal/scheduler"
	"github.com/elonfeng/hashradar/internal/store"
	"github.com/elonfeng/hashradar/pkg/export"
	"github.com/elonfeng/hashradar/pkg/feed"
	"github.com/elonfeng/hashradar/pkg/server"
	"github.com/elonfeng/hashradar/pkg/trend"
)

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func buildSources(cfg *config.Config) []feed.Source {
	var sources []feed.Source

	if cfg.Sources.Capture.Enabled {
		dir := cfg.Sources.Capture.Dir
		if dir == "" {
			dir = filepath.Join(cfg.DataDir, "captures")
		}
		sources = append(sources, feed.NewCapture(dir))
	}
	if cfg.Sources.Mastodon.Enabled {
		sources = append(sources, feed.NewMastodon(cfg.Sources.Mastodon.Server))
	}
	if cfg.Sources.RSS.Enabled {
		sources = append(sources, feed.NewRSS(cfg.Sources.RSS.URLTemplate))
	}

	return sources
}

func buildEngine(cfg *config.Config, db store.Store, log logging.Logger, m *metrics.Metrics) *trend.Engine {
	weights := trend.DefaultWeights()
	if cfg.Analysis.TimeWeight > 0 {
		weights.Recency = cfg.Analysis.TimeWeight
	}

	var rng *rand.Rand
	if cfg.Analysis.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Analysis.Seed))
	}

	return trend.NewEngine(db, buildSources(cfg), trend.Options{
		Weights:     weights,
		MaxPosts:    cfg.Analysis.MaxPosts,
		TopN:        cfg.Analysis.TopN,
		URLTemplate: cfg.Analysis.HashtagURL,
		Rand:        rng,
		Logger:      log,
		Metrics:     m,
	})
}

func buildExporters(cfg *config.Config) (*export.Manager, error) {
	var exporters []export.Exporter

	if cfg.Exports.JSONFile.Enabled {
		dir := cfg.Exports.JSONFile.Dir
		if dir == "" {
			dir = cfg.DataDir
		}
		exporters = append(exporters, export.NewJSONFile(dir))
	}
	if cfg.Exports.Postgres.Enabled && cfg.Exports.Postgres.URL != "" {
		db, err := export.Connect(cfg.Exports.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		exporters = append(exporters, export.NewPostgres(db, cfg.Exports.Postgres.Table, cfg.Exports.Postgres.Platform))
	}
	if cfg.Exports.Webhook.Enabled && cfg.Exports.Webhook.URL != "" {
		exporters = append(exporters, export.NewWebhook(cfg.Exports.Webhook.URL, cfg.Exports.Webhook.Secret))
	}

	return export.NewManager(exporters), nil
}

func runAnalyze(category string, jsonOutput, noExport bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logging.New()

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	engine := buildEngine(cfg, db, log, metrics.New())

	exports := export.NewManager(nil)
	if !noExport {
		if exports, err = buildExporters(cfg); err != nil {
			return err
		}
	}

	cats := cfg.Categories
	if category != "" {
		cat, ok := cfg.Category(category)
		if !ok {
			return fmt.Errorf("unknown category %q (configured: %s)",
				category, strings.Join(cfg.CategoryNames(), ", "))
		}
		cats = []trend.Category{cat}
	}

	ctx := context.Background()
	for _, cat := range cats {
		run, trends, err := engine.Analyze(ctx, cat)
		if err != nil {
			return fmt.Errorf("analyze %s: %w", cat.Name, err)
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(map[string]any{"run": run, "trends": trends}); err != nil {
				return err
			}
		} else {
			report.Render(os.Stdout, run, trends)
		}

		if exports.HasExporters() {
			if err := exports.Export(ctx, run, trends); err != nil {
				log.WithError(err).Error("export failed")
			}
		}
	}

	return nil
}

func runTrends(jsonOutput bool, category, runID string, minScore float64, limit int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if runID == "" {
		if runID, err = db.LatestRunID(ctx, category); err != nil {
			return fmt.Errorf("resolve latest run: %w", err)
		}
	}

	trends, err := db.ListTrends(ctx, store.TrendListOpts{
		RunID:    runID,
		Category: category,
		MinScore: minScore,
		Limit:    limit,
	})
	if err != nil {
		return fmt.Errorf("list trends: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(trends)
	}

	if len(trends) == 0 {
		fmt.Println("no trends found (run an analysis first: hashradar analyze)")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tHASHTAG\tCATEGORY\tTRENDING\tENGAGEMENT\tPOSTS\tSENTIMENT")
	for _, t := range trends {
		fmt.Fprintf(w, "%d\t#%s\t%s\t%.1f\t%.2f\t%d\t%s\n",
			t.Rank, t.Hashtag, t.Category, t.TrendingScore, t.EngagementScore,
			t.PostCount, t.Sentiment)
	}
	return w.Flush()
}

func runCategories() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKEYWORDS\tHASHTAGS")
	for _, cat := range cfg.Categories {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			cat.Name, strings.Join(cat.Keywords, ","), strings.Join(cat.Hashtags, ","))
	}
	return w.Flush()
}

func runServe(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if port == 0 {
		port = cfg.Server.Port
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	log := logging.New()
	m := metrics.New()
	engine := buildEngine(cfg, db, log, m)

	srv := server.New(db, engine, cfg.Categories, m, log, port)
	return srv.ListenAndServe()
}

func runDaemon(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if port == 0 {
		port = cfg.Server.Port
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	log := logging.New()
	m := metrics.New()
	engine := buildEngine(cfg, db, log, m)

	exports, err := buildExporters(cfg)
	if err != nil {
		return err
	}

	names := cfg.Schedule.Categories
	if len(names) == 0 {
		names = cfg.CategoryNames()
	}

	sweep := func(ctx context.Context, name string) error {
		cat, ok := cfg.Category(name)
		if !ok {
			return fmt.Errorf("unknown category %q", name)
		}
		run, trends, err := engine.Analyze(ctx, cat)
		if err != nil {
			return err
		}
		if exports.HasExporters() {
			return exports.Export(ctx, run, trends)
		}
		return nil
	}

	sched := scheduler.New(log)
	if err := sched.AddAnalysis(cfg.Schedule.Cron, names, sweep); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initial sweep on start, then on schedule.
	go func() {
		_ = sched.RunNow("analyze", scheduler.Sweep(names, sweep))
	}()
	sched.Start()
	defer sched.Stop()

	srv := server.New(db, engine, cfg.Categories, m, log, port)
	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: srv.Handler(),
	}

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.WithFields(logging.Fields{"addr": httpSrv.Addr}).Info("server listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
