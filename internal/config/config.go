package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/elonfeng/hashradar/pkg/trend"
)

// Config is the root configuration.
type Config struct {
	DataDir    string           `yaml:"data_dir"`
	Database   DatabaseConfig   `yaml:"database"`
	Schedule   ScheduleConfig   `yaml:"schedule"`
	Sources    SourcesConfig    `yaml:"sources"`
	Analysis   AnalysisConfig   `yaml:"analysis"`
	Exports    ExportsConfig    `yaml:"exports"`
	Server     ServerConfig     `yaml:"server"`
	Categories []trend.Category `yaml:"categories"`
}

// DatabaseConfig configures SQLite storage.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ScheduleConfig configures the daemon analysis schedule. Categories
// limits scheduled runs to the named categories; empty means all.
type ScheduleConfig struct {
	Cron       string   `yaml:"cron"`
	Categories []string `yaml:"categories"`
}

// SourcesConfig holds configuration for all post sources.
type SourcesConfig struct {
	Capture  CaptureConfig  `yaml:"capture"`
	Mastodon MastodonConfig `yaml:"mastodon"`
	RSS      RSSConfig      `yaml:"rss"`
}

// CaptureConfig for the capture-directory source.
type CaptureConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// MastodonConfig for the Mastodon tag-timeline source.
type MastodonConfig struct {
	Enabled bool   `yaml:"enabled"`
	Server  string `yaml:"server"`
}

// RSSConfig for the RSS tag-feed source. URLTemplate takes the search
// term at %s.
type RSSConfig struct {
	Enabled     bool   `yaml:"enabled"`
	URLTemplate string `yaml:"url_template"`
}

// AnalysisConfig tunes the analysis engine.
type AnalysisConfig struct {
	MaxPosts   int     `yaml:"max_posts"`
	TopN       int     `yaml:"top_n"`
	TimeWeight float64 `yaml:"time_weight"`
	HashtagURL string  `yaml:"hashtag_url"`
	Seed       int64   `yaml:"seed"`
}

// ExportsConfig configures export destinations for finished runs.
type ExportsConfig struct {
	JSONFile JSONFileConfig `yaml:"jsonfile"`
	Postgres PostgresConfig `yaml:"postgres"`
	Webhook  WebhookConfig  `yaml:"webhook"`
}

// JSONFileConfig for the JSON file exporter. An empty Dir falls back to
// the data directory.
type JSONFileConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// PostgresConfig for the remote Postgres exporter.
type PostgresConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URL      string `yaml:"url"`
	Table    string `yaml:"table"`
	Platform string `yaml:"platform"`
}

// WebhookConfig for the generic webhook exporter.
type WebhookConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Secret  string `yaml:"secret"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// Category returns the configured category with the given name.
func (c *Config) Category(name string) (trend.Category, bool) {
	for _, cat := range c.Categories {
		if strings.EqualFold(cat.Name, name) {
			return cat, true
		}
	}
	return trend.Category{}, false
}

// CategoryNames lists configured category names in order.
func (c *Config) CategoryNames() []string {
	names := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		names[i] = cat.Name
	}
	return names
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		DataDir:  "./data",
		Database: DatabaseConfig{Path: "./hashradar.db"},
		Schedule: ScheduleConfig{
			Cron: "0 */6 * * *",
		},
		Sources: SourcesConfig{
			Capture:  CaptureConfig{Enabled: true, Dir: "./data/captures"},
			Mastodon: MastodonConfig{Enabled: true, Server: "https://mastodon.social"},
			RSS:      RSSConfig{URLTemplate: "https://mastodon.social/tags/%s.rss"},
		},
		Analysis: AnalysisConfig{
			MaxPosts:   50,
			TopN:       10,
			TimeWeight: 0.15,
			HashtagURL: "https://www.facebook.com/hashtag/%s",
		},
		Exports: ExportsConfig{
			JSONFile: JSONFileConfig{Enabled: true},
			Postgres: PostgresConfig{Table: "hashtag_trends", Platform: "facebook"},
		},
		Server:     ServerConfig{Port: 8080},
		Categories: DefaultCategories(),
	}
}

// DefaultCategories returns the built-in topic categories.
func DefaultCategories() []trend.Category {
	return []trend.Category{
		{
			Name:     "technology",
			Keywords: []string{"technology", "tech", "innovation", "digital", "AI", "software"},
			Hashtags: []string{"technology", "tech", "innovation", "AI", "artificialintelligence",
				"machinelearning", "software", "coding", "programming", "cybersecurity"},
		},
		{
			Name:     "business",
			Keywords: []string{"business", "entrepreneur", "startup", "marketing", "finance"},
			Hashtags: []string{"business", "entrepreneur", "startup", "businessgrowth", "marketing",
				"leadership", "success", "smallbusiness", "entrepreneurship", "investing"},
		},
		{
			Name:     "health",
			Keywords: []string{"health", "fitness", "wellness", "medical", "nutrition"},
			Hashtags: []string{"health", "fitness", "wellness", "healthcare", "nutrition",
				"mentalhealth", "workout", "healthy", "healthylifestyle", "medicine"},
		},
		{
			Name:     "food",
			Keywords: []string{"food", "cooking", "recipe", "restaurant", "chef"},
			Hashtags: []string{"food", "foodie", "cooking", "recipe", "foodporn",
				"instafood", "homemade", "yummy", "delicious", "chef"},
		},
		{
			Name:     "travel",
			Keywords: []string{"travel", "tourism", "vacation", "adventure", "explore"},
			Hashtags: []string{"travel", "travelphotography", "wanderlust", "vacation", "adventure",
				"explore", "tourism", "travelgram", "instatravel", "nature"},
		},
		{
			Name:     "fashion",
			Keywords: []string{"fashion", "style", "beauty", "makeup", "clothing"},
			Hashtags: []string{"fashion", "style", "ootd", "fashionblogger", "beauty",
				"makeup", "fashionista", "instafashion", "shopping", "outfitoftheday"},
		},
		{
			Name:     "entertainment",
			Keywords: []string{"entertainment", "movies", "music", "gaming", "celebrity"},
			Hashtags: []string{"entertainment", "movies", "music", "gaming", "tvshows",
				"celebrity", "Hollywood", "streaming", "gamer", "film"},
		},
		{
			Name:     "sports",
			Keywords: []string{"sports", "football", "basketball", "soccer", "athlete"},
			Hashtags: []string{"sports", "fitness", "athlete", "training", "football",
				"basketball", "soccer", "gym", "motivation", "sportsnews"},
		},
	}
}

// Load reads configuration from a YAML file and applies env var
// overrides. A .env file in the working directory supplements the
// process environment when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HASHRADAR_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("HASHRADAR_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("HASHRADAR_CAPTURE_DIR"); v != "" {
		cfg.Sources.Capture.Dir = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Exports.Postgres.URL = v
		cfg.Exports.Postgres.Enabled = true
	}
	if v := os.Getenv("HASHRADAR_WEBHOOK_URL"); v != "" {
		cfg.Exports.Webhook.URL = v
		cfg.Exports.Webhook.Enabled = true
	}
	if v := os.Getenv("HASHRADAR_WEBHOOK_SECRET"); v != "" {
		cfg.Exports.Webhook.Secret = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
}
