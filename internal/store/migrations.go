package store

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id            TEXT PRIMARY KEY,
    export_id     TEXT NOT NULL,
    category      TEXT NOT NULL,
    started_at    DATETIME NOT NULL,
    finished_at   DATETIME NOT NULL,
    post_count    INTEGER NOT NULL DEFAULT 0,
    hashtag_count INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_category ON runs(category);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);

CREATE TABLE IF NOT EXISTS hashtag_trends (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id           TEXT NOT NULL REFERENCES runs(id),
    rank             INTEGER NOT NULL,
    hashtag          TEXT NOT NULL,
    category         TEXT NOT NULL,
    post_count       INTEGER NOT NULL DEFAULT 0,
    total_engagement INTEGER NOT NULL DEFAULT 0,
    likes            INTEGER NOT NULL DEFAULT 0,
    comments         INTEGER NOT NULL DEFAULT 0,
    shares           INTEGER NOT NULL DEFAULT 0,
    avg_likes        REAL NOT NULL DEFAULT 0,
    avg_comments     REAL NOT NULL DEFAULT 0,
    avg_shares       REAL NOT NULL DEFAULT 0,
    avg_engagement   REAL NOT NULL DEFAULT 0,
    engagement_score REAL NOT NULL DEFAULT 0,
    trending_score   REAL NOT NULL DEFAULT 0,
    sentiment        TEXT NOT NULL DEFAULT 'neutral',
    sentiment_score  REAL NOT NULL DEFAULT 0,
    estimated        BOOLEAN NOT NULL DEFAULT 0,
    hashtag_url      TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_trends_run ON hashtag_trends(run_id);
CREATE INDEX IF NOT EXISTS idx_trends_category ON hashtag_trends(category);
CREATE INDEX IF NOT EXISTS idx_trends_score ON hashtag_trends(trending_score);
`
