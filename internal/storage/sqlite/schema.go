// ABOUTME: SQLite schema for rule snapshots and generation runs
// ABOUTME: Snapshots are keyed by prefix; chunks keep their document position
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- One row per saved rule store
CREATE TABLE IF NOT EXISTS rule_snapshots (
    prefix TEXT PRIMARY KEY,
    index_kind TEXT,
    index_artifact BLOB,
    chunk_count INTEGER NOT NULL,
    saved_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Chunks in document order
CREATE TABLE IF NOT EXISTS rule_chunks (
    prefix TEXT NOT NULL REFERENCES rule_snapshots(prefix) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    text TEXT NOT NULL,
    embedding BLOB,
    tags TEXT NOT NULL,
    PRIMARY KEY (prefix, position)
);

-- Audit trail of page generations
CREATE TABLE IF NOT EXISTS generation_runs (
    id TEXT PRIMARY KEY,
    slug TEXT,
    page_type TEXT,
    query TEXT,
    dynamic_count INTEGER DEFAULT 0,
    diagnostics TEXT,
    output TEXT,
    error TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON generation_runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_slug ON generation_runs(slug);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
