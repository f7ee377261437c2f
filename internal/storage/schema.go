package storage

// Schema is the SQL schema for the saved-diagram database. Payloads
// are stored verbatim as canonical full-form JSON; the title column is
// denormalized for listing without decoding.
const Schema = `
CREATE TABLE IF NOT EXISTS diagrams (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL UNIQUE,
    title       TEXT NOT NULL DEFAULT '',
    data        TEXT NOT NULL,
    created_at  TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_diagrams_name ON diagrams(name);
`
