package store

// schemaSQL is the DDL for the ingest registry. Each row tracks one
// ingested factsheet and carries its structured document as a JSON blob,
// so downstream tooling can re-read a parse without touching the PDF.
const schemaSQL = `
-- Factsheet registry with hash-based change detection
CREATE TABLE IF NOT EXISTS documents (
    id INTEGER PRIMARY KEY,
    path TEXT NOT NULL UNIQUE,
    filename TEXT NOT NULL,
    content_hash TEXT NOT NULL,
    status TEXT DEFAULT 'pending',
    fund_name TEXT,
    page_count INTEGER DEFAULT 0,
    table_count INTEGER DEFAULT 0,
    structured JSON,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_documents_hash ON documents(content_hash);
`
