// Package store persists parsed factsheets in SQLite: one registry row
// per ingested file plus its structured document encoded as JSON. The
// content hash lets Ingest skip files that have not changed.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/brunobiangulo/fundsheet/document"
)

// ErrNotFound is returned when a document ID or path does not exist.
var ErrNotFound = errors.New("store: document not found")

// Document represents a row in the documents table.
type Document struct {
	ID          int64  `json:"id"`
	Path        string `json:"path"`
	Filename    string `json:"filename"`
	ContentHash string `json:"content_hash"`
	Status      string `json:"status"`
	FundName    string `json:"fund_name,omitempty"`
	PageCount   int    `json:"page_count"`
	TableCount  int    `json:"table_count"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Store wraps the SQLite database for all fundsheet persistence.
type Store struct {
	db *sql.DB
}

// New opens (or creates) a SQLite database at the given path and
// initialises the schema.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	// Connection pool settings for SQLite.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for advanced queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// UpsertDocument inserts or updates a registry row keyed by path.
// Returns the document ID.
func (s *Store) UpsertDocument(ctx context.Context, doc Document) (int64, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (path, filename, content_hash, status, fund_name, page_count, table_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			filename = excluded.filename,
			content_hash = excluded.content_hash,
			status = excluded.status,
			fund_name = excluded.fund_name,
			page_count = excluded.page_count,
			table_count = excluded.table_count,
			updated_at = CURRENT_TIMESTAMP
	`, doc.Path, doc.Filename, doc.ContentHash, doc.Status, doc.FundName, doc.PageCount, doc.TableCount)
	if err != nil {
		return 0, err
	}

	// LastInsertId is unreliable when the UPSERT takes the UPDATE path, so
	// resolve the row id by its unique path.
	var id int64
	row := s.db.QueryRowContext(ctx, "SELECT id FROM documents WHERE path = ?", doc.Path)
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// GetDocumentByPath retrieves a registry row by its file path.
func (s *Store) GetDocumentByPath(ctx context.Context, path string) (*Document, error) {
	return s.getDocument(ctx, "path = ?", path)
}

// GetDocument retrieves a registry row by ID.
func (s *Store) GetDocument(ctx context.Context, id int64) (*Document, error) {
	return s.getDocument(ctx, "id = ?", id)
}

func (s *Store) getDocument(ctx context.Context, where string, arg any) (*Document, error) {
	doc := &Document{}
	var fundName sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, path, filename, content_hash, status, fund_name, page_count, table_count, created_at, updated_at
		FROM documents WHERE `+where, arg).Scan(
		&doc.ID, &doc.Path, &doc.Filename, &doc.ContentHash, &doc.Status,
		&fundName, &doc.PageCount, &doc.TableCount, &doc.CreatedAt, &doc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	doc.FundName = fundName.String
	return doc, nil
}

// ListDocuments returns all registry rows ordered by creation time.
func (s *Store) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path, filename, content_hash, status, fund_name, page_count, table_count, created_at, updated_at
		FROM documents ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		var fundName sql.NullString
		if err := rows.Scan(&d.ID, &d.Path, &d.Filename, &d.ContentHash, &d.Status,
			&fundName, &d.PageCount, &d.TableCount, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		d.FundName = fundName.String
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// UpdateDocumentStatus sets the status column for a registry row.
func (s *Store) UpdateDocumentStatus(ctx context.Context, id int64, status string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE documents SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, status, id)
	return err
}

// DeleteDocument removes a registry row and its structured blob.
func (s *Store) DeleteDocument(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveStructured stores the structured document for a registry row in
// its interchange JSON form.
func (s *Store) SaveStructured(ctx context.Context, id int64, doc *document.Document) error {
	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE documents SET structured = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, buf.String(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// LoadStructured reads back the structured document for a registry row.
func (s *Store) LoadStructured(ctx context.Context, id int64) (*document.Document, error) {
	var blob sql.NullString
	err := s.db.QueryRowContext(ctx, "SELECT structured FROM documents WHERE id = ?", id).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !blob.Valid || blob.String == "" {
		return nil, fmt.Errorf("document %d has no structured record", id)
	}
	return document.Decode(bytes.NewReader([]byte(blob.String)))
}
