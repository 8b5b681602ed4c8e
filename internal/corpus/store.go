package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// SetupSchema creates the corpus document table. It is idempotent and safe to
// call on an already-initialized database.
func SetupSchema(db *sql.DB) error {
	const schemaDocuments = `
CREATE TABLE IF NOT EXISTS corpus_documents (
    doc_seq INTEGER PRIMARY KEY,
    doc_id TEXT NOT NULL UNIQUE,
    doc_name TEXT NOT NULL,
    content TEXT NOT NULL,
    added_at INTEGER NOT NULL
);
`
	if _, err := db.Exec(schemaDocuments); err != nil {
		return fmt.Errorf("could not create schema: %w", err)
	}
	return nil
}

// Store keeps corpus documents in a SQL database so a corpus can be assembled
// once and rebuilt into models later. Documents come back in the order they
// were added.
type Store struct {
	db         *sql.DB
	stmtInsert *sql.Stmt
	stmtAll    *sql.Stmt
	stmtList   *sql.Stmt
	stmtDelete *sql.Stmt
	stmtCount  *sql.Stmt
	logger     *slog.Logger
}

// NewStore prepares the statements the Store needs. SetupSchema must have been
// called on db first. If any statement fails to prepare, the ones already
// prepared are closed.
func NewStore(db *sql.DB) (*Store, error) {
	var (
		err      error
		prepared []*sql.Stmt
	)
	prepare := func(query string) *sql.Stmt {
		if err != nil {
			return nil
		}
		var stmt *sql.Stmt
		if stmt, err = db.Prepare(query); err != nil {
			return nil
		}
		prepared = append(prepared, stmt)
		return stmt
	}

	s := &Store{
		db:         db,
		stmtInsert: prepare(`INSERT INTO corpus_documents (doc_id, doc_name, content, added_at) VALUES (?, ?, ?, ?);`),
		stmtAll:    prepare(`SELECT doc_id, doc_name, content, added_at FROM corpus_documents ORDER BY doc_seq;`),
		// Size is in bytes, like len(Document.Text).
		stmtList:   prepare(`SELECT doc_id, doc_name, length(CAST(content AS BLOB)), added_at FROM corpus_documents ORDER BY doc_seq;`),
		stmtDelete: prepare(`DELETE FROM corpus_documents WHERE doc_id = ?;`),
		stmtCount:  prepare(`SELECT COUNT(*) FROM corpus_documents;`),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if err != nil {
		for _, stmt := range prepared {
			_ = stmt.Close()
		}
		return nil, fmt.Errorf("could not prepare statements: %w", err)
	}
	return s, nil
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Close releases the prepared statements. It does not close the database.
func (s *Store) Close() error {
	return errors.Join(
		s.stmtInsert.Close(),
		s.stmtAll.Close(),
		s.stmtList.Close(),
		s.stmtDelete.Close(),
		s.stmtCount.Close(),
	)
}

// AddDocument stores a single document and returns it with its new id.
func (s *Store) AddDocument(ctx context.Context, doc Document) (Document, error) {
	added, err := s.AddDocuments(ctx, []Document{doc})
	if err != nil {
		return Document{}, err
	}
	return added[0], nil
}

// AddDocuments stores docs in a single transaction; either all are added or
// none are. Each stored document is assigned a fresh UUID.
func (s *Store) AddDocuments(ctx context.Context, docs []Document) ([]Document, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	stmtInsert := tx.StmtContext(ctx, s.stmtInsert)
	now := time.Now().UTC().Truncate(time.Second)

	added := make([]Document, 0, len(docs))
	for _, doc := range docs {
		doc.ID = uuid.NewString()
		doc.AddedAt = now
		doc.Size = len(doc.Text)
		if _, err = stmtInsert.ExecContext(ctx, doc.ID, doc.Name, doc.Text, now.Unix()); err != nil {
			return nil, fmt.Errorf("failed to insert document %q: %w", doc.Name, err)
		}
		added = append(added, doc)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}
	s.logger.InfoContext(ctx, "Documents added", slog.Int("count", len(added)))
	return added, nil
}

// Documents returns every stored document, text included.
func (s *Store) Documents(ctx context.Context) ([]Document, error) {
	rows, err := s.stmtAll.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		var addedAt int64
		if err = rows.Scan(&doc.ID, &doc.Name, &doc.Text, &addedAt); err != nil {
			return nil, err
		}
		doc.Size = len(doc.Text)
		doc.AddedAt = time.Unix(addedAt, 0).UTC()
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// List returns the stored documents without their text.
func (s *Store) List(ctx context.Context) ([]Document, error) {
	rows, err := s.stmtList.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		var addedAt int64
		if err = rows.Scan(&doc.ID, &doc.Name, &doc.Size, &addedAt); err != nil {
			return nil, err
		}
		doc.AddedAt = time.Unix(addedAt, 0).UTC()
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// RemoveDocument deletes the document with the given id. It returns
// ErrNotFound if there is no such document.
func (s *Store) RemoveDocument(ctx context.Context, id string) error {
	res, err := s.stmtDelete.ExecContext(ctx, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.logger.InfoContext(ctx, "Document removed", slog.String("id", id))
	return nil
}

// Count returns the number of stored documents.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.stmtCount.QueryRowContext(ctx).Scan(&count)
	return count, err
}
