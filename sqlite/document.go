package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docsite"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ docsite.DocumentService = (*DocumentService)(nil)
	_ docsite.IndexFetcher    = (*DocumentService)(nil)
)

// DocumentService implements docsite.DocumentService using SQLite.
// Each content root holds one snapshot of its index.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes the xxHash of content as a hex string.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// ReplaceDocuments swaps the snapshot for root with docs in one transaction.
// Unchanged documents keep their ID so external references stay valid.
func (s *DocumentService) ReplaceDocuments(ctx context.Context, root string, docs []*docsite.Document) error {
	if root == "" {
		return docsite.Errorf(docsite.EINVALID, "content root required")
	}
	seen := make(map[string]bool, len(docs))
	for _, doc := range docs {
		if err := doc.Validate(); err != nil {
			return err
		}
		if seen[doc.URL] {
			return docsite.Errorf(docsite.ECONFLICT, "duplicate document URL %q", doc.URL)
		}
		seen[doc.URL] = true
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ids, err := existingIDs(ctx, tx, root)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE root = ?", root); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO roots (root, indexed_at) VALUES (?, ?)
		ON CONFLICT (root) DO UPDATE SET indexed_at = excluded.indexed_at
	`, root, formatTime(now())); err != nil {
		return err
	}

	for i, doc := range docs {
		hash := hashContent(doc.Content)
		id, ok := ids[doc.URL+"\x00"+hash]
		if !ok {
			id = uuid.New().String()
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO documents (id, root, position, url, title, content, content_hash)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, root, i, doc.URL, doc.Title, doc.Content, hash); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// existingIDs maps "url\x00hash" to the stored ID for every document of root.
func existingIDs(ctx context.Context, tx *sql.Tx, root string) (map[string]string, error) {
	rows, err := tx.QueryContext(ctx, "SELECT id, url, content_hash FROM documents WHERE root = ?", root)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]string)
	for rows.Next() {
		var id, url, hash string
		if err := rows.Scan(&id, &url, &hash); err != nil {
			return nil, err
		}
		ids[url+"\x00"+hash] = id
	}
	return ids, rows.Err()
}

// FindDocuments retrieves documents matching the filter in index order.
func (s *DocumentService) FindDocuments(ctx context.Context, filter docsite.DocumentFilter) ([]*docsite.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT title, content, url FROM documents WHERE 1=1")

	if filter.Root != nil {
		query.WriteString(" AND root = ?")
		args = append(args, *filter.Root)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY root ASC, position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []*docsite.Document{}
	for rows.Next() {
		var doc docsite.Document
		if err := rows.Scan(&doc.Title, &doc.Content, &doc.URL); err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}

// FetchIndex returns the stored snapshot for root. A root that was never
// stored is ENOTFOUND, whereas an empty snapshot is a valid empty index.
func (s *DocumentService) FetchIndex(ctx context.Context, root string) ([]*docsite.Document, error) {
	docs, err := s.FindDocuments(ctx, docsite.DocumentFilter{Root: &root})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		var n int
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM roots WHERE root = ?", root).Scan(&n); err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, docsite.Errorf(docsite.ENOTFOUND, "no index stored for %q", root)
		}
	}
	return docs, nil
}

// DeleteDocumentsByRoot removes the snapshot for root.
func (s *DocumentService) DeleteDocumentsByRoot(ctx context.Context, root string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE root = ?", root); err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM roots WHERE root = ?", root)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return docsite.Errorf(docsite.ENOTFOUND, "no index stored for %q", root)
	}

	return tx.Commit()
}
