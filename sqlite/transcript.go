package sqlite

import (
	"context"
	"strings"

	"github.com/fwojciec/docsite"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docsite.TranscriptService = (*TranscriptService)(nil)

// TranscriptService implements docsite.TranscriptService using SQLite.
type TranscriptService struct {
	db *DB
}

// NewTranscriptService creates a new TranscriptService.
func NewTranscriptService(db *DB) *TranscriptService {
	return &TranscriptService{db: db}
}

// CreateTranscript stores t, assigning its ID and CreatedAt.
func (s *TranscriptService) CreateTranscript(ctx context.Context, t *docsite.Transcript) error {
	if err := t.Validate(); err != nil {
		return err
	}

	t.ID = uuid.New().String()
	t.CreatedAt = now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transcripts (id, question, answer, provider, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, t.ID, t.Question, t.Answer, t.Provider, formatTime(t.CreatedAt))

	return err
}

// FindTranscripts returns transcripts, newest first.
func (s *TranscriptService) FindTranscripts(ctx context.Context, filter docsite.TranscriptFilter) ([]*docsite.Transcript, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, question, answer, provider, created_at FROM transcripts ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transcripts []*docsite.Transcript
	for rows.Next() {
		var t docsite.Transcript
		var createdAt string
		if err := rows.Scan(&t.ID, &t.Question, &t.Answer, &t.Provider, &createdAt); err != nil {
			return nil, err
		}
		if t.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		transcripts = append(transcripts, &t)
	}

	return transcripts, rows.Err()
}
