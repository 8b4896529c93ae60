package http

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"

	"github.com/fwojciec/docsite"
)

// Data stream protocol. Each line is a one-character part type, a colon
// and a JSON value.
const (
	DataStreamHeader  = "X-Vercel-AI-Data-Stream"
	DataStreamVersion = "v1"

	partText   = "0"
	partError  = "3"
	partFinish = "d"
)

// Finish reasons reported in the final part of a stream.
const (
	FinishStop  = "stop"
	FinishError = "error"
)

type finishPart struct {
	FinishReason string `json:"finishReason"`
}

// StreamWriter encodes a chat reply in the data stream protocol, flushing
// after every part.
type StreamWriter struct {
	w io.Writer
	f http.Flusher
}

// NewStreamWriter sets the data stream headers on w and returns a writer
// for its body.
func NewStreamWriter(w http.ResponseWriter) *StreamWriter {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set(DataStreamHeader, DataStreamVersion)
	f, _ := w.(http.Flusher)
	return &StreamWriter{w: w, f: f}
}

// Token writes one text part.
func (s *StreamWriter) Token(text string) error {
	return s.part(partText, text)
}

// Error writes an error part.
func (s *StreamWriter) Error(msg string) error {
	return s.part(partError, msg)
}

// Finish writes the closing part.
func (s *StreamWriter) Finish(reason string) error {
	return s.part(partFinish, finishPart{FinishReason: reason})
}

func (s *StreamWriter) part(typ string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "%s:%s\n", typ, data); err != nil {
		return err
	}
	if s.f != nil {
		s.f.Flush()
	}
	return nil
}

// DecodeStream decodes a data stream body into text tokens. An error part
// ends the stream with an EUNAVAILABLE error carrying the server message.
// Part types other than text, error and finish are skipped.
func DecodeStream(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

		for scanner.Scan() {
			typ, payload, ok := strings.Cut(scanner.Text(), ":")
			if !ok {
				continue
			}

			switch typ {
			case partText:
				var text string
				if err := json.Unmarshal([]byte(payload), &text); err != nil {
					yield("", fmt.Errorf("decode text part: %w", err))
					return
				}
				if !yield(text, nil) {
					return
				}
			case partError:
				var msg string
				if err := json.Unmarshal([]byte(payload), &msg); err != nil {
					msg = payload
				}
				yield("", docsite.Errorf(docsite.EUNAVAILABLE, "%s", msg))
				return
			case partFinish:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield("", fmt.Errorf("read stream: %w", err))
			return
		}
		yield("", docsite.Errorf(docsite.EUNAVAILABLE, "stream ended without finish"))
	}
}
