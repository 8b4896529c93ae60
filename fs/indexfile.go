package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/docsite"
)

// WriteIndex serializes docs as a JSON array to path.
// The index is written to a temporary file in the same directory and
// renamed into place, so readers never observe a partial index.
func WriteIndex(path string, docs []*docsite.Document) (err error) {
	if docs == nil {
		docs = []*docsite.Document{}
	}
	data, err := json.Marshal(docs)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Ensure IndexFile implements docsite.IndexFetcher at compile time.
var _ docsite.IndexFetcher = (*IndexFile)(nil)

// IndexFile reads serialized indexes from disk. The fetch key is the file
// path.
type IndexFile struct{}

// NewIndexFile creates a new IndexFile.
func NewIndexFile() *IndexFile {
	return &IndexFile{}
}

// FetchIndex reads and decodes the index stored at path.
func (f *IndexFile) FetchIndex(ctx context.Context, path string) ([]*docsite.Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, docsite.Errorf(docsite.ENOTFOUND, "index file %q not found", path)
	} else if err != nil {
		return nil, err
	}

	var docs []*docsite.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, docsite.Errorf(docsite.EINVALID, "invalid index file %q: %v", path, err)
	}
	return docs, nil
}
