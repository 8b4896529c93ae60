package docsite

import "strings"

// CorpusSeparator separates documents in a formatted corpus.
const CorpusSeparator = "\n\n---\n\n"

// FormatCorpus joins document contents for use as LLM grounding context.
// Only the separator marks document boundaries.
func FormatCorpus(docs []*Document) string {
	if len(docs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		parts = append(parts, doc.Content)
	}

	return strings.Join(parts, CorpusSeparator)
}
