package docsite

import (
	"cmp"
	"slices"
	"strings"
	"time"
	"unicode"
)

// Query engine parameters.
const (
	// MinQueryLength is the minimum trimmed query length, in characters,
	// for a search to run. Shorter queries would match nearly everything.
	MinQueryLength = 2

	// SnippetRadius is the number of characters kept on each side of the
	// first body match.
	SnippetRadius = 100

	// Ellipsis marks a snippet that was cut from a longer body.
	Ellipsis = "..."

	// DebounceInterval is the query-input silence after which interactive
	// surfaces run a search.
	DebounceInterval = 200 * time.Millisecond
)

// Messages shown by search surfaces.
const (
	ShortQueryMessage = "Enter at least 2 characters to search..."
	NoResultsMessage  = "No documentation results found"
)

// Scores assigned to matching documents.
const (
	ScoreContentMatch = 1
	ScoreTitleMatch   = 2
)

// QueryResult is a document matched by a query.
type QueryResult struct {
	Document

	// Score is ScoreTitleMatch when the title matches, otherwise ScoreContentMatch.
	Score int `json:"score"`

	// Snippet is a window of the body around the first match, or the whole
	// body when only the title matched.
	Snippet string `json:"snippet"`
}

// Search returns the documents of index matching query, best first.
//
// Matching is a case-insensitive literal substring test against title and
// content. Queries shorter than MinQueryLength after trimming match nothing.
// Results with equal scores keep their index order.
func Search(index []*Document, query string) []*QueryResult {
	results := []*QueryResult{}

	q := foldRunes(strings.TrimSpace(query))
	if len(q) < MinQueryLength {
		return results
	}

	for _, doc := range index {
		if doc == nil {
			continue
		}

		titleMatch := indexRunes(foldRunes(doc.Title), q, 0) >= 0
		content := []rune(doc.Content)
		i := indexRunes(foldSlice(content), q, 0)
		if !titleMatch && i < 0 {
			continue
		}

		result := &QueryResult{Document: *doc, Score: ScoreContentMatch, Snippet: doc.Content}
		if titleMatch {
			result.Score = ScoreTitleMatch
		}
		if i >= 0 {
			result.Snippet = snippet(content, i)
		}
		results = append(results, result)
	}

	slices.SortStableFunc(results, func(a, b *QueryResult) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return results
}

// snippet cuts a window of SnippetRadius characters on each side of i.
func snippet(content []rune, i int) string {
	start := max(0, i-SnippetRadius)
	end := min(len(content), i+SnippetRadius)

	var sb strings.Builder
	if start > 0 {
		sb.WriteString(Ellipsis)
	}
	sb.WriteString(string(content[start:end]))
	if end < len(content) {
		sb.WriteString(Ellipsis)
	}
	return sb.String()
}

// Segment is a piece of highlighted text.
type Segment struct {
	Text  string `json:"text"`
	Match bool   `json:"match,omitempty"`
}

// Highlight splits text into segments, marking every case-insensitive
// occurrence of query. The query is always treated literally.
func Highlight(text, query string) []Segment {
	if text == "" {
		return nil
	}

	q := foldRunes(query)
	if len(q) == 0 {
		return []Segment{{Text: text}}
	}

	runes := []rune(text)
	folded := foldSlice(runes)

	var segments []Segment
	pos := 0
	for {
		i := indexRunes(folded, q, pos)
		if i < 0 {
			break
		}
		if i > pos {
			segments = append(segments, Segment{Text: string(runes[pos:i])})
		}
		segments = append(segments, Segment{Text: string(runes[i : i+len(q)]), Match: true})
		pos = i + len(q)
	}
	if pos < len(runes) {
		segments = append(segments, Segment{Text: string(runes[pos:])})
	}

	return segments
}

// Mark wraps every case-insensitive occurrence of query in text with
// before and after. It is a convenience over Highlight for plain-text output.
func Mark(text, query, before, after string) string {
	var sb strings.Builder
	for _, seg := range Highlight(text, query) {
		if seg.Match {
			sb.WriteString(before)
			sb.WriteString(seg.Text)
			sb.WriteString(after)
			continue
		}
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// RankDocuments returns up to k documents most relevant to free text.
// Each word of at least MinQueryLength characters is scored the way Search
// scores a query, and a document's rank is the sum over words. Documents
// matching no word are dropped; ties keep index order.
func RankDocuments(index []*Document, text string, k int) []*Document {
	terms := queryTerms(text)
	if len(terms) == 0 || k <= 0 {
		return nil
	}

	type ranked struct {
		doc   *Document
		score int
	}

	var candidates []ranked
	for _, doc := range index {
		if doc == nil {
			continue
		}
		title := foldRunes(doc.Title)
		content := foldRunes(doc.Content)

		score := 0
		for _, term := range terms {
			if indexRunes(title, term, 0) >= 0 {
				score += ScoreTitleMatch
			} else if indexRunes(content, term, 0) >= 0 {
				score += ScoreContentMatch
			}
		}
		if score > 0 {
			candidates = append(candidates, ranked{doc: doc, score: score})
		}
	}

	slices.SortStableFunc(candidates, func(a, b ranked) int {
		return cmp.Compare(b.score, a.score)
	})

	docs := make([]*Document, 0, min(k, len(candidates)))
	for _, c := range candidates[:min(k, len(candidates))] {
		docs = append(docs, c.doc)
	}
	return docs
}

// queryTerms splits text into distinct folded words usable as queries.
func queryTerms(text string) [][]rune {
	seen := make(map[string]bool)
	var terms [][]rune
	for _, word := range strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		folded := foldRunes(word)
		if len(folded) < MinQueryLength || seen[string(folded)] {
			continue
		}
		seen[string(folded)] = true
		terms = append(terms, folded)
	}
	return terms
}

// foldRunes lower-cases s one code point at a time, so indexes into the
// result line up with indexes into []rune(s).
func foldRunes(s string) []rune {
	return foldSlice([]rune(s))
}

func foldSlice(runes []rune) []rune {
	folded := make([]rune, len(runes))
	for i, r := range runes {
		folded[i] = unicode.ToLower(r)
	}
	return folded
}

// indexRunes returns the index of the first occurrence of needle in
// haystack at or after from, or -1.
func indexRunes(haystack, needle []rune, from int) int {
	if len(needle) == 0 {
		return -1
	}
	for i := from; i+len(needle) <= len(haystack); i++ {
		if slices.Equal(haystack[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}
