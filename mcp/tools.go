package mcp

import (
	"context"
	"strings"

	"github.com/fwojciec/docsite"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DefaultSearchLimit caps search_docs results when no limit is given.
const DefaultSearchLimit = 10

// SearchInput is the input schema for the search_docs tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"text to look for in page titles and bodies (at least 2 characters)"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search_docs tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput is a single search_docs result.
type SearchResultOutput struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Score   int    `json:"score"`
	Snippet string `json:"snippet"`
}

// GetInput is the input schema for the get_doc tool.
type GetInput struct {
	URL string `json:"url" jsonschema:"site-relative page URL as returned by search_docs"`
}

// GetOutput is the output schema for the get_doc tool.
type GetOutput struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// AskInput is the input schema for the ask_docs tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"question about the documentation"`
}

// AskOutput is the output schema for the ask_docs tool.
type AskOutput struct {
	Answer string `json:"answer"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_docs",
		Description: "Search documentation pages by title and content",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_doc",
		Description: "Get the full text of a documentation page",
	}, s.handleGet)

	if s.Chatter != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ask_docs",
			Description: "Ask a question answered from the documentation",
		}, s.handleAsk)
	}
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	docs, err := s.Index.FetchIndex(ctx, s.IndexKey)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	results := docsite.Search(docs, input.Query)
	if len(results) > limit {
		results = results[:limit]
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i, r := range results {
		output.Results[i] = SearchResultOutput{
			Title:   r.Title,
			URL:     r.URL,
			Score:   r.Score,
			Snippet: r.Snippet,
		}
	}

	return nil, output, nil
}

func (s *Server) handleGet(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetInput,
) (*mcp.CallToolResult, GetOutput, error) {
	docs, err := s.Index.FetchIndex(ctx, s.IndexKey)
	if err != nil {
		return nil, GetOutput{}, err
	}

	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if doc.URL == input.URL {
			return nil, GetOutput{Title: doc.Title, URL: doc.URL, Content: doc.Content}, nil
		}
	}
	return nil, GetOutput{}, docsite.Errorf(docsite.ENOTFOUND, "no page at %q", input.URL)
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, AskOutput{}, docsite.Errorf(docsite.EINVALID, "question required")
	}

	var answer strings.Builder
	messages := []docsite.Message{{Role: docsite.RoleUser, Content: question}}
	for tok, err := range s.Chatter.StreamAnswer(ctx, messages, nil) {
		if err != nil {
			return nil, AskOutput{}, err
		}
		answer.WriteString(tok)
	}

	return nil, AskOutput{Answer: answer.String()}, nil
}
