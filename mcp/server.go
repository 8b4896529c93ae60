// Package mcp exposes documentation search and chat as Model Context
// Protocol tools.
package mcp

import (
	"context"
	"net/http"
	"time"

	"github.com/fwojciec/docsite"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for a documentation site.
type Server struct {
	server *mcp.Server

	// Index provides the search index under IndexKey.
	Index    docsite.IndexFetcher
	IndexKey string

	// Chatter answers ask_docs calls. Nil leaves the tool unregistered.
	Chatter docsite.Chatter
}

// NewServer creates an MCP server over index. chatter may be nil.
func NewServer(index docsite.IndexFetcher, indexKey string, chatter docsite.Chatter) (*Server, error) {
	if index == nil {
		return nil, docsite.Errorf(docsite.EINVALID, "index source required")
	}

	s := &Server{
		server:   mcp.NewServer(&mcp.Implementation{Name: "docsite", Version: Version}, nil),
		Index:    index,
		IndexKey: indexKey,
		Chatter:  chatter,
	}
	s.registerTools()
	return s, nil
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the streamable HTTP transport on addr until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
