// Package http serves the search index, query and chat endpoints, and
// provides clients for them.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docsite"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Default server settings.
const (
	DefaultAddr          = ":8080"
	DefaultChatRate      = 0.5
	DefaultChatBurst     = 5
	DefaultQueryLimit    = 20
	DefaultShutdownGrace = 5 * time.Second

	maxChatBody = 1 << 20
)

// Server serves documentation search and chat over HTTP.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router

	// Addr is the bind address.
	Addr string

	// Config supplies the endpoint paths.
	Config docsite.Config

	// Index provides the search index under IndexKey.
	Index    docsite.IndexFetcher
	IndexKey string

	// Chatter answers chat requests. Nil disables the chat endpoint.
	Chatter docsite.Chatter

	// Transcripts, when set, records every completed chat answer.
	Transcripts docsite.TranscriptService
	Provider    string

	// Limiter throttles chat requests per client. Nil disables throttling.
	Limiter *ClientLimiter

	// SiteURL is the public origin used in the sitemap. When empty the
	// request host is used.
	SiteURL string

	Logger *slog.Logger
}

// NewServer returns a new instance of Server.
func NewServer() *Server {
	s := &Server{
		Addr:   DefaultAddr,
		Config: docsite.DefaultConfig(),
		Logger: slog.New(slog.DiscardHandler),
	}
	s.server = &http.Server{
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler builds the router. It is called by Open and may be used directly
// in tests.
func (s *Server) Handler() http.Handler {
	if s.router != nil {
		return s.router
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get(s.Config.SearchAPIPath, s.handleIndex)
	r.Get(strings.TrimSuffix(s.Config.SearchAPIPath, "/")+"/query", s.handleQuery)
	r.Post(s.Config.AIChatAPIPath, s.handleChat)
	r.Get("/sitemap.xml", s.handleSitemap)

	s.router = r
	return r
}

// Open starts listening on Addr and serves requests in the background.
func (s *Server) Open() (err error) {
	if s.Index == nil {
		return docsite.Errorf(docsite.EINVALID, "index source required")
	}
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	s.server.Handler = s.Handler()

	go func() {
		if err := s.server.Serve(s.ln); err != nil && err != http.ErrServerClosed {
			s.Logger.Error("server stopped", "err", err)
		}
	}()
	return nil
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownGrace)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	docs, err := s.Index.FetchIndex(r.Context(), s.IndexKey)
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}
	if docs == nil {
		docs = []*docsite.Document{}
	}

	body, err := json.Marshal(docs)
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}

	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if match := r.Header.Get("If-None-Match"); match != "" && strings.Contains(match, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	limit := DefaultQueryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			Error(w, r, s.Logger, docsite.Errorf(docsite.EINVALID, "invalid limit %q", v))
			return
		}
		limit = n
	}

	docs, err := s.Index.FetchIndex(r.Context(), s.IndexKey)
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}

	results := docsite.Search(docs, r.URL.Query().Get("q"))
	if len(results) > limit {
		results = results[:limit]
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(results)
}

type chatRequest struct {
	Messages []docsite.Message `json:"messages"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.Chatter == nil {
		Error(w, r, s.Logger, docsite.Errorf(docsite.ENOTIMPLEMENTED, "chat is not configured"))
		return
	}
	if s.Limiter != nil && !s.Limiter.Allow(clientKey(r)) {
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusTooManyRequests, "too many requests")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBody)).Decode(&req); err != nil {
		Error(w, r, s.Logger, docsite.Errorf(docsite.EINVALID, "invalid JSON body"))
		return
	}
	if len(req.Messages) == 0 {
		Error(w, r, s.Logger, docsite.Errorf(docsite.EINVALID, "messages required"))
		return
	}
	for i := range req.Messages {
		if err := req.Messages[i].Validate(); err != nil {
			Error(w, r, s.Logger, err)
			return
		}
	}

	var onComplete docsite.CompletionFunc
	if s.Transcripts != nil {
		question := docsite.LastUserMessage(req.Messages)
		onComplete = func(ctx context.Context, result docsite.FinishResult) error {
			err := s.Transcripts.CreateTranscript(ctx, &docsite.Transcript{
				Question: question,
				Answer:   result.Text,
				Provider: s.Provider,
			})
			if err != nil {
				// The answer has already been delivered.
				s.Logger.Error("record transcript", "err", err)
			}
			return nil
		}
	}

	stream := NewStreamWriter(w)
	for tok, err := range s.Chatter.StreamAnswer(r.Context(), req.Messages, onComplete) {
		if err != nil {
			if docsite.ErrorCode(err) == docsite.EINTERNAL {
				s.Logger.Error("chat stream failed", "err", err)
			} else {
				s.Logger.Warn("chat stream failed", "err", err)
			}
			_ = stream.Error(clientMessage(err))
			_ = stream.Finish(FinishError)
			return
		}
		if err := stream.Token(tok); err != nil {
			return
		}
	}
	_ = stream.Finish(FinishStop)
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	docs, err := s.Index.FetchIndex(r.Context(), s.IndexKey)
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}

	origin := s.SiteURL
	if origin == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		origin = scheme + "://" + r.Host
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if err := WriteSitemap(w, origin, docs); err != nil {
		s.Logger.Error("write sitemap", "err", err)
	}
}

// logRequests logs one line per request with its status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start),
		)
	})
}

// clientKey identifies the caller for rate limiting. RealIP has already
// replaced RemoteAddr with a forwarded address when present.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
