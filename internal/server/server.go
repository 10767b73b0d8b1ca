// Package server exposes report generation over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/Leastj/pdf-server/pkg/api"
)

// DefaultOrigins are the front ends allowed to call the API from a browser
var DefaultOrigins = []string{
	"https://lint-shop-36442167.figma.site",
	"http://localhost:5173",
	"https://pdf-server-qimr.onrender.com",
	"https://auditlift.e-c-i.fr",
}

// DefaultMaxBodyBytes bounds the JSON body of a report request
const DefaultMaxBodyBytes = 50 << 20

// Generator renders one inspection record
type Generator interface {
	Generate(ctx context.Context, data io.Reader, output io.Writer) (*api.Result, error)
}

// Config holds the HTTP settings of the service
type Config struct {
	AllowedOrigins []string
	MaxBodyBytes   int64
	// RenderTimeout bounds a whole render, photo downloads included;
	// zero means the request context alone
	RenderTimeout time.Duration
	Logger        *log.Logger
}

// DefaultConfig returns the production settings
func DefaultConfig() Config {
	return Config{
		AllowedOrigins: DefaultOrigins,
		MaxBodyBytes:   DefaultMaxBodyBytes,
		RenderTimeout:  2 * time.Minute,
		Logger:         log.New(os.Stderr, "", log.LstdFlags),
	}
}

// Server serves the report endpoint
type Server struct {
	gen    Generator
	config Config
}

// New creates a server rendering through gen. An *api.Generator is
// restricted to remote and data URL photos, since records come from
// untrusted callers.
func New(gen Generator, config Config) *Server {
	if g, ok := gen.(*api.Generator); ok {
		gen = g.WithOption(api.WithLocalAssets(false))
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard, "", 0)
	}
	return &Server{gen: gen, config: config}
}

// Handler returns the routed handler with CORS applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/pdfkit", s.handleReport)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return s.cors(mux)
}

// cors sets the CORS headers on every response and answers preflight
// requests directly
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		if origin := r.Header.Get("Origin"); origin != "" && slices.Contains(s.config.AllowedOrigins, origin) {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
		}
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		h.Set("Access-Control-Allow-Credentials", "true")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		if err == nil {
			err = errors.New("request body must be a JSON object")
		}
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	s.config.Logger.Printf("report request from %s: %d fields [%s]", r.RemoteAddr, len(keys), strings.Join(keys, ", "))

	ctx := r.Context()
	if s.config.RenderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.RenderTimeout)
		defer cancel()
	}

	start := time.Now()
	var out bytes.Buffer
	result, err := s.gen.Generate(ctx, bytes.NewReader(body), &out)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	s.config.Logger.Printf("report rendered: %d pages, %d bytes in %s", result.Pages, out.Len(), time.Since(start).Round(time.Millisecond))
	for _, of := range result.Overflows {
		s.config.Logger.Printf("report layout: %v", of)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=rapport.pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(out.Bytes())
}

func (s *Server) fail(w http.ResponseWriter, code int, err error) {
	s.config.Logger.Printf("report failed (%d): %v", code, err)
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
