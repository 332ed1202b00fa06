// Package server exposes named noise stacks over HTTP.
//
// Routes:
//
//	GET  /healthz                    liveness check, replies "ok"
//	GET  /v1/stacks                  JSON list of stacks and their layers
//	POST /v1/stacks/{name}/apply     JPEG in, distorted JPEG out
//
// Every apply request builds its own stack from the parsed configuration,
// so requests never share printer caches.
package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/qrnoize/pkg/config"
	"github.com/matzehuels/qrnoize/pkg/errors"
	qio "github.com/matzehuels/qrnoize/pkg/io"
)

const (
	// DefaultAddr is the listen address used when none is configured.
	DefaultAddr = ":8080"

	// DefaultMaxBodyBytes caps uploaded images.
	DefaultMaxBodyBytes = 32 << 20

	// RequestIDHeader carries the request ID in both directions.
	RequestIDHeader = "X-Request-ID"

	shutdownTimeout = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	Table        *config.Table
	Seed         uint64 // 0 draws fresh random sources per request
	JPEGQuality  int
	MaxBodyBytes int64
	Logger       *log.Logger
}

// Server serves the stacks of one configuration table.
type Server struct {
	opts   Options
	router chi.Router
}

// New validates opts and builds the router.
func New(opts Options) (*Server, error) {
	if opts.Table == nil {
		return nil, errors.New(errors.ErrCodeInvalidOptions, "server needs a parsed configuration")
	}
	if opts.JPEGQuality == 0 {
		opts.JPEGQuality = qio.DefaultQuality
	}
	if opts.MaxBodyBytes == 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	s := &Server{opts: opts}
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Route("/v1/stacks", func(r chi.Router) {
		r.Get("/", s.listStacks)
		r.Post("/{name}/apply", s.apply)
	})
	s.router = r
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.opts.Logger.Info("listening", "addr", addr, "stacks", len(s.opts.Table.Names()))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrap(errors.ErrCodeIO, err, "listen on %s", addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "shutdown")
	}
	s.opts.Logger.Info("server stopped")
	return ctx.Err()
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// Layer is the JSON form of one layer directive.
type Layer struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Stack is the JSON form of a named stack.
type Stack struct {
	Name   string  `json:"name"`
	Layers []Layer `json:"layers"`
}

func (s *Server) listStacks(w http.ResponseWriter, _ *http.Request) {
	t := s.opts.Table
	out := make([]Stack, 0, len(t.Blocks))
	for _, name := range t.Names() {
		b, _ := t.Lookup(name)
		st := Stack{Name: name, Layers: make([]Layer, len(b.Layers))}
		for i, l := range b.Layers {
			st.Layers[i] = Layer{Kind: string(l.Kind), Text: l.Text}
		}
		out = append(out, st)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) apply(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	b, ok := s.opts.Table.Lookup(name)
	if !ok {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeNotFound, "unknown stack %q", name))
		return
	}

	img, err := qio.ReadImage(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	b.Build(config.SeededSources(s.opts.Seed)).ProcessImage(img)

	w.Header().Set("Content-Type", "image/jpeg")
	if err := qio.WriteImage(w, img, s.opts.JPEGQuality); err != nil {
		loggerFrom(r.Context(), s.opts.Logger).Error("write response", "err", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{
		"code":  string(errors.GetCode(err)),
		"error": errors.UserMessage(err),
	})
}
