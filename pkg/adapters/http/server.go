// Package http exposes a visualizer over a small JSON API routed with chi.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
	"github.com/go-chi/chi/v5"
)

// Visualizer is the subset of arbor.Visualizer the API serves.
type Visualizer interface {
	Insert(ctx context.Context, values ...float64) error
	AnimateInsert(ctx context.Context, value float64) (tree.Node, error)
	Reveal(ctx context.Context, order domain.Order, stagger time.Duration) error
	Highlight(ctx context.Context, value float64) error
	Nodes(order domain.Order) []tree.Node
	Refs(order domain.Order) []domain.Handle
	Len() int
	Height() int
}

// Server serves one visualizer.
type Server struct {
	Visualizer Visualizer
	Version    string
	logger     *slog.Logger
}

// Option configures the handler.
type Option func(*options)

type options struct {
	metrics http.Handler
	logger  *slog.Logger
	version string
}

// WithMetrics mounts h (usually promhttp.Handler) on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(o *options) {
		o.metrics = h
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithVersion is reported by /info.
func WithVersion(version string) Option {
	return func(o *options) {
		o.version = version
	}
}

// NewHandler creates a new HTTP handler for the visualizer.
func NewHandler(v Visualizer, opts ...Option) http.Handler {
	o := options{version: "dev"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Server{Visualizer: v, Version: o.version, logger: o.logger}
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/tree", s.GetTree)
	r.Post("/insert", s.PostInsert)
	r.Get("/traverse/{order}", s.GetTraverse)
	r.Post("/reveal", s.PostReveal)
	r.Post("/highlight", s.PostHighlight)
	r.Get("/graph", s.GetGraph)
	if o.metrics != nil {
		r.Handle("/metrics", o.metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TreeResponse describes the whole tree.
type TreeResponse struct {
	Len    int         `json:"len"`
	Height int         `json:"height"`
	Nodes  []tree.Node `json:"nodes"`
}

// InsertRequest adds values. Animate plays descent cues and a reveal per value.
type InsertRequest struct {
	Values  []float64 `json:"values"`
	Animate bool      `json:"animate"`
}

// TraverseResponse lists a traversal as values and visual handles.
type TraverseResponse struct {
	Order  string          `json:"order"`
	Values []float64       `json:"values"`
	Refs   []domain.Handle `json:"refs"`
}

// RevealRequest draws the tree in an order. Stagger is a Go duration ("100ms").
type RevealRequest struct {
	Order   string `json:"order"`
	Stagger string `json:"stagger,omitempty"`
}

// HighlightRequest emphasizes the node holding Value.
type HighlightRequest struct {
	Value float64 `json:"value"`
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "arbor-http",
		"version": s.Version,
	})
}

// GetTree handles GET /tree. Nodes are listed in pre-order.
func (s *Server) GetTree(w http.ResponseWriter, r *http.Request) {
	nodes := s.Visualizer.Nodes(domain.PreOrder)
	if nodes == nil {
		nodes = []tree.Node{}
	}
	s.writeJSON(w, http.StatusOK, TreeResponse{
		Len:    s.Visualizer.Len(),
		Height: s.Visualizer.Height(),
		Nodes:  nodes,
	})
}

// PostInsert handles POST /insert and answers with the new tree.
func (s *Server) PostInsert(w http.ResponseWriter, r *http.Request) {
	var body InsertRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Insert: Invalid request body", "err", err)
		return
	}
	if len(body.Values) == 0 {
		http.Error(w, "No values to insert", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if body.Animate {
		for _, v := range body.Values {
			if _, err := s.Visualizer.AnimateInsert(ctx, v); err != nil {
				s.fail(w, "Insert", err)
				return
			}
		}
	} else if err := s.Visualizer.Insert(ctx, body.Values...); err != nil {
		s.fail(w, "Insert", err)
		return
	}
	s.GetTree(w, r)
}

// GetTraverse handles GET /traverse/{order}.
func (s *Server) GetTraverse(w http.ResponseWriter, r *http.Request) {
	order, err := domain.ParseOrder(chi.URLParam(r, "order"))
	if err != nil {
		s.fail(w, "Traverse", err)
		return
	}

	nodes := s.Visualizer.Nodes(order)
	values := make([]float64, 0, len(nodes))
	for _, n := range nodes {
		values = append(values, n.Value)
	}
	refs := s.Visualizer.Refs(order)
	if refs == nil {
		refs = []domain.Handle{}
	}
	s.writeJSON(w, http.StatusOK, TraverseResponse{
		Order:  order.String(),
		Values: values,
		Refs:   refs,
	})
}

// PostReveal handles POST /reveal. It returns once the reveal has been played.
func (s *Server) PostReveal(w http.ResponseWriter, r *http.Request) {
	var body RevealRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	order, err := domain.ParseOrder(body.Order)
	if err != nil {
		s.fail(w, "Reveal", err)
		return
	}
	var stagger time.Duration
	if body.Stagger != "" {
		if stagger, err = time.ParseDuration(body.Stagger); err != nil {
			http.Error(w, fmt.Sprintf("Invalid stagger: %v", err), http.StatusBadRequest)
			return
		}
	}
	if err := s.Visualizer.Reveal(r.Context(), order, stagger); err != nil {
		s.fail(w, "Reveal", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostHighlight handles POST /highlight.
func (s *Server) PostHighlight(w http.ResponseWriter, r *http.Request) {
	var body HighlightRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.Visualizer.Highlight(r.Context(), body.Value); err != nil {
		s.fail(w, "Highlight", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetGraph handles GET /graph and returns a Mermaid diagram.
// With ?order=in&step=3 the first three nodes of that traversal are marked, the third as current.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	var overlay *graph.GraphOverlay
	if q := r.URL.Query(); q.Get("order") != "" {
		order, err := domain.ParseOrder(q.Get("order"))
		if err != nil {
			s.fail(w, "Graph", err)
			return
		}
		nodes := s.Visualizer.Nodes(order)
		step := len(nodes)
		if raw := q.Get("step"); raw != "" {
			if step, err = strconv.Atoi(raw); err != nil || step < 0 {
				http.Error(w, "Invalid step", http.StatusBadRequest)
				return
			}
		}
		overlay = &graph.GraphOverlay{}
		for i := 0; i < step && i < len(nodes); i++ {
			overlay.Visited = append(overlay.Visited, nodes[i].ID)
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, graph.GenerateMermaid(s.Visualizer.Nodes(domain.PreOrder), overlay))
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidValue), errors.Is(err, domain.ErrInvalidOrder):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNodeNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrHandleUnbound):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		s.logger.Error(op+" failed", "err", err)
	} else {
		s.logger.Warn(op+" rejected", "err", err)
	}
	http.Error(w, fmt.Sprintf("%s error: %v", op, err), status)
}

// writeJSON encodes before writing any header, so an unencodable body (e.g. an infinite
// key) becomes a 500 instead of an empty 200.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("Response encode failed", "err", err)
		http.Error(w, fmt.Sprintf("Response encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}
