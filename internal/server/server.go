// Package server serves section profiles, diagrams and the catalog over
// HTTP for preview UIs.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/alexiusacademia/gosteel/internal/catalog"
	"github.com/alexiusacademia/gosteel/internal/diagram"
	"github.com/alexiusacademia/gosteel/internal/metrics"
	"github.com/alexiusacademia/gosteel/internal/section"
)

// Config contains configuration options for the web server
type Config struct {
	Address     string
	ReadTimeout time.Duration
}

// Server handles the HTTP interface.
type Server struct {
	config  Config
	logger  *zap.Logger
	catalog *catalog.Catalog
	server  *http.Server
}

// New creates a server. cat may be nil when no catalog lookups are
// wanted.
func New(config Config, logger *zap.Logger, cat *catalog.Catalog) *Server {
	if config.ReadTimeout == 0 {
		config.ReadTimeout = 10 * time.Second
	}
	s := &Server{config: config, logger: logger, catalog: cat}
	s.server = &http.Server{
		Addr:              config.Address,
		Handler:           s.Routes(),
		ReadHeaderTimeout: config.ReadTimeout,
		ReadTimeout:       config.ReadTimeout,
	}
	return s
}

// Routes returns the request multiplexer.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/profile", s.instrument("profile", s.handleProfile))
	mux.HandleFunc("GET /api/diagram.svg", s.instrument("diagram", s.handleDiagram))
	mux.HandleFunc("GET /api/catalog", s.instrument("catalog", s.handleCatalog))
	mux.Handle("GET /metrics", metrics.Handler())
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("address", s.config.Address))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(name string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		h(rec, r)
		metrics.RecordRequest(name, rec.code, start)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", zap.Error(err))
	}
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// reserved query parameters; every other parameter is a dimension.
var reserved = map[string]bool{"family": true, "axis": true, "member_area": true, "designation": true}

// specFromQuery builds a spec from either a catalog designation or an
// explicit family with dimension parameters (?family=pipe&D=165.2&t=5).
func (s *Server) specFromQuery(q url.Values) (section.Spec, error) {
	axis, err := section.ParseAxis(q.Get("axis"))
	if err != nil {
		return section.Spec{}, err
	}

	if name := q.Get("designation"); name != "" {
		if s.catalog == nil {
			return section.Spec{}, errors.New("no catalog loaded")
		}
		e, ok := s.catalog.Lookup(name)
		if !ok {
			return section.Spec{}, fmt.Errorf("unknown designation %q", name)
		}
		return e.Spec(axis), nil
	}

	family, err := section.ParseFamily(q.Get("family"))
	if err != nil {
		return section.Spec{}, err
	}
	spec := section.Spec{Family: family, Dims: section.Dims{}, Axis: axis}
	if a := q.Get("member_area"); a != "" {
		if spec.MemberArea, err = strconv.ParseFloat(a, 64); err != nil {
			return section.Spec{}, fmt.Errorf("member_area: %w", err)
		}
	}
	for key, vals := range q {
		if reserved[key] || len(vals) == 0 {
			continue
		}
		v, err := strconv.ParseFloat(vals[0], 64)
		if err != nil {
			return section.Spec{}, fmt.Errorf("dimension %s: %w", key, err)
		}
		spec.Dims[key] = v
	}
	return spec, nil
}

type profileResponse struct {
	Family     section.Family      `json:"family"`
	Axis       section.Axis        `json:"axis"`
	Hollow     bool                `json:"hollow"`
	Profile    *section.Profile    `json:"profile"`
	Properties *section.Properties `json:"properties"`
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	spec, err := s.specFromQuery(r.URL.Query())
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	p := section.Build(spec)
	metrics.RecordBuild(spec.Family.String(), p != nil)
	if p == nil {
		s.noProfile(w, spec)
		return
	}

	p = p.Rotated(spec.Axis)
	s.writeJSON(w, http.StatusOK, profileResponse{
		Family:     spec.Family,
		Axis:       spec.Axis,
		Hollow:     spec.Family.IsHollow(),
		Profile:    p,
		Properties: p.CalculateProperties(),
	})
}

func (s *Server) noProfile(w http.ResponseWriter, spec section.Spec) {
	_, err := section.ParseDims(spec.Family, spec.Dims, spec.MemberArea)
	msg := "no profile"
	if err != nil {
		msg = err.Error()
	}
	s.logger.Warn("section has no profile, skipping",
		zap.Stringer("family", spec.Family),
		zap.Any("dims", spec.Dims),
		zap.String("reason", msg),
	)
	s.writeJSONError(w, http.StatusUnprocessableEntity, msg)
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	spec, err := s.specFromQuery(r.URL.Query())
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	d, err := diagram.Annotate(spec)
	metrics.RecordBuild(spec.Family.String(), err == nil)
	if err != nil {
		s.noProfile(w, spec)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if err := diagram.WriteSVG(w, d); err != nil {
		s.logger.Warn("write diagram", zap.Error(err))
		return
	}
	metrics.DiagramsTotal.WithLabelValues("svg").Inc()
}

type catalogEntry struct {
	catalog.Entry
	UnitMass float64 `json:"unit_mass"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		s.writeJSONError(w, http.StatusNotFound, "no catalog loaded")
		return
	}

	entries := s.catalog.Entries()
	if f := r.URL.Query().Get("family"); f != "" {
		family, err := section.ParseFamily(f)
		if err != nil {
			s.writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		entries = s.catalog.ByFamily(family)
	}

	out := make([]catalogEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, catalogEntry{Entry: e, UnitMass: e.UnitMass()})
	}
	s.writeJSON(w, http.StatusOK, out)
}
