package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"SnapVoter/internal/governance"
	"SnapVoter/internal/logger"
	"SnapVoter/internal/state"
	"SnapVoter/internal/voter"
)

const (
	// maxBodySize is the maximum request body size in bytes.
	maxBodySize = 64 << 10 // 64 KB
)

// Voter runs registrar and weight record operations.
type Voter interface {
	CreateRegistrar(ctx context.Context, req voter.CreateRegistrarRequest) (*state.Registrar, error)
	UpdateRegistrar(ctx context.Context, req voter.UpdateRegistrarRequest) (*state.Registrar, error)
	CreateVoterWeightRecord(ctx context.Context, realm, mint, owner state.Pubkey) (*state.VoterWeightRecord, error)
	CreateMaxVoterWeightRecord(ctx context.Context, realm, mint state.Pubkey) (*state.MaxVoterWeightRecord, error)
	UpdateVoterWeightRecord(ctx context.Context, req voter.UpdateVoterWeightRecordRequest) (*state.VoterWeightRecord, error)
	Registrar(ctx context.Context, realm, mint state.Pubkey) (*state.Registrar, error)
	VoterWeightRecord(ctx context.Context, realm, mint, owner state.Pubkey) (*state.VoterWeightRecord, error)
	MaxVoterWeightRecord(ctx context.Context, realm, mint state.Pubkey) (*state.MaxVoterWeightRecord, error)
}

// Server is the HTTP API server.
type Server struct {
	addr     string              // addr is the HTTP listen address
	voter    Voter               // voter runs the operations behind every route
	gatherer prometheus.Gatherer // gatherer backs /metrics; nil disables the route
	handler  http.Handler        // handler is the assembled router
	server   *http.Server        // server is the underlying HTTP server
	now      func() time.Time    // now is checked against signed timestamps
}

// Option configures a Server.
type Option func(s *Server)

// WithGatherer exposes the gatherer's metrics on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithTimeSource replaces the clock signed timestamps are checked against.
func WithTimeSource(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New creates a new HTTP API server.
func New(addr string, v Voter, opts ...Option) *Server {
	s := &Server{
		addr:  addr,
		voter: v,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.handler = s.routes()

	return s
}

// Handler returns the router serving every route.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// routes assembles the router.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logRequests)

	r.Get("/health", s.handleHealth)

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/registrars", func(r chi.Router) {
		r.With(s.requireSigner).Post("/", s.handleCreateRegistrar)

		r.Route("/{realm}/{mint}", func(r chi.Router) {
			r.Get("/", s.handleGetRegistrar)
			r.With(s.requireSigner).Put("/", s.handleUpdateRegistrar)

			r.Post("/voter-weight-records", s.handleCreateVoterWeightRecord)
			r.Get("/voter-weight-records/{owner}", s.handleGetVoterWeightRecord)
			r.Post("/voter-weight-records/{owner}/update", s.handleUpdateVoterWeightRecord)

			r.Post("/max-voter-weight-record", s.handleCreateMaxVoterWeightRecord)
			r.Get("/max-voter-weight-record", s.handleGetMaxVoterWeightRecord)
		})
	})

	return r
}

// Start binds the listen address and serves in a goroutine.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.server = &http.Server{
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http api started", "addr", ln.Addr().String())

		if err := s.server.Serve(ln); err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// logRequests logs every request at debug level.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			logger.Timed(start),
		)
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeServiceError maps an operation failure to a status code.
// Rejections carry their stable code and name.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *voter.Error
	var ge *governance.Error

	switch {
	case errors.As(err, &ve):
		status := http.StatusUnprocessableEntity
		if errors.Is(err, voter.ErrInvalidRealmAuthority) {
			status = http.StatusForbidden
		}
		writeJSON(w, status, ErrorResponse{Error: ve.Error(), Code: ve.Code, Name: ve.Name})

	case errors.Is(err, state.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, state.ErrAlreadyExists):
		writeError(w, http.StatusConflict, err.Error())

	case errors.Is(err, voter.ErrStaleNonce):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error(), Name: NameStaleNonce})

	case errors.Is(err, governance.ErrNotFound),
		errors.Is(err, governance.ErrNotOwned),
		errors.Is(err, governance.ErrMintNotAccepted):
		writeError(w, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, governance.ErrUnavailable), errors.As(err, &ge):
		writeError(w, http.StatusBadGateway, err.Error())

	default:
		logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
