// Package server exposes partition searches over HTTP/JSON.
//
// Routes (gorilla/mux, prefix /api/v1):
//
//	POST   /partitions  synchronous search, bounded by server.request_timeout
//	POST   /jobs        asynchronous search, 202 + job snapshot
//	GET    /jobs        all jobs
//	GET    /jobs/{id}   one job
//	DELETE /jobs/{id}   cancel a job
//	GET    /health      liveness
//	GET    /metrics     Prometheus exposition (also served at /metrics)
//
// Input errors map to 422, internal invariant failures to 500, cancellation
// and timeouts to 503, malformed bodies to 400.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/lvpart/internal/config"
	"github.com/katalvlaran/lvpart/internal/dataset"
	"github.com/katalvlaran/lvpart/internal/jobs"
	"github.com/katalvlaran/lvpart/internal/metrics"
	"github.com/katalvlaran/lvpart/partition"
)

// APIPrefix is the versioned route prefix.
const APIPrefix = "/api/v1"

// Server wires handlers, middleware and dependencies.
type Server struct {
	cfg      config.ServerConfig
	search   []partition.Option // defaults applied before request overrides
	jobs     *jobs.Manager
	metrics  *metrics.Collector // may be nil
	log      zerolog.Logger
	validate *validator.Validate
	handler  http.Handler
}

// New builds the router. mgr must not be nil.
func New(cfg config.ServerConfig, search []partition.Option, mgr *jobs.Manager, m *metrics.Collector, log zerolog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		search:   search,
		jobs:     mgr,
		metrics:  m,
		log:      log.With().Str("component", "http").Logger(),
		validate: newValidator(),
	}

	router := mux.NewRouter()
	router.Use(requestIDMiddleware)
	router.Use(s.loggingMiddleware)
	router.Use(s.recoveryMiddleware)
	s.routes(router)

	s.handler = cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader, "Location"},
		MaxAge:         86400,
	}).Handler(router)

	return s
}

// routes registers every endpoint.
func (s *Server) routes(router *mux.Router) {
	api := router.PathPrefix(APIPrefix).Subrouter()

	api.HandleFunc("/partitions", s.createPartition).Methods(http.MethodPost)

	jobsRouter := api.PathPrefix("/jobs").Subrouter()
	jobsRouter.HandleFunc("", s.createJob).Methods(http.MethodPost)
	jobsRouter.HandleFunc("", s.listJobs).Methods(http.MethodGet)
	jobsRouter.HandleFunc("/{id}", s.getJob).Methods(http.MethodGet)
	jobsRouter.HandleFunc("/{id}", s.cancelJob).Methods(http.MethodDelete)

	api.HandleFunc("/health", s.health).Methods(http.MethodGet)

	if s.metrics != nil {
		api.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
		router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}
}

// Handler returns the CORS-wrapped router.
func (s *Server) Handler() http.Handler { return s.handler }

// HTTPServer returns an http.Server listening on cfg.Address with the configured timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Address,
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
}

// createPartition runs a search inside the request.
func (s *Server) createPartition(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	reqOpts, err := req.options()
	if err != nil {
		s.writeErr(w, r, err)
		return
	}

	ctx, cancel := s.searchContext(r.Context())
	defer cancel()

	opts := make([]partition.Option, 0, len(s.search)+len(reqOpts)+1)
	opts = append(opts, s.search...)
	opts = append(opts, reqOpts...)
	opts = append(opts, partition.WithContext(ctx))

	start := time.Now()
	res, err := partition.Solve(dataset.Weights(req.Weights), dataset.DefaultLabels(req.Labels, len(req.Weights)), req.K, opts...)
	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.ObserveSearch(err, res.CombinationsSearched, elapsed)
	}
	if err != nil {
		s.writeErr(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, PartitionResponse{
		RequestID:  requestID(r.Context()),
		DurationMS: elapsed.Milliseconds(),
		Result:     res,
	})
}

// searchContext bounds a synchronous search by RequestTimeout, when set.
func (s *Server) searchContext(parent context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.RequestTimeout > 0 {
		return context.WithTimeout(parent, s.cfg.RequestTimeout)
	}
	return context.WithCancel(parent)
}

// createJob queues an asynchronous search.
func (s *Server) createJob(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	jr, err := req.jobRequest()
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	job, err := s.jobs.Submit(jr)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/jobs/%s", APIPrefix, job.ID))
	s.writeJSON(w, http.StatusAccepted, job)
}

func (s *Server) listJobs(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.jobs.List())
}

func (s *Server) getJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobs.Get(mux.Vars(r)["id"])
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, job)
}

func (s *Server) cancelJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobs.Cancel(mux.Vars(r)["id"])
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, job)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Jobs: len(s.jobs.List())})
}

// decode reads and validates a PartitionRequest; on failure it has already replied.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (PartitionRequest, bool) {
	var req PartitionRequest

	body := r.Body
	if s.cfg.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, CodeBadRequest, "malformed request body: "+err.Error(), nil)
		return req, false
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, CodeValidation, "request validation failed", fieldErrors(err))
		return req, false
	}

	return req, true
}

// writeErr classifies err and replies.
func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError && !errors.Is(err, partition.ErrCanceled) {
		s.log.Error().Err(err).Str("request_id", requestID(r.Context())).Msg("Request failed")
	}
	s.writeError(w, r, status, code, err.Error(), nil)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string, fields map[string]string) {
	s.writeJSON(w, status, ErrorResponse{
		Error:     msg,
		Code:      code,
		Fields:    fields,
		RequestID: requestID(r.Context()),
	})
}

// writeJSON is a helper function to write JSON responses.
func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error().Err(err).Int("status_code", status).Msg("Failed to encode JSON response")
	}
}
