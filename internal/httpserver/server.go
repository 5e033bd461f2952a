// apps/go-solver/internal/httpserver/server.go
//
// HTTP server wiring for the solver.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Diagnostics: "/", "/health", "/debug/words".
//   - Stateless helpers: POST /evaluate, POST /solve/next (replays a history
//     of guesses and feedback on a fresh engine and proposes the next guess).
//   - Background bench runs: POST /bench, GET /bench/{id}.
//
// Notes:
//   - No per-player state is kept; every request carries the full history.
//   - Bench jobs outlive the request that started them and are kept in the
//     in-memory store until the process exits.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/bench"
	"github.com/robalobadob/wordle/apps/go-solver/internal/config"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// maxCandidates bounds the candidate sample returned by /solve/next.
const maxCandidates = 10

// Server bundles router, bench job store, word list and defaults.
type Server struct {
	r     *chi.Mux
	store store.Store
	list  *words.List
	cfg   config.Config

	// base is the parent context of background bench jobs.
	base context.Context
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, list *words.List, cfg config.Config) *Server {
	s := &Server{r: chi.NewRouter(), store: st, list: list, cfg: cfg, base: context.Background()}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "wordle-solver",
			"endpoints": []string{"/health", "/debug/words", "POST /evaluate", "POST /solve/next", "POST /bench", "GET /bench/{id}"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"words":   len(s.list.Words),
			"dropped": s.list.Dropped,
			"source":  s.list.Source,
		})
	})

	s.r.Post("/evaluate", s.handleEvaluate)
	s.r.Post("/solve/next", s.handleNext)
	s.r.Route("/bench", func(r chi.Router) {
		r.Post("/", s.handleBenchStart)
		r.Get("/{id}", s.handleBenchGet)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ EVALUATE -----------------------------------

type evaluateReq struct {
	Secret string `json:"secret"`
	Guess  string `json:"guess"`
}
type evaluateRes struct {
	Feedback game.Feedback `json:"feedback"`
	Marks    []string      `json:"marks"`
	Solved   bool          `json:"solved"`
}

// handleEvaluate scores guess against secret.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	fb, err := game.Evaluate(game.Normalize(req.Secret), game.Normalize(req.Guess))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	marks := make([]string, len(fb))
	for i, m := range fb {
		marks[i] = m.String()
	}
	writeJSON(w, http.StatusOK, evaluateRes{Feedback: fb, Marks: marks, Solved: fb.Solved()})
}

// ------------------------------ NEXT GUESS ---------------------------------

type turnReq struct {
	Guess    string `json:"guess"`
	Feedback string `json:"feedback"`
}
type nextReq struct {
	History []turnReq      `json:"history"`
	Scorer  string         `json:"scorer"`
	Config  *solver.Config `json:"config"`
}
type nextRes struct {
	Guess      string   `json:"guess,omitempty"`
	Solved     bool     `json:"solved"`
	Round      int      `json:"round"`
	Remaining  int      `json:"remaining"`
	Candidates []string `json:"candidates"`
}

// handleNext replays the request history on a fresh engine and returns the
// engine's next guess.
func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	var req nextReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	cfg := s.cfg.Solver
	if req.Config != nil {
		cfg = *req.Config
	}
	name := req.Scorer
	if name == "" {
		name = s.cfg.Scorer
	}
	scorer, err := solver.ScorerFor(name, cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	e, err := solver.New(cfg, s.list.Words, solver.WithScorer(scorer), solver.WithWeights(s.list.Weights))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	for _, t := range req.History {
		fb, err := game.ParseFeedback(t.Feedback)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := e.ApplyFeedback(t.Guess, fb); err != nil {
			s.solverError(w, r, err)
			return
		}
	}

	res := nextRes{Solved: e.Solved(), Round: e.Round(), Remaining: e.Pool().Len()}
	cands := e.Pool().Words()
	if len(cands) > maxCandidates {
		cands = cands[:maxCandidates]
	}
	res.Candidates = cands
	if res.Solved {
		writeJSON(w, http.StatusOK, res)
		return
	}

	guess, err := e.NextGuess()
	if err != nil {
		s.solverError(w, r, err)
		return
	}
	res.Guess = guess
	writeJSON(w, http.StatusOK, res)
}

// solverError maps engine errors onto HTTP statuses.
func (s *Server) solverError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrInvalidWord), errors.Is(err, game.ErrInvalidFeedback):
		status = http.StatusBadRequest
	case errors.Is(err, solver.ErrPoolExhausted), errors.Is(err, solver.ErrAttemptsExhausted):
		status = http.StatusUnprocessableEntity
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("solver failure")
	}
	writeError(w, status, err.Error())
}

// ------------------------------- BENCH -------------------------------------

type benchReq struct {
	Rounds  *int   `json:"rounds"`
	Guesser string `json:"guesser"`
	Workers int    `json:"workers"`
	Seed    string `json:"seed"`
}

// handleBenchStart validates the request, registers a job and runs it in the
// background.
func (s *Server) handleBenchStart(w http.ResponseWriter, r *http.Request) {
	var req benchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	opts := bench.Options{
		Rounds:  s.cfg.Bench.Rounds,
		Guesser: s.cfg.Scorer,
		Workers: s.cfg.Bench.Workers,
		Seed:    s.cfg.Bench.Seed,
		Config:  s.cfg.Solver,
		Words:   s.list.Words,
		Weights: s.list.Weights,
	}
	if req.Rounds != nil {
		opts.Rounds = *req.Rounds
	}
	if req.Guesser != "" {
		opts.Guesser = req.Guesser
	}
	if req.Workers > 0 {
		opts.Workers = req.Workers
	}
	if req.Seed != "" {
		opts.Seed = req.Seed
	}
	if opts.Rounds > bench.MaxRounds {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("rounds must not exceed %d", bench.MaxRounds))
		return
	}
	if _, err := solver.ScorerFor(opts.Guesser, opts.Config); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := s.store.Create(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("create bench job")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	go func(id string) {
		var rep *bench.Report
		var err error
		defer func() {
			if r := recover(); r != nil {
				rep, err = nil, fmt.Errorf("panic: %v", r)
			}
			if ferr := s.store.Finish(s.base, id, rep, err); ferr != nil {
				log.Error().Err(ferr).Str("job", id).Msg("finish bench job")
			}
		}()
		rep, err = bench.Run(s.base, opts)
	}(job.ID)

	log.Info().Str("job", job.ID).Str("guesser", opts.Guesser).Int("rounds", opts.Rounds).Msg("bench job started")
	writeJSON(w, http.StatusAccepted, map[string]string{"id": job.ID})
}

// handleBenchGet returns the job state and, once finished, its report.
func (s *Server) handleBenchGet(w http.ResponseWriter, r *http.Request) {
	job, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("get bench job")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
