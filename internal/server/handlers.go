package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/scholarly-group/screening-cli/internal/model"
	"github.com/scholarly-group/screening-cli/internal/pipeline"
	"github.com/scholarly-group/screening-cli/internal/store"
)

type screenRequest struct {
	Papers []model.Paper `json:"papers"`
}

// handleScreen runs the full pipeline synchronously and returns the result
// envelope. A failed run still returns the envelope so callers see the
// stage error list.
func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	var req screenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.runner.Run(r.Context(), req.Papers)
	if err != nil {
		zap.L().Error("server: screening run failed", zap.Error(err))
		writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handlePipeline describes the stage sequence without running anything.
func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"stages": pipeline.DescribeStages(),
	})
}

// handleSample returns a reproducible synthetic batch. Query params: n
// (defaults to the configured batch size) and seed.
func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	n := s.runner.BatchSize()
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
		n = parsed
	}

	var seed uint64 = 1
	if raw := r.URL.Query().Get("seed"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "seed must be an unsigned integer")
			return
		}
		seed = parsed
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"papers": pipeline.SampleBatch(n, seed),
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, "run persistence is disabled")
		return
	}

	filter := store.RunFilter{Limit: 50}
	if raw := r.URL.Query().Get("status"); raw != "" {
		filter.Status = model.RunStatus(raw)
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filter.Limit = parsed
	}

	runs, err := s.store.ListRuns(r.Context(), filter)
	if err != nil {
		zap.L().Error("server: list runs", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	if runs == nil {
		runs = []model.Run{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, "run persistence is disabled")
		return
	}

	runID := chi.URLParam(r, "runID")
	run, err := s.store.GetRun(r.Context(), runID)
	if err != nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
