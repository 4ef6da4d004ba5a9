package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/DarkFrame_Go/internal/domain"
	"github.com/osse101/DarkFrame_Go/internal/logger"
	"github.com/osse101/DarkFrame_Go/internal/worker"
)

// JobRegistry looks up registered periodic jobs
type JobRegistry interface {
	Infos() []domain.JobInfo
	Runner(name string) (*worker.Runner, error)
}

// JobsHandler exposes periodic job status and admin controls
type JobsHandler struct {
	registry JobRegistry
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(registry JobRegistry) *JobsHandler {
	return &JobsHandler{registry: registry}
}

// HandleList returns every registered job
// GET /api/v1/jobs
func (h *JobsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, DataResponse{Data: h.registry.Infos()})
}

// HandleGet returns one job's info and stats
// GET /api/v1/jobs/{name}
func (h *JobsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	runner, ok := h.lookup(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, runner.Info())
}

// HandleStart starts a stopped job
// POST /api/v1/admin/jobs/{name}/start
func (h *JobsHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	runner, ok := h.lookup(w, r)
	if !ok {
		return
	}
	// The runner detaches from the request context itself
	respondJSON(w, http.StatusOK, runner.Start(r.Context()))
}

// HandleStop stops a running job
// POST /api/v1/admin/jobs/{name}/stop
func (h *JobsHandler) HandleStop(w http.ResponseWriter, r *http.Request) {
	runner, ok := h.lookup(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, runner.Stop())
}

// HandleRun runs one cycle synchronously and returns the updated info
// POST /api/v1/admin/jobs/{name}/run
func (h *JobsHandler) HandleRun(w http.ResponseWriter, r *http.Request) {
	runner, ok := h.lookup(w, r)
	if !ok {
		return
	}
	// the tick outlives the request
	result := runner.RunOnce(context.WithoutCancel(r.Context()))
	if !result.Success {
		logger.FromContext(r.Context()).Error(LogMsgJobRunFailed, "job", runner.Name(), "error", result.Message)
		respondJSON(w, http.StatusInternalServerError, DataResponse{Message: ErrMsgJobRunFailed, Data: runner.Info()})
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Message: result.Message, Data: runner.Info()})
}

func (h *JobsHandler) lookup(w http.ResponseWriter, r *http.Request) (*worker.Runner, bool) {
	name := chi.URLParam(r, "name")
	logger.FromContext(r.Context()).Debug(LogMsgJobCommand, "job", name, "path", r.URL.Path)

	runner, err := h.registry.Runner(name)
	if err != nil {
		respondServiceError(w, r, "Job lookup", err)
		return nil, false
	}
	return runner, true
}
