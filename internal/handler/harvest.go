package handler

import (
	"net/http"
	"strings"

	"github.com/osse101/DarkFrame_Go/internal/domain"
	"github.com/osse101/DarkFrame_Go/internal/harvest"
	"github.com/osse101/DarkFrame_Go/internal/logger"
)

// HarvestRequest is the body of POST /api/v1/harvest
type HarvestRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64,excludesall=\x00\n\r\t"`
	X        *int   `json:"x" validate:"required,gte=0"`
	Y        *int   `json:"y" validate:"required,gte=0"`
	Resource string `json:"resource" validate:"required,resource"`
}

// HarvestHandler handles harvest-related HTTP requests
type HarvestHandler struct {
	harvestSvc harvest.Service
}

// NewHarvestHandler creates a new harvest handler
func NewHarvestHandler(harvestSvc harvest.Service) *HarvestHandler {
	return &HarvestHandler{
		harvestSvc: harvestSvc,
	}
}

// Harvest collects a tile for a player
// POST /api/v1/harvest
func (h *HarvestHandler) Harvest(w http.ResponseWriter, r *http.Request) {
	var req HarvestRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Harvest"); err != nil {
		return
	}

	log := logger.FromContext(r.Context())
	log.Info(LogMsgHarvestReceived, "player_id", req.PlayerID, "x", *req.X, "y", *req.Y, "resource", req.Resource)

	result, err := h.harvestSvc.Harvest(r.Context(), harvest.Request{
		PlayerID: req.PlayerID,
		X:        *req.X,
		Y:        *req.Y,
		Resource: domain.ResourceKind(strings.ToLower(req.Resource)),
	})
	if err != nil {
		respondServiceError(w, r, "Harvest", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Window reports the active reset window for a map column
// GET /api/v1/harvest/window?x=
func (h *HarvestHandler) Window(w http.ResponseWriter, r *http.Request) {
	x, ok := GetIntQueryParam(r, w, "x")
	if !ok {
		return
	}
	if x < 0 {
		respondError(w, http.StatusBadRequest, ErrMsgOutOfBoundsError)
		return
	}

	respondJSON(w, http.StatusOK, h.harvestSvc.Window(x))
}
