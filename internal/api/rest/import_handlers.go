package rest

import (
	"encoding/json"
	"net/http"

	"github.com/fortuna/courtside/internal/importer"
)

// ImportHandler proxies API calls to the import service.
type ImportHandler struct {
	service *importer.Service
}

// NewImportHandler wires the REST layer to the import service.
func NewImportHandler(service *importer.Service) *ImportHandler {
	return &ImportHandler{service: service}
}

type apiImportRequest struct {
	Source string `json:"source"`
	Season string `json:"season"`
}

// HandleImportRequest handles POST /api/v1/imports
func (h *ImportHandler) HandleImportRequest(w http.ResponseWriter, r *http.Request) {
	var req apiImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	job, err := h.service.Enqueue(r.Context(), importer.Request{
		Source: req.Source,
		Season: req.Season,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to enqueue import", err)
		return
	}

	respondJSON(w, http.StatusAccepted, job)
}

// HandleImportStatus handles GET /api/v1/imports/status
func (h *ImportHandler) HandleImportStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.GetStatus(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch import status", err)
		return
	}

	respondJSON(w, http.StatusOK, status)
}

// HandleImportJob handles GET /api/v1/imports/{jobID}
func (h *ImportHandler) HandleImportJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathInt(w, r, "jobID")
	if !ok {
		return
	}

	job, err := h.service.GetJob(r.Context(), jobID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch import job", err)
		return
	}
	if job == nil {
		respondError(w, http.StatusNotFound, "Import job not found", nil)
		return
	}

	respondJSON(w, http.StatusOK, job)
}
