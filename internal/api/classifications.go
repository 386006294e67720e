package api

import (
	"database/sql"
	"errors"
	"net/http"
	"regexp"

	"github.com/csemotors/inventory/internal/model"
	"github.com/csemotors/inventory/internal/store"
)

// ClassificationsHandler handles classification endpoints.
type ClassificationsHandler struct {
	DB *sql.DB
}

type createClassificationRequest struct {
	Name string `json:"classification_name"`
}

var classificationName = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// List handles GET /api/classifications.
func (h *ClassificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	classifications, err := store.ListClassifications(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list classifications")
		return
	}
	if classifications == nil {
		classifications = []model.Classification{}
	}
	jsonResponse(w, http.StatusOK, classifications)
}

// Create handles POST /api/classifications.
func (h *ClassificationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createClassificationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !classificationName.MatchString(req.Name) {
		jsonError(w, http.StatusBadRequest, "classification name must be alphanumeric")
		return
	}

	classification, err := store.CreateClassification(r.Context(), h.DB, req.Name)
	if errors.Is(err, store.ErrDuplicate) {
		jsonError(w, http.StatusConflict, "classification already exists")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create classification")
		return
	}

	jsonResponse(w, http.StatusCreated, classification)
}
