package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/csemotors/inventory/internal/model"
	"github.com/csemotors/inventory/internal/store"
)

// VehiclesHandler handles vehicle CRUD endpoints.
type VehiclesHandler struct {
	DB *sql.DB
}

type vehicleRequest struct {
	Make             string  `json:"inv_make"`
	Model            string  `json:"inv_model"`
	Year             int     `json:"inv_year"`
	Description      string  `json:"inv_description"`
	Image            string  `json:"inv_image"`
	Thumbnail        string  `json:"inv_thumbnail"`
	Price            float64 `json:"inv_price"`
	Miles            int64   `json:"inv_miles"`
	Color            string  `json:"inv_color"`
	ClassificationID int64   `json:"classification_id"`
}

func (req vehicleRequest) validate() (model.VehicleInput, string) {
	if req.Make == "" || req.Model == "" {
		return model.VehicleInput{}, "make and model required"
	}
	if req.Year < 1800 || req.Year > 2100 {
		return model.VehicleInput{}, "year must be between 1800 and 2100"
	}
	if req.Description == "" {
		return model.VehicleInput{}, "description required"
	}
	if req.Color == "" {
		return model.VehicleInput{}, "color required"
	}
	if req.Miles < 0 {
		return model.VehicleInput{}, "mileage must not be negative"
	}
	if req.Price < 0 {
		return model.VehicleInput{}, "price must not be negative"
	}
	if req.ClassificationID <= 0 {
		return model.VehicleInput{}, "classification_id required"
	}

	image := req.Image
	if image == "" {
		image = "/images/vehicles/no-image.png"
	}
	thumbnail := req.Thumbnail
	if thumbnail == "" {
		thumbnail = "/images/vehicles/no-image-tn.png"
	}

	return model.VehicleInput{
		Make:             req.Make,
		Model:            req.Model,
		Year:             req.Year,
		Description:      req.Description,
		Image:            image,
		Thumbnail:        thumbnail,
		Price:            req.Price,
		Miles:            req.Miles,
		Color:            req.Color,
		ClassificationID: req.ClassificationID,
	}, ""
}

// List handles GET /api/vehicles. An optional classification_id query
// parameter filters by classification.
func (h *VehiclesHandler) List(w http.ResponseWriter, r *http.Request) {
	var vehicles []model.Vehicle
	var err error

	if param := r.URL.Query().Get("classification_id"); param != "" {
		id, perr := strconv.ParseInt(param, 10, 64)
		if perr != nil {
			jsonError(w, http.StatusBadRequest, "invalid classification_id")
			return
		}
		vehicles, err = store.ListVehiclesByClassification(r.Context(), h.DB, id)
	} else {
		vehicles, err = store.ListLatestVehicles(r.Context(), h.DB, 100)
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list vehicles")
		return
	}
	if vehicles == nil {
		vehicles = []model.Vehicle{}
	}
	jsonResponse(w, http.StatusOK, vehicles)
}

// Get handles GET /api/vehicles/{id}.
func (h *VehiclesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	vehicle, err := store.GetVehicle(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get vehicle")
		return
	}
	if vehicle == nil {
		jsonError(w, http.StatusNotFound, "vehicle not found")
		return
	}

	jsonResponse(w, http.StatusOK, vehicle)
}

// Create handles POST /api/vehicles.
func (h *VehiclesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input, msg := req.validate()
	if msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	vehicle, err := store.CreateVehicle(r.Context(), h.DB, input)
	if errors.Is(err, store.ErrDuplicate) {
		jsonError(w, http.StatusConflict, "a vehicle with this make, model and year already exists")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create vehicle")
		return
	}

	jsonResponse(w, http.StatusCreated, vehicle)
}

// Update handles PUT /api/vehicles/{id}.
func (h *VehiclesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	var req vehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input, msg := req.validate()
	if msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	vehicle, err := store.UpdateVehicle(r.Context(), h.DB, id, input)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update vehicle")
		return
	}
	if vehicle == nil {
		jsonError(w, http.StatusNotFound, "vehicle not found")
		return
	}

	jsonResponse(w, http.StatusOK, vehicle)
}

// Delete handles DELETE /api/vehicles/{id}.
func (h *VehiclesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	if err := store.DeleteVehicle(r.Context(), h.DB, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete vehicle")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "vehicle deleted"})
}
