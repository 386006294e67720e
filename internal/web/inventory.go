package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/csemotors/inventory/internal/model"
	"github.com/csemotors/inventory/internal/store"
	"github.com/csemotors/inventory/internal/views"
)

// renderError renders the shared error page.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.Templates.Render(w, status, "error.html", &struct {
		PageData
		Status  int
		Message string
	}{
		PageData: s.pageData(w, r, fmt.Sprintf("%d", status)),
		Status:   status,
		Message:  message,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// HomePage handles GET /.
func (s *Server) HomePage(w http.ResponseWriter, r *http.Request) {
	latest, err := store.ListLatestVehicles(r.Context(), s.DB, 6)
	if err != nil {
		slog.Error("failed to list latest vehicles", "error", err)
	}

	s.Templates.Render(w, http.StatusOK, "home.html", &struct {
		PageData
		Grid any
	}{
		PageData: s.pageData(w, r, "Home"),
		Grid:     views.ClassificationGrid(latest),
	})
}

// ClassificationPage handles GET /inv/type/{classificationId}.
// An unknown classification is a 404; a known classification with no vehicles
// renders the page with the empty-state notice.
func (s *Server) ClassificationPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("classificationId"), 10, 64)
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Invalid classification.")
		return
	}

	classification, err := store.GetClassification(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get classification", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "Sorry, something went wrong.")
		return
	}
	if classification == nil {
		s.renderError(w, r, http.StatusNotFound, "Classification not found.")
		return
	}

	vehicles, err := store.ListVehiclesByClassification(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to list vehicles", "classification", id, "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "Sorry, something went wrong.")
		return
	}

	s.Templates.Render(w, http.StatusOK, "classification.html", &struct {
		PageData
		Grid any
	}{
		PageData: s.pageData(w, r, classification.Name+" vehicles"),
		Grid:     views.ClassificationGrid(vehicles),
	})
}

// DetailPage handles GET /inv/detail/{invId}.
func (s *Server) DetailPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("invId"), 10, 64)
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Invalid vehicle.")
		return
	}

	vehicle, err := store.GetVehicle(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get vehicle", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "Sorry, something went wrong.")
		return
	}
	if vehicle == nil {
		s.renderError(w, r, http.StatusNotFound, "Vehicle not found")
		return
	}

	s.Templates.Render(w, http.StatusOK, "detail.html", &struct {
		PageData
		Detail any
	}{
		PageData: s.pageData(w, r, fmt.Sprintf("%s %s", vehicle.Make, vehicle.Model)),
		Detail:   views.DetailView(*vehicle),
	})
}

// InventoryJSON handles GET /inv/getInventory/{classification_id}.
// An empty classification yields an empty JSON array, not an error.
func (s *Server) InventoryJSON(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("classification_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid classification id"})
		return
	}

	vehicles, err := store.ListVehiclesByClassification(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to list vehicles", "classification", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list inventory"})
		return
	}
	if vehicles == nil {
		vehicles = []model.Vehicle{}
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// ManagementPage handles GET /inv/.
func (s *Server) ManagementPage(w http.ResponseWriter, r *http.Request) {
	s.renderManagement(w, r, http.StatusOK)
}

func (s *Server) renderManagement(w http.ResponseWriter, r *http.Request, status int, messages ...Flash) {
	classifications, err := store.ListClassifications(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list classifications", "error", err)
	}

	pd := s.pageData(w, r, "Inventory Management")
	pd.Messages = append(pd.Messages, messages...)
	s.Templates.Render(w, status, "management.html", &struct {
		PageData
		ClassificationOptions any
	}{
		PageData:              pd,
		ClassificationOptions: views.ClassificationList(classifications, 0),
	})
}

// AddClassificationPage handles GET /inv/add-classification.
func (s *Server) AddClassificationPage(w http.ResponseWriter, r *http.Request) {
	s.renderAddClassification(w, r, http.StatusOK, "")
}

func (s *Server) renderAddClassification(w http.ResponseWriter, r *http.Request, status int, name string, messages ...Flash) {
	pd := s.pageData(w, r, "Add Classification")
	pd.Messages = append(pd.Messages, messages...)
	s.Templates.Render(w, status, "add_classification.html", &struct {
		PageData
		ClassificationName string
	}{
		PageData:           pd,
		ClassificationName: name,
	})
}

// AddClassificationSubmit handles POST /inv/add-classification.
func (s *Server) AddClassificationSubmit(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("classification_name")

	if !validClassificationName(name) {
		s.renderAddClassification(w, r, http.StatusBadRequest, name,
			Flash{FlashError, "A valid classification name is required."})
		return
	}

	_, err := store.CreateClassification(r.Context(), s.DB, name)
	if errors.Is(err, store.ErrDuplicate) {
		s.renderAddClassification(w, r, http.StatusBadRequest, name,
			Flash{FlashError, "That classification already exists."})
		return
	}
	if err != nil {
		slog.Error("failed to create classification", "error", err)
		s.renderAddClassification(w, r, http.StatusInternalServerError, name,
			Flash{FlashError, "Sorry, the classification addition failed."})
		return
	}

	session := GetSession(r.Context())
	slog.Info("classification created", "account", session.AccountID, "classification", name)
	s.renderManagement(w, r, http.StatusCreated,
		Flash{FlashSuccess, fmt.Sprintf("Successfully added %s classification.", name)})
}

// AddInventoryPage handles GET /inv/add-inventory.
func (s *Server) AddInventoryPage(w http.ResponseWriter, r *http.Request) {
	s.renderAddInventory(w, r, http.StatusOK, vehicleForm{})
}

func (s *Server) renderAddInventory(w http.ResponseWriter, r *http.Request, status int, form vehicleForm, messages ...Flash) {
	classifications, err := store.ListClassifications(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list classifications", "error", err)
	}

	selected, _ := strconv.ParseInt(form.ClassificationID, 10, 64)
	pd := s.pageData(w, r, "Add Inventory")
	pd.Messages = append(pd.Messages, messages...)
	s.Templates.Render(w, status, "add_inventory.html", &struct {
		PageData
		Form                  vehicleForm
		ClassificationOptions any
	}{
		PageData:              pd,
		Form:                  form,
		ClassificationOptions: views.ClassificationList(classifications, selected),
	})
}

// AddInventorySubmit handles POST /inv/add-inventory. A duplicate
// (make, model, year) short-circuits before the insert; entered values are
// preserved on every failure path.
func (s *Server) AddInventorySubmit(w http.ResponseWriter, r *http.Request) {
	form := readVehicleForm(r)

	input, fieldErrs := form.validate()
	if len(fieldErrs) > 0 {
		messages := make([]Flash, 0, len(fieldErrs))
		for _, msg := range fieldErrs {
			messages = append(messages, Flash{FlashError, msg})
		}
		s.renderAddInventory(w, r, http.StatusBadRequest, form, messages...)
		return
	}

	exists, err := store.VehicleExists(r.Context(), s.DB, input.Make, input.Model, input.Year)
	if err != nil {
		slog.Error("failed to check vehicle existence", "error", err)
		s.renderAddInventory(w, r, http.StatusInternalServerError, form,
			Flash{FlashError, "Sorry, the inventory addition failed."})
		return
	}
	if exists {
		s.renderAddInventory(w, r, http.StatusBadRequest, form,
			Flash{FlashError, "This inventory item already exists."})
		return
	}

	_, err = store.CreateVehicle(r.Context(), s.DB, input)
	if errors.Is(err, store.ErrDuplicate) {
		// Lost a race with a concurrent insert; same outcome as the check above.
		s.renderAddInventory(w, r, http.StatusBadRequest, form,
			Flash{FlashError, "This inventory item already exists."})
		return
	}
	if err != nil {
		slog.Error("failed to create vehicle", "error", err)
		s.renderAddInventory(w, r, http.StatusInternalServerError, form,
			Flash{FlashError, "Sorry, the inventory addition failed."})
		return
	}

	session := GetSession(r.Context())
	slog.Info("vehicle created", "account", session.AccountID, "make", input.Make, "model", input.Model, "year", input.Year)
	s.renderManagement(w, r, http.StatusCreated,
		Flash{FlashSuccess, fmt.Sprintf("Successfully added %s inventory.", input.Make)})
}

// EditInventoryPage handles GET /inv/edit/{inv_id}.
func (s *Server) EditInventoryPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("inv_id"), 10, 64)
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Invalid vehicle.")
		return
	}

	vehicle, err := store.GetVehicle(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get vehicle", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "Sorry, something went wrong.")
		return
	}
	if vehicle == nil {
		s.renderError(w, r, http.StatusNotFound, "Vehicle not found")
		return
	}

	s.renderEditInventory(w, r, http.StatusOK, formFromVehicle(vehicle))
}

func (s *Server) renderEditInventory(w http.ResponseWriter, r *http.Request, status int, form vehicleForm, messages ...Flash) {
	classifications, err := store.ListClassifications(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list classifications", "error", err)
	}

	selected, _ := strconv.ParseInt(form.ClassificationID, 10, 64)
	pd := s.pageData(w, r, fmt.Sprintf("Edit %s %s", form.Make, form.Model))
	pd.Messages = append(pd.Messages, messages...)
	s.Templates.Render(w, status, "edit_inventory.html", &struct {
		PageData
		Form                  vehicleForm
		ClassificationOptions any
	}{
		PageData:              pd,
		Form:                  form,
		ClassificationOptions: views.ClassificationList(classifications, selected),
	})
}

// UpdateInventorySubmit handles POST /inv/update.
func (s *Server) UpdateInventorySubmit(w http.ResponseWriter, r *http.Request) {
	form := readVehicleForm(r)

	id, err := strconv.ParseInt(form.InvID, 10, 64)
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Invalid vehicle.")
		return
	}

	input, fieldErrs := form.validate()
	if len(fieldErrs) > 0 {
		messages := make([]Flash, 0, len(fieldErrs))
		for _, msg := range fieldErrs {
			messages = append(messages, Flash{FlashError, msg})
		}
		s.renderEditInventory(w, r, http.StatusBadRequest, form, messages...)
		return
	}

	updated, err := store.UpdateVehicle(r.Context(), s.DB, id, input)
	if err != nil {
		slog.Error("failed to update vehicle", "error", err)
		s.renderEditInventory(w, r, http.StatusInternalServerError, form,
			Flash{FlashError, "Sorry, the update failed."})
		return
	}
	if updated == nil {
		s.renderEditInventory(w, r, http.StatusInternalServerError, form,
			Flash{FlashError, "Sorry, the update failed."})
		return
	}

	session := GetSession(r.Context())
	slog.Info("vehicle updated", "account", session.AccountID, "vehicle", updated.ID)
	addFlash(w, r, FlashSuccess, fmt.Sprintf("The %s %s was successfully updated.", updated.Make, updated.Model))
	http.Redirect(w, r, "/inv/", http.StatusSeeOther)
}

// DeleteConfirmPage handles GET /inv/delete/{inv_id}.
func (s *Server) DeleteConfirmPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("inv_id"), 10, 64)
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Invalid vehicle.")
		return
	}

	vehicle, err := store.GetVehicle(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get vehicle", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "Sorry, something went wrong.")
		return
	}
	if vehicle == nil {
		s.renderError(w, r, http.StatusNotFound, "Vehicle not found")
		return
	}

	s.renderDeleteConfirm(w, r, http.StatusOK, formFromVehicle(vehicle))
}

func (s *Server) renderDeleteConfirm(w http.ResponseWriter, r *http.Request, status int, form vehicleForm, messages ...Flash) {
	pd := s.pageData(w, r, fmt.Sprintf("Delete %s %s", form.Make, form.Model))
	pd.Messages = append(pd.Messages, messages...)
	s.Templates.Render(w, status, "delete_confirm.html", &struct {
		PageData
		Form vehicleForm
	}{
		PageData: pd,
		Form:     form,
	})
}

// DeleteInventorySubmit handles POST /inv/delete.
func (s *Server) DeleteInventorySubmit(w http.ResponseWriter, r *http.Request) {
	form := readVehicleForm(r)

	id, err := strconv.ParseInt(form.InvID, 10, 64)
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Invalid vehicle.")
		return
	}

	if err := store.DeleteVehicle(r.Context(), s.DB, id); err != nil {
		slog.Error("failed to delete vehicle", "error", err)
		s.renderDeleteConfirm(w, r, http.StatusInternalServerError, form,
			Flash{FlashError, "Sorry, the delete failed."})
		return
	}

	session := GetSession(r.Context())
	slog.Info("vehicle deleted", "account", session.AccountID, "vehicle", id)
	addFlash(w, r, FlashSuccess, fmt.Sprintf("The %s %s was successfully deleted.", form.Make, form.Model))
	http.Redirect(w, r, "/inv/", http.StatusSeeOther)
}
