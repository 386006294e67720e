package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/csemotors/inventory/internal/imaging"
	"github.com/csemotors/inventory/internal/store"
)

// VehiclePhotoSubmit handles POST /inv/photo/{inv_id}.
func (s *Server) VehiclePhotoSubmit(w http.ResponseWriter, r *http.Request) {
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

	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		addFlash(w, r, FlashError, "Photo is too large (5 MB max).")
		http.Redirect(w, r, fmt.Sprintf("/inv/edit/%d", id), http.StatusSeeOther)
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		addFlash(w, r, FlashError, "A photo file is required.")
		http.Redirect(w, r, fmt.Sprintf("/inv/edit/%d", id), http.StatusSeeOther)
		return
	}
	defer file.Close()

	// Validate format by sniffing bytes, downscale, build both renditions.
	result, err := imaging.Process(file)
	if err != nil {
		addFlash(w, r, FlashError, err.Error())
		http.Redirect(w, r, fmt.Sprintf("/inv/edit/%d", id), http.StatusSeeOther)
		return
	}

	if err := store.SetVehiclePhoto(r.Context(), s.DB, id, result.Full, result.Thumb, result.MIME); err != nil {
		slog.Error("failed to save vehicle photo", "error", err)
		addFlash(w, r, FlashError, "Sorry, the photo upload failed.")
		http.Redirect(w, r, fmt.Sprintf("/inv/edit/%d", id), http.StatusSeeOther)
		return
	}

	session := GetSession(r.Context())
	slog.Info("vehicle photo uploaded", "account", session.AccountID, "vehicle", id)
	addFlash(w, r, FlashSuccess, "Photo uploaded.")
	http.Redirect(w, r, fmt.Sprintf("/inv/edit/%d", id), http.StatusSeeOther)
}

// VehiclePhoto handles GET /inv/photo/{inv_id}.
func (s *Server) VehiclePhoto(w http.ResponseWriter, r *http.Request) {
	s.serveVehiclePhoto(w, r, false)
}

// VehiclePhotoThumb handles GET /inv/photo/{inv_id}/thumb.
func (s *Server) VehiclePhotoThumb(w http.ResponseWriter, r *http.Request) {
	s.serveVehiclePhoto(w, r, true)
}

func (s *Server) serveVehiclePhoto(w http.ResponseWriter, r *http.Request, thumb bool) {
	id, err := strconv.ParseInt(r.PathValue("inv_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	data, mime, err := store.GetVehiclePhoto(r.Context(), s.DB, id, thumb)
	if err != nil {
		slog.Error("failed to get vehicle photo", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write photo response", "error", err)
	}
}
