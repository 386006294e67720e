package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/csemotors/inventory/internal/model"
	"github.com/csemotors/inventory/internal/store"
)

// WishlistHandler handles wishlist endpoints for the authenticated account.
type WishlistHandler struct {
	DB *sql.DB
}

type wishlistAddRequest struct {
	InvID int64 `json:"inv_id"`
}

// List handles GET /api/wishlist.
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	vehicles, err := store.ListWishlist(r.Context(), h.DB, claims.AccountID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list wishlist")
		return
	}
	if vehicles == nil {
		vehicles = []model.Vehicle{}
	}
	jsonResponse(w, http.StatusOK, vehicles)
}

// Add handles POST /api/wishlist.
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req wishlistAddRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.InvID <= 0 {
		jsonError(w, http.StatusBadRequest, "inv_id required")
		return
	}

	// Reject unknown vehicles up front so a foreign key failure doesn't
	// surface as a generic storage error.
	vehicle, err := store.GetVehicle(r.Context(), h.DB, req.InvID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to check vehicle")
		return
	}
	if vehicle == nil {
		jsonError(w, http.StatusNotFound, "vehicle not found")
		return
	}

	err = store.AddToWishlist(r.Context(), h.DB, claims.AccountID, req.InvID)
	if errors.Is(err, store.ErrDuplicate) {
		jsonError(w, http.StatusConflict, "vehicle already in wishlist")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to add to wishlist")
		return
	}

	jsonResponse(w, http.StatusCreated, map[string]string{"message": "added to wishlist"})
}

// Remove handles DELETE /api/wishlist/{inv_id}.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	invID, err := strconv.ParseInt(r.PathValue("inv_id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	if err := store.RemoveFromWishlist(r.Context(), h.DB, claims.AccountID, invID); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to remove from wishlist")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "removed from wishlist"})
}
