package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/csemotors/inventory/internal/model"
	"github.com/csemotors/inventory/internal/store"
	"github.com/csemotors/inventory/internal/views"
)

// redirectBack redirects to the referring page, or to the fallback when the
// Referer header is absent.
func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	target := r.Header.Get("Referer")
	if target == "" {
		target = fallback
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// WishlistAdd handles POST /wishlist/add.
func (s *Server) WishlistAdd(w http.ResponseWriter, r *http.Request) {
	session := GetSession(r.Context())

	invID, err := strconv.ParseInt(r.FormValue("inv_id"), 10, 64)
	if err != nil {
		addFlash(w, r, FlashError, "Invalid vehicle.")
		redirectBack(w, r, "/")
		return
	}

	err = store.AddToWishlist(r.Context(), s.DB, session.AccountID, invID)
	if errors.Is(err, store.ErrDuplicate) {
		addFlash(w, r, FlashError, "This vehicle is already in your wishlist.")
		redirectBack(w, r, "/")
		return
	}
	if err != nil {
		slog.Error("failed to add to wishlist", "error", err)
		addFlash(w, r, FlashError, "Sorry, adding to your wishlist failed.")
		redirectBack(w, r, "/")
		return
	}

	slog.Info("vehicle wishlisted", "account", session.AccountID, "vehicle", invID)
	addFlash(w, r, FlashSuccess, "Vehicle added to your wishlist.")
	redirectBack(w, r, "/")
}

// WishlistPage handles GET /wishlist.
func (s *Server) WishlistPage(w http.ResponseWriter, r *http.Request) {
	session := GetSession(r.Context())

	vehicles, err := store.ListWishlist(r.Context(), s.DB, session.AccountID)
	if err != nil {
		slog.Error("failed to list wishlist", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "Sorry, something went wrong.")
		return
	}

	s.Templates.Render(w, http.StatusOK, "wishlist.html", &struct {
		PageData
		Grid any
	}{
		PageData: s.pageData(w, r, session.Firstname+"'s Wishlist"),
		Grid:     views.ClassificationGrid(vehicles),
	})
}

// WishlistJSON handles GET /wishlist/json.
// An empty wishlist yields an empty JSON array, not an error.
func (s *Server) WishlistJSON(w http.ResponseWriter, r *http.Request) {
	session := GetSession(r.Context())

	vehicles, err := store.ListWishlist(r.Context(), s.DB, session.AccountID)
	if err != nil {
		slog.Error("failed to list wishlist", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list wishlist"})
		return
	}
	if vehicles == nil {
		vehicles = []model.Vehicle{}
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// WishlistDelete handles POST /wishlist/delete.
func (s *Server) WishlistDelete(w http.ResponseWriter, r *http.Request) {
	session := GetSession(r.Context())

	invID, err := strconv.ParseInt(r.FormValue("inv_id"), 10, 64)
	if err != nil {
		addFlash(w, r, FlashError, "Invalid vehicle.")
		redirectBack(w, r, "/wishlist")
		return
	}

	if err := store.RemoveFromWishlist(r.Context(), s.DB, session.AccountID, invID); err != nil {
		slog.Error("failed to remove from wishlist", "error", err)
		addFlash(w, r, FlashError, "Sorry, removing from your wishlist failed.")
		redirectBack(w, r, "/wishlist")
		return
	}

	addFlash(w, r, FlashSuccess, "Vehicle removed from your wishlist.")
	redirectBack(w, r, "/wishlist")
}
