package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/csemotors/inventory/internal/auth"
	"github.com/csemotors/inventory/internal/store"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	DB        *sql.DB
	JWTSecret string
}

type loginRequest struct {
	Email    string `json:"account_email"`
	Password string `json:"account_password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "email and password required")
		return
	}

	account, err := store.GetAccountByEmail(r.Context(), h.DB, req.Email)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if account == nil {
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		slog.Warn("login failed", "email", req.Email, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, account.ID, account.Type, account.Firstname)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("account logged in", "account", account.ID, "type", account.Type)
	jsonResponse(w, http.StatusOK, loginResponse{Token: token})
}

// Logout handles POST /api/auth/logout by revoking the token's JTI.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil || claims.ID == "" {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := store.RevokeToken(r.Context(), h.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
		slog.Error("failed to revoke token", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to log out")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}
