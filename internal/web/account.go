package web

import (
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/csemotors/inventory/internal/auth"
	"github.com/csemotors/inventory/internal/model"
	"github.com/csemotors/inventory/internal/store"
)

// LoginPage handles GET /account/login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, http.StatusOK, "login.html", &struct {
		PageData
		Email string
	}{
		PageData: s.pageData(w, r, "Login"),
	})
}

func (s *Server) renderLogin(w http.ResponseWriter, r *http.Request, status int, email, message string) {
	pd := s.pageData(w, r, "Login")
	pd.Messages = append(pd.Messages, Flash{Severity: FlashError, Text: message})
	s.Templates.Render(w, status, "login.html", &struct {
		PageData
		Email string
	}{
		PageData: pd,
		Email:    email,
	})
}

// LoginSubmit handles POST /account/login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("account_email"))
	password := r.FormValue("account_password")

	if email == "" || password == "" {
		s.renderLogin(w, r, http.StatusBadRequest, email, "Please enter your email and password.")
		return
	}

	account, err := store.GetAccountByEmail(r.Context(), s.DB, email)
	if err != nil || account == nil {
		s.renderLogin(w, r, http.StatusUnauthorized, email, "Incorrect email or password.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		slog.Warn("login failed", "email", email, "remote", r.RemoteAddr)
		s.renderLogin(w, r, http.StatusUnauthorized, email, "Incorrect email or password.")
		return
	}

	token, err := auth.GenerateToken(s.JWTSecret, account.ID, account.Type, account.Firstname)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		s.renderLogin(w, r, http.StatusInternalServerError, email, "Sorry, the login failed.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "jwt",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.TokenExpiry / time.Second),
	})

	slog.Info("account logged in", "account", account.ID, "type", account.Type)
	http.Redirect(w, r, "/account/", http.StatusSeeOther)
}

// RegisterPage handles GET /account/register.
func (s *Server) RegisterPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, http.StatusOK, "register.html", &struct {
		PageData
		Firstname, Lastname, Email string
	}{
		PageData: s.pageData(w, r, "Register"),
	})
}

func (s *Server) renderRegister(w http.ResponseWriter, r *http.Request, status int, firstname, lastname, email, message string) {
	pd := s.pageData(w, r, "Register")
	pd.Messages = append(pd.Messages, Flash{Severity: FlashError, Text: message})
	s.Templates.Render(w, status, "register.html", &struct {
		PageData
		Firstname, Lastname, Email string
	}{
		PageData:  pd,
		Firstname: firstname,
		Lastname:  lastname,
		Email:     email,
	})
}

// RegisterSubmit handles POST /account/register.
func (s *Server) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	firstname := strings.TrimSpace(r.FormValue("account_firstname"))
	lastname := strings.TrimSpace(r.FormValue("account_lastname"))
	email := strings.TrimSpace(r.FormValue("account_email"))
	password := r.FormValue("account_password")

	if firstname == "" || lastname == "" {
		s.renderRegister(w, r, http.StatusBadRequest, firstname, lastname, email, "Please provide your first and last name.")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		s.renderRegister(w, r, http.StatusBadRequest, firstname, lastname, email, "A valid email address is required.")
		return
	}
	if len(password) < 8 {
		s.renderRegister(w, r, http.StatusBadRequest, firstname, lastname, email, "Password must be at least 8 characters.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		s.renderRegister(w, r, http.StatusInternalServerError, firstname, lastname, email, "Sorry, the registration failed.")
		return
	}

	account, err := store.CreateAccount(r.Context(), s.DB, firstname, lastname, email, string(hash), model.TypeClient)
	if err != nil {
		// Covers the duplicate-email case too; don't leak which.
		slog.Warn("registration failed", "email", email, "error", err)
		s.renderRegister(w, r, http.StatusBadRequest, firstname, lastname, email, "Sorry, the registration failed.")
		return
	}

	slog.Info("account registered", "account", account.ID)
	addFlash(w, r, FlashSuccess, "Congratulations, you're registered. Please log in.")
	http.Redirect(w, r, "/account/login", http.StatusSeeOther)
}

// Logout handles POST /account/logout. The token's JTI is revoked so the
// cookie cannot be replayed.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("jwt"); err == nil && cookie.Value != "" {
		if claims, err := auth.ValidateToken(s.JWTSecret, cookie.Value); err == nil && claims.ID != "" {
			if err := store.RevokeToken(r.Context(), s.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
				slog.Error("failed to revoke token", "error", err)
			}
		}
	}

	clearAuthCookie(w)
	http.Redirect(w, r, "/account/login", http.StatusSeeOther)
}

// AccountPage handles GET /account/.
func (s *Server) AccountPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, http.StatusOK, "account.html", &struct {
		PageData
	}{
		PageData: s.pageData(w, r, "Account Management"),
	})
}

// UpdatePasswordSubmit handles POST /account/update-password.
func (s *Server) UpdatePasswordSubmit(w http.ResponseWriter, r *http.Request) {
	session := GetSession(r.Context())

	password := r.FormValue("account_password")
	if len(password) < 8 {
		addFlash(w, r, FlashError, "Password must be at least 8 characters.")
		http.Redirect(w, r, "/account/", http.StatusSeeOther)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		addFlash(w, r, FlashError, "Sorry, the password change failed.")
		http.Redirect(w, r, "/account/", http.StatusSeeOther)
		return
	}

	if err := store.UpdateAccountPassword(r.Context(), s.DB, session.AccountID, string(hash)); err != nil {
		slog.Error("failed to update password", "error", err)
		addFlash(w, r, FlashError, "Sorry, the password change failed.")
		http.Redirect(w, r, "/account/", http.StatusSeeOther)
		return
	}

	slog.Info("account password changed", "account", session.AccountID)
	addFlash(w, r, FlashSuccess, "Your password has been updated.")
	http.Redirect(w, r, "/account/", http.StatusSeeOther)
}
