package web

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/csemotors/inventory/internal/auth"
	"github.com/csemotors/inventory/internal/model"
	"github.com/csemotors/inventory/internal/store"
)

type webContextKey string

const sessionKey webContextKey = "session"

// SessionMiddleware validates the JWT cookie, checks token revocation, and
// adds the session claims to the request context. Requests without a valid
// token pass through unauthenticated; page guards decide what requires login.
func SessionMiddleware(secret string, db *sql.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("jwt")
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ValidateToken(secret, cookie.Value)
			if err != nil {
				clearAuthCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			// Check if the token has been revoked.
			if claims.ID != "" {
				revoked, err := store.IsTokenRevoked(r.Context(), db, claims.ID)
				if err != nil {
					slog.Error("failed to check token revocation", "error", err)
					clearAuthCookie(w)
					next.ServeHTTP(w, r)
					return
				}
				if revoked {
					clearAuthCookie(w)
					next.ServeHTTP(w, r)
					return
				}
			}

			ctx := context.WithValue(r.Context(), sessionKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLogin is a guard that terminates request handling with a redirect to
// the login page when no account is logged in.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetSession(r.Context()) == nil {
			addFlash(w, r, FlashError, "Please log in.")
			http.Redirect(w, r, "/account/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireStaff is a guard that terminates request handling unless the session
// account is an Admin or Employee.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := GetSession(r.Context())
		if session == nil {
			addFlash(w, r, FlashError, "You must be logged in to manage inventory.")
			http.Redirect(w, r, "/account/login", http.StatusSeeOther)
			return
		}
		if !model.IsStaff(session.AccountType) {
			addFlash(w, r, FlashError, "You do not have permission to manage inventory.")
			http.Redirect(w, r, "/account/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clearAuthCookie clears the authentication cookie with consistent attributes.
func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "jwt",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// GetSession retrieves the session claims from the request context.
func GetSession(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(sessionKey).(*auth.Claims)
	return claims
}
