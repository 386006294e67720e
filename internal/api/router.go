package api

import (
	"database/sql"
	"net/http"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	classificationsHandler := &ClassificationsHandler{DB: db}
	vehiclesHandler := &VehiclesHandler{DB: db}
	wishlistHandler := &WishlistHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Classifications: read (public), write (staff).
	mux.HandleFunc("GET /api/classifications", classificationsHandler.List)
	mux.Handle("POST /api/classifications", authMW(RequireStaff(http.HandlerFunc(classificationsHandler.Create))))

	// Vehicles: read (public), write (staff).
	mux.HandleFunc("GET /api/vehicles", vehiclesHandler.List)
	mux.HandleFunc("GET /api/vehicles/{id}", vehiclesHandler.Get)
	mux.Handle("POST /api/vehicles", authMW(RequireStaff(http.HandlerFunc(vehiclesHandler.Create))))
	mux.Handle("PUT /api/vehicles/{id}", authMW(RequireStaff(http.HandlerFunc(vehiclesHandler.Update))))
	mux.Handle("DELETE /api/vehicles/{id}", authMW(RequireStaff(http.HandlerFunc(vehiclesHandler.Delete))))

	// Wishlist (any authenticated account).
	mux.Handle("GET /api/wishlist", authMW(http.HandlerFunc(wishlistHandler.List)))
	mux.Handle("POST /api/wishlist", authMW(http.HandlerFunc(wishlistHandler.Add)))
	mux.Handle("DELETE /api/wishlist/{inv_id}", authMW(http.HandlerFunc(wishlistHandler.Remove)))

	return mux
}
