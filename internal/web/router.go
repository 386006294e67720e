package web

import (
	"database/sql"
	"net/http"

	webembed "github.com/csemotors/inventory/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, jwtSecret string) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Templates: templates,
		JWTSecret: jwtSecret,
	}

	mux := http.NewServeMux()

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /{$}", s.HomePage)
	mux.HandleFunc("GET /inv/type/{classificationId}", s.ClassificationPage)
	mux.HandleFunc("GET /inv/detail/{invId}", s.DetailPage)
	mux.HandleFunc("GET /inv/getInventory/{classification_id}", s.InventoryJSON)
	mux.HandleFunc("GET /inv/photo/{inv_id}", s.VehiclePhoto)
	mux.HandleFunc("GET /inv/photo/{inv_id}/thumb", s.VehiclePhotoThumb)

	mux.HandleFunc("GET /account/login", s.LoginPage)
	mux.HandleFunc("POST /account/login", s.LoginSubmit)
	mux.HandleFunc("GET /account/register", s.RegisterPage)
	mux.HandleFunc("POST /account/register", s.RegisterSubmit)
	mux.HandleFunc("POST /account/logout", s.Logout)

	// Logged-in routes.
	login := func(h http.HandlerFunc) http.Handler { return RequireLogin(h) }
	mux.Handle("GET /account/{$}", login(s.AccountPage))
	mux.Handle("POST /account/update-password", login(s.UpdatePasswordSubmit))
	mux.Handle("POST /wishlist/add", login(s.WishlistAdd))
	mux.Handle("GET /wishlist", login(s.WishlistPage))
	mux.Handle("GET /wishlist/json", login(s.WishlistJSON))
	mux.Handle("POST /wishlist/delete", login(s.WishlistDelete))

	// Staff routes (Admin/Employee).
	staff := func(h http.HandlerFunc) http.Handler { return RequireStaff(h) }
	mux.Handle("GET /inv/{$}", staff(s.ManagementPage))
	mux.Handle("GET /inv/add-classification", staff(s.AddClassificationPage))
	mux.Handle("POST /inv/add-classification", staff(s.AddClassificationSubmit))
	mux.Handle("GET /inv/add-inventory", staff(s.AddInventoryPage))
	mux.Handle("POST /inv/add-inventory", staff(s.AddInventorySubmit))
	mux.Handle("GET /inv/edit/{inv_id}", staff(s.EditInventoryPage))
	mux.Handle("POST /inv/update", staff(s.UpdateInventorySubmit))
	mux.Handle("GET /inv/delete/{inv_id}", staff(s.DeleteConfirmPage))
	mux.Handle("POST /inv/delete", staff(s.DeleteInventorySubmit))
	mux.Handle("POST /inv/photo/{inv_id}", staff(s.VehiclePhotoSubmit))

	// Every route sees the session (guards above run after this).
	return SessionMiddleware(jwtSecret, db)(mux), nil
}
