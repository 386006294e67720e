package web

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/csemotors/inventory/internal/db"
	"github.com/csemotors/inventory/internal/model"
	"github.com/csemotors/inventory/internal/store"
)

const testJWTSecret = "test-secret"

func setupWebServer(t *testing.T) (*httptest.Server, *sql.DB) {
	t.Helper()
	database := db.NewTestDB(t)

	router, err := NewRouter(database, testJWTSecret)
	if err != nil {
		t.Fatalf("creating router: %v", err)
	}

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, database
}

// newBrowser returns a client with a cookie jar, like a browser session.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("creating cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func createAccount(t *testing.T, database *sql.DB, email, accountType string) {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	_, err := store.CreateAccount(context.Background(), database, "Alice", "Smith", email, string(hash), accountType)
	if err != nil {
		t.Fatalf("creating account: %v", err)
	}
}

func login(t *testing.T, client *http.Client, serverURL, email string) {
	t.Helper()
	resp, err := client.PostForm(serverURL+"/account/login", url.Values{
		"account_email":    {email},
		"account_password": {"password"},
	})
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return string(body)
}

func vehicleFormValues(classificationID int64) url.Values {
	return url.Values{
		"inv_make":          {"Toyota"},
		"inv_model":         {"Corolla"},
		"inv_year":          {"2020"},
		"inv_description":   {"Reliable commuter."},
		"inv_price":         {"18000"},
		"inv_miles":         {"25000"},
		"inv_color":         {"Blue"},
		"classification_id": {strconv.FormatInt(classificationID, 10)},
	}
}

func TestGuardBlocksUnauthenticatedWrites(t *testing.T) {
	server, database := setupWebServer(t)
	ctx := context.Background()

	c, _ := store.CreateClassification(ctx, database, "Sedan")

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.PostForm(server.URL+"/inv/add-inventory", vehicleFormValues(c.ID))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("expected 303 redirect, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/account/login" {
		t.Errorf("expected redirect to /account/login, got %q", loc)
	}

	// The insert must not have happened.
	vehicles, _ := store.ListVehiclesByClassification(ctx, database, c.ID)
	if len(vehicles) != 0 {
		t.Errorf("expected no vehicles after blocked request, got %d", len(vehicles))
	}
}

func TestClientCannotManageInventory(t *testing.T) {
	server, database := setupWebServer(t)
	createAccount(t, database, "client@example.com", model.TypeClient)

	client := newBrowser(t)
	login(t, client, server.URL, "client@example.com")

	resp, err := client.Get(server.URL + "/inv/")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	body := readBody(t, resp)

	// Redirected to the login page with an explanation.
	if !strings.Contains(body, "You do not have permission to manage inventory.") {
		t.Error("expected permission message after redirect")
	}
}

func TestAddInventoryFlow(t *testing.T) {
	server, database := setupWebServer(t)
	ctx := context.Background()

	createAccount(t, database, "staff@example.com", model.TypeEmployee)
	c, _ := store.CreateClassification(ctx, database, "Sedan")

	client := newBrowser(t)
	login(t, client, server.URL, "staff@example.com")

	resp, err := client.PostForm(server.URL+"/inv/add-inventory", vehicleFormValues(c.ID))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "Successfully added Toyota inventory.") {
		t.Error("expected success message on management page")
	}

	vehicles, _ := store.ListVehiclesByClassification(ctx, database, c.ID)
	if len(vehicles) != 1 {
		t.Fatalf("expected 1 vehicle, got %d", len(vehicles))
	}
}

func TestAddInventoryDuplicatePreservesValues(t *testing.T) {
	server, database := setupWebServer(t)
	ctx := context.Background()

	createAccount(t, database, "staff@example.com", model.TypeEmployee)
	c, _ := store.CreateClassification(ctx, database, "Sedan")

	client := newBrowser(t)
	login(t, client, server.URL, "staff@example.com")

	form := vehicleFormValues(c.ID)
	resp, _ := client.PostForm(server.URL+"/inv/add-inventory", form)
	resp.Body.Close()

	resp, err := client.PostForm(server.URL+"/inv/add-inventory", form)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for duplicate, got %d", resp.StatusCode)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "This inventory item already exists.") {
		t.Error("expected duplicate message")
	}
	if !strings.Contains(body, `value="Corolla"`) {
		t.Error("expected entered model to be preserved in the form")
	}
}

func TestAddClassificationInvalidName(t *testing.T) {
	server, database := setupWebServer(t)
	createAccount(t, database, "staff@example.com", model.TypeAdmin)

	client := newBrowser(t)
	login(t, client, server.URL, "staff@example.com")

	resp, err := client.PostForm(server.URL+"/inv/add-classification", url.Values{
		"classification_name": {"Sport Utility"},
	})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for name with a space, got %d", resp.StatusCode)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "A valid classification name is required.") {
		t.Error("expected validation message")
	}
}

func TestDetailPageNotFound(t *testing.T) {
	server, _ := setupWebServer(t)

	resp, err := http.Get(server.URL + "/inv/detail/999")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "Vehicle not found") {
		t.Error("expected not-found message")
	}
}

func TestClassificationPage(t *testing.T) {
	server, database := setupWebServer(t)

	c, _ := store.CreateClassification(context.Background(), database, "Coupe")

	// Known classification with no vehicles renders a notice.
	resp, _ := http.Get(server.URL + "/inv/type/" + strconv.FormatInt(c.ID, 10))
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for empty classification, got %d", resp.StatusCode)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "no matching vehicles could be found") {
		t.Error("expected empty-classification notice")
	}

	// Unknown classification is a 404.
	resp, _ = http.Get(server.URL + "/inv/type/999")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown classification, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestInventoryJSONEmpty(t *testing.T) {
	server, database := setupWebServer(t)

	c, _ := store.CreateClassification(context.Background(), database, "Truck")

	resp, err := http.Get(server.URL + "/inv/getInventory/" + strconv.FormatInt(c.ID, 10))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	body := readBody(t, resp)
	if strings.TrimSpace(body) != "[]" {
		t.Errorf("expected empty JSON array, got %q", body)
	}
}

func TestWishlistDoubleAdd(t *testing.T) {
	server, database := setupWebServer(t)
	ctx := context.Background()

	createAccount(t, database, "client@example.com", model.TypeClient)
	c, _ := store.CreateClassification(ctx, database, "SUV")
	v, _ := store.CreateVehicle(ctx, database, model.VehicleInput{
		Make: "Jeep", Model: "Wrangler", Year: 2022, Description: "Trail ready.",
		Image: "/images/vehicles/no-image.png", Thumbnail: "/images/vehicles/no-image-tn.png",
		Price: 41000, Miles: 5000, Color: "Green", ClassificationID: c.ID,
	})

	client := newBrowser(t)
	login(t, client, server.URL, "client@example.com")

	form := url.Values{"inv_id": {strconv.FormatInt(v.ID, 10)}}
	resp, _ := client.PostForm(server.URL+"/wishlist/add", form)
	resp.Body.Close()

	resp, err := client.PostForm(server.URL+"/wishlist/add", form)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "This vehicle is already in your wishlist.") {
		t.Error("expected duplicate wishlist message after redirect")
	}

	entries, _ := store.ListWishlist(ctx, database, 1)
	if len(entries) != 1 {
		t.Errorf("expected 1 wishlist entry, got %d", len(entries))
	}
}

func TestLoginWrongPassword(t *testing.T) {
	server, database := setupWebServer(t)
	createAccount(t, database, "alice@example.com", model.TypeClient)

	client := newBrowser(t)
	resp, err := client.PostForm(server.URL+"/account/login", url.Values{
		"account_email":    {"alice@example.com"},
		"account_password": {"wrong"},
	})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "Incorrect email or password.") {
		t.Error("expected login failure message")
	}
	if !strings.Contains(body, `value="alice@example.com"`) {
		t.Error("expected entered email to be preserved")
	}
}

func TestChangePassword(t *testing.T) {
	server, database := setupWebServer(t)
	ctx := context.Background()

	createAccount(t, database, "alice@example.com", model.TypeClient)

	client := newBrowser(t)
	login(t, client, server.URL, "alice@example.com")

	resp, err := client.PostForm(server.URL+"/account/update-password", url.Values{
		"account_password": {"new-password"},
	})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "Your password has been updated.") {
		t.Error("expected password-change confirmation after redirect")
	}

	account, _ := store.GetAccountByEmail(ctx, database, "alice@example.com")
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("new-password")); err != nil {
		t.Error("expected stored hash to match the new password")
	}
}

func TestChangePasswordTooShort(t *testing.T) {
	server, database := setupWebServer(t)
	ctx := context.Background()

	createAccount(t, database, "alice@example.com", model.TypeClient)

	client := newBrowser(t)
	login(t, client, server.URL, "alice@example.com")

	resp, err := client.PostForm(server.URL+"/account/update-password", url.Values{
		"account_password": {"short"},
	})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "Password must be at least 8 characters.") {
		t.Error("expected length message after redirect")
	}

	// The old password still works.
	account, _ := store.GetAccountByEmail(ctx, database, "alice@example.com")
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("password")); err != nil {
		t.Error("expected stored hash to be unchanged")
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	server, database := setupWebServer(t)
	createAccount(t, database, "alice@example.com", model.TypeClient)

	client := newBrowser(t)
	login(t, client, server.URL, "alice@example.com")

	resp, _ := client.PostForm(server.URL+"/account/logout", nil)
	resp.Body.Close()

	// The account page now redirects to login.
	noRedirect := &http.Client{
		Jar: client.Jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := noRedirect.Get(server.URL + "/account/")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("expected 303 after logout, got %d", resp.StatusCode)
	}
}
