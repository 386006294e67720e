package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/csemotors/inventory/internal/db"
	"github.com/csemotors/inventory/internal/model"
	"github.com/csemotors/inventory/internal/store"
)

const testJWTSecret = "test-secret"

func setupTestServer(t *testing.T) (*httptest.Server, *sql.DB, string) {
	t.Helper()
	database := db.NewTestDB(t)
	router := NewRouter(database, testJWTSecret)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	// Create a staff account.
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	store.CreateAccount(ctx, database, "Alice", "Smith", "alice@example.com", string(hash), model.TypeAdmin)

	// Get token.
	body, _ := json.Marshal(map[string]string{
		"account_email":    "alice@example.com",
		"account_password": "password",
	})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	var loginResp map[string]string
	json.NewDecoder(resp.Body).Decode(&loginResp)
	token := loginResp["token"]
	if token == "" {
		t.Fatal("empty token from login")
	}

	return server, database, token
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func TestLoginBadPassword(t *testing.T) {
	server, _, _ := setupTestServer(t)

	body, _ := json.Marshal(map[string]string{
		"account_email":    "alice@example.com",
		"account_password": "wrong",
	})
	resp, _ := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestClassificationAPIFlow(t *testing.T) {
	server, _, token := setupTestServer(t)

	// Create classification.
	req, _ := authRequest("POST", server.URL+"/api/classifications", token, map[string]string{
		"classification_name": "Sedan",
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Duplicate is a conflict.
	req, _ = authRequest("POST", server.URL+"/api/classifications", token, map[string]string{
		"classification_name": "Sedan",
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// List is public.
	resp, _ = http.Get(server.URL + "/api/classifications")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var classifications []model.Classification
	json.NewDecoder(resp.Body).Decode(&classifications)
	resp.Body.Close()
	if len(classifications) != 1 {
		t.Errorf("expected 1 classification, got %d", len(classifications))
	}
}

func TestVehicleAPIFlow(t *testing.T) {
	server, database, token := setupTestServer(t)

	c, _ := store.CreateClassification(context.Background(), database, "SUV")

	vehicle := map[string]any{
		"inv_make":          "Jeep",
		"inv_model":         "Wrangler",
		"inv_year":          2022,
		"inv_description":   "Trail ready.",
		"inv_price":         41000,
		"inv_miles":         5000,
		"inv_color":         "Green",
		"classification_id": c.ID,
	}

	// Create.
	req, _ := authRequest("POST", server.URL+"/api/vehicles", token, vehicle)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created model.Vehicle
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	// Duplicate tuple is a conflict.
	req, _ = authRequest("POST", server.URL+"/api/vehicles", token, vehicle)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate tuple, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Get.
	resp, _ = http.Get(server.URL + "/api/vehicles/" + itoa(created.ID))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Missing vehicle is a 404.
	resp, _ = http.Get(server.URL + "/api/vehicles/9999")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestVehicleCreateRequiresAllFields(t *testing.T) {
	server, database, token := setupTestServer(t)

	c, _ := store.CreateClassification(context.Background(), database, "SUV")

	// Description and color are required, same as the web form.
	for _, missing := range []string{"inv_description", "inv_color"} {
		vehicle := map[string]any{
			"inv_make":          "Jeep",
			"inv_model":         "Wrangler",
			"inv_year":          2022,
			"inv_description":   "Trail ready.",
			"inv_price":         41000,
			"inv_miles":         5000,
			"inv_color":         "Green",
			"classification_id": c.ID,
		}
		vehicle[missing] = ""

		req, _ := authRequest("POST", server.URL+"/api/vehicles", token, vehicle)
		resp, _ := http.DefaultClient.Do(req)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("empty %s: expected 400, got %d", missing, resp.StatusCode)
		}
		resp.Body.Close()
	}
}

func TestVehicleListEmptyClassification(t *testing.T) {
	server, database, _ := setupTestServer(t)

	c, _ := store.CreateClassification(context.Background(), database, "Coupe")

	resp, _ := http.Get(server.URL + "/api/vehicles?classification_id=" + itoa(c.ID))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var vehicles []model.Vehicle
	json.NewDecoder(resp.Body).Decode(&vehicles)
	resp.Body.Close()
	if vehicles == nil || len(vehicles) != 0 {
		t.Errorf("expected empty array, got %v", vehicles)
	}
}

func TestWishlistAPIFlow(t *testing.T) {
	server, database, token := setupTestServer(t)
	ctx := context.Background()

	c, _ := store.CreateClassification(ctx, database, "Truck")
	v, _ := store.CreateVehicle(ctx, database, model.VehicleInput{
		Make: "Ford", Model: "F-150", Year: 2021, Description: "Workhorse.",
		Image: "/images/vehicles/no-image.png", Thumbnail: "/images/vehicles/no-image-tn.png",
		Price: 38000, Miles: 12000, Color: "Black", ClassificationID: c.ID,
	})

	// Add.
	req, _ := authRequest("POST", server.URL+"/api/wishlist", token, map[string]int64{"inv_id": v.ID})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Second add is a conflict.
	req, _ = authRequest("POST", server.URL+"/api/wishlist", token, map[string]int64{"inv_id": v.ID})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate wishlist entry, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// List has exactly one entry.
	req, _ = authRequest("GET", server.URL+"/api/wishlist", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	var vehicles []model.Vehicle
	json.NewDecoder(resp.Body).Decode(&vehicles)
	resp.Body.Close()
	if len(vehicles) != 1 {
		t.Errorf("expected 1 wishlisted vehicle, got %d", len(vehicles))
	}

	// Remove.
	req, _ = authRequest("DELETE", server.URL+"/api/wishlist/"+itoa(v.ID), token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestStaffRequiredForWrites(t *testing.T) {
	server, database, _ := setupTestServer(t)
	ctx := context.Background()

	// Log in as a client account.
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	store.CreateAccount(ctx, database, "Bob", "Jones", "bob@example.com", string(hash), model.TypeClient)

	body, _ := json.Marshal(map[string]string{
		"account_email":    "bob@example.com",
		"account_password": "password",
	})
	resp, _ := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	var loginResp map[string]string
	json.NewDecoder(resp.Body).Decode(&loginResp)
	resp.Body.Close()

	req, _ := authRequest("POST", server.URL+"/api/classifications", loginResp["token"], map[string]string{
		"classification_name": "Sedan",
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for client account, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Nothing was created.
	classifications, _ := store.ListClassifications(ctx, database)
	if len(classifications) != 0 {
		t.Errorf("expected no classifications after forbidden request, got %d", len(classifications))
	}
}

func TestRevokedTokenRejected(t *testing.T) {
	server, _, token := setupTestServer(t)

	// Log out, revoking the token.
	req, _ := authRequest("POST", server.URL+"/api/auth/logout", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ = authRequest("GET", server.URL+"/api/wishlist", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for revoked token, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
