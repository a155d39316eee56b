package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/annavoronova/recipebook/internal/config"
	"github.com/annavoronova/recipebook/internal/handlers"
	"github.com/annavoronova/recipebook/internal/models"
	"github.com/annavoronova/recipebook/internal/services"
	"github.com/annavoronova/recipebook/internal/storage"
	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:routes%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.RefreshToken{},
		&models.Unit{},
		&models.Product{},
		&models.Ingredient{},
		&models.Tag{},
		&models.Recipe{},
		&models.RecipeTag{},
		&models.RecipeIngredient{},
		&models.Favorite{},
		&models.CartItem{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
		DefaultPageSize:  6,
	}

	media := storage.NewMediaStore(t.TempDir())
	userService := services.NewUserService(db)

	app := fiber.New()
	Setup(app, cfg, db,
		handlers.NewAuthHandler(services.NewAuthService(db, cfg)),
		handlers.NewUserHandler(userService, cfg.DefaultPageSize),
		handlers.NewCatalogHandler(services.NewCatalogService(db)),
		handlers.NewRecipeHandler(
			services.NewRecipeService(db, media, userService),
			services.NewRelationService(db),
			services.NewShoppingListService(db, media),
			cfg.DefaultPageSize,
		),
		handlers.NewHealthHandler(),
	)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return resp, raw
}

func registerUser(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	resp, raw := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":      username + "@example.com",
		"username":   username,
		"first_name": "Test",
		"last_name":  "User",
		"password":   "password123",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register returned %d: %s", resp.StatusCode, raw)
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}
	return out.AccessToken
}

func TestRecipeFlowOverHTTP(t *testing.T) {
	app, db := newTestApp(t)
	token := registerUser(t, app, "anna")

	var tag models.Tag
	db.Create(&models.Tag{Name: "dinner", Color: "#49B64E", Slug: "dinner"})
	db.First(&tag)
	var product models.Product
	db.Create(&models.Product{Name: "beet"})
	db.First(&product)
	var unit models.Unit
	db.Create(&models.Unit{Name: "g"})
	db.First(&unit)
	var ing models.Ingredient
	db.Create(&models.Ingredient{ProductID: product.ID, UnitID: unit.ID})
	db.First(&ing)

	payload := fiber.Map{
		"name":         "Borscht",
		"image":        "images/borscht.png",
		"text":         "Simmer everything.",
		"cooking_time": 90,
		"tags":         []uint{tag.ID},
		"ingredients":  []fiber.Map{{"id": ing.ID, "amount": 300}},
	}

	// Anonymous creation is rejected.
	resp, _ := doJSON(t, app, http.MethodPost, "/api/recipes", "", payload)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous create returned %d, want 401", resp.StatusCode)
	}

	resp, raw := doJSON(t, app, http.MethodPost, "/api/recipes", token, payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create returned %d: %s", resp.StatusCode, raw)
	}
	var created struct {
		ID          uint `json:"id"`
		Ingredients []struct {
			Amount int `json:"amount"`
		} `json:"ingredients"`
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("failed to decode recipe: %v", err)
	}
	if len(created.Ingredients) != 1 || created.Ingredients[0].Amount != 300 {
		t.Fatalf("unexpected ingredients: %s", raw)
	}

	// The list is public.
	resp, raw = doJSON(t, app, http.MethodGet, "/api/recipes", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list returned %d: %s", resp.StatusCode, raw)
	}
	var list struct {
		Count int64 `json:"count"`
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if list.Count != 1 {
		t.Fatalf("expected 1 recipe, got %d", list.Count)
	}

	// Favoriting your own recipe is a self-reference error.
	resp, raw = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/recipes/%d/favorite", created.ID), token, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("self-favorite returned %d: %s", resp.StatusCode, raw)
	}
	var errBody struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(raw, &errBody); err != nil {
		t.Fatalf("failed to decode error: %v", err)
	}
	if errBody.Code != "self_reference_forbidden" {
		t.Fatalf("unexpected error code %q", errBody.Code)
	}

	// Another user can favorite it and filter by favorites.
	other := registerUser(t, app, "boris")
	resp, raw = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/recipes/%d/favorite", created.ID), other, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("favorite returned %d: %s", resp.StatusCode, raw)
	}
	resp, raw = doJSON(t, app, http.MethodGet, "/api/recipes?is_favorited=1", other, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("favorites filter returned %d: %s", resp.StatusCode, raw)
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if list.Count != 1 {
		t.Fatalf("expected 1 favorited recipe, got %d", list.Count)
	}
}

func TestMeRequiresAuth(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/users/me", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous /users/me returned %d, want 401", resp.StatusCode)
	}

	token := registerUser(t, app, "anna")
	resp, raw := doJSON(t, app, http.MethodGet, "/api/users/me", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/users/me returned %d: %s", resp.StatusCode, raw)
	}
	var profile struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(raw, &profile); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if profile.Username != "anna" {
		t.Fatalf("unexpected profile: %s", raw)
	}
}

func TestAdminCatalogRequiresRole(t *testing.T) {
	app, db := newTestApp(t)
	token := registerUser(t, app, "anna")

	body := fiber.Map{"name": "dinner", "color": "#49B64E", "slug": "dinner"}
	resp, _ := doJSON(t, app, http.MethodPost, "/api/admin/tags", token, body)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("non-admin create tag returned %d, want 403", resp.StatusCode)
	}

	// Promote and retry with a fresh token carrying the admin role.
	db.Model(&models.User{}).Where("username = ?", "anna").Update("role", models.RoleAdmin)
	resp, raw := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "anna@example.com", "password": "password123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login returned %d: %s", resp.StatusCode, raw)
	}
	var login struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(raw, &login); err != nil {
		t.Fatalf("failed to decode login: %v", err)
	}

	resp, raw = doJSON(t, app, http.MethodPost, "/api/admin/tags", login.AccessToken, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("admin create tag returned %d: %s", resp.StatusCode, raw)
	}
}
