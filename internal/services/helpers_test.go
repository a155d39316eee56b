package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/annavoronova/recipebook/internal/config"
	"github.com/annavoronova/recipebook/internal/models"
	"github.com/annavoronova/recipebook/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", dbSeq.Add(1))
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
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	}
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		Password:  "irrelevant",
		Role:      models.RoleUser,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %q: %v", username, err)
	}
	return &user
}

var colorSeq atomic.Int64

func seedTag(t *testing.T, db *gorm.DB, name, slug string) *models.Tag {
	t.Helper()

	// Tag colors are unique, so every seeded tag gets a fresh one.
	tag := models.Tag{Name: name, Color: fmt.Sprintf("#%06X", colorSeq.Add(1)), Slug: slug}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("failed to seed tag %q: %v", name, err)
	}
	return &tag
}

func seedIngredient(t *testing.T, db *gorm.DB, product, unit string) *models.Ingredient {
	t.Helper()

	var p models.Product
	if err := db.Where(models.Product{Name: product}).FirstOrCreate(&p).Error; err != nil {
		t.Fatalf("failed to seed product %q: %v", product, err)
	}
	var u models.Unit
	if err := db.Where(models.Unit{Name: unit}).FirstOrCreate(&u).Error; err != nil {
		t.Fatalf("failed to seed unit %q: %v", unit, err)
	}
	ing := models.Ingredient{ProductID: p.ID, UnitID: u.ID}
	if err := db.Create(&ing).Error; err != nil {
		t.Fatalf("failed to seed ingredient %q: %v", product, err)
	}
	return &ing
}

func newRecipeService(db *gorm.DB, t *testing.T) *RecipeService {
	t.Helper()
	return NewRecipeService(db, storage.NewMediaStore(t.TempDir()), NewUserService(db))
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
