package services

import (
	"fmt"

	"github.com/annavoronova/recipebook/internal/apperr"
	"github.com/annavoronova/recipebook/internal/models"
	"github.com/annavoronova/recipebook/internal/storage"
	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"
)

// ShoppingListService folds every recipe in a user's cart into one
// aggregated purchase list and renders it as a PDF document.
type ShoppingListService struct {
	db    *gorm.DB
	media *storage.MediaStore
}

func NewShoppingListService(db *gorm.DB, media *storage.MediaStore) *ShoppingListService {
	return &ShoppingListService{db: db, media: media}
}

// PurchaseItem is one aggregated line: the same ingredient appearing in
// several cart recipes is summed into a single entry.
type PurchaseItem struct {
	Product string
	Unit    string
	Amount  int
}

// Label renders the line the way the catalog labels ingredients.
func (p PurchaseItem) Label() string {
	return p.Product + " (" + p.Unit + ")"
}

// Aggregate sums ingredient amounts across every recipe in the user's
// cart, grouped by product and unit and ordered by product name.
func (s *ShoppingListService) Aggregate(userID uint) ([]PurchaseItem, error) {
	var cartSize int64
	if err := s.db.Model(&models.CartItem{}).
		Where("user_id = ?", userID).
		Count(&cartSize).Error; err != nil {
		return nil, err
	}
	if cartSize == 0 {
		return nil, apperr.New(apperr.CodeEmptyCart, "", "shopping cart is empty")
	}

	var items []PurchaseItem
	err := s.db.Model(&models.RecipeIngredient{}).
		Select("products.name AS product, units.name AS unit, SUM(recipe_ingredients.amount) AS amount").
		Joins("JOIN cart_items ON cart_items.recipe_id = recipe_ingredients.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN products ON products.id = ingredients.product_id").
		Joins("JOIN units ON units.id = ingredients.unit_id").
		Where("cart_items.user_id = ?", userID).
		Group("products.name, units.name").
		Order("products.name, units.name").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// RenderPDF writes the purchase list to a one-off PDF under the media
// root and returns its filename and path on disk.
func (s *ShoppingListService) RenderPDF(items []PurchaseItem) (string, string, error) {
	filename := uuid.New().String() + ".pdf"
	path, err := s.media.DocumentPath(filename)
	if err != nil {
		return "", "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Shopping list", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	for _, item := range items {
		line := fmt.Sprintf("%s: %d", item.Label(), item.Amount)
		pdf.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", "", fmt.Errorf("failed to write shopping list pdf: %w", err)
	}
	return filename, path, nil
}
