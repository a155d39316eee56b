package services

import (
	"errors"

	"github.com/annavoronova/recipebook/internal/apperr"
	"github.com/annavoronova/recipebook/internal/dto"
	"github.com/annavoronova/recipebook/internal/models"
	"gorm.io/gorm"
)

// CatalogService serves the shared reference data: tags and the
// product/unit ingredient catalog. Read-only; catalog rows are maintained
// through the admin side.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListTags() ([]dto.TagResponse, error) {
	var tags []models.Tag
	if err := s.db.Order("name").Find(&tags).Error; err != nil {
		return nil, err
	}
	resp := make([]dto.TagResponse, 0, len(tags))
	for _, t := range tags {
		resp = append(resp, dto.TagResponse{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug})
	}
	return resp, nil
}

func (s *CatalogService) GetTag(tagID uint) (*dto.TagResponse, error) {
	var tag models.Tag
	if err := s.db.First(&tag, tagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Newf(apperr.CodeNotFound, "tag", "no tag with id %d", tagID)
		}
		return nil, err
	}
	return &dto.TagResponse{ID: tag.ID, Name: tag.Name, Color: tag.Color, Slug: tag.Slug}, nil
}

// ListIngredients searches the catalog by product-name prefix. The catalog
// view never carries an amount; quantities belong to recipe join rows.
func (s *CatalogService) ListIngredients(search string) ([]dto.IngredientResponse, error) {
	query := s.db.Model(&models.Ingredient{}).
		Preload("Product").
		Preload("Unit").
		Joins("JOIN products ON products.id = ingredients.product_id").
		Order("products.name")
	if search != "" {
		query = query.Where("products.name LIKE ?", search+"%")
	}

	var ingredients []models.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}

	resp := make([]dto.IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		resp = append(resp, dto.IngredientResponse{
			ID:              ing.ID,
			Name:            ing.Product.Name,
			MeasurementUnit: ing.Unit.Name,
		})
	}
	return resp, nil
}

// CreateTag adds a tag to the catalog. Admin only; wired behind the admin
// middleware in routes.
func (s *CatalogService) CreateTag(req *dto.TagSubmission) (*dto.TagResponse, error) {
	if req.Name == "" {
		return nil, apperr.New(apperr.CodeInvalidArgument, "name", "name is required")
	}
	if req.Slug == "" {
		return nil, apperr.New(apperr.CodeInvalidArgument, "slug", "slug is required")
	}

	tag := models.Tag{Name: req.Name, Color: req.Color, Slug: req.Slug}
	if err := s.db.Create(&tag).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.CodeConflict, "slug", "a tag with this name, color or slug already exists", err)
		}
		return nil, err
	}
	return &dto.TagResponse{ID: tag.ID, Name: tag.Name, Color: tag.Color, Slug: tag.Slug}, nil
}

// CreateIngredient adds a product/unit pairing to the catalog, creating the
// product and unit rows on first use.
func (s *CatalogService) CreateIngredient(req *dto.IngredientSubmission) (*dto.IngredientResponse, error) {
	if req.Name == "" {
		return nil, apperr.New(apperr.CodeInvalidArgument, "name", "name is required")
	}
	if req.MeasurementUnit == "" {
		return nil, apperr.New(apperr.CodeInvalidArgument, "measurement_unit", "measurement_unit is required")
	}

	var ing models.Ingredient
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Where(models.Product{Name: req.Name}).FirstOrCreate(&product).Error; err != nil {
			return err
		}
		var unit models.Unit
		if err := tx.Where(models.Unit{Name: req.MeasurementUnit}).FirstOrCreate(&unit).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Ingredient{}).
			Where("product_id = ? AND unit_id = ?", product.ID, unit.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.New(apperr.CodeConflict, "name", "this ingredient already exists")
		}

		ing = models.Ingredient{ProductID: product.ID, UnitID: unit.ID}
		return tx.Create(&ing).Error
	})
	if err != nil {
		return nil, err
	}

	return &dto.IngredientResponse{
		ID:              ing.ID,
		Name:            req.Name,
		MeasurementUnit: req.MeasurementUnit,
	}, nil
}

func (s *CatalogService) GetIngredient(ingredientID uint) (*dto.IngredientResponse, error) {
	var ing models.Ingredient
	if err := s.db.Preload("Product").Preload("Unit").First(&ing, ingredientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Newf(apperr.CodeNotFound, "ingredient", "no ingredient with id %d", ingredientID)
		}
		return nil, err
	}
	return &dto.IngredientResponse{
		ID:              ing.ID,
		Name:            ing.Product.Name,
		MeasurementUnit: ing.Unit.Name,
	}, nil
}
