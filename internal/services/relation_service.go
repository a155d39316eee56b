package services

import (
	"errors"

	"github.com/annavoronova/recipebook/internal/apperr"
	"github.com/annavoronova/recipebook/internal/dto"
	"github.com/annavoronova/recipebook/internal/models"
	"gorm.io/gorm"
)

// RelationService owns the per-user recipe marks: favorites and the
// shopping cart. Both follow the same add/remove protocol against their
// own join table.
type RelationService struct {
	db *gorm.DB
}

func NewRelationService(db *gorm.DB) *RelationService {
	return &RelationService{db: db}
}

func (s *RelationService) AddFavorite(userID, recipeID uint) (*dto.RecipeCard, error) {
	recipe, err := s.loadRecipe(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID == userID {
		return nil, apperr.New(apperr.CodeSelfReferenceForbidden, "recipe", "you cannot favorite your own recipe")
	}

	var count int64
	if err := s.db.Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.New(apperr.CodeConflict, "recipe", "recipe is already in favorites")
	}

	if err := s.db.Create(&models.Favorite{UserID: userID, RecipeID: recipeID}).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.CodeConflict, "recipe", "recipe is already in favorites", err)
		}
		return nil, err
	}

	return cardOf(recipe), nil
}

func (s *RelationService) RemoveFavorite(userID, recipeID uint) error {
	if _, err := s.loadRecipe(recipeID); err != nil {
		return err
	}

	result := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.CodeNotSubscribed, "recipe", "recipe is not in favorites")
	}
	return nil
}

func (s *RelationService) AddToCart(userID, recipeID uint) (*dto.RecipeCard, error) {
	recipe, err := s.loadRecipe(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID == userID {
		return nil, apperr.New(apperr.CodeSelfReferenceForbidden, "recipe", "you cannot add your own recipe to the cart")
	}

	var count int64
	if err := s.db.Model(&models.CartItem{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.New(apperr.CodeConflict, "recipe", "recipe is already in the shopping cart")
	}

	if err := s.db.Create(&models.CartItem{UserID: userID, RecipeID: recipeID}).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.CodeConflict, "recipe", "recipe is already in the shopping cart", err)
		}
		return nil, err
	}

	return cardOf(recipe), nil
}

func (s *RelationService) RemoveFromCart(userID, recipeID uint) error {
	if _, err := s.loadRecipe(recipeID); err != nil {
		return err
	}

	result := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.CodeNotInCart, "recipe", "recipe is not in the shopping cart")
	}
	return nil
}

func (s *RelationService) loadRecipe(recipeID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Newf(apperr.CodeNotFound, "recipe", "no recipe with id %d", recipeID)
		}
		return nil, err
	}
	return &recipe, nil
}

func cardOf(recipe *models.Recipe) *dto.RecipeCard {
	return &dto.RecipeCard{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}
