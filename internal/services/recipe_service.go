package services

import (
	"errors"
	"fmt"

	"github.com/annavoronova/recipebook/internal/apperr"
	"github.com/annavoronova/recipebook/internal/dto"
	"github.com/annavoronova/recipebook/internal/models"
	"github.com/annavoronova/recipebook/internal/storage"
	"github.com/annavoronova/recipebook/internal/validation"
	"gorm.io/gorm"
)

// RecipeService reconciles nested recipe submissions against the recipe row
// and its two join tables. Join rows are always replaced wholesale inside
// one transaction, never diffed.
type RecipeService struct {
	db    *gorm.DB
	media *storage.MediaStore
	users *UserService
}

func NewRecipeService(db *gorm.DB, media *storage.MediaStore, users *UserService) *RecipeService {
	return &RecipeService{db: db, media: media, users: users}
}

// RecipeFilter narrows the listing. Nil booleans mean "not filtered";
// the favorited/cart filters are scoped to the viewer and require one.
type RecipeFilter struct {
	TagSlugs         []string
	AuthorID         uint
	IsFavorited      *bool
	IsInShoppingCart *bool
	Page             int
	Limit            int
}

func (s *RecipeService) Create(authorID uint, sub *dto.RecipeSubmission) (*dto.RecipeResponse, error) {
	if sub.Name == nil {
		return nil, apperr.New(apperr.CodeInvalidArgument, "name", "name is required")
	}
	if sub.Image == nil {
		return nil, apperr.New(apperr.CodeInvalidArgument, "image", "image is required")
	}
	if sub.Text == nil {
		return nil, apperr.New(apperr.CodeInvalidArgument, "text", "text is required")
	}
	if sub.CookingTime == nil {
		return nil, apperr.New(apperr.CodeInvalidArgument, "cooking_time", "cooking_time is required")
	}

	if err := s.validateRefs(sub); err != nil {
		return nil, err
	}
	if err := validation.AtLeastOne(*sub.CookingTime, "cooking_time"); err != nil {
		return nil, err
	}
	if err := s.checkNameUnique(authorID, *sub.Name, 0); err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(sub.Tags)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.resolveIngredients(sub.Ingredients)
	if err != nil {
		return nil, err
	}

	image, err := s.media.SaveImage(*sub.Image)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		AuthorID:    authorID,
		Name:        *sub.Name,
		Image:       image,
		Text:        *sub.Text,
		CookingTime: *sub.CookingTime,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		return s.insertJoinRows(tx, recipe.ID, tags, ingredients, sub.Ingredients)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.CodeConflict, "name", "you already have a recipe with this name", err)
		}
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	return s.render(&recipe, authorID)
}

// Update overwrites the scalar fields present in the payload, keeps the
// rest, and replaces both join-row sets from the submitted reference lists.
func (s *RecipeService) Update(recipeID, actorID uint, admin bool, sub *dto.RecipeSubmission) (*dto.RecipeResponse, error) {
	recipe, err := s.load(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != actorID && !admin {
		return nil, apperr.New(apperr.CodePermissionDenied, "", "only the author or an admin can edit this recipe")
	}

	if err := s.validateRefs(sub); err != nil {
		return nil, err
	}
	if sub.CookingTime != nil {
		if err := validation.AtLeastOne(*sub.CookingTime, "cooking_time"); err != nil {
			return nil, err
		}
		recipe.CookingTime = *sub.CookingTime
	}
	if sub.Name != nil {
		// A match against the recipe being updated is not a conflict, so
		// renaming a recipe to its own name stays idempotent.
		if err := s.checkNameUnique(recipe.AuthorID, *sub.Name, recipe.ID); err != nil {
			return nil, err
		}
		recipe.Name = *sub.Name
	}
	if sub.Text != nil {
		recipe.Text = *sub.Text
	}
	if sub.Image != nil {
		image, err := s.media.SaveImage(*sub.Image)
		if err != nil {
			return nil, err
		}
		recipe.Image = image
	}

	tags, err := s.resolveTags(sub.Tags)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.resolveIngredients(sub.Ingredients)
	if err != nil {
		return nil, err
	}

	// One transaction: a failure mid-reinsert must never leave the recipe
	// with zero tags or ingredients.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(recipe).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return s.insertJoinRows(tx, recipe.ID, tags, ingredients, sub.Ingredients)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.CodeConflict, "name", "you already have a recipe with this name", err)
		}
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}

	return s.render(recipe, actorID)
}

func (s *RecipeService) Delete(recipeID, actorID uint, admin bool) error {
	recipe, err := s.load(recipeID)
	if err != nil {
		return err
	}
	if recipe.AuthorID != actorID && !admin {
		return apperr.New(apperr.CodePermissionDenied, "", "only the author or an admin can delete this recipe")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
}

func (s *RecipeService) Get(recipeID, viewerID uint) (*dto.RecipeResponse, error) {
	recipe, err := s.load(recipeID)
	if err != nil {
		return nil, err
	}
	return s.render(recipe, viewerID)
}

func (s *RecipeService) List(viewerID uint, filter RecipeFilter) (*dto.RecipeListResponse, error) {
	query := s.db.Model(&models.Recipe{})

	if len(filter.TagSlugs) > 0 {
		query = query.Scopes(models.WithTagSlugs(filter.TagSlugs))
	}
	if filter.AuthorID != 0 {
		query = query.Scopes(models.ByAuthor(filter.AuthorID))
	}
	if filter.IsFavorited != nil {
		if viewerID == 0 {
			return nil, apperr.New(apperr.CodeAuthenticationRequired, "is_favorited", "log in to filter by favorites")
		}
		query = query.Scopes(models.InFavoritesOf(viewerID, *filter.IsFavorited))
	}
	if filter.IsInShoppingCart != nil {
		if viewerID == 0 {
			return nil, apperr.New(apperr.CodeAuthenticationRequired, "is_in_shopping_cart", "log in to filter by shopping cart")
		}
		query = query.Scopes(models.InCartOf(viewerID, *filter.IsInShoppingCart))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var recipes []models.Recipe
	if err := query.Order("pub_date DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}

	resp := &dto.RecipeListResponse{Count: total, Results: make([]dto.RecipeResponse, 0, len(recipes))}
	for i := range recipes {
		rendered, err := s.render(&recipes[i], viewerID)
		if err != nil {
			return nil, err
		}
		resp.Results = append(resp.Results, *rendered)
	}
	return resp, nil
}

func (s *RecipeService) load(recipeID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Newf(apperr.CodeNotFound, "recipe", "no recipe with id %d", recipeID)
		}
		return nil, err
	}
	return &recipe, nil
}

// validateRefs runs the pure rules over the submitted reference lists.
func (s *RecipeService) validateRefs(sub *dto.RecipeSubmission) error {
	if err := validation.NonEmpty(len(sub.Tags), "tags"); err != nil {
		return err
	}
	if err := validation.NonEmpty(len(sub.Ingredients), "ingredients"); err != nil {
		return err
	}
	if err := validation.UniqueRefs(sub.Tags, "tags"); err != nil {
		return err
	}
	ingredientIDs := make([]uint, 0, len(sub.Ingredients))
	for _, ref := range sub.Ingredients {
		ingredientIDs = append(ingredientIDs, ref.ID)
	}
	if err := validation.UniqueRefs(ingredientIDs, "ingredients"); err != nil {
		return err
	}
	for _, ref := range sub.Ingredients {
		if err := validation.AtLeastOne(ref.Amount, "amount"); err != nil {
			return err
		}
	}
	return nil
}

func (s *RecipeService) resolveTags(ids []uint) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(ids))
	for _, id := range ids {
		var tag models.Tag
		if err := s.db.First(&tag, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Newf(apperr.CodeNotFound, "tags", "no tag with id %d", id)
			}
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (s *RecipeService) resolveIngredients(refs []dto.IngredientRef) ([]models.Ingredient, error) {
	ingredients := make([]models.Ingredient, 0, len(refs))
	for _, ref := range refs {
		var ing models.Ingredient
		if err := s.db.First(&ing, ref.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Newf(apperr.CodeNotFound, "ingredients", "no ingredient with id %d", ref.ID)
			}
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, nil
}

func (s *RecipeService) checkNameUnique(authorID uint, name string, excludeRecipeID uint) error {
	query := s.db.Model(&models.Recipe{}).
		Where("author_id = ? AND name = ?", authorID, name)
	if excludeRecipeID != 0 {
		query = query.Where("id <> ?", excludeRecipeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.New(apperr.CodeConflict, "name", "you already have a recipe with this name")
	}
	return nil
}

// insertJoinRows bulk-inserts the staged join rows for one recipe.
func (s *RecipeService) insertJoinRows(tx *gorm.DB, recipeID uint, tags []models.Tag, ingredients []models.Ingredient, refs []dto.IngredientRef) error {
	recipeTags := make([]models.RecipeTag, 0, len(tags))
	for _, tag := range tags {
		recipeTags = append(recipeTags, models.RecipeTag{RecipeID: recipeID, TagID: tag.ID})
	}
	if err := tx.CreateInBatches(recipeTags, 100).Error; err != nil {
		return err
	}

	recipeIngredients := make([]models.RecipeIngredient, 0, len(ingredients))
	for i, ing := range ingredients {
		recipeIngredients = append(recipeIngredients, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: ing.ID,
			Amount:       refs[i].Amount,
		})
	}
	return tx.CreateInBatches(recipeIngredients, 100).Error
}

// render assembles the representation. The ingredient amounts come from the
// join rows of this specific recipe, passed explicitly by id.
func (s *RecipeService) render(recipe *models.Recipe, viewerID uint) (*dto.RecipeResponse, error) {
	var tags []models.Tag
	if err := s.db.
		Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
		Where("recipe_tags.recipe_id = ?", recipe.ID).
		Order("tags.name").
		Find(&tags).Error; err != nil {
		return nil, err
	}

	var rows []models.RecipeIngredient
	if err := s.db.
		Preload("Ingredient.Product").
		Preload("Ingredient.Unit").
		Where("recipe_id = ?", recipe.ID).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	var author models.User
	if err := s.db.First(&author, recipe.AuthorID).Error; err != nil {
		return nil, err
	}

	profile, err := s.users.buildProfile(&author, viewerID)
	if err != nil {
		return nil, err
	}

	resp := &dto.RecipeResponse{
		ID:          recipe.ID,
		Author:      profile,
		Name:        recipe.Name,
		Image:       recipe.Image,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
		Tags:        make([]dto.TagResponse, 0, len(tags)),
		Ingredients: make([]dto.IngredientAmountResponse, 0, len(rows)),
	}
	for _, tag := range tags {
		resp.Tags = append(resp.Tags, dto.TagResponse{ID: tag.ID, Name: tag.Name, Color: tag.Color, Slug: tag.Slug})
	}
	for _, row := range rows {
		resp.Ingredients = append(resp.Ingredients, dto.IngredientAmountResponse{
			ID:              row.IngredientID,
			Name:            row.Ingredient.Product.Name,
			MeasurementUnit: row.Ingredient.Unit.Name,
			Amount:          row.Amount,
		})
	}

	// Viewer flags fail loudly: a broken lookup must not render as "false".
	if viewerID != 0 {
		var count int64
		if err := s.db.Model(&models.Favorite{}).
			Where("user_id = ? AND recipe_id = ?", viewerID, recipe.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		resp.IsFavorited = count > 0

		if err := s.db.Model(&models.CartItem{}).
			Where("user_id = ? AND recipe_id = ?", viewerID, recipe.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		resp.IsInShoppingCart = count > 0
	}

	return resp, nil
}
