package services

import (
	"errors"

	"github.com/annavoronova/recipebook/internal/apperr"
	"github.com/annavoronova/recipebook/internal/dto"
	"github.com/annavoronova/recipebook/internal/models"
	"gorm.io/gorm"
)

// UserService builds profile views and owns the follow edge.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// buildProfile is the base profile view. Callers needing the subscription
// card decorate it with recipes via withRecipes. A failing follow lookup
// propagates instead of silently rendering is_subscribed as false.
func (s *UserService) buildProfile(user *models.User, viewerID uint) (dto.ProfileResponse, error) {
	profile := dto.ProfileResponse{
		Email:     user.Email,
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	if viewerID != 0 && viewerID != user.ID {
		var count int64
		if err := s.db.Model(&models.Follow{}).
			Where("user_id = ? AND author_id = ?", viewerID, user.ID).
			Count(&count).Error; err != nil {
			return profile, err
		}
		profile.IsSubscribed = count > 0
	}
	return profile, nil
}

// withRecipes decorates a profile with the author's recipe cards and total
// count. recipesLimit < 0 means no truncation.
func (s *UserService) withRecipes(profile dto.ProfileResponse, recipesLimit int) (dto.SubscriptionResponse, error) {
	sub := dto.SubscriptionResponse{ProfileResponse: profile, Recipes: []dto.RecipeCard{}}

	if err := s.db.Model(&models.Recipe{}).
		Where("author_id = ?", profile.ID).
		Count(&sub.RecipesCount).Error; err != nil {
		return sub, err
	}

	query := s.db.Model(&models.Recipe{}).
		Where("author_id = ?", profile.ID).
		Order("pub_date DESC")
	if recipesLimit >= 0 {
		query = query.Limit(recipesLimit)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return sub, err
	}
	for _, r := range recipes {
		sub.Recipes = append(sub.Recipes, dto.RecipeCard{
			ID:          r.ID,
			Name:        r.Name,
			Image:       r.Image,
			CookingTime: r.CookingTime,
		})
	}
	return sub, nil
}

func (s *UserService) Get(userID, viewerID uint) (*dto.ProfileResponse, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Newf(apperr.CodeNotFound, "user", "no user with id %d", userID)
		}
		return nil, err
	}
	profile, err := s.buildProfile(&user, viewerID)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *UserService) List(viewerID uint, page, limit int) (*dto.ProfileListResponse, error) {
	var total int64
	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var users []models.User
	if err := s.db.Order("id").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}

	resp := &dto.ProfileListResponse{Count: total, Results: make([]dto.ProfileResponse, 0, len(users))}
	for i := range users {
		profile, err := s.buildProfile(&users[i], viewerID)
		if err != nil {
			return nil, err
		}
		resp.Results = append(resp.Results, profile)
	}
	return resp, nil
}

// Follow creates the directed edge and returns the author's subscription
// card. Self-follows and duplicate edges are rejected.
func (s *UserService) Follow(authorID, userID uint, recipesLimit int) (*dto.SubscriptionResponse, error) {
	var author models.User
	if err := s.db.First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Newf(apperr.CodeNotFound, "author", "no user with id %d", authorID)
		}
		return nil, err
	}

	if authorID == userID {
		return nil, apperr.New(apperr.CodeSelfReferenceForbidden, "author", "you cannot follow yourself")
	}

	var count int64
	if err := s.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.New(apperr.CodeConflict, "author", "you already follow this author")
	}

	if err := s.db.Create(&models.Follow{UserID: userID, AuthorID: authorID}).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.CodeConflict, "author", "you already follow this author", err)
		}
		return nil, err
	}

	profile, err := s.buildProfile(&author, userID)
	if err != nil {
		return nil, err
	}
	sub, err := s.withRecipes(profile, recipesLimit)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *UserService) Unfollow(authorID, userID uint) error {
	var author models.User
	if err := s.db.First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Newf(apperr.CodeNotFound, "author", "no user with id %d", authorID)
		}
		return err
	}

	result := s.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.CodeNotFollowing, "author", "you do not follow this author")
	}
	return nil
}

// Subscriptions lists followed authors. recipesLimit truncates each card's
// recipe sub-list only, never the author list.
func (s *UserService) Subscriptions(userID uint, page, limit, recipesLimit int) (*dto.SubscriptionListResponse, error) {
	var total int64
	if err := s.db.Model(&models.Follow{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var authors []models.User
	if err := s.db.
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("follows.created_at").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&authors).Error; err != nil {
		return nil, err
	}

	resp := &dto.SubscriptionListResponse{Count: total, Results: make([]dto.SubscriptionResponse, 0, len(authors))}
	for i := range authors {
		profile, err := s.buildProfile(&authors[i], userID)
		if err != nil {
			return nil, err
		}
		sub, err := s.withRecipes(profile, recipesLimit)
		if err != nil {
			return nil, err
		}
		resp.Results = append(resp.Results, sub)
	}
	return resp, nil
}
