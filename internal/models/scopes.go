package models

import "gorm.io/gorm"

// GORM scopes composed by the recipe listing query.

// ByAuthor filters recipes to a single author.
func ByAuthor(authorID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("recipes.author_id = ?", authorID)
	}
}

// WithTagSlugs filters recipes carrying at least one of the given tag slugs.
func WithTagSlugs(slugs []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"recipes.id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).
				Model(&RecipeTag{}).
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", slugs),
		)
	}
}

// InFavoritesOf keeps (or excludes) recipes favorited by the user.
func InFavoritesOf(userID uint, wanted bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		sub := db.Session(&gorm.Session{NewDB: true}).
			Model(&Favorite{}).
			Select("favorites.recipe_id").
			Where("favorites.user_id = ?", userID)
		if wanted {
			return db.Where("recipes.id IN (?)", sub)
		}
		return db.Where("recipes.id NOT IN (?)", sub)
	}
}

// InCartOf keeps (or excludes) recipes in the user's cart.
func InCartOf(userID uint, wanted bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		sub := db.Session(&gorm.Session{NewDB: true}).
			Model(&CartItem{}).
			Select("cart_items.recipe_id").
			Where("cart_items.user_id = ?", userID)
		if wanted {
			return db.Where("recipes.id IN (?)", sub)
		}
		return db.Where("recipes.id NOT IN (?)", sub)
	}
}
