package models

import (
	"time"
)

// Recipe is owned by exactly one author. An author may not have two recipes
// with the same name; the composite unique index is the last line of defense
// against races between the existence check and the insert.
type Recipe struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AuthorID    uint      `gorm:"not null;uniqueIndex:idx_recipes_author_name" json:"-"`
	Name        string    `gorm:"size:200;not null;uniqueIndex:idx_recipes_author_name" json:"name"`
	Image       string    `gorm:"size:255;not null" json:"image"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	CookingTime int       `gorm:"not null" json:"cooking_time"`
	PubDate     time.Time `gorm:"autoCreateTime;index" json:"-"`

	Author User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

// RecipeTag is a pure join row. The whole set for a recipe is replaced on
// every update, never patched.
type RecipeTag struct {
	ID       uint `gorm:"primaryKey" json:"-"`
	RecipeID uint `gorm:"not null;uniqueIndex:idx_recipe_tags_pair" json:"recipe_id"`
	TagID    uint `gorm:"not null;uniqueIndex:idx_recipe_tags_pair" json:"tag_id"`

	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Tag    Tag    `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"-"`
}

// RecipeIngredient is a join row carrying the per-recipe amount.
type RecipeIngredient struct {
	ID           uint `gorm:"primaryKey" json:"-"`
	RecipeID     uint `gorm:"not null;uniqueIndex:idx_recipe_ingredients_pair" json:"recipe_id"`
	IngredientID uint `gorm:"not null;uniqueIndex:idx_recipe_ingredients_pair" json:"ingredient_id"`
	Amount       int  `gorm:"not null" json:"amount"`

	Recipe     Recipe     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Ingredient Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"-"`
}

// Favorite marks a recipe a user liked. Unique per (user, recipe); a user
// cannot favorite their own recipe.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorites_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_favorites_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

// CartItem marks a recipe queued for the shopping list. Same pair
// uniqueness and self-reference rule as Favorite.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_items_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_cart_items_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}
