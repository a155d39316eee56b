package dto

// IngredientRef is a catalog reference with the per-recipe quantity.
type IngredientRef struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount"`
}

// RecipeSubmission is the inbound create/update payload. Scalar fields are
// pointers so partial updates can tell "absent" from "zero"; tag and
// ingredient lists are always replaced wholesale.
type RecipeSubmission struct {
	Name        *string         `json:"name"`
	Image       *string         `json:"image"`
	Text        *string         `json:"text"`
	CookingTime *int            `json:"cooking_time"`
	Tags        []uint          `json:"tags"`
	Ingredients []IngredientRef `json:"ingredients"`
}

// TagSubmission and IngredientSubmission are admin catalog payloads.
type TagSubmission struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

type IngredientSubmission struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

type TagResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

// IngredientResponse is the catalog view: no amount.
type IngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// IngredientAmountResponse carries the amount recorded on the join row
// linking one specific recipe to the ingredient.
type IngredientAmountResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type RecipeResponse struct {
	ID               uint                       `json:"id"`
	Tags             []TagResponse              `json:"tags"`
	Author           ProfileResponse            `json:"author"`
	Ingredients      []IngredientAmountResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
}

// RecipeCard is the compact representation returned by favorite/cart adds
// and embedded in subscription views.
type RecipeCard struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

type RecipeListResponse struct {
	Count   int64            `json:"count"`
	Results []RecipeResponse `json:"results"`
}
