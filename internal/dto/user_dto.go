package dto

// ProfileResponse is the base user card. Subscription views decorate it with
// recipes and a count instead of subclassing it.
type ProfileResponse struct {
	Email        string `json:"email"`
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

type SubscriptionResponse struct {
	ProfileResponse
	Recipes      []RecipeCard `json:"recipes"`
	RecipesCount int64        `json:"recipes_count"`
}

type ProfileListResponse struct {
	Count   int64             `json:"count"`
	Results []ProfileResponse `json:"results"`
}

type SubscriptionListResponse struct {
	Count   int64                  `json:"count"`
	Results []SubscriptionResponse `json:"results"`
}
