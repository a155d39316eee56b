package routes

import (
	"time"

	"github.com/annavoronova/recipebook/internal/config"
	"github.com/annavoronova/recipebook/internal/handlers"
	"github.com/annavoronova/recipebook/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	catalogHandler *handlers.CatalogHandler,
	recipeHandler *handlers.RecipeHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Users. The static paths must register before the :id wildcard.
	api.Get("/users", middleware.JWTOptional(cfg), userHandler.List)
	api.Get("/users/me", middleware.JWTProtected(cfg), userHandler.Me)
	api.Get("/users/subscriptions", middleware.JWTProtected(cfg), userHandler.Subscriptions)
	api.Get("/users/:id", middleware.JWTOptional(cfg), userHandler.Get)
	api.Post("/users/:id/subscribe", middleware.JWTProtected(cfg), userHandler.Subscribe)
	api.Delete("/users/:id/subscribe", middleware.JWTProtected(cfg), userHandler.Unsubscribe)

	// Catalog — public reads
	api.Get("/tags", catalogHandler.ListTags)
	api.Get("/tags/:id", catalogHandler.GetTag)
	api.Get("/ingredients", catalogHandler.ListIngredients)
	api.Get("/ingredients/:id", catalogHandler.GetIngredient)

	// Recipes
	api.Get("/recipes", middleware.JWTOptional(cfg), recipeHandler.List)
	api.Post("/recipes", middleware.JWTProtected(cfg), recipeHandler.Create)
	api.Get("/recipes/download_shopping_cart", middleware.JWTProtected(cfg), recipeHandler.DownloadShoppingCart)
	api.Get("/recipes/:id", middleware.JWTOptional(cfg), recipeHandler.Get)
	api.Patch("/recipes/:id", middleware.JWTProtected(cfg), recipeHandler.Update)
	api.Delete("/recipes/:id", middleware.JWTProtected(cfg), recipeHandler.Delete)

	// Favorites and shopping cart
	api.Post("/recipes/:id/favorite", middleware.JWTProtected(cfg), recipeHandler.AddFavorite)
	api.Delete("/recipes/:id/favorite", middleware.JWTProtected(cfg), recipeHandler.RemoveFavorite)
	api.Post("/recipes/:id/shopping_cart", middleware.JWTProtected(cfg), recipeHandler.AddToCart)
	api.Delete("/recipes/:id/shopping_cart", middleware.JWTProtected(cfg), recipeHandler.RemoveFromCart)

	// Admin catalog management (protected + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Post("/tags", catalogHandler.CreateTag)
	admin.Post("/ingredients", catalogHandler.CreateIngredient)
}
