package handlers

import (
	"strconv"

	"github.com/annavoronova/recipebook/internal/apperr"
	"github.com/annavoronova/recipebook/internal/dto"
	"github.com/annavoronova/recipebook/internal/reqctx"
	"github.com/annavoronova/recipebook/internal/services"
	"github.com/annavoronova/recipebook/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type RecipeHandler struct {
	recipeService   *services.RecipeService
	relationService *services.RelationService
	shoppingList    *services.ShoppingListService
	pageSize        int
}

func NewRecipeHandler(
	recipeService *services.RecipeService,
	relationService *services.RelationService,
	shoppingList *services.ShoppingListService,
	pageSize int,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		relationService: relationService,
		shoppingList:    shoppingList,
		pageSize:        pageSize,
	}
}

func (h *RecipeHandler) List(c *fiber.Ctx) error {
	page, err := pageOf(c)
	if err != nil {
		return respondError(c, err)
	}
	limit, err := validation.PageLimit(c.Query("limit"), h.pageSize)
	if err != nil {
		return respondError(c, err)
	}

	filter := services.RecipeFilter{Page: page, Limit: limit}

	for _, raw := range c.Context().QueryArgs().PeekMulti("tags") {
		filter.TagSlugs = append(filter.TagSlugs, string(raw))
	}
	if raw := c.Query("author"); raw != "" {
		authorID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return respondError(c, apperr.New(apperr.CodeInvalidArgument, "author", `"author" must be an integer`))
		}
		filter.AuthorID = uint(authorID)
	}
	if filter.IsFavorited, err = boolFlag(c, "is_favorited"); err != nil {
		return respondError(c, err)
	}
	if filter.IsInShoppingCart, err = boolFlag(c, "is_in_shopping_cart"); err != nil {
		return respondError(c, err)
	}

	resp, err := h.recipeService.List(reqctx.ViewerID(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *RecipeHandler) Get(c *fiber.Ctx) error {
	recipeID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.recipeService.Get(recipeID, reqctx.ViewerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	userID, err := reqctx.UserID(c)
	if err != nil {
		return respondError(c, err)
	}

	var sub dto.RecipeSubmission
	if err := c.BodyParser(&sub); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.recipeService.Create(userID, &sub)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	userID, err := reqctx.UserID(c)
	if err != nil {
		return respondError(c, err)
	}
	recipeID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var sub dto.RecipeSubmission
	if err := c.BodyParser(&sub); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.recipeService.Update(recipeID, userID, reqctx.IsAdmin(c), &sub)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	userID, err := reqctx.UserID(c)
	if err != nil {
		return respondError(c, err)
	}
	recipeID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.recipeService.Delete(recipeID, userID, reqctx.IsAdmin(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *RecipeHandler) AddFavorite(c *fiber.Ctx) error {
	return h.addMark(c, h.relationService.AddFavorite)
}

func (h *RecipeHandler) RemoveFavorite(c *fiber.Ctx) error {
	return h.removeMark(c, h.relationService.RemoveFavorite)
}

func (h *RecipeHandler) AddToCart(c *fiber.Ctx) error {
	return h.addMark(c, h.relationService.AddToCart)
}

func (h *RecipeHandler) RemoveFromCart(c *fiber.Ctx) error {
	return h.removeMark(c, h.relationService.RemoveFromCart)
}

// DownloadShoppingCart aggregates the caller's cart and streams the
// rendered PDF as an attachment.
func (h *RecipeHandler) DownloadShoppingCart(c *fiber.Ctx) error {
	userID, err := reqctx.UserID(c)
	if err != nil {
		return respondError(c, err)
	}

	items, err := h.shoppingList.Aggregate(userID)
	if err != nil {
		return respondError(c, err)
	}

	filename, path, err := h.shoppingList.RenderPDF(items)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.SendFile(path)
}

func (h *RecipeHandler) addMark(c *fiber.Ctx, add func(userID, recipeID uint) (*dto.RecipeCard, error)) error {
	userID, err := reqctx.UserID(c)
	if err != nil {
		return respondError(c, err)
	}
	recipeID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	card, err := add(userID, recipeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(card)
}

func (h *RecipeHandler) removeMark(c *fiber.Ctx, remove func(userID, recipeID uint) error) error {
	userID, err := reqctx.UserID(c)
	if err != nil {
		return respondError(c, err)
	}
	recipeID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := remove(userID, recipeID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// boolFlag parses an optional 0/1 query flag; nil means absent.
func boolFlag(c *fiber.Ctx, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	switch raw {
	case "1", "true":
		v := true
		return &v, nil
	case "0", "false":
		v := false
		return &v, nil
	}
	return nil, apperr.Newf(apperr.CodeInvalidArgument, name, "%q must be 0 or 1", name)
}
