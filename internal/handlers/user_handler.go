package handlers

import (
	"github.com/annavoronova/recipebook/internal/reqctx"
	"github.com/annavoronova/recipebook/internal/services"
	"github.com/annavoronova/recipebook/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService *services.UserService
	pageSize    int
}

func NewUserHandler(userService *services.UserService, pageSize int) *UserHandler {
	return &UserHandler{userService: userService, pageSize: pageSize}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	page, err := pageOf(c)
	if err != nil {
		return respondError(c, err)
	}
	limit, err := validation.PageLimit(c.Query("limit"), h.pageSize)
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.userService.List(reqctx.ViewerID(c), page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.userService.Get(userID, reqctx.ViewerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Me returns the authenticated caller's own profile.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID, err := reqctx.UserID(c)
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.userService.Get(userID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *UserHandler) Subscribe(c *fiber.Ctx) error {
	userID, err := reqctx.UserID(c)
	if err != nil {
		return respondError(c, err)
	}
	authorID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	recipesLimit, err := validation.RecipesLimit(c.Query("recipes_limit"))
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.userService.Follow(authorID, userID, recipesLimit)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *UserHandler) Unsubscribe(c *fiber.Ctx) error {
	userID, err := reqctx.UserID(c)
	if err != nil {
		return respondError(c, err)
	}
	authorID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.userService.Unfollow(authorID, userID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) Subscriptions(c *fiber.Ctx) error {
	userID, err := reqctx.UserID(c)
	if err != nil {
		return respondError(c, err)
	}
	page, err := pageOf(c)
	if err != nil {
		return respondError(c, err)
	}
	limit, err := validation.PageLimit(c.Query("limit"), h.pageSize)
	if err != nil {
		return respondError(c, err)
	}
	recipesLimit, err := validation.RecipesLimit(c.Query("recipes_limit"))
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.userService.Subscriptions(userID, page, limit, recipesLimit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
