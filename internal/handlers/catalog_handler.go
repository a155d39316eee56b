package handlers

import (
	"github.com/annavoronova/recipebook/internal/dto"
	"github.com/annavoronova/recipebook/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) ListTags(c *fiber.Ctx) error {
	resp, err := h.catalogService.ListTags()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *CatalogHandler) GetTag(c *fiber.Ctx) error {
	tagID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.catalogService.GetTag(tagID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *CatalogHandler) CreateTag(c *fiber.Ctx) error {
	var req dto.TagSubmission
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.catalogService.CreateTag(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *CatalogHandler) CreateIngredient(c *fiber.Ctx) error {
	var req dto.IngredientSubmission
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.catalogService.CreateIngredient(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *CatalogHandler) ListIngredients(c *fiber.Ctx) error {
	resp, err := h.catalogService.ListIngredients(c.Query("name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *CatalogHandler) GetIngredient(c *fiber.Ctx) error {
	ingredientID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.catalogService.GetIngredient(ingredientID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
