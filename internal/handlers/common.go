package handlers

import (
	"errors"
	"strconv"

	"github.com/annavoronova/recipebook/internal/apperr"
	"github.com/annavoronova/recipebook/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors onto HTTP. Typed errors carry their own
// status and field attribution; anything else is an internal fault and is
// never echoed to the client.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return c.Status(appErr.Status()).JSON(dto.ErrorResponse{
			Error:   true,
			Code:    string(appErr.Code),
			Field:   appErr.Field,
			Message: appErr.Message,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Internal server error",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

// pathID parses a numeric id path parameter.
func pathID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Newf(apperr.CodeInvalidArgument, name, "%q must be a positive integer", name)
	}
	return uint(id), nil
}

// pageOf parses the "page" query parameter, defaulting to the first page.
func pageOf(c *fiber.Ctx) (int, error) {
	raw := c.Query("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, apperr.New(apperr.CodeInvalidArgument, "page", `"page" must be a positive integer`)
	}
	return page, nil
}
