package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/photomap-backend/internal/models"
	jwtpkg "github.com/sefazor/photomap-backend/pkg/jwt"
	"github.com/sefazor/photomap-backend/pkg/utils"
)

type AuthHandler struct {
	validator *utils.Validator
}

func NewAuthHandler(validator *utils.Validator) *AuthHandler {
	return &AuthHandler{
		validator: validator,
	}
}

// Token issues a signed token carrying the username the publish pipeline
// attributes public records to.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req models.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	token, err := jwtpkg.GenerateToken(req.Username)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(models.TokenResponse{
		Token:    token,
		Username: req.Username,
	}, "Token issued"))
}
