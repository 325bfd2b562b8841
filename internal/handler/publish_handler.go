package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/photomap-backend/internal/models"
	"github.com/sefazor/photomap-backend/internal/service"
)

type PublishHandler struct {
	publishService   *service.PublishService
	reconcileService *service.ReconcileService
}

func NewPublishHandler(
	publishService *service.PublishService,
	reconcileService *service.ReconcileService,
) *PublishHandler {
	return &PublishHandler{
		publishService:   publishService,
		reconcileService: reconcileService,
	}
}

// Publish pushes the unpublished subset to the public store under the
// authenticated username.
func (h *PublishHandler) Publish(c *fiber.Ctx) error {
	username := c.Locals("username").(string)

	published, err := h.publishService.Publish(c.Context(), username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUsername):
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
		case errors.Is(err, service.ErrNotSignedIn):
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse(err.Error()))
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
		}
	}

	return c.JSON(models.SuccessResponse(models.PublishResponse{Published: published}, "Publish completed"))
}

func (h *PublishHandler) Reconcile(c *fiber.Ctx) error {
	snapshot, err := h.reconcileService.Snapshot(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
	return c.JSON(models.SuccessResponse(snapshot, "Reconciliation counts retrieved"))
}

func (h *PublishHandler) DeletePublic(c *fiber.Ctx) error {
	deleted, err := h.reconcileService.DeletePublic(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
	return c.JSON(models.SuccessResponse(fiber.Map{"deleted": deleted}, "Public records deleted"))
}
