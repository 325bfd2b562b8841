package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/photomap-backend/internal/models"
	"github.com/sefazor/photomap-backend/internal/service"
	"github.com/sefazor/photomap-backend/pkg/utils"
)

type PhotoHandler struct {
	importService  *service.ImportService
	catalogService *service.CatalogService
	validator      *utils.Validator
}

func NewPhotoHandler(
	importService *service.ImportService,
	catalogService *service.CatalogService,
	validator *utils.Validator,
) *PhotoHandler {
	return &PhotoHandler{
		importService:  importService,
		catalogService: catalogService,
		validator:      validator,
	}
}

func (h *PhotoHandler) ListRecords(c *fiber.Ctx) error {
	records, err := h.catalogService.ListRecords()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
	return c.JSON(models.SuccessResponse(records, "Records retrieved successfully"))
}

func (h *PhotoHandler) CountRecords(c *fiber.Ctx) error {
	count, err := h.catalogService.CountRecords()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
	return c.JSON(models.SuccessResponse(fiber.Map{"count": count}, "Record count retrieved"))
}

func (h *PhotoHandler) SampleRecords(c *fiber.Ctx) error {
	n, err := strconv.Atoi(c.Query("n", "10"))
	if err != nil || n <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid sample size"))
	}

	records, err := h.catalogService.SampleRecords(n)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
	return c.JSON(models.SuccessResponse(records, "Random sample retrieved"))
}

// ImportMetadata imports a single pre-extracted metadata item.
func (h *PhotoHandler) ImportMetadata(c *fiber.Ctx) error {
	var meta models.PhotoMetadata
	if err := c.BodyParser(&meta); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	outcome, err := h.importService.ImportOne(meta)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
	return c.JSON(models.SuccessResponse(fiber.Map{"outcome": outcome.String()}, "Metadata processed"))
}

// ImportBatch imports a batch of pre-extracted metadata in one transaction.
func (h *PhotoHandler) ImportBatch(c *fiber.Ctx) error {
	var req models.ImportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	result, err := h.importService.ImportBatch(req.Items)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
	return c.JSON(models.SuccessResponse(result, "Import completed"))
}

// UploadPhotos accepts multipart photo files, extracts their metadata and
// imports the batch.
func (h *PhotoHandler) UploadPhotos(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("No files uploaded"))
	}
	files := form.File["photos"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("No files uploaded"))
	}

	result, err := h.importService.ImportFiles(files)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
	return c.JSON(models.SuccessResponse(result, "Import completed"))
}

func (h *PhotoHandler) DeleteRecords(c *fiber.Ctx) error {
	var req models.DeleteRecordsRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
		}
	}

	if err := h.catalogService.DeleteRecords(req.Indices); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
	return c.JSON(models.SuccessResponse(nil, "Records deleted successfully"))
}
