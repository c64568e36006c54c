package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ruangkarya/ruangkarya-api/internal/dto"
	"github.com/ruangkarya/ruangkarya-api/internal/service"
	"github.com/ruangkarya/ruangkarya-api/internal/utils"
)

// GalleryHandler exposes the public gallery listing and the CMS write path.
type GalleryHandler struct {
	service service.GalleryService
	logger  zerolog.Logger
}

// NewGalleryHandler constructs a gallery handler.
func NewGalleryHandler(service service.GalleryService, logger zerolog.Logger) *GalleryHandler {
	return &GalleryHandler{
		service: service,
		logger:  logger.With().Str("component", "gallery_handler").Logger(),
	}
}

// Register wires the public gallery routes.
func (h *GalleryHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

// RegisterAdmin wires the CMS gallery routes.
func (h *GalleryHandler) RegisterAdmin(router fiber.Router) {
	router.Post("", h.create)
	router.Put("/:itemID", h.update)
	router.Delete("/:itemID", h.delete)
}

func (h *GalleryHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	tags := parseTags(c.Query("tags"))
	search := strings.TrimSpace(c.Query("search"))

	result, err := h.service.List(c.UserContext(), tags, search, page, pageSize)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list gallery items")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list gallery items")
	}

	return utils.SendSuccess(c, "gallery items retrieved", result)
}

func (h *GalleryHandler) create(c *fiber.Ctx) error {
	var payload dto.GalleryItemRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create gallery item")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create gallery item")
	}

	return utils.SendCreated(c, "gallery item created", result)
}

func (h *GalleryHandler) update(c *fiber.Ctx) error {
	itemID, err := parseUintParam(c, "itemID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid item id")
	}

	var payload dto.GalleryItemRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Update(c.UserContext(), itemID, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGalleryItemNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "gallery item not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Uint("item_id", itemID).Msg("failed to update gallery item")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update gallery item")
		}
	}

	return utils.SendSuccess(c, "gallery item updated", result)
}

func (h *GalleryHandler) delete(c *fiber.Ctx) error {
	itemID, err := parseUintParam(c, "itemID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid item id")
	}

	if err := h.service.Delete(c.UserContext(), itemID); err != nil {
		if errors.Is(err, service.ErrGalleryItemNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "gallery item not found")
		}
		h.logger.Error().Err(err).Uint("item_id", itemID).Msg("failed to delete gallery item")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete gallery item")
	}

	return utils.SendSuccess(c, "gallery item deleted", nil)
}
