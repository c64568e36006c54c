package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ruangkarya/ruangkarya-api/internal/dto"
	"github.com/ruangkarya/ruangkarya-api/internal/service"
	"github.com/ruangkarya/ruangkarya-api/internal/utils"
)

// StoreHandler exposes the school store listing and the CMS write path.
type StoreHandler struct {
	service service.StoreService
	logger  zerolog.Logger
}

func NewStoreHandler(service service.StoreService, logger zerolog.Logger) *StoreHandler {
	return &StoreHandler{
		service: service,
		logger:  logger.With().Str("component", "store_handler").Logger(),
	}
}

// Register wires the public store routes.
func (h *StoreHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

// RegisterAdmin wires the CMS store routes.
func (h *StoreHandler) RegisterAdmin(router fiber.Router) {
	router.Post("", h.create)
	router.Put("/:itemID", h.update)
	router.Delete("/:itemID", h.delete)
}

func (h *StoreHandler) list(c *fiber.Ctx) error {
	onlyAvailable := c.QueryBool("available", false)

	result, err := h.service.List(c.UserContext(), onlyAvailable)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list store items")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list store items")
	}

	return utils.SendSuccess(c, "store items retrieved", result)
}

func (h *StoreHandler) create(c *fiber.Ctx) error {
	var payload dto.StoreItemRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create store item")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create store item")
	}

	return utils.SendCreated(c, "store item created", result)
}

func (h *StoreHandler) update(c *fiber.Ctx) error {
	itemID, err := parseUintParam(c, "itemID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid item id")
	}

	var payload dto.StoreItemRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Update(c.UserContext(), itemID, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreItemNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "store item not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Uint("item_id", itemID).Msg("failed to update store item")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update store item")
		}
	}

	return utils.SendSuccess(c, "store item updated", result)
}

func (h *StoreHandler) delete(c *fiber.Ctx) error {
	itemID, err := parseUintParam(c, "itemID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid item id")
	}

	if err := h.service.Delete(c.UserContext(), itemID); err != nil {
		if errors.Is(err, service.ErrStoreItemNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "store item not found")
		}
		h.logger.Error().Err(err).Uint("item_id", itemID).Msg("failed to delete store item")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete store item")
	}

	return utils.SendSuccess(c, "store item deleted", nil)
}
