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

// ResourceHandler exposes learning-resource listing and the CMS write path.
type ResourceHandler struct {
	service service.ResourceService
	logger  zerolog.Logger
}

func NewResourceHandler(service service.ResourceService, logger zerolog.Logger) *ResourceHandler {
	return &ResourceHandler{
		service: service,
		logger:  logger.With().Str("component", "resource_handler").Logger(),
	}
}

// Register wires the public resource routes.
func (h *ResourceHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

// RegisterAdmin wires the CMS resource routes.
func (h *ResourceHandler) RegisterAdmin(router fiber.Router) {
	router.Post("", h.create)
	router.Put("/:resourceID", h.update)
	router.Delete("/:resourceID", h.delete)
}

func (h *ResourceHandler) list(c *fiber.Ctx) error {
	subject := strings.TrimSpace(c.Query("subject"))
	search := strings.TrimSpace(c.Query("search"))

	result, err := h.service.List(c.UserContext(), subject, search)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list resources")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list resources")
	}

	return utils.SendSuccess(c, "resources retrieved", result)
}

func (h *ResourceHandler) create(c *fiber.Ctx) error {
	var payload dto.ResourceRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create resource")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create resource")
	}

	return utils.SendCreated(c, "resource created", result)
}

func (h *ResourceHandler) update(c *fiber.Ctx) error {
	resourceID, err := parseUintParam(c, "resourceID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid resource id")
	}

	var payload dto.ResourceRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Update(c.UserContext(), resourceID, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResourceNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "resource not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Uint("resource_id", resourceID).Msg("failed to update resource")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update resource")
		}
	}

	return utils.SendSuccess(c, "resource updated", result)
}

func (h *ResourceHandler) delete(c *fiber.Ctx) error {
	resourceID, err := parseUintParam(c, "resourceID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid resource id")
	}

	if err := h.service.Delete(c.UserContext(), resourceID); err != nil {
		if errors.Is(err, service.ErrResourceNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "resource not found")
		}
		h.logger.Error().Err(err).Uint("resource_id", resourceID).Msg("failed to delete resource")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete resource")
	}

	return utils.SendSuccess(c, "resource deleted", nil)
}
