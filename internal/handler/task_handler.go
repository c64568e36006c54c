package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ruangkarya/ruangkarya-api/internal/dto"
	"github.com/ruangkarya/ruangkarya-api/internal/repository"
	"github.com/ruangkarya/ruangkarya-api/internal/service"
	"github.com/ruangkarya/ruangkarya-api/internal/utils"
)

// TaskHandler exposes task endpoints inside a project.
type TaskHandler struct {
	service service.TaskService
	logger  zerolog.Logger
}

// NewTaskHandler constructs a task handler.
func NewTaskHandler(service service.TaskService, logger zerolog.Logger) *TaskHandler {
	return &TaskHandler{
		service: service,
		logger:  logger.With().Str("component", "task_handler").Logger(),
	}
}

// Register wires task routes onto a project-scoped group.
func (h *TaskHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Patch("/:taskID", h.update)
	router.Delete("/:taskID", h.delete)
}

func (h *TaskHandler) list(c *fiber.Ctx) error {
	projectID, err := parseUintParam(c, "projectID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	filter := repository.TaskFilter{}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		filter.Status = &status
	}

	result, err := h.service.List(c.UserContext(), projectID, filter)
	if err != nil {
		h.logger.Error().Err(err).Uint("project_id", projectID).Msg("failed to list tasks")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list tasks")
	}

	return utils.SendSuccess(c, "tasks retrieved", result)
}

func (h *TaskHandler) create(c *fiber.Ctx) error {
	projectID, err := parseUintParam(c, "projectID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	var payload dto.TaskCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Create(c.UserContext(), projectID, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "project not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Uint("project_id", projectID).Msg("failed to create task")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create task")
		}
	}

	return utils.SendCreated(c, "task created", result)
}

func (h *TaskHandler) update(c *fiber.Ctx) error {
	taskID, err := parseUintParam(c, "taskID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid task id")
	}

	var payload dto.TaskUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Update(c.UserContext(), taskID, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "task not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Uint("task_id", taskID).Msg("failed to update task")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update task")
		}
	}

	return utils.SendSuccess(c, "task updated", result)
}

func (h *TaskHandler) delete(c *fiber.Ctx) error {
	taskID, err := parseUintParam(c, "taskID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid task id")
	}

	if err := h.service.Delete(c.UserContext(), taskID); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "task not found")
		}
		h.logger.Error().Err(err).Uint("task_id", taskID).Msg("failed to delete task")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete task")
	}

	return utils.SendSuccess(c, "task deleted", nil)
}
