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

// ProjectHandler exposes project CRUD and team membership endpoints.
type ProjectHandler struct {
	service service.ProjectService
	logger  zerolog.Logger
}

// NewProjectHandler constructs a project handler.
func NewProjectHandler(service service.ProjectService, logger zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{
		service: service,
		logger:  logger.With().Str("component", "project_handler").Logger(),
	}
}

// Register wires project routes.
func (h *ProjectHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:projectID", h.get)
	router.Patch("/:projectID", h.update)
	router.Delete("/:projectID", h.delete)
	router.Get("/:projectID/members", h.members)
	router.Post("/:projectID/members", h.addMember)
	router.Delete("/:projectID/members/:studentID", h.removeMember)
}

func (h *ProjectHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	filter := repository.ProjectFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Page:     page,
		PageSize: pageSize,
	}

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		filter.Status = &status
	}

	if mine := c.Query("mine"); mine == "true" {
		userID := userIDFromContext(c)
		switch userRoleFromContext(c) {
		case "teacher", "admin":
			filter.TeacherID = &userID
		default:
			filter.StudentID = &userID
		}
	}

	result, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list projects")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list projects")
	}

	return utils.SendSuccess(c, "projects retrieved", result)
}

func (h *ProjectHandler) get(c *fiber.Ctx) error {
	projectID, err := parseUintParam(c, "projectID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	result, err := h.service.Get(c.UserContext(), projectID)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "project not found")
		}
		h.logger.Error().Err(err).Uint("project_id", projectID).Msg("failed to get project")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to get project")
	}

	return utils.SendSuccess(c, "project retrieved", result)
}

func (h *ProjectHandler) create(c *fiber.Ctx) error {
	teacherID := userIDFromContext(c)
	if teacherID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.ProjectCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Create(c.UserContext(), teacherID, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create project")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create project")
	}

	return utils.SendCreated(c, "project created", result)
}

func (h *ProjectHandler) update(c *fiber.Ctx) error {
	projectID, err := parseUintParam(c, "projectID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	var payload dto.ProjectUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Update(c.UserContext(), projectID, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "project not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Uint("project_id", projectID).Msg("failed to update project")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update project")
		}
	}

	return utils.SendSuccess(c, "project updated", result)
}

func (h *ProjectHandler) delete(c *fiber.Ctx) error {
	projectID, err := parseUintParam(c, "projectID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	if err := h.service.Delete(c.UserContext(), projectID); err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "project not found")
		}
		h.logger.Error().Err(err).Uint("project_id", projectID).Msg("failed to delete project")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete project")
	}

	return utils.SendSuccess(c, "project deleted", nil)
}

func (h *ProjectHandler) members(c *fiber.Ctx) error {
	projectID, err := parseUintParam(c, "projectID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	result, err := h.service.Members(c.UserContext(), projectID)
	if err != nil {
		h.logger.Error().Err(err).Uint("project_id", projectID).Msg("failed to list members")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list members")
	}

	return utils.SendSuccess(c, "members retrieved", result)
}

func (h *ProjectHandler) addMember(c *fiber.Ctx) error {
	projectID, err := parseUintParam(c, "projectID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	var payload dto.ProjectMemberRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.AddMember(c.UserContext(), projectID, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "project not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Uint("project_id", projectID).Msg("failed to add member")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to add member")
		}
	}

	return utils.SendCreated(c, "member added", result)
}

func (h *ProjectHandler) removeMember(c *fiber.Ctx) error {
	projectID, err := parseUintParam(c, "projectID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	studentID, err := parseUintParam(c, "studentID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	if err := h.service.RemoveMember(c.UserContext(), projectID, studentID); err != nil {
		h.logger.Error().Err(err).Uint("project_id", projectID).Msg("failed to remove member")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to remove member")
	}

	return utils.SendSuccess(c, "member removed", nil)
}
