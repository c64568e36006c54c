package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ruangkarya/ruangkarya-api/internal/dto"
	"github.com/ruangkarya/ruangkarya-api/internal/models"
	"github.com/ruangkarya/ruangkarya-api/internal/service"
	"github.com/ruangkarya/ruangkarya-api/internal/utils"
)

// EvaluationHandler exposes the evaluation tab endpoints: loading the
// teacher's draft and submitting a save.
type EvaluationHandler struct {
	service service.EvaluationService
	logger  zerolog.Logger
}

// NewEvaluationHandler constructs an evaluation handler.
func NewEvaluationHandler(service service.EvaluationService, logger zerolog.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		service: service,
		logger:  logger.With().Str("component", "evaluation_handler").Logger(),
	}
}

// Register wires evaluation routes onto a project-scoped group.
func (h *EvaluationHandler) Register(router fiber.Router) {
	router.Get("", h.load)
	router.Put("", h.submit)
}

func (h *EvaluationHandler) load(c *fiber.Ctx) error {
	projectID, err := parseUintParam(c, "projectID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	teacherID := userIDFromContext(c)
	if teacherID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	draft, err := h.service.Load(c.UserContext(), projectID, teacherID)
	if err != nil {
		h.logger.Error().Err(err).Uint("project_id", projectID).Msg("failed to load evaluation")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load evaluation")
	}

	return utils.SendSuccess(c, "evaluation retrieved", dto.NewEvaluationResponse(draft))
}

func (h *EvaluationHandler) submit(c *fiber.Ctx) error {
	projectID, err := parseUintParam(c, "projectID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	teacherID := userIDFromContext(c)
	if teacherID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.EvaluationSaveRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Submit(c.UserContext(), projectID, teacherID, payload)
	switch {
	case err == nil:
		return utils.SendSuccess(c, "evaluation saved", response)
	case isValidationError(err),
		errors.Is(err, models.ErrCriterionOutOfRange),
		errors.Is(err, service.ErrInsufficientData):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEvaluationLoad):
		h.logger.Error().Err(err).Uint("project_id", projectID).Msg("failed to load evaluation before save")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load evaluation")
	default:
		h.logger.Error().Err(err).Uint("project_id", projectID).Msg("failed to save evaluation")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to save evaluation, please try again")
	}
}
