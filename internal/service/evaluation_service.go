package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/ruangkarya/ruangkarya-api/internal/dto"
	"github.com/ruangkarya/ruangkarya-api/internal/models"
	"github.com/ruangkarya/ruangkarya-api/internal/observability"
	"github.com/ruangkarya/ruangkarya-api/internal/repository"
)

// ErrInsufficientData indicates a draft is missing its project or teacher reference.
var ErrInsufficientData = errors.New("insufficient data: project and teacher must be set")

// ErrEvaluationLoad indicates the evaluation query failed. Callers must surface
// this instead of silently falling back to an empty draft, so "no evaluation
// exists yet" stays distinguishable from "couldn't check".
var ErrEvaluationLoad = errors.New("failed to load evaluation")

// ErrEvaluationPersist indicates the evaluation or project write failed.
var ErrEvaluationPersist = errors.New("failed to persist evaluation")

// EvaluationSavedSubject is the NATS subject events are published on after a
// successful save.
const EvaluationSavedSubject = "karya.evaluation.saved"

// EvaluationSavedEvent is the payload published on EvaluationSavedSubject.
type EvaluationSavedEvent struct {
	EvaluationID uint      `json:"evaluation_id"`
	ProjectID    uint      `json:"project_id"`
	TeacherID    uint      `json:"teacher_id"`
	Percentage   int       `json:"percentage"`
	Progress     float64   `json:"progress"`
	SavedAt      time.Time `json:"saved_at"`
}

// EvaluationService bridges evaluation drafts to persistence and keeps the
// project's derived progress and rating fields in sync.
type EvaluationService interface {
	// Load returns the teacher's stored evaluation for the project, or a fresh
	// unsaved draft seeded with the default rubric when none exists.
	Load(ctx context.Context, projectID, teacherID uint) (models.Evaluation, error)
	// Save persists the draft (insert on first save, update after) and updates
	// the project's progress and rating in the same transaction. Aggregates are
	// recomputed from the criteria before writing.
	Save(ctx context.Context, draft models.Evaluation) (models.Evaluation, error)
	// Submit loads the teacher's draft, applies the request mutations and saves.
	Submit(ctx context.Context, projectID, teacherID uint, payload dto.EvaluationSaveRequest) (dto.EvaluationResponse, error)
}

type evaluationService struct {
	repo      repository.EvaluationRepository
	progress  ProgressService
	validator *validator.Validate
	nats      *nats.Conn
	logger    zerolog.Logger
	now       func() time.Time
}

// NewEvaluationService constructs the evaluation service. The NATS connection
// and progress service may be nil; saved events and cache invalidation are
// then skipped.
func NewEvaluationService(repo repository.EvaluationRepository, progress ProgressService, validate *validator.Validate, natsConn *nats.Conn, logger zerolog.Logger) EvaluationService {
	return &evaluationService{
		repo:      repo,
		progress:  progress,
		validator: validate,
		nats:      natsConn,
		logger:    logger.With().Str("component", "evaluation_service").Logger(),
		now:       time.Now,
	}
}

func (s *evaluationService) Load(ctx context.Context, projectID, teacherID uint) (models.Evaluation, error) {
	evaluations, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return models.Evaluation{}, fmt.Errorf("%w: %w", ErrEvaluationLoad, err)
	}

	for _, evaluation := range evaluations {
		if evaluation.TeacherID == teacherID {
			return evaluation, nil
		}
	}

	return models.NewEvaluationDraft(projectID, teacherID), nil
}

func (s *evaluationService) Save(ctx context.Context, draft models.Evaluation) (models.Evaluation, error) {
	tracer := otel.Tracer("github.com/ruangkarya/ruangkarya-api/internal/service/evaluation")
	ctx, span := tracer.Start(ctx, "evaluation.save")
	span.SetAttributes(
		attribute.Int64("evaluation.project_id", int64(draft.ProjectID)),
		attribute.Int64("evaluation.teacher_id", int64(draft.TeacherID)),
	)
	defer span.End()

	if draft.ProjectID == 0 || draft.TeacherID == 0 {
		span.RecordError(ErrInsufficientData)
		span.SetStatus(codes.Error, "insufficient_data")
		observability.EvaluationSaves().WithLabelValues("invalid").Inc()
		return models.Evaluation{}, ErrInsufficientData
	}

	// A possibly-stale cached aggregate is never trusted.
	draft.Recalculate()
	if draft.MaxTotalScore == 0 {
		draft.MaxTotalScore = models.RubricMaxTotal(draft.Criteria)
	}

	now := s.now()
	if draft.ID == 0 || draft.CreatedAt.IsZero() {
		draft.CreatedAt = now
	}
	draft.UpdatedAt = now

	progress := draft.CompletionScore()
	rating := draft.ProjectRating()

	if err := s.repo.SaveWithProject(ctx, &draft, progress, rating); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist_failed")
		observability.EvaluationSaves().WithLabelValues("error").Inc()
		return models.Evaluation{}, fmt.Errorf("%w: %w", ErrEvaluationPersist, err)
	}

	span.SetAttributes(
		attribute.Int("evaluation.percentage", draft.Percentage),
		attribute.Float64("evaluation.progress", progress),
	)
	observability.EvaluationSaves().WithLabelValues("success").Inc()

	if s.progress != nil {
		s.progress.Invalidate(ctx, draft.ProjectID)
	}

	s.publishSaved(draft, progress)

	return draft, nil
}

func (s *evaluationService) Submit(ctx context.Context, projectID, teacherID uint, payload dto.EvaluationSaveRequest) (dto.EvaluationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EvaluationResponse{}, err
	}

	draft, err := s.Load(ctx, projectID, teacherID)
	if err != nil {
		return dto.EvaluationResponse{}, err
	}

	for _, score := range payload.Scores {
		if err := draft.SetCriterionScore(score.Index, score.Score, score.Comments); err != nil {
			return dto.EvaluationResponse{}, err
		}
	}

	if payload.Feedback != nil {
		draft.SetFeedback(*payload.Feedback)
	}

	saved, err := s.Save(ctx, draft)
	if err != nil {
		return dto.EvaluationResponse{}, err
	}

	return dto.NewEvaluationResponse(saved), nil
}

func (s *evaluationService) publishSaved(evaluation models.Evaluation, progress float64) {
	if s.nats == nil {
		return
	}

	event := EvaluationSavedEvent{
		EvaluationID: evaluation.ID,
		ProjectID:    evaluation.ProjectID,
		TeacherID:    evaluation.TeacherID,
		Percentage:   evaluation.Percentage,
		Progress:     progress,
		SavedAt:      s.now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to marshal evaluation event")
		return
	}

	if err := s.nats.Publish(EvaluationSavedSubject, payload); err != nil {
		s.logger.Warn().Err(err).Uint("evaluation_id", evaluation.ID).Msg("failed to publish evaluation event")
	}
}
