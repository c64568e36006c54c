package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ruangkarya/ruangkarya-api/internal/dto"
	"github.com/ruangkarya/ruangkarya-api/internal/handler"
	"github.com/ruangkarya/ruangkarya-api/internal/models"
	"github.com/ruangkarya/ruangkarya-api/internal/service"
)

type mockEvaluationService struct {
	loadResult models.Evaluation
	loadErr    error

	submitResult dto.EvaluationResponse
	submitErr    error

	lastProjectID uint
	lastTeacherID uint
	lastPayload   dto.EvaluationSaveRequest
}

func (m *mockEvaluationService) Load(_ context.Context, projectID, teacherID uint) (models.Evaluation, error) {
	m.lastProjectID = projectID
	m.lastTeacherID = teacherID
	if m.loadErr != nil {
		return models.Evaluation{}, m.loadErr
	}
	return m.loadResult, nil
}

func (m *mockEvaluationService) Save(_ context.Context, draft models.Evaluation) (models.Evaluation, error) {
	return draft, nil
}

func (m *mockEvaluationService) Submit(_ context.Context, projectID, teacherID uint, payload dto.EvaluationSaveRequest) (dto.EvaluationResponse, error) {
	m.lastProjectID = projectID
	m.lastTeacherID = teacherID
	m.lastPayload = payload
	if m.submitErr != nil {
		return dto.EvaluationResponse{}, m.submitErr
	}
	return m.submitResult, nil
}

func newEvaluationTestApp(svc service.EvaluationService, userID uint) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/projects/:projectID/evaluation", func(c *fiber.Ctx) error {
		if userID != 0 {
			c.Locals("user_id", userID)
		}
		return c.Next()
	})
	handler.NewEvaluationHandler(svc, zerolog.Nop()).Register(group)
	return app
}

func TestEvaluationHandler_LoadReturnsDraft(t *testing.T) {
	draft := models.NewEvaluationDraft(12, 3)
	svc := &mockEvaluationService{loadResult: draft}
	app := newEvaluationTestApp(svc, 3)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/12/evaluation", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool                   `json:"success"`
		Data    dto.EvaluationResponse `json:"data"`
		Message string                 `json:"message"`
	}
	decodeResponse(t, resp, &body)

	require.True(t, body.Success)
	require.False(t, body.Data.Saved)
	require.Len(t, body.Data.Criteria, 5)
	require.Equal(t, uint(12), svc.lastProjectID)
	require.Equal(t, uint(3), svc.lastTeacherID)
}

func TestEvaluationHandler_LoadRequiresAuth(t *testing.T) {
	svc := &mockEvaluationService{}
	app := newEvaluationTestApp(svc, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/12/evaluation", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestEvaluationHandler_LoadInvalidProjectID(t *testing.T) {
	svc := &mockEvaluationService{}
	app := newEvaluationTestApp(svc, 3)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/abc/evaluation", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestEvaluationHandler_LoadFailure(t *testing.T) {
	svc := &mockEvaluationService{loadErr: service.ErrEvaluationLoad}
	app := newEvaluationTestApp(svc, 3)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/12/evaluation", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestEvaluationHandler_SubmitSuccess(t *testing.T) {
	svc := &mockEvaluationService{submitResult: dto.EvaluationResponse{ID: 9, ProjectID: 12, Percentage: 73, Saved: true}}
	app := newEvaluationTestApp(svc, 3)

	payload := []byte(`{"scores":[{"index":0,"score":8,"comments":"done"}],"feedback":"nice"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/projects/12/evaluation", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool                   `json:"success"`
		Data    dto.EvaluationResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.True(t, body.Data.Saved)
	require.Equal(t, 73, body.Data.Percentage)

	require.Len(t, svc.lastPayload.Scores, 1)
	require.Equal(t, 8.0, svc.lastPayload.Scores[0].Score)
	require.NotNil(t, svc.lastPayload.Feedback)
	require.Equal(t, "nice", *svc.lastPayload.Feedback)
}

func TestEvaluationHandler_SubmitBadIndex(t *testing.T) {
	svc := &mockEvaluationService{submitErr: models.ErrCriterionOutOfRange}
	app := newEvaluationTestApp(svc, 3)

	payload := []byte(`{"scores":[{"index":3,"score":5}]}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/projects/12/evaluation", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestEvaluationHandler_SubmitPersistFailure(t *testing.T) {
	svc := &mockEvaluationService{submitErr: errors.New("write failed")}
	app := newEvaluationTestApp(svc, 3)

	payload := []byte(`{"feedback":"x"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/projects/12/evaluation", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.False(t, body.Success)
	require.Equal(t, "failed to save evaluation, please try again", body.Message)
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(body, target))
}
