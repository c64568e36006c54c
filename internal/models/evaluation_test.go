package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewEvaluationDraft(t *testing.T) {
	draft := NewEvaluationDraft(7, 3)

	require.Equal(t, uint(7), draft.ProjectID)
	require.Equal(t, uint(3), draft.TeacherID)
	require.False(t, draft.IsSaved())
	require.Len(t, draft.Criteria, 5)
	require.Equal(t, 50.0, draft.MaxTotalScore)
	require.Zero(t, draft.TotalScore)
	require.Zero(t, draft.Percentage)
	require.Empty(t, draft.Feedback)
}

func TestSetCriterionScoreClampsAndRecalculates(t *testing.T) {
	draft := NewEvaluationDraft(1, 1)

	require.NoError(t, draft.SetCriterionScore(0, 15, nil))
	require.Equal(t, 10.0, draft.Criteria[0].Score)

	require.NoError(t, draft.SetCriterionScore(1, -2, nil))
	require.Zero(t, draft.Criteria[1].Score)

	// Completion 10 at weight 0.2 is the only non-zero entry.
	require.InDelta(t, 2.0, draft.TotalScore, 1e-9)
	require.Equal(t, 20, draft.Percentage)
}

func TestSetCriterionScoreComments(t *testing.T) {
	draft := NewEvaluationDraft(1, 1)

	note := "solid work"
	require.NoError(t, draft.SetCriterionScore(2, 8, &note))
	require.Equal(t, "solid work", draft.Criteria[2].Comments)

	// A nil comments pointer keeps the existing text.
	require.NoError(t, draft.SetCriterionScore(2, 9, nil))
	require.Equal(t, "solid work", draft.Criteria[2].Comments)
	require.Equal(t, 9.0, draft.Criteria[2].Score)

	// An explicit empty string clears it.
	empty := ""
	require.NoError(t, draft.SetCriterionScore(2, 9, &empty))
	require.Empty(t, draft.Criteria[2].Comments)
}

func TestSetCriterionScoreOutOfRange(t *testing.T) {
	draft := NewEvaluationDraft(1, 1)

	require.ErrorIs(t, draft.SetCriterionScore(-1, 5, nil), ErrCriterionOutOfRange)
	require.ErrorIs(t, draft.SetCriterionScore(5, 5, nil), ErrCriterionOutOfRange)
}

func TestSetFeedbackLeavesScoresAlone(t *testing.T) {
	draft := NewEvaluationDraft(1, 1)
	require.NoError(t, draft.SetCriterionScore(0, 6, nil))
	before := draft.TotalScore

	draft.SetFeedback("  keep iterating  ")
	require.Equal(t, "  keep iterating  ", draft.Feedback)
	require.Equal(t, before, draft.TotalScore)
}

func TestCompletionScore(t *testing.T) {
	draft := NewEvaluationDraft(1, 1)
	require.Zero(t, draft.CompletionScore())

	require.NoError(t, draft.SetCriterionScore(0, 6.5, nil))
	require.Equal(t, 6.5, draft.CompletionScore())

	var empty Evaluation
	require.Zero(t, empty.CompletionScore())
}

func TestProjectRating(t *testing.T) {
	evaluation := Evaluation{Percentage: 80}
	require.Equal(t, 4.0, evaluation.ProjectRating())

	evaluation.Percentage = 0
	require.Zero(t, evaluation.ProjectRating())

	evaluation.Percentage = 100
	require.Equal(t, 5.0, evaluation.ProjectRating())
}
