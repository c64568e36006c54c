package models

import "math"

// Criterion is a single entry of the evaluation rubric. The rubric is ordered:
// the first criterion is the completion criterion and its raw score doubles as
// the project progress value shown across the app.
type Criterion struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
	Weight   float64 `json:"weight"`
	Comments string  `json:"comments"`
}

// RubricAggregate holds the derived figures computed from a criteria list.
type RubricAggregate struct {
	WeightedTotal float64
	Percentage    int
}

// DefaultCriteria returns the fixed rubric applied to every project evaluation.
// Weights sum to 1 and every criterion is scored out of 10.
func DefaultCriteria() []Criterion {
	return []Criterion{
		{Name: "Completion", MaxScore: 10, Weight: 0.2},
		{Name: "Quality", MaxScore: 10, Weight: 0.25},
		{Name: "Creativity", MaxScore: 10, Weight: 0.15},
		{Name: "Teamwork", MaxScore: 10, Weight: 0.2},
		{Name: "Presentation", MaxScore: 10, Weight: 0.2},
	}
}

// RubricMaxTotal returns the unweighted sum of max scores. Stored on the
// evaluation record as max_total_score for backward compatibility with older
// consumers; the percentage remains the authoritative derived figure.
func RubricMaxTotal(criteria []Criterion) float64 {
	var total float64
	for _, criterion := range criteria {
		total += criterion.MaxScore
	}
	return total
}

// AggregateCriteria computes the weighted total and the 0-100 percentage for a
// criteria list. Pure function: calling it twice on unchanged input yields the
// same result.
func AggregateCriteria(criteria []Criterion) RubricAggregate {
	var weightedTotal, weightedMax float64
	for _, criterion := range criteria {
		weightedTotal += criterion.Score * criterion.Weight
		weightedMax += criterion.MaxScore * criterion.Weight
	}

	aggregate := RubricAggregate{WeightedTotal: weightedTotal}
	if weightedMax > 0 {
		aggregate.Percentage = int(math.Round(100 * weightedTotal / weightedMax))
	}

	return aggregate
}

// ClampScore forces a score into the [0, maxScore] range. Out-of-range scores
// must never be persisted or displayed.
func ClampScore(score, maxScore float64) float64 {
	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}
