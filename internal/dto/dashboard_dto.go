package dto

// DashboardResponse aggregates the figures shown on a teacher's home screen.
// AverageProgress is on the raw 0-10 completion scale and AverageRating on the
// 0-5 scale, matching the per-project fields.
type DashboardResponse struct {
	TotalProjects     int     `json:"total_projects"`
	ActiveProjects    int     `json:"active_projects"`
	CompletedProjects int     `json:"completed_projects"`
	EvaluatedProjects int     `json:"evaluated_projects"`
	AverageProgress   float64 `json:"average_progress"`
	AverageRating     float64 `json:"average_rating"`
	OpenTasks         int     `json:"open_tasks"`
}
