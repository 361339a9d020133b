package metrics

import (
	"github.com/alexanderramin/pulse/internal/formula"
	"github.com/alexanderramin/pulse/internal/numeric"
	"github.com/alexanderramin/pulse/internal/provenance"
)

// TaskMetrics is the earned-hours view of a single task.
type TaskMetrics struct {
	TaskID           string  `json:"taskId" yaml:"taskId"`
	TaskName         string  `json:"taskName" yaml:"taskName"`
	ProjectID        string  `json:"projectId" yaml:"projectId"`
	BaselineHours    float64 `json:"baselineHours" yaml:"baselineHours"`
	ActualHours      float64 `json:"actualHours" yaml:"actualHours"`
	EarnedHours      float64 `json:"earnedHours" yaml:"earnedHours"`
	PercentComplete  float64 `json:"percentComplete" yaml:"percentComplete"`
	Efficiency       float64 `json:"efficiency" yaml:"efficiency"`
	VarianceHours    float64 `json:"varianceHours" yaml:"varianceHours"`
	VariancePct      float64 `json:"variancePct" yaml:"variancePct"`
	BaselineUsagePct float64 `json:"baselineUsagePct" yaml:"baselineUsagePct"`
	Status           Status  `json:"status" yaml:"status"`
}

// ProjectMetricsSummary rolls TaskMetrics up to the project.
type ProjectMetricsSummary struct {
	ProjectID      string         `json:"projectId" yaml:"projectId"`
	ProjectName    string         `json:"projectName" yaml:"projectName"`
	TaskCount      int            `json:"taskCount" yaml:"taskCount"`
	CompletedCount int            `json:"completedCount" yaml:"completedCount"`
	BaselineHours  float64        `json:"baselineHours" yaml:"baselineHours"`
	ActualHours    float64        `json:"actualHours" yaml:"actualHours"`
	EarnedHours    float64        `json:"earnedHours" yaml:"earnedHours"`
	RemainingHours float64        `json:"remainingHours" yaml:"remainingHours"`
	Efficiency     float64        `json:"efficiency" yaml:"efficiency"`
	VarianceHours  float64        `json:"varianceHours" yaml:"varianceHours"`
	VariancePct    float64        `json:"variancePct" yaml:"variancePct"`
	Status         Status         `json:"status" yaml:"status"`
	StatusCounts   map[Status]int `json:"statusCounts" yaml:"statusCounts"`
	EffortSpent    formula.Output `json:"effortSpent" yaml:"effortSpent"`
}

type earnedView struct {
	earned        float64
	efficiency    float64
	varianceHours float64
	variancePct   float64
}

// earned computes efficiency and variance from earned hours. Variance is
// graded against earned hours, or baseline when nothing is earned yet.
func (e *Engine) earned(baseline, actual, earned float64) (earnedView, Status) {
	v := earnedView{earned: earned}
	v.efficiency = 100
	if actual > 0 {
		v.efficiency = earned / actual * 100
	}
	v.varianceHours = actual - earned
	v.variancePct = numeric.SafeDivide(v.varianceHours, earned, 0) * 100

	reference := earned
	if reference <= 0 {
		reference = baseline
	}
	return v, e.classify(v.varianceHours, reference)
}

// CalculateTaskMetrics reports every task in input order.
func (e *Engine) CalculateTaskMetrics(data Data) []TaskMetrics {
	out := make([]TaskMetrics, 0, len(data.Tasks))
	for i := range data.Tasks {
		t := &data.Tasks[i]
		baseline := numeric.NonNegative(t.BaselineHours)
		actual := numeric.NonNegative(t.ActualHours)
		pct := numeric.Clamp(t.PercentComplete, 0, 100)
		v, status := e.earned(baseline, actual, t.EarnedHours())

		out = append(out, TaskMetrics{
			TaskID:           t.ID,
			TaskName:         t.Name,
			ProjectID:        t.ProjectID,
			BaselineHours:    numeric.Round2(baseline),
			ActualHours:      numeric.Round2(actual),
			EarnedHours:      numeric.Round2(v.earned),
			PercentComplete:  numeric.Round2(pct),
			Efficiency:       numeric.Round2(v.efficiency),
			VarianceHours:    numeric.Round2(v.varianceHours),
			VariancePct:      numeric.Round2(v.variancePct),
			BaselineUsagePct: formula.TaskEfficiencyPct(actual, baseline).Value,
			Status:           status,
		})
	}
	return out
}

// CalculateProjectSummary reports one row per project that has tasks, in
// project order. Tasks on unknown projects are left out.
func (e *Engine) CalculateProjectSummary(data Data, opts ...provenance.Option) []ProjectMetricsSummary {
	tasks := e.CalculateTaskMetrics(data)
	byProject := make(map[string][]int, len(data.Projects))
	for i := range tasks {
		byProject[tasks[i].ProjectID] = append(byProject[tasks[i].ProjectID], i)
	}

	out := make([]ProjectMetricsSummary, 0, len(data.Projects))
	for i := range data.Projects {
		p := &data.Projects[i]
		idx := byProject[p.ID]
		if len(idx) == 0 {
			continue
		}

		counts := map[Status]int{StatusGood: 0, StatusWarning: 0, StatusBad: 0}
		var baseline, actual, earned, remaining float64
		completed := 0
		for _, ti := range idx {
			tm := tasks[ti]
			src := &data.Tasks[ti]
			baseline += tm.BaselineHours
			actual += tm.ActualHours
			earned += tm.EarnedHours
			remaining += numeric.NonNegative(src.PlannedHours() - numeric.NonNegative(src.ActualHours))
			counts[tm.Status]++
			if src.IsCompleted() {
				completed++
			}
		}

		v, status := e.earned(baseline, actual, earned)
		spentOpts := append([]provenance.Option{
			provenance.WithScope("project:" + p.ID),
			provenance.WithDataSources("tasks"),
		}, opts...)

		out = append(out, ProjectMetricsSummary{
			ProjectID:      p.ID,
			ProjectName:    p.Name,
			TaskCount:      len(idx),
			CompletedCount: completed,
			BaselineHours:  numeric.Round2(baseline),
			ActualHours:    numeric.Round2(actual),
			EarnedHours:    numeric.Round2(earned),
			RemainingHours: numeric.Round2(remaining),
			Efficiency:     numeric.Round2(v.efficiency),
			VarianceHours:  numeric.Round2(v.varianceHours),
			VariancePct:    numeric.Round2(v.variancePct),
			Status:         status,
			StatusCounts:   counts,
			EffortSpent:    formula.EfficiencyPct(actual, remaining, spentOpts...),
		})
	}
	return out
}
