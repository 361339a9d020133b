package metrics

import (
	"time"

	"github.com/alexanderramin/pulse/internal/domain"
	"github.com/alexanderramin/pulse/internal/numeric"
)

// EfficiencyFlag marks a project in the efficiency view.
type EfficiencyFlag string

const (
	FlagOK          EfficiencyFlag = "ok"
	FlagWatch       EfficiencyFlag = "watch"
	FlagHighMetrics EfficiencyFlag = "high_metrics"
)

// DefaultExpectedProgress applies when a project has no usable dates.
const DefaultExpectedProgress = 50.0

// ProjectsEfficiencyMetrics compares hours burn and task progress against
// where the project should be on its calendar.
type ProjectsEfficiencyMetrics struct {
	ProjectID        string         `json:"projectId" yaml:"projectId"`
	ProjectName      string         `json:"projectName" yaml:"projectName"`
	TaskCount        int            `json:"taskCount" yaml:"taskCount"`
	BaselineHours    float64        `json:"baselineHours" yaml:"baselineHours"`
	ActualHours      float64        `json:"actualHours" yaml:"actualHours"`
	Efficiency       float64        `json:"efficiency" yaml:"efficiency"`
	AvgTaskProgress  float64        `json:"avgTaskProgress" yaml:"avgTaskProgress"`
	ExpectedProgress float64        `json:"expectedProgress" yaml:"expectedProgress"`
	MetricsRatio     float64        `json:"metricsRatio" yaml:"metricsRatio"`
	Flag             EfficiencyFlag `json:"flag" yaml:"flag"`
}

// CalculateProjectEfficiencyMetrics reports one row per project that has at
// least one task, in project order.
func (e *Engine) CalculateProjectEfficiencyMetrics(data Data, asOf time.Time) []ProjectsEfficiencyMetrics {
	type acc struct {
		count            int
		baseline, actual float64
		progressSum      float64
	}
	byProject := make(map[string]*acc, len(data.Projects))
	for i := range data.Tasks {
		t := &data.Tasks[i]
		a := byProject[t.ProjectID]
		if a == nil {
			a = &acc{}
			byProject[t.ProjectID] = a
		}
		a.count++
		a.baseline += numeric.NonNegative(t.BaselineHours)
		a.actual += numeric.NonNegative(t.ActualHours)
		a.progressSum += numeric.Clamp(t.PercentComplete, 0, 100)
	}

	out := make([]ProjectsEfficiencyMetrics, 0, len(data.Projects))
	for i := range data.Projects {
		p := &data.Projects[i]
		a := byProject[p.ID]
		if a == nil || a.count == 0 {
			continue
		}

		efficiency := 100.0
		if a.actual > 0 {
			efficiency = a.baseline / a.actual * 100
		}
		avgProgress := a.progressSum / float64(a.count)
		expected := ExpectedProgress(p, asOf)
		ratio := numeric.SafeDivide(avgProgress, expected, 1)

		flag := FlagOK
		switch {
		case efficiency < 80 || ratio < 0.8:
			flag = FlagWatch
		case ratio > 1.2:
			flag = FlagHighMetrics
		}

		out = append(out, ProjectsEfficiencyMetrics{
			ProjectID:        p.ID,
			ProjectName:      p.Name,
			TaskCount:        a.count,
			BaselineHours:    numeric.Round2(a.baseline),
			ActualHours:      numeric.Round2(a.actual),
			Efficiency:       numeric.Round2(efficiency),
			AvgTaskProgress:  numeric.Round2(avgProgress),
			ExpectedProgress: numeric.Round2(expected),
			MetricsRatio:     numeric.Round2(ratio),
			Flag:             flag,
		})
	}
	return out
}

// ExpectedProgress is the calendar share of the project's planned window
// elapsed at asOf, in percent.
func ExpectedProgress(p *domain.Project, asOf time.Time) float64 {
	start, end, ok := p.PlannedWindow()
	if !ok {
		return DefaultExpectedProgress
	}
	if asOf.Before(start) {
		return 0
	}
	if !asOf.Before(end) {
		return 100
	}
	total := end.Sub(start).Hours()
	elapsed := asOf.Sub(start).Hours()
	return numeric.Clamp(numeric.SafeDivide(elapsed, total, 1)*100, 0, 100)
}
