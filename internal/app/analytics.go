package app

import (
	"time"

	"github.com/alexanderramin/pulse/internal/executive"
	"github.com/alexanderramin/pulse/internal/formula"
	"github.com/alexanderramin/pulse/internal/metrics"
	"github.com/alexanderramin/pulse/internal/rollup"
	"github.com/alexanderramin/pulse/internal/utilization"
)

type PortfolioRequest struct {
	AsOf        *time.Time
	AggregateBy rollup.AggregateBy
	Scope       Scope
}

func NewPortfolioRequest() PortfolioRequest {
	return PortfolioRequest{AggregateBy: rollup.ByProject}
}

type PortfolioResponse struct {
	AsOf        time.Time                 `json:"asOf" yaml:"asOf"`
	AggregateBy rollup.AggregateBy        `json:"aggregateBy" yaml:"aggregateBy"`
	Breakdown   []rollup.BreakdownItem    `json:"breakdown" yaml:"breakdown"`
	Aggregate   rollup.PortfolioAggregate `json:"aggregate" yaml:"aggregate"`
}

type MetricsView string

const (
	ViewTasks      MetricsView = "tasks"
	ViewProjects   MetricsView = "projects"
	ViewCounts     MetricsView = "counts"
	ViewEfficiency MetricsView = "efficiency"
)

func (v MetricsView) Valid() bool {
	switch v {
	case ViewTasks, ViewProjects, ViewCounts, ViewEfficiency:
		return true
	}
	return false
}

type MetricsRequest struct {
	AsOf  *time.Time
	View  MetricsView
	Scope Scope
}

type MetricsResponse struct {
	AsOf       time.Time                           `json:"asOf" yaml:"asOf"`
	View       MetricsView                         `json:"view" yaml:"view"`
	Tasks      []metrics.TaskMetrics               `json:"tasks,omitempty" yaml:"tasks,omitempty"`
	Projects   []metrics.ProjectMetricsSummary     `json:"projects,omitempty" yaml:"projects,omitempty"`
	Counts     []metrics.CountMetricsAnalysis      `json:"counts,omitempty" yaml:"counts,omitempty"`
	Efficiency []metrics.ProjectsEfficiencyMetrics `json:"efficiency,omitempty" yaml:"efficiency,omitempty"`
}

type UtilizationRequest struct {
	AsOf       *time.Time
	EmployeeID string
	Scope      Scope
}

type UtilizationResponse struct {
	AsOf     time.Time                       `json:"asOf" yaml:"asOf"`
	Results  []utilization.UtilizationResult `json:"results" yaml:"results"`
	Warnings []string                        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type SummaryRequest struct {
	AsOf      *time.Time
	ProjectID string
	Scope     Scope
}

type SummaryResponse struct {
	ProjectID   string                     `json:"projectId,omitempty" yaml:"projectId,omitempty"`
	ProjectName string                     `json:"projectName" yaml:"projectName"`
	Summary     executive.ExecutiveSummary `json:"summary" yaml:"summary"`
}

type FormulaRequest struct {
	Name string
	Args []float64
}

type FormulaResponse struct {
	Name   string         `json:"name" yaml:"name"`
	Args   []string       `json:"args" yaml:"args"`
	Output formula.Output `json:"output" yaml:"output"`
}

type ImportResult struct {
	Replaced   bool `json:"replaced" yaml:"replaced"`
	Portfolios int  `json:"portfolios" yaml:"portfolios"`
	Sites      int  `json:"sites" yaml:"sites"`
	Projects   int  `json:"projects" yaml:"projects"`
	Employees  int  `json:"employees" yaml:"employees"`
	Tasks      int  `json:"tasks" yaml:"tasks"`
	QCTasks    int  `json:"qcTasks" yaml:"qcTasks"`
	Hours      int  `json:"hours" yaml:"hours"`
}
