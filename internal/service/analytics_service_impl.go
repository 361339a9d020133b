package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pulse/internal/app"
	"github.com/alexanderramin/pulse/internal/domain"
	"github.com/alexanderramin/pulse/internal/executive"
	"github.com/alexanderramin/pulse/internal/formula"
	"github.com/alexanderramin/pulse/internal/metrics"
	"github.com/alexanderramin/pulse/internal/provenance"
	"github.com/alexanderramin/pulse/internal/rollup"
	"github.com/alexanderramin/pulse/internal/utilization"
)

// AnalyticsConfig carries the engine settings. Now stamps provenance
// traces; nil means the wall clock.
type AnalyticsConfig struct {
	Metrics     metrics.Config
	Utilization utilization.Config
	Executive   executive.Config
	Now         func() time.Time
}

type analyticsService struct {
	loader      *SnapshotLoader
	metrics     *metrics.Engine
	utilization *utilization.Engine
	executive   executive.Config
	now         func() time.Time
	observer    UseCaseObserver
}

func NewAnalyticsService(loader *SnapshotLoader, cfg AnalyticsConfig, observers ...UseCaseObserver) AnalyticsService {
	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &analyticsService{
		loader:      loader,
		metrics:     metrics.NewEngine(cfg.Metrics),
		utilization: utilization.NewEngine(cfg.Utilization),
		executive:   cfg.Executive,
		now:         now,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *analyticsService) load(ctx context.Context, scope app.Scope, fields map[string]any) (*domain.Snapshot, error) {
	snap, err := s.loader.Load(ctx, scope)
	if err != nil {
		return nil, err
	}
	fields["projects"] = len(snap.Projects)
	fields["tasks"] = len(snap.Tasks)
	fields["hours"] = len(snap.Hours)
	return snap, nil
}

func emptySnapshot(scope app.Scope) error {
	msg := "no tasks or hour entries stored; run 'pulse import' first"
	if !scope.IsZero() {
		msg = "no tasks or hour entries in " + scopeLabel(scope)
	}
	return &app.AnalyticsError{Code: app.ErrEmptySnapshot, Message: msg}
}

// scopeLabel names the scope in provenance records.
func scopeLabel(scope app.Scope) string {
	switch {
	case scope.PortfolioID != "" && len(scope.ProjectIDs) > 0:
		return "portfolio:" + scope.PortfolioID + "/projects:" + strings.Join(scope.ProjectIDs, ",")
	case scope.PortfolioID != "":
		return "portfolio:" + scope.PortfolioID
	case len(scope.ProjectIDs) == 1:
		return "project:" + scope.ProjectIDs[0]
	case len(scope.ProjectIDs) > 1:
		return "projects:" + strings.Join(scope.ProjectIDs, ",")
	}
	return "portfolio"
}

func (s *analyticsService) Portfolio(ctx context.Context, req app.PortfolioRequest) (resp *app.PortfolioResponse, err error) {
	by := req.AggregateBy
	if by == "" {
		by = rollup.ByProject
	}
	fields := map[string]any{"aggregate_by": string(by)}
	done := track(ctx, s.observer, "portfolio", fields)
	defer func() { done(err) }()

	if !by.Valid() {
		return nil, &app.AnalyticsError{
			Code:    app.ErrInvalidAggregateBy,
			Message: fmt.Sprintf("aggregate by %q (expected %q or %q)", by, rollup.ByProject, rollup.BySite),
		}
	}

	snap, err := s.load(ctx, req.Scope, fields)
	if err != nil {
		return nil, err
	}
	if snap.IsEmpty() {
		return nil, emptySnapshot(req.Scope)
	}

	breakdown := rollup.BuildProjectBreakdown(snap.Tasks, snap.Projects, snap.Hours, snap.Sites, by)
	fields["rows"] = len(breakdown)
	return &app.PortfolioResponse{
		AsOf:        app.ResolveAsOf(req.AsOf),
		AggregateBy: by,
		Breakdown:   breakdown,
		Aggregate:   rollup.BuildPortfolioAggregate(breakdown, scopeLabel(req.Scope), provenance.WithClock(s.now)),
	}, nil
}

func (s *analyticsService) Metrics(ctx context.Context, req app.MetricsRequest) (resp *app.MetricsResponse, err error) {
	fields := map[string]any{"view": string(req.View)}
	done := track(ctx, s.observer, "metrics", fields)
	defer func() { done(err) }()

	if !req.View.Valid() {
		return nil, &app.AnalyticsError{
			Code:    app.ErrInvalidView,
			Message: fmt.Sprintf("metrics view %q (expected tasks, projects, counts or efficiency)", req.View),
		}
	}

	snap, err := s.load(ctx, req.Scope, fields)
	if err != nil {
		return nil, err
	}
	if snap.IsEmpty() {
		return nil, emptySnapshot(req.Scope)
	}

	asOf := app.ResolveAsOf(req.AsOf)
	data := metrics.Data{Tasks: snap.Tasks, QCTasks: snap.QCTasks, Projects: snap.Projects}
	resp = &app.MetricsResponse{AsOf: asOf, View: req.View}
	switch req.View {
	case app.ViewTasks:
		resp.Tasks = s.metrics.CalculateTaskMetrics(data)
		fields["rows"] = len(resp.Tasks)
	case app.ViewProjects:
		resp.Projects = s.metrics.CalculateProjectSummary(data, provenance.WithClock(s.now))
		fields["rows"] = len(resp.Projects)
	case app.ViewCounts:
		resp.Counts = s.metrics.CalculateCountMetrics(data)
		fields["rows"] = len(resp.Counts)
	case app.ViewEfficiency:
		resp.Efficiency = s.metrics.CalculateProjectEfficiencyMetrics(data, asOf)
		fields["rows"] = len(resp.Efficiency)
	}
	return resp, nil
}

func (s *analyticsService) Utilization(ctx context.Context, req app.UtilizationRequest) (resp *app.UtilizationResponse, err error) {
	fields := map[string]any{}
	if req.EmployeeID != "" {
		fields["employee"] = req.EmployeeID
	}
	done := track(ctx, s.observer, "utilization", fields)
	defer func() { done(err) }()

	snap, err := s.load(ctx, req.Scope, fields)
	if err != nil {
		return nil, err
	}
	if len(snap.Employees) == 0 {
		return nil, &app.AnalyticsError{Code: app.ErrEmptySnapshot, Message: "no employees stored; run 'pulse import' first"}
	}

	asOf := app.ResolveAsOf(req.AsOf)
	results := s.utilization.Calculate(utilization.Data{
		Employees: snap.Employees,
		Tasks:     snap.Tasks,
		Hours:     snap.Hours,
	}, asOf)

	resp = &app.UtilizationResponse{AsOf: asOf}
	var warnings []string
	for _, r := range results {
		if req.EmployeeID != "" && r.EmployeeID != req.EmployeeID {
			continue
		}
		resp.Results = append(resp.Results, r)
		warnings = append(warnings, r.Warnings...)
	}
	resp.Warnings = uniqueStrings(warnings)
	fields["employees"] = len(resp.Results)
	fields["warnings"] = len(resp.Warnings)
	return resp, nil
}

func (s *analyticsService) Summary(ctx context.Context, req app.SummaryRequest) (resp *app.SummaryResponse, err error) {
	fields := map[string]any{}
	scope := req.Scope
	if req.ProjectID != "" {
		fields["project"] = req.ProjectID
		scope.ProjectIDs = []string{req.ProjectID}
	}
	done := track(ctx, s.observer, "summary", fields)
	defer func() { done(err) }()

	snap, err := s.load(ctx, scope, fields)
	if err != nil {
		return nil, err
	}
	if len(snap.Tasks) == 0 {
		return nil, emptySnapshot(scope)
	}

	team := teamEmployees(snap.Tasks, snap.Employees)
	if len(team) == 0 {
		team = snap.Employees
	}
	m := executive.CalculateProjectMetrics(snap.Tasks, team, app.ResolveAsOf(req.AsOf), s.executive)
	summary := executive.Generate(m,
		provenance.WithScope(scopeLabel(scope)),
		provenance.WithTimeWindow(m.StartDate, m.EndDate),
		provenance.WithClock(s.now),
	)
	fields["health"] = string(summary.Health.Status)
	fields["risks"] = len(summary.Risks)

	return &app.SummaryResponse{
		ProjectID:   req.ProjectID,
		ProjectName: summaryName(snap, req),
		Summary:     summary,
	}, nil
}

func summaryName(snap *domain.Snapshot, req app.SummaryRequest) string {
	if req.ProjectID != "" {
		for _, p := range snap.Projects {
			if p.ID == req.ProjectID {
				return p.Name
			}
		}
		return rollup.UnknownName
	}
	if req.Scope.PortfolioID != "" {
		for _, p := range snap.Portfolios {
			if p.ID == req.Scope.PortfolioID {
				return p.Name
			}
		}
	}
	return "Portfolio"
}

func (s *analyticsService) Evaluate(ctx context.Context, req app.FormulaRequest) (resp *app.FormulaResponse, err error) {
	fields := map[string]any{"formula": req.Name}
	done := track(ctx, s.observer, "formula", fields)
	defer func() { done(err) }()

	spec, ok := formula.Lookup(req.Name)
	if !ok {
		return nil, &app.AnalyticsError{
			Code:    app.ErrUnknownFormula,
			Message: fmt.Sprintf("no formula named %q (available: %s)", req.Name, strings.Join(formula.Names(), ", ")),
		}
	}
	return &app.FormulaResponse{
		Name: spec.Name,
		Args: spec.Args,
		Output: spec.Eval(req.Args,
			provenance.WithScope("ad-hoc"),
			provenance.WithDataSources("arguments"),
			provenance.WithClock(s.now),
		),
	}, nil
}
