// Package rollup aggregates raw task and hour records into per-project or
// per-site breakdown rows, and those rows into a single portfolio aggregate.
package rollup

import (
	"sort"

	"github.com/alexanderramin/pulse/internal/domain"
	"github.com/alexanderramin/pulse/internal/numeric"
)

// AggregateBy selects the grouping key of a breakdown.
type AggregateBy string

const (
	ByProject AggregateBy = "project"
	BySite    AggregateBy = "site"
)

// Valid reports whether a is a known grouping.
func (a AggregateBy) Valid() bool {
	return a == ByProject || a == BySite
}

// UnknownName is the group name given to records whose key cannot be
// resolved. Such groups are dropped from the breakdown.
const UnknownName = "Unknown"

// BreakdownItem is one project (or site) row.
type BreakdownItem struct {
	ID              string             `json:"id" yaml:"id"`
	Name            string             `json:"name" yaml:"name"`
	Kind            AggregateBy        `json:"kind" yaml:"kind"`
	TaskCount       int                `json:"taskCount" yaml:"taskCount"`
	CompletedCount  int                `json:"completedCount" yaml:"completedCount"`
	BaselineHours   float64            `json:"baselineHours" yaml:"baselineHours"`
	ActualHours     float64            `json:"actualHours" yaml:"actualHours"`
	RemainingHours  float64            `json:"remainingHours" yaml:"remainingHours"`
	EarnedHours     float64            `json:"earnedHours" yaml:"earnedHours"`
	TimesheetHours  float64            `json:"timesheetHours" yaml:"timesheetHours"`
	TimesheetCost   float64            `json:"timesheetCost" yaml:"timesheetCost"`
	ChargeTypes     map[string]float64 `json:"chargeTypes" yaml:"chargeTypes"`
	PercentComplete float64            `json:"percentComplete" yaml:"percentComplete"`
	SPI             float64            `json:"spi" yaml:"spi"`
	CPI             float64            `json:"cpi" yaml:"cpi"`
	VariancePct     float64            `json:"variancePct" yaml:"variancePct"`
}

type group struct {
	id         string
	name       string
	tasks      int
	completed  int
	baseline   float64
	actual     float64
	remaining  float64
	sumPct     float64
	tsHours    float64
	tsCost     float64
	chargeType map[string]float64
}

// resolver maps a project id to its group key, id and display name.
type resolver struct {
	by           AggregateBy
	projectNames map[string]string
	projectSite  map[string]string
	siteNames    map[string]string
}

func newResolver(projects []domain.Project, sites []domain.Site, by AggregateBy) resolver {
	r := resolver{
		by:           by,
		projectNames: make(map[string]string, len(projects)),
		projectSite:  make(map[string]string, len(projects)),
		siteNames:    make(map[string]string, len(sites)),
	}
	for _, p := range projects {
		r.projectNames[p.ID] = p.Name
		r.projectSite[p.ID] = p.SiteID
	}
	for _, s := range sites {
		r.siteNames[s.ID] = s.Name
	}
	return r
}

// resolve returns (key, id, name). In site mode the key is the site name so
// two site records sharing a name collapse into one row.
func (r resolver) resolve(projectID string) (string, string, string) {
	if r.by == BySite {
		siteID := r.projectSite[projectID]
		name, ok := r.siteNames[siteID]
		if !ok || name == "" {
			return UnknownName, siteID, UnknownName
		}
		return name, siteID, name
	}
	name, ok := r.projectNames[projectID]
	if !ok || name == "" {
		return projectID, projectID, UnknownName
	}
	return projectID, projectID, name
}

// BuildProjectBreakdown groups tasks and in-plan hour entries by project or
// by site. Only hour entries whose project appears in the task set are
// folded in, so unrelated projects' time is never double counted.
//
// The per-row spi/cpi/variance are local simplified figures; only the
// portfolio aggregate goes through the formula library.
func BuildProjectBreakdown(
	tasks []domain.Task,
	projects []domain.Project,
	hours []domain.HourEntry,
	sites []domain.Site,
	by AggregateBy,
) []BreakdownItem {
	if !by.Valid() {
		by = ByProject
	}
	res := newResolver(projects, sites, by)

	groups := make(map[string]*group)
	var order []string
	lookup := func(projectID string) *group {
		key, id, name := res.resolve(projectID)
		g, ok := groups[key]
		if !ok {
			g = &group{id: id, name: name, chargeType: map[string]float64{}}
			groups[key] = g
			order = append(order, key)
		}
		return g
	}

	planIDs := make(map[string]bool)
	for i := range tasks {
		t := &tasks[i]
		planIDs[t.ProjectID] = true
		g := lookup(t.ProjectID)
		g.tasks++
		if t.IsCompleted() {
			g.completed++
		}
		g.baseline += numeric.NonNegative(t.BaselineHours)
		g.actual += numeric.NonNegative(t.ActualHours)
		g.remaining += numeric.NonNegative(t.PlannedHours() - t.ActualHours)
		g.sumPct += numeric.Clamp(t.PercentComplete, 0, 100)
	}

	for _, h := range hours {
		if !planIDs[h.ProjectID] {
			continue
		}
		g := lookup(h.ProjectID)
		hrs := numeric.NonNegative(h.Hours)
		g.tsHours += hrs
		g.tsCost += numeric.NonNegative(h.Cost)
		ct := string(h.ChargeType)
		if ct == "" {
			ct = string(domain.ChargeUnspecified)
		}
		g.chargeType[ct] += hrs
	}

	items := make([]BreakdownItem, 0, len(order))
	for _, key := range order {
		g := groups[key]
		if g.name == UnknownName || g.tasks == 0 {
			continue
		}
		items = append(items, g.item(by))
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ActualHours != items[j].ActualHours {
			return items[i].ActualHours > items[j].ActualHours
		}
		return items[i].Name < items[j].Name
	})
	return items
}

func (g *group) item(by AggregateBy) BreakdownItem {
	avgPct := numeric.Round2(numeric.SafeDivide(g.sumPct, float64(g.tasks), 0))
	earned := g.baseline * avgPct / 100

	spi := 1.0
	if g.baseline > 0 {
		spi = earned / g.baseline
	}
	cpi := 1.0
	if g.actual > 0 {
		cpi = earned / g.actual
	}
	variance := 0.0
	if g.baseline > 0 {
		variance = (g.actual - g.baseline) / g.baseline * 100
	}

	charges := make(map[string]float64, len(g.chargeType))
	for k, v := range g.chargeType {
		charges[k] = numeric.Round2(v)
	}

	return BreakdownItem{
		ID:              g.id,
		Name:            g.name,
		Kind:            by,
		TaskCount:       g.tasks,
		CompletedCount:  g.completed,
		BaselineHours:   numeric.Round2(g.baseline),
		ActualHours:     numeric.Round2(g.actual),
		RemainingHours:  numeric.Round2(g.remaining),
		EarnedHours:     numeric.Round2(earned),
		TimesheetHours:  numeric.Round2(g.tsHours),
		TimesheetCost:   numeric.Round2(g.tsCost),
		ChargeTypes:     charges,
		PercentComplete: avgPct,
		SPI:             numeric.Round2(spi),
		CPI:             numeric.Round2(cpi),
		VariancePct:     numeric.Round2(variance),
	}
}
