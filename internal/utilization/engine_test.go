package utilization

import (
	"math"
	"testing"
	"time"

	"github.com/alexanderramin/pulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-03-14 is day 73: 2080 * 73 / 365 = 416.
var asOf = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func TestNormalizeWeights(t *testing.T) {
	assert.Equal(t, []float64{0.5, 0.5, 0, 0}, NormalizeWeights([]float64{2, 2}, 4))
	assert.Equal(t, []float64{0.5, 0.5}, NormalizeWeights([]float64{-1, math.NaN()}, 2))
	assert.Equal(t, []float64{0.25, 0.75}, NormalizeWeights([]float64{1, 3, 100}, 2))
	assert.Nil(t, NormalizeWeights([]float64{1}, 0))

	even := NormalizeWeights(nil, 3)
	require.Len(t, even, 3)
	assert.InDelta(t, 1.0/3, even[0], 1e-12)
}

func TestNewEngine_Defaults(t *testing.T) {
	cfg := NewEngine(Config{}).Config()
	assert.Equal(t, 2080.0, cfg.AnnualCapacity)
	assert.Equal(t, 4, cfg.TrendPeriods)
	assert.Equal(t, 30, cfg.PeriodLengthDays)
	require.Len(t, cfg.TrendWeights, 4)
	var sum float64
	for _, w := range cfg.TrendWeights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.InDelta(t, 0.4, cfg.TrendWeights[0], 1e-9)
}

func TestCalculate_FullAssignmentIsFullUtilization(t *testing.T) {
	data := Data{
		Employees: []domain.Employee{{ID: "e1", Name: "Ana Ruiz"}},
		Tasks:     []domain.Task{{ID: "t1", EmployeeID: "e1", BaselineHours: 2080}},
	}
	got := NewEngine(DefaultConfig()).Calculate(data, asOf)
	require.Len(t, got, 1)
	assert.Equal(t, 2080.0, got[0].AssignedHours)
	assert.Equal(t, 100.0, got[0].ProjectedUtilization)
}

func TestCalculate_CurrentUtilizationIsProRated(t *testing.T) {
	data := Data{
		Employees: []domain.Employee{{ID: "e1", Name: "Ana Ruiz"}},
		Hours: []domain.HourEntry{
			{EmployeeID: "e1", Hours: 200, Date: day(2026, 1, 10)},
			{EmployeeName: "ana ruiz", Hours: 8, Date: day(2026, 1, 11)},
		},
	}
	got := NewEngine(DefaultConfig()).Calculate(data, asOf)
	require.Len(t, got, 1)
	assert.Equal(t, 416.0, got[0].ProRatedCapacity)
	assert.Equal(t, 208.0, got[0].ActualHoursLogged)
	assert.Equal(t, 50.0, got[0].CurrentUtilization)
}

func TestCalculate_MatchesByIDOrNameOnce(t *testing.T) {
	data := Data{
		Employees: []domain.Employee{{ID: "e1", Name: "Ana Ruiz"}},
		Tasks: []domain.Task{
			{ID: "t1", EmployeeID: "e1", AssignedResource: "Ana Ruiz", BaselineHours: 10},
			{ID: "t2", AssignedResource: "  ana   RUIZ ", BaselineHours: 20, ProjectedHours: 30},
			{ID: "t3", ResourceID: "e1", BaselineHours: 5},
			{ID: "t4", AssignedResource: "Someone Else", BaselineHours: 99},
		},
	}
	got := NewEngine(DefaultConfig()).Calculate(data, asOf)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].TaskCount)
	// 10 + 30 (projected) + 5
	assert.Equal(t, 45.0, got[0].AssignedHours)
	assert.Empty(t, got[0].Warnings)
}

func TestCalculate_SharedDisplayNameIsFlagged(t *testing.T) {
	data := Data{
		Employees: []domain.Employee{{ID: "e2", Name: "Sam Lee"}, {ID: "e3", Name: "sam lee"}},
		Hours:     []domain.HourEntry{{EmployeeName: "Sam Lee", Hours: 10, Date: day(2026, 3, 1)}},
	}
	got := NewEngine(DefaultConfig()).Calculate(data, asOf)
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, 10.0, r.ActualHoursLogged, "name-matched hours count toward each")
		require.Len(t, r.Warnings, 1)
		assert.Contains(t, r.Warnings[0], "shared by 2 employees")
	}
}

func TestCalculate_CurrentEfficiency(t *testing.T) {
	data := Data{
		Employees: []domain.Employee{{ID: "e1"}, {ID: "e2"}},
		Tasks: []domain.Task{
			{EmployeeID: "e1", BaselineHours: 100, ActualHours: 40, PercentComplete: 50, Status: domain.TaskInProgress},
			{EmployeeID: "e1", BaselineHours: 50, ActualHours: 10, Status: domain.TaskNotStarted},
			{EmployeeID: "e2", BaselineHours: 50, ActualHours: 10},
		},
	}
	got := NewEngine(DefaultConfig()).Calculate(data, asOf)
	require.Len(t, got, 2)
	// earned 50 over 40 logged; the unstarted task is ignored
	assert.Equal(t, 125.0, got[0].CurrentEfficiency)
	assert.Equal(t, 100.0, got[1].CurrentEfficiency, "no started work")
	assert.Equal(t, 100.0, got[1].ProjectedEfficiency, "falls back to current")
	assert.Empty(t, got[1].Trend)
}

func TestCalculate_ProjectedEfficiencyWeightsRecentWindows(t *testing.T) {
	data := Data{
		Employees: []domain.Employee{{ID: "e1"}},
		Tasks: []domain.Task{{
			EmployeeID:    "e1",
			BaselineHours: 90,
			StartDate:     ptr(day(2026, 1, 1)),
			EndDate:       ptr(day(2026, 4, 1)),
		}},
		Hours: []domain.HourEntry{
			{EmployeeID: "e1", Hours: 15, Date: day(2026, 3, 10)},
			// exactly on the window 0 start boundary, so window 1
			{EmployeeID: "e1", Hours: 60, Date: day(2026, 2, 12)},
		},
	}
	got := NewEngine(DefaultConfig()).Calculate(data, asOf)
	require.Len(t, got, 1)

	trend := got[0].Trend
	require.Len(t, trend, 2)
	assert.Equal(t, 0, trend[0].Index)
	assert.Equal(t, 1, trend[1].Index)
	// 90 baseline over 90 days, 30 per window
	assert.Equal(t, 30.0, trend[0].PlannedHours)
	assert.Equal(t, 200.0, trend[0].Efficiency)
	assert.Equal(t, 50.0, trend[1].Efficiency)

	// (200*0.4 + 50*0.3) / 0.7
	assert.Equal(t, 135.71, got[0].ProjectedEfficiency)
}

func TestCalculate_TasksWithoutDatesDoNotPlanWindows(t *testing.T) {
	data := Data{
		Employees: []domain.Employee{{ID: "e1"}},
		Tasks:     []domain.Task{{EmployeeID: "e1", BaselineHours: 90}},
		Hours:     []domain.HourEntry{{EmployeeID: "e1", Hours: 10, Date: day(2026, 3, 1)}},
	}
	got := NewEngine(DefaultConfig()).Calculate(data, asOf)
	require.Len(t, got[0].Trend, 1)
	assert.Equal(t, 0.0, got[0].Trend[0].PlannedHours)
	assert.Equal(t, 0.0, got[0].ProjectedEfficiency)
}

func TestCalculate_GarbageStaysFinite(t *testing.T) {
	data := Data{
		Employees: []domain.Employee{{ID: "e1"}},
		Tasks:     []domain.Task{{EmployeeID: "e1", BaselineHours: math.Inf(1), ActualHours: math.NaN(), PercentComplete: math.NaN()}},
		Hours:     []domain.HourEntry{{EmployeeID: "e1", Hours: math.NaN(), Date: day(2026, 3, 1)}},
	}
	r := NewEngine(DefaultConfig()).Calculate(data, asOf)[0]
	for _, v := range []float64{r.AssignedHours, r.ActualHoursLogged, r.ProjectedUtilization, r.CurrentUtilization, r.CurrentEfficiency, r.ProjectedEfficiency} {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}
