package executive

import (
	"math"
	"testing"
	"time"

	"github.com/alexanderramin/pulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func healthyMetrics() ProjectMetrics {
	return ProjectMetrics{
		SPI: 1, CPI: 1, PercentComplete: 100, QCPassRate: 100, AvgUtilization: 100,
		BudgetAtCompletion: 1000, PlannedValue: 1000, EarnedValue: 1000, ActualCost: 1000,
	}
}

func TestCalculateProjectMetrics(t *testing.T) {
	tasks := []domain.Task{
		{
			ID: "t1", EmployeeID: "e1", BaselineHours: 100, ActualHours: 60, PercentComplete: 50,
			IsCritical: true, QCStatus: domain.QCPassed,
			StartDate: ptr(day(2026, 1, 1)), EndDate: ptr(day(2026, 1, 21)),
		},
		{
			ID: "t2", AssignedResource: "Bo", BaselineHours: 100, ActualHours: 40, PercentComplete: 100,
			Status: domain.TaskCompleted, QCStatus: domain.QCFailed,
			StartDate: ptr(day(2026, 1, 11)), EndDate: ptr(day(2026, 2, 10)),
		},
	}
	employees := []domain.Employee{{ID: "e1", Utilization: 90}, {ID: "e2", Utilization: 110}, {ID: "e3", Utilization: math.NaN()}}

	m := CalculateProjectMetrics(tasks, employees, day(2026, 1, 21), DefaultConfig())

	// (100*50 + 100*100) / 200
	assert.Equal(t, 75.0, m.PercentComplete)
	assert.Equal(t, 20000.0, m.BudgetAtCompletion)
	assert.Equal(t, 10000.0, m.ActualCost)
	assert.Equal(t, 15000.0, m.EarnedValue)
	// Jan 1 to Feb 10, half elapsed
	assert.Equal(t, 40.0, m.PlannedDuration)
	assert.Equal(t, 20.0, m.ActualDuration)
	assert.Equal(t, 20.0, m.RemainingDuration)
	assert.Equal(t, 10000.0, m.PlannedValue)
	assert.Equal(t, 1.5, m.SPI)
	assert.Equal(t, 1.5, m.CPI)
	assert.Equal(t, 2, m.TotalTasks)
	assert.Equal(t, 1, m.CompletedTasks)
	assert.Equal(t, 1, m.CriticalTasks)
	assert.Equal(t, 50.0, m.QCPassRate)
	assert.Equal(t, 2, m.TeamSize)
	assert.Equal(t, 100.0, m.AvgUtilization)
	require.NotNil(t, m.StartDate)
	assert.Equal(t, day(2026, 1, 1), *m.StartDate)
}

func TestCalculateProjectMetrics_Defaults(t *testing.T) {
	tasks := []domain.Task{{BaselineHours: 10, ActualHours: 5, PercentComplete: 20}}
	m := CalculateProjectMetrics(tasks, nil, day(2026, 1, 1), Config{})

	assert.Equal(t, 90.0, m.QCPassRate)
	assert.Equal(t, 80.0, m.AvgUtilization)
	// no dates: planned value tracks earned value
	assert.Equal(t, m.EarnedValue, m.PlannedValue)
	assert.Equal(t, 1.0, m.SPI)
	assert.Equal(t, 0.0, m.PlannedDuration)
}

func TestCalculateProjectMetrics_Empty(t *testing.T) {
	m := CalculateProjectMetrics(nil, nil, day(2026, 1, 1), DefaultConfig())
	assert.Equal(t, 0.0, m.PercentComplete)
	assert.Equal(t, 1.0, m.SPI)
	assert.Equal(t, 1.0, m.CPI)
	assert.Equal(t, 0, m.TeamSize)
}

func TestCalculateHealthScore(t *testing.T) {
	h := CalculateHealthScore(healthyMetrics())
	assert.Equal(t, 100.0, h.Score)
	assert.Equal(t, HealthExcellent, h.Status)
	assert.Equal(t, "#10B981", h.Color)

	m := ProjectMetrics{SPI: 0.8, CPI: 0.8, PercentComplete: 50, QCPassRate: 90, AvgUtilization: 130}
	h = CalculateHealthScore(m)
	// 80*.25 + 80*.25 + 50*.2 + 90*.15 + 70*.15
	assert.Equal(t, 74.0, h.Score)
	assert.Equal(t, HealthAtRisk, h.Status)
	assert.Equal(t, 70.0, h.Components.Utilization)
}

func TestCalculateHealthScore_ClampsComponents(t *testing.T) {
	h := CalculateHealthScore(ProjectMetrics{SPI: 2, CPI: math.NaN(), PercentComplete: 300, QCPassRate: -5, AvgUtilization: 250})
	assert.Equal(t, HealthComponents{Schedule: 100, Cost: 0, Progress: 100, Quality: 0, Utilization: 0}, h.Components)
	assert.Equal(t, HealthCritical, h.Status)
	assert.Equal(t, "#EF4444", h.Color)
}

func TestUtilizationScore(t *testing.T) {
	assert.Equal(t, 80.0, UtilizationScore(80))
	assert.Equal(t, 100.0, UtilizationScore(100))
	assert.Equal(t, 70.0, UtilizationScore(130))
	assert.Equal(t, 0.0, UtilizationScore(250))
}

func TestCalculateBudgetImpact(t *testing.T) {
	m := ProjectMetrics{
		BudgetAtCompletion: 100000, PlannedValue: 50000, ActualCost: 60000, CPI: 0.8,
		PlannedDuration: 100, ActualDuration: 50,
	}
	b := CalculateBudgetImpact(m)
	assert.Equal(t, -10000.0, b.Variance)
	assert.Equal(t, -20.0, b.VariancePct)
	// 100000 / 0.8
	assert.Equal(t, 125000.0, b.EAC)
	assert.Equal(t, 65000.0, b.ETC)
	assert.Equal(t, -25000.0, b.VarianceAtComplete)
	assert.Equal(t, 1000.0, b.PlannedBurnRate)
	assert.Equal(t, 1200.0, b.ActualBurnRate)
	assert.False(t, b.OnTrack)
	assert.Equal(t, "Over budget by $10,000", b.Status)

	m.ActualCost = 50500
	b = CalculateBudgetImpact(m)
	// 1010 vs 1000 is inside 5%
	assert.True(t, b.OnTrack)
}

func TestCalculateBudgetImpact_ZeroCPIKeepsBudget(t *testing.T) {
	b := CalculateBudgetImpact(ProjectMetrics{BudgetAtCompletion: 5000, CPI: 0})
	assert.Equal(t, 5000.0, b.EAC)
	assert.Equal(t, "On budget", b.Status)
	assert.True(t, b.OnTrack)
}

func TestCalculateScheduleImpact(t *testing.T) {
	m := ProjectMetrics{SPI: 0.9, PlannedDuration: 100, StartDate: ptr(day(2026, 1, 1))}
	s := CalculateScheduleImpact(m)
	assert.Equal(t, -10, s.VarianceDays)
	assert.Equal(t, "1 week behind", s.Status)
	// 100 / 0.9 rounds to 111 days
	require.NotNil(t, s.ProjectedEndDate)
	assert.Equal(t, day(2026, 4, 22), *s.ProjectedEndDate)
}

func TestCalculateScheduleImpact_NoStartDate(t *testing.T) {
	s := CalculateScheduleImpact(ProjectMetrics{SPI: 1, PlannedDuration: 10})
	assert.Nil(t, s.ProjectedEndDate)
	assert.Equal(t, "On schedule", s.Status)
}

func TestScheduleText(t *testing.T) {
	assert.Equal(t, "On schedule", scheduleText(0))
	assert.Equal(t, "On schedule", scheduleText(-1))
	assert.Equal(t, "3 days behind", scheduleText(-3))
	assert.Equal(t, "5 days ahead", scheduleText(5))
	assert.Equal(t, "1 week behind", scheduleText(-7))
	assert.Equal(t, "2 weeks ahead", scheduleText(14))
}

func riskyMetrics() ProjectMetrics {
	return ProjectMetrics{
		CPI: 0.8, SPI: 0.92, BudgetAtCompletion: 100000, PlannedDuration: 100,
		AvgUtilization: 125, QCPassRate: 80, CriticalTasks: 4, TotalTasks: 10, PercentComplete: 40,
	}
}

func TestIdentifyRisks_DollarImpact(t *testing.T) {
	risks := IdentifyRisks(ProjectMetrics{CPI: 0.8, SPI: 1, BudgetAtCompletion: 100000, QCPassRate: 90, AvgUtilization: 80})
	require.Len(t, risks, 1)
	assert.Equal(t, RiskBudgetOverrun, risks[0].ID)
	// 100000 * (1/0.8 - 1)
	assert.Equal(t, 25000.0, risks[0].DollarImpact)
	assert.Equal(t, LevelHigh, risks[0].Impact)
	assert.Equal(t, LevelHigh, risks[0].Probability)
}

func TestIdentifyRisks_SortedBySeverity(t *testing.T) {
	risks := IdentifyRisks(riskyMetrics())
	require.Len(t, risks, 5)

	ids := make([]string, len(risks))
	for i, r := range risks {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{RiskBudgetOverrun, RiskResourceOverload, RiskScheduleSlip, RiskQuality, RiskCriticalPath}, ids)
	assert.Equal(t, 8, risks[2].DaysImpact)
	assert.Equal(t, LevelMedium, risks[2].Impact)
}

func TestIdentifyRisks_HealthyProjectHasNone(t *testing.T) {
	assert.Empty(t, IdentifyRisks(healthyMetrics()))
}

func TestIdentifyWins_TopThree(t *testing.T) {
	m := ProjectMetrics{CPI: 1.25, SPI: 1.1, BudgetAtCompletion: 100000, PlannedDuration: 100, QCPassRate: 96, AvgUtilization: 80}
	wins := IdentifyWins(m)
	require.Len(t, wins, 3)
	assert.Equal(t, "cost-efficiency", wins[0].ID)
	// 100000 * (1 - 1/1.25)
	assert.Equal(t, 20000.0, wins[0].Value)
	assert.Equal(t, "ahead-of-schedule", wins[1].ID)
	assert.Equal(t, 10.0, wins[1].Value)
	assert.Equal(t, "quality-excellence", wins[2].ID)
}

func TestGenerateActionItems(t *testing.T) {
	m := riskyMetrics()
	items := GenerateActionItems(m, IdentifyRisks(m))
	require.Len(t, items, 3)
	assert.Equal(t, "mitigate-"+RiskBudgetOverrun, items[0].ID)
	assert.Equal(t, ActionEscalate, items[0].Status)
	assert.Equal(t, LevelHigh, items[0].Priority)
	assert.Equal(t, "mitigate-"+RiskResourceOverload, items[1].ID)
	assert.Equal(t, "critical-path-focus", items[2].ID)
	assert.Equal(t, LevelMedium, items[2].Priority)
}

func TestGenerateActionItems_ApproveAndScopeReview(t *testing.T) {
	m := ProjectMetrics{SPI: 0.96, CPI: 1, QCPassRate: 90, AvgUtilization: 80, CriticalTasks: 6, TotalTasks: 10, PercentComplete: 30}
	items := GenerateActionItems(m, IdentifyRisks(m))
	require.Len(t, items, 2)
	// 60% critical: high impact, medium probability
	assert.Equal(t, ActionApprove, items[0].Status)
	assert.Equal(t, RiskCriticalPath, items[0].RiskID)
	assert.Equal(t, "critical-path-focus", items[1].ID)

	m.SPI = 0.8
	items = GenerateActionItems(m, nil)
	require.Len(t, items, 2)
	assert.Equal(t, "scope-review", items[1].ID)
}

func TestGenerateForecasts(t *testing.T) {
	m := ProjectMetrics{SPI: 1.15, CPI: 0.5, BudgetAtCompletion: 1000, PlannedDuration: 100}
	f := GenerateForecasts(m, day(2026, 1, 1))
	require.Len(t, f, 3)

	assert.Equal(t, ScenarioBest, f[0].Scenario)
	// 1.15 * 1.1 = 1.265, capped
	assert.Equal(t, 1.2, f[0].SPI)
	assert.Equal(t, 0.55, f[0].CPI)
	require.NotNil(t, f[0].CompletionDate)
	// 100 / 1.2 rounds to 83 days
	assert.Equal(t, day(2026, 3, 25), *f[0].CompletionDate)

	assert.Equal(t, ScenarioExpected, f[1].Scenario)
	assert.Equal(t, 1.15, f[1].SPI)
	assert.Equal(t, 2000.0, f[1].FinalCost)
	assert.Equal(t, -1000.0, f[1].Variance)

	assert.Equal(t, ScenarioWorst, f[2].Scenario)
	// 0.5 * 0.85 = 0.425, floored
	assert.Equal(t, 0.6, f[2].CPI)
	assert.Equal(t, 1666.67, f[2].FinalCost)

	assert.Equal(t, []float64{20, 60, 20}, []float64{f[0].Probability, f[1].Probability, f[2].Probability})
}

func TestGenerateForecasts_NoStartDate(t *testing.T) {
	for _, f := range GenerateForecasts(healthyMetrics(), time.Time{}) {
		assert.Nil(t, f.CompletionDate)
	}
}

func TestGenerate_KeyMessage(t *testing.T) {
	s := Generate(healthyMetrics())
	assert.Equal(t, "Excellent (health 100): on budget; on schedule.", s.KeyMessage)
	assert.Equal(t, 1.0, s.Indices.SPI.Value)
	assert.Equal(t, []string{"tasks", "employees"}, s.Indices.CPI.Provenance.DataSources)
	assert.Len(t, s.Forecasts, 3)
	assert.Empty(t, s.Risks)
}
