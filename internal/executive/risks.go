package executive

import (
	"fmt"
	"math"
	"sort"

	"github.com/alexanderramin/pulse/internal/numeric"
)

// Level grades risk impact, probability and action priority.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

func (l Level) rank() int {
	switch l {
	case LevelHigh:
		return 3
	case LevelMedium:
		return 2
	case LevelLow:
		return 1
	}
	return 0
}

// Risk ids.
const (
	RiskBudgetOverrun    = "budget-overrun"
	RiskScheduleSlip     = "schedule-slip"
	RiskResourceOverload = "resource-overload"
	RiskQuality          = "quality"
	RiskCriticalPath     = "critical-path"
)

const (
	maxRisks       = 5
	maxWins        = 3
	maxActionItems = 5
)

type Risk struct {
	ID           string  `json:"id" yaml:"id"`
	Title        string  `json:"title" yaml:"title"`
	Description  string  `json:"description" yaml:"description"`
	Impact       Level   `json:"impact" yaml:"impact"`
	Probability  Level   `json:"probability" yaml:"probability"`
	DollarImpact float64 `json:"dollarImpact" yaml:"dollarImpact"`
	DaysImpact   int     `json:"daysImpact" yaml:"daysImpact"`
	Mitigation   string  `json:"mitigation" yaml:"mitigation"`
}

func tier(high bool) Level {
	if high {
		return LevelHigh
	}
	return LevelMedium
}

// IdentifyRisks applies the rule set and returns the five most severe
// risks: by impact, then probability, then dollar impact.
func IdentifyRisks(m ProjectMetrics) []Risk {
	var risks []Risk

	if m.CPI < 0.95 {
		dollars := numeric.NonNegative(m.BudgetAtCompletion)
		if m.CPI > 0 {
			dollars = m.BudgetAtCompletion * (1/m.CPI - 1)
		}
		risks = append(risks, Risk{
			ID:           RiskBudgetOverrun,
			Title:        "Budget overrun",
			Description:  fmt.Sprintf("CPI of %.2f projects %s over budget at completion", m.CPI, numeric.FormatMoney(dollars)),
			Impact:       tier(m.CPI < 0.85),
			Probability:  tier(m.CPI < 0.9),
			DollarImpact: numeric.Round2(dollars),
			Mitigation:   "Review cost drivers and rebaseline remaining work",
		})
	}

	if m.SPI < 0.95 {
		slip := int(math.Abs(numeric.Round((m.SPI-1)*numeric.NonNegative(m.PlannedDuration), 0)))
		risks = append(risks, Risk{
			ID:          RiskScheduleSlip,
			Title:       "Schedule slip",
			Description: fmt.Sprintf("SPI of %.2f puts delivery %d days behind plan", m.SPI, slip),
			Impact:      tier(m.SPI < 0.85),
			Probability: tier(m.SPI < 0.9),
			DaysImpact:  slip,
			Mitigation:  "Fast-track critical activities or add capacity",
		})
	}

	if m.AvgUtilization > 100 {
		risks = append(risks, Risk{
			ID:          RiskResourceOverload,
			Title:       "Resource overload",
			Description: fmt.Sprintf("Team averages %.0f%% utilization", m.AvgUtilization),
			Impact:      tier(m.AvgUtilization > 120),
			Probability: tier(m.AvgUtilization > 110),
			Mitigation:  "Rebalance assignments across the team",
		})
	}

	if m.QCPassRate < 85 {
		risks = append(risks, Risk{
			ID:          RiskQuality,
			Title:       "Quality risk",
			Description: fmt.Sprintf("QC pass rate is %.0f%%", m.QCPassRate),
			Impact:      tier(m.QCPassRate < 70),
			Probability: tier(m.QCPassRate < 75),
			Mitigation:  "Add review checkpoints before handoff",
		})
	}

	if share := m.CriticalShare(); share > 0.30 {
		risks = append(risks, Risk{
			ID:          RiskCriticalPath,
			Title:       "Critical path concentration",
			Description: fmt.Sprintf("%d of %d tasks are on the critical path", m.CriticalTasks, m.TotalTasks),
			Impact:      tier(share > 0.50),
			Probability: LevelMedium,
			Mitigation:  "Add float by resequencing non-critical work",
		})
	}

	sort.SliceStable(risks, func(i, j int) bool {
		a, b := risks[i], risks[j]
		if a.Impact.rank() != b.Impact.rank() {
			return a.Impact.rank() > b.Impact.rank()
		}
		if a.Probability.rank() != b.Probability.rank() {
			return a.Probability.rank() > b.Probability.rank()
		}
		return a.DollarImpact > b.DollarImpact
	})
	if len(risks) > maxRisks {
		risks = risks[:maxRisks]
	}
	return risks
}

type Win struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	Value       float64 `json:"value" yaml:"value"`
}

// IdentifyWins applies the positive rules in order and keeps the first three.
func IdentifyWins(m ProjectMetrics) []Win {
	var wins []Win
	if m.CPI > 1.05 {
		saved := m.BudgetAtCompletion * (1 - 1/m.CPI)
		wins = append(wins, Win{
			ID:          "cost-efficiency",
			Title:       "Cost efficiency",
			Description: fmt.Sprintf("CPI of %.2f projects %s under budget", m.CPI, numeric.FormatMoney(saved)),
			Value:       numeric.Round2(saved),
		})
	}
	if m.SPI > 1.05 {
		ahead := numeric.Round((m.SPI-1)*numeric.NonNegative(m.PlannedDuration), 0)
		wins = append(wins, Win{
			ID:          "ahead-of-schedule",
			Title:       "Ahead of schedule",
			Description: fmt.Sprintf("SPI of %.2f puts delivery %.0f days early", m.SPI, ahead),
			Value:       ahead,
		})
	}
	if m.QCPassRate >= 95 {
		wins = append(wins, Win{
			ID:          "quality-excellence",
			Title:       "Quality excellence",
			Description: fmt.Sprintf("QC pass rate is %.0f%%", m.QCPassRate),
			Value:       m.QCPassRate,
		})
	}
	if m.AvgUtilization >= 75 && m.AvgUtilization <= 90 {
		wins = append(wins, Win{
			ID:          "balanced-team",
			Title:       "Balanced team load",
			Description: fmt.Sprintf("Team averages %.0f%% utilization", m.AvgUtilization),
			Value:       m.AvgUtilization,
		})
	}
	if len(wins) > maxWins {
		wins = wins[:maxWins]
	}
	return wins
}

type ActionStatus string

const (
	ActionEscalate ActionStatus = "escalate"
	ActionApprove  ActionStatus = "approve"
	ActionReview   ActionStatus = "review"
)

type ActionItem struct {
	ID       string       `json:"id" yaml:"id"`
	Title    string       `json:"title" yaml:"title"`
	Priority Level        `json:"priority" yaml:"priority"`
	Status   ActionStatus `json:"status" yaml:"status"`
	RiskID   string       `json:"riskId,omitempty" yaml:"riskId,omitempty"`
}

// GenerateActionItems raises one item per high-impact risk plus the
// proactive critical-path and scope checks, highest priority first.
func GenerateActionItems(m ProjectMetrics, risks []Risk) []ActionItem {
	var items []ActionItem
	for _, r := range risks {
		if r.Impact != LevelHigh {
			continue
		}
		status := ActionApprove
		if r.Probability == LevelHigh {
			status = ActionEscalate
		}
		items = append(items, ActionItem{
			ID:       "mitigate-" + r.ID,
			Title:    r.Mitigation,
			Priority: LevelHigh,
			Status:   status,
			RiskID:   r.ID,
		})
	}
	if m.SPI < 1 && m.CriticalTasks > 0 {
		items = append(items, ActionItem{
			ID:       "critical-path-focus",
			Title:    fmt.Sprintf("Focus resources on %d critical tasks", m.CriticalTasks),
			Priority: LevelMedium,
			Status:   ActionReview,
		})
	}
	if m.PercentComplete < 50 && m.SPI < 0.9 {
		items = append(items, ActionItem{
			ID:       "scope-review",
			Title:    "Review remaining scope against the schedule",
			Priority: LevelMedium,
			Status:   ActionReview,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Priority.rank() > items[j].Priority.rank()
	})
	if len(items) > maxActionItems {
		items = items[:maxActionItems]
	}
	return items
}
