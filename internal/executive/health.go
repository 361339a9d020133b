package executive

import "github.com/alexanderramin/pulse/internal/numeric"

type HealthStatus string

const (
	HealthExcellent HealthStatus = "excellent"
	HealthOnTrack   HealthStatus = "on-track"
	HealthAtRisk    HealthStatus = "at-risk"
	HealthCritical  HealthStatus = "critical"
)

// Label is the human form of the status.
func (s HealthStatus) Label() string {
	switch s {
	case HealthExcellent:
		return "Excellent"
	case HealthOnTrack:
		return "On Track"
	case HealthAtRisk:
		return "At Risk"
	default:
		return "Critical"
	}
}

// Color is the fixed hex colour of the status.
func (s HealthStatus) Color() string {
	switch s {
	case HealthExcellent:
		return "#10B981"
	case HealthOnTrack:
		return "#3B82F6"
	case HealthAtRisk:
		return "#F59E0B"
	default:
		return "#EF4444"
	}
}

// Health blend weights.
const (
	weightSPI         = 0.25
	weightCPI         = 0.25
	weightProgress    = 0.20
	weightQuality     = 0.15
	weightUtilization = 0.15
)

type HealthComponents struct {
	Schedule    float64 `json:"schedule" yaml:"schedule"`
	Cost        float64 `json:"cost" yaml:"cost"`
	Progress    float64 `json:"progress" yaml:"progress"`
	Quality     float64 `json:"quality" yaml:"quality"`
	Utilization float64 `json:"utilization" yaml:"utilization"`
}

type HealthScore struct {
	Score      float64          `json:"score" yaml:"score"`
	Status     HealthStatus     `json:"status" yaml:"status"`
	Color      string           `json:"color" yaml:"color"`
	Components HealthComponents `json:"components" yaml:"components"`
}

// UtilizationScore penalises distance from 100% in both directions.
func UtilizationScore(util float64) float64 {
	if util > 100 {
		util = 100 - (util - 100)
	}
	return numeric.Clamp(util, 0, 100)
}

// CalculateHealthScore blends the five component scores, each on 0..100.
func CalculateHealthScore(m ProjectMetrics) HealthScore {
	c := HealthComponents{
		Schedule:    numeric.Clamp(m.SPI*100, 0, 100),
		Cost:        numeric.Clamp(m.CPI*100, 0, 100),
		Progress:    numeric.Clamp(m.PercentComplete, 0, 100),
		Quality:     numeric.Clamp(m.QCPassRate, 0, 100),
		Utilization: UtilizationScore(m.AvgUtilization),
	}
	score := numeric.Round(c.Schedule*weightSPI+
		c.Cost*weightCPI+
		c.Progress*weightProgress+
		c.Quality*weightQuality+
		c.Utilization*weightUtilization, 0)

	status := HealthCritical
	switch {
	case score >= 90:
		status = HealthExcellent
	case score >= 75:
		status = HealthOnTrack
	case score >= 60:
		status = HealthAtRisk
	}
	return HealthScore{Score: score, Status: status, Color: status.Color(), Components: c}
}
