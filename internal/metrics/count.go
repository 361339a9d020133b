package metrics

import (
	"math"

	"github.com/alexanderramin/pulse/internal/numeric"
)

// CountSource says where a unit count came from.
type CountSource string

const (
	CountFromQC        CountSource = "qc"
	CountFromBenchmark CountSource = "benchmark"
)

// CountMetricsAnalysis compares hours spent per unit of delivered work to
// the defensible benchmark.
type CountMetricsAnalysis struct {
	TaskID         string      `json:"taskId" yaml:"taskId"`
	TaskName       string      `json:"taskName" yaml:"taskName"`
	ProjectID      string      `json:"projectId" yaml:"projectId"`
	IsSubtask      bool        `json:"isSubtask" yaml:"isSubtask"`
	BaselineHours  float64     `json:"baselineHours" yaml:"baselineHours"`
	ActualHours    float64     `json:"actualHours" yaml:"actualHours"`
	RemainingHours float64     `json:"remainingHours" yaml:"remainingHours"`
	Count          float64     `json:"count" yaml:"count"`
	CountSource    CountSource `json:"countSource" yaml:"countSource"`
	Metric         float64     `json:"metric" yaml:"metric"`
	Defensible     float64     `json:"defensible" yaml:"defensible"`
	Variance       float64     `json:"variance" yaml:"variance"`
	Status         Status      `json:"status" yaml:"status"`
}

// CalculateCountMetrics analyses every task and subtask whose baseline is
// at least MinActiveHours. The unit count comes from a linked QC task when
// one carries a count, otherwise ceil(baseline / benchmark).
func (e *Engine) CalculateCountMetrics(data Data) []CountMetricsAnalysis {
	qcCounts := make(map[string]float64, len(data.QCTasks))
	for _, qc := range data.QCTasks {
		if qc.ParentTaskID == "" || qc.QCCount <= 0 || !numeric.Finite(qc.QCCount) {
			continue
		}
		if _, seen := qcCounts[qc.ParentTaskID]; !seen {
			qcCounts[qc.ParentTaskID] = qc.QCCount
		}
	}

	benchmark := e.cfg.HoursPerUnitBenchmark
	out := make([]CountMetricsAnalysis, 0, len(data.Tasks))
	for i := range data.Tasks {
		t := &data.Tasks[i]
		baseline := numeric.NonNegative(t.BaselineHours)
		if baseline < e.cfg.MinActiveHours {
			continue
		}
		actual := numeric.NonNegative(t.ActualHours)

		count, source := qcCounts[t.ID], CountFromQC
		if count == 0 {
			count = math.Ceil(baseline / benchmark)
			source = CountFromBenchmark
		}

		metric := numeric.SafeDivide(actual, count, 0)
		variance := metric - benchmark

		out = append(out, CountMetricsAnalysis{
			TaskID:         t.ID,
			TaskName:       t.Name,
			ProjectID:      t.ProjectID,
			IsSubtask:      t.IsSubtask(),
			BaselineHours:  numeric.Round2(baseline),
			ActualHours:    numeric.Round2(actual),
			RemainingHours: numeric.Round2(numeric.NonNegative(t.PlannedHours() - actual)),
			Count:          count,
			CountSource:    source,
			Metric:         numeric.Round2(metric),
			Defensible:     benchmark,
			Variance:       numeric.Round2(variance),
			Status:         e.classify(variance, benchmark),
		})
	}
	return out
}
