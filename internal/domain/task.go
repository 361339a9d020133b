package domain

import (
	"time"

	"github.com/alexanderramin/pulse/internal/numeric"
)

type Task struct {
	ID        string
	Name      string
	ProjectID string
	PhaseID   string
	ParentID  string // set on subtasks

	// Assignment. ResourceID and EmployeeID are both ids; AssignedResource
	// is a display name.
	ResourceID       string
	EmployeeID       string
	AssignedResource string

	BaselineHours   float64
	ActualHours     float64
	ProjectedHours  float64
	PercentComplete float64
	Status          TaskStatus
	IsCritical      bool
	QCStatus        QCStatus

	StartDate *time.Time
	EndDate   *time.Time
}

// IsCompleted is true when the status says so or progress reached 100%.
func (t *Task) IsCompleted() bool {
	return t.Status.IsComplete() || t.PercentComplete >= 100
}

// PlannedHours is projected hours when set, else baseline.
func (t *Task) PlannedHours() float64 {
	if t.ProjectedHours > 0 {
		return t.ProjectedHours
	}
	return t.BaselineHours
}

// EarnedHours is baseline × percentComplete / 100, with a negative baseline
// read as 0 and the percentage clamped to 0..100.
func (t *Task) EarnedHours() float64 {
	return numeric.NonNegative(t.BaselineHours) * numeric.Clamp(t.PercentComplete, 0, 100) / 100
}

// IsSubtask reports whether the task hangs off a parent task.
func (t *Task) IsSubtask() bool {
	return t.ParentID != ""
}

// QCTask is a quality-control task linked to the work it inspects.
type QCTask struct {
	ID           string
	ParentTaskID string
	QCCount      float64
	Status       QCStatus
}
