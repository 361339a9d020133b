package domain

import "time"

type HourEntry struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	TaskID       string
	ProjectID    string
	Hours        float64
	Cost         float64
	Date         time.Time
	ChargeType   ChargeType
}

type Employee struct {
	ID          string
	Name        string
	JobTitle    string
	Utilization float64
	HourlyRate  float64
}

// Snapshot is the full set of raw records an analytics run reads.
type Snapshot struct {
	Portfolios []Portfolio
	Sites      []Site
	Projects   []Project
	Employees  []Employee
	Tasks      []Task
	QCTasks    []QCTask
	Hours      []HourEntry
}

// IsEmpty reports whether the snapshot holds no tasks and no hour entries.
func (s *Snapshot) IsEmpty() bool {
	return len(s.Tasks) == 0 && len(s.Hours) == 0
}
