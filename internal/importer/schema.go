package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/pulse/internal/numeric"
)

// SnapshotImport is the top-level JSON structure of a raw-record export.
type SnapshotImport struct {
	Portfolios []PortfolioImport `json:"portfolios,omitempty"`
	Sites      []SiteImport      `json:"sites,omitempty"`
	Projects   []ProjectImport   `json:"projects"`
	Employees  []EmployeeImport  `json:"employees,omitempty"`
	Tasks      []TaskImport      `json:"tasks"`
	QCTasks    []QCTaskImport    `json:"qc_tasks,omitempty"`
	Hours      []HourEntryImport `json:"hours,omitempty"`
}

type PortfolioImport struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SiteImport struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CustomerID  string `json:"customer_id,omitempty"`
	PortfolioID string `json:"portfolio_id,omitempty"`
}

type ProjectImport struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	CustomerID      string  `json:"customer_id,omitempty"`
	SiteID          string  `json:"site_id,omitempty"`
	PortfolioID     string  `json:"portfolio_id,omitempty"`
	PercentComplete Num     `json:"percent_complete,omitempty"`
	BaselineStart   *string `json:"baseline_start,omitempty"`
	BaselineEnd     *string `json:"baseline_end,omitempty"`
	ActualStart     *string `json:"actual_start,omitempty"`
	ActualEnd       *string `json:"actual_end,omitempty"`
}

type EmployeeImport struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	JobTitle    string `json:"job_title,omitempty"`
	Utilization Num    `json:"utilization,omitempty"`
	HourlyRate  Num    `json:"hourly_rate,omitempty"`
}

type TaskImport struct {
	ID               string  `json:"id,omitempty"`
	Name             string  `json:"name"`
	ProjectID        string  `json:"project_id"`
	PhaseID          string  `json:"phase_id,omitempty"`
	ParentID         string  `json:"parent_id,omitempty"`
	ResourceID       string  `json:"resource_id,omitempty"`
	EmployeeID       string  `json:"employee_id,omitempty"`
	AssignedResource string  `json:"assigned_resource,omitempty"`
	BaselineHours    Num     `json:"baseline_hours,omitempty"`
	ActualHours      Num     `json:"actual_hours,omitempty"`
	ProjectedHours   Num     `json:"projected_hours,omitempty"`
	PercentComplete  Num     `json:"percent_complete,omitempty"`
	Status           string  `json:"status,omitempty"`
	IsCritical       Flag    `json:"is_critical,omitempty"`
	QCStatus         string  `json:"qc_status,omitempty"`
	StartDate        *string `json:"start_date,omitempty"`
	EndDate          *string `json:"end_date,omitempty"`
}

type QCTaskImport struct {
	ID           string `json:"id,omitempty"`
	ParentTaskID string `json:"parent_task_id"`
	QCCount      Num    `json:"qc_count,omitempty"`
	Status       string `json:"status,omitempty"`
}

type HourEntryImport struct {
	ID           string `json:"id,omitempty"`
	EmployeeID   string `json:"employee_id,omitempty"`
	EmployeeName string `json:"employee_name,omitempty"`
	TaskID       string `json:"task_id,omitempty"`
	ProjectID    string `json:"project_id"`
	Hours        Num    `json:"hours"`
	Cost         Num    `json:"cost,omitempty"`
	Date         string `json:"date"`
	ChargeType   string `json:"charge_type,omitempty"`
}

// Num is a JSON number that also accepts numeric strings. Anything that is
// not a finite number decodes as 0.
type Num float64

func (n *Num) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	*n = Num(numeric.Coerce(v))
	return nil
}

// Flag is a JSON boolean that also accepts "yes"/"true"/"1" and numbers.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case bool:
		*f = Flag(x)
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "yes", "y", "1":
			*f = true
		default:
			*f = false
		}
	default:
		*f = numeric.Coerce(v) != 0
	}
	return nil
}

// ParseSnapshot decodes a raw-record export.
func ParseSnapshot(data []byte) (*SnapshotImport, error) {
	var schema SnapshotImport
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}

// LoadSnapshot reads and parses a raw-record export file.
func LoadSnapshot(path string) (*SnapshotImport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSnapshot(data)
}
