package testutil

import (
	"time"

	"github.com/alexanderramin/pulse/internal/domain"
	"github.com/google/uuid"
)

// Date returns midnight UTC on the given day.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Project options
type ProjectOption func(*domain.Project)

func WithSite(siteID string) ProjectOption {
	return func(p *domain.Project) {
		p.SiteID = siteID
	}
}

func WithPortfolio(portfolioID string) ProjectOption {
	return func(p *domain.Project) {
		p.PortfolioID = portfolioID
	}
}

func WithBaselineWindow(start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.BaselineStart = &start
		p.BaselineEnd = &end
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		ID:   uuid.New().String(),
		Name: name,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithBaseline(hours float64) TaskOption {
	return func(t *domain.Task) {
		t.BaselineHours = hours
	}
}

func WithActual(hours float64) TaskOption {
	return func(t *domain.Task) {
		t.ActualHours = hours
	}
}

func WithProjected(hours float64) TaskOption {
	return func(t *domain.Task) {
		t.ProjectedHours = hours
	}
}

func WithPercentComplete(pct float64) TaskOption {
	return func(t *domain.Task) {
		t.PercentComplete = pct
	}
}

func WithStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithEmployee(employeeID string) TaskOption {
	return func(t *domain.Task) {
		t.EmployeeID = employeeID
	}
}

func WithAssignedResource(name string) TaskOption {
	return func(t *domain.Task) {
		t.AssignedResource = name
	}
}

func WithCritical() TaskOption {
	return func(t *domain.Task) {
		t.IsCritical = true
	}
}

func WithQCStatus(s domain.QCStatus) TaskOption {
	return func(t *domain.Task) {
		t.QCStatus = s
	}
}

func WithTaskWindow(start, end time.Time) TaskOption {
	return func(t *domain.Task) {
		t.StartDate = &start
		t.EndDate = &end
	}
}

func WithParentTask(parentID string) TaskOption {
	return func(t *domain.Task) {
		t.ParentID = parentID
	}
}

func NewTestTask(projectID, name string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:        uuid.New().String(),
		Name:      name,
		ProjectID: projectID,
		Status:    domain.TaskNotStarted,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Employee options
type EmployeeOption func(*domain.Employee)

func WithUtilization(pct float64) EmployeeOption {
	return func(e *domain.Employee) {
		e.Utilization = pct
	}
}

func WithJobTitle(title string) EmployeeOption {
	return func(e *domain.Employee) {
		e.JobTitle = title
	}
}

func NewTestEmployee(name string, opts ...EmployeeOption) *domain.Employee {
	e := &domain.Employee{
		ID:   uuid.New().String(),
		Name: name,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HourEntry options
type HourOption func(*domain.HourEntry)

func WithTask(taskID string) HourOption {
	return func(h *domain.HourEntry) {
		h.TaskID = taskID
	}
}

func WithCost(cost float64) HourOption {
	return func(h *domain.HourEntry) {
		h.Cost = cost
	}
}

func WithChargeType(c domain.ChargeType) HourOption {
	return func(h *domain.HourEntry) {
		h.ChargeType = c
	}
}

func WithEmployeeName(name string) HourOption {
	return func(h *domain.HourEntry) {
		h.EmployeeName = name
	}
}

func NewTestHourEntry(employeeID, projectID string, hours float64, date time.Time, opts ...HourOption) *domain.HourEntry {
	h := &domain.HourEntry{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		ProjectID:  projectID,
		Hours:      hours,
		Date:       date,
		ChargeType: domain.ChargeBillable,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
