package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pulse/internal/domain"
)

var validChargeTypes = map[string]bool{
	"": true, "billable": true, "non_billable": true, "overhead": true, "unspecified": true,
}

// dateLayouts are the accepted date formats, tried in order.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns the time in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format %q (expected YYYY-MM-DD or RFC3339)", s)
}

// ValidateSnapshot checks the export for errors before conversion.
// Returns a slice of all validation errors found. Numbers are never
// rejected: they are coerced at decode time.
func ValidateSnapshot(schema *SnapshotImport) []error {
	var errs []error

	errs = append(errs, validatePortfolios(schema.Portfolios)...)
	errs = append(errs, validateSites(schema.Sites)...)
	errs = append(errs, validateProjects(schema.Projects)...)
	errs = append(errs, validateEmployees(schema.Employees)...)

	taskIDs := make(map[string]bool)
	errs = append(errs, validateTasks(schema.Tasks, taskIDs)...)
	errs = append(errs, validateQCTasks(schema.QCTasks, taskIDs)...)
	errs = append(errs, validateHours(schema.Hours)...)

	return errs
}

// idChecker reports missing and duplicate ids within one record list.
type idChecker struct {
	kind     string
	required bool
	seen     map[string]bool
}

func newIDChecker(kind string, required bool) *idChecker {
	return &idChecker{kind: kind, required: required, seen: map[string]bool{}}
}

func (c *idChecker) check(i int, id string) error {
	if id == "" {
		if c.required {
			return fmt.Errorf("%s[%d].id is required", c.kind, i)
		}
		return nil
	}
	if c.seen[id] {
		return fmt.Errorf("%s[%d]: duplicate id %q", c.kind, i, id)
	}
	c.seen[id] = true
	return nil
}

func validatePortfolios(items []PortfolioImport) []error {
	var errs []error
	ids := newIDChecker("portfolios", true)
	for i, p := range items {
		if err := ids.check(i, p.ID); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func validateSites(items []SiteImport) []error {
	var errs []error
	ids := newIDChecker("sites", true)
	for i, s := range items {
		if err := ids.check(i, s.ID); err != nil {
			errs = append(errs, err)
		}
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, fmt.Errorf("sites[%d].name is required", i))
		}
	}
	return errs
}

func validateProjects(items []ProjectImport) []error {
	var errs []error
	ids := newIDChecker("projects", true)
	for i, p := range items {
		prefix := fmt.Sprintf("projects[%d]", i)
		if err := ids.check(i, p.ID); err != nil {
			errs = append(errs, err)
		}
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		errs = append(errs, validateWindow(prefix, "baseline_start", "baseline_end", p.BaselineStart, p.BaselineEnd)...)
		errs = append(errs, validateWindow(prefix, "actual_start", "actual_end", p.ActualStart, p.ActualEnd)...)
	}
	return errs
}

func validateEmployees(items []EmployeeImport) []error {
	var errs []error
	ids := newIDChecker("employees", true)
	for i, e := range items {
		if err := ids.check(i, e.ID); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func validateTasks(items []TaskImport, taskIDs map[string]bool) []error {
	var errs []error
	ids := newIDChecker("tasks", false)
	for i, t := range items {
		prefix := fmt.Sprintf("tasks[%d]", i)
		if err := ids.check(i, t.ID); err != nil {
			errs = append(errs, err)
		}
		if t.ID != "" {
			taskIDs[t.ID] = true
		}
		if t.ProjectID == "" {
			errs = append(errs, fmt.Errorf("%s.project_id is required", prefix))
		}
		if t.Status != "" && !domain.ValidTaskStatuses[t.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, t.Status))
		}
		if !domain.ValidQCStatuses[strings.ToLower(strings.TrimSpace(t.QCStatus))] {
			errs = append(errs, fmt.Errorf("%s.qc_status: invalid value %q", prefix, t.QCStatus))
		}
		errs = append(errs, validateWindow(prefix, "start_date", "end_date", t.StartDate, t.EndDate)...)
	}
	return errs
}

func validateQCTasks(items []QCTaskImport, taskIDs map[string]bool) []error {
	var errs []error
	ids := newIDChecker("qc_tasks", false)
	for i, q := range items {
		prefix := fmt.Sprintf("qc_tasks[%d]", i)
		if err := ids.check(i, q.ID); err != nil {
			errs = append(errs, err)
		}
		if q.ParentTaskID == "" {
			errs = append(errs, fmt.Errorf("%s.parent_task_id is required", prefix))
		} else if !taskIDs[q.ParentTaskID] {
			errs = append(errs, fmt.Errorf("%s.parent_task_id %q not found in tasks", prefix, q.ParentTaskID))
		}
		if !domain.ValidQCStatuses[strings.ToLower(strings.TrimSpace(q.Status))] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, q.Status))
		}
	}
	return errs
}

func validateHours(items []HourEntryImport) []error {
	var errs []error
	ids := newIDChecker("hours", false)
	for i, h := range items {
		prefix := fmt.Sprintf("hours[%d]", i)
		if err := ids.check(i, h.ID); err != nil {
			errs = append(errs, err)
		}
		if h.EmployeeID == "" && strings.TrimSpace(h.EmployeeName) == "" {
			errs = append(errs, fmt.Errorf("%s: employee_id or employee_name is required", prefix))
		}
		if h.Date == "" {
			errs = append(errs, fmt.Errorf("%s.date is required", prefix))
		} else if _, err := ParseDate(h.Date); err != nil {
			errs = append(errs, fmt.Errorf("%s.date: %w", prefix, err))
		}
		if !validChargeTypes[strings.ToLower(strings.TrimSpace(h.ChargeType))] {
			errs = append(errs, fmt.Errorf("%s.charge_type: invalid value %q", prefix, h.ChargeType))
		}
	}
	return errs
}

func validateWindow(prefix, startField, endField string, start, end *string) []error {
	var errs []error
	var s, e time.Time
	var sOK, eOK bool
	if start != nil {
		t, err := ParseDate(*start)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.%s: %w", prefix, startField, err))
		}
		s, sOK = t, err == nil
	}
	if end != nil {
		t, err := ParseDate(*end)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.%s: %w", prefix, endField, err))
		}
		e, eOK = t, err == nil
	}
	if sOK && eOK && e.Before(s) {
		errs = append(errs, fmt.Errorf("%s.%s %q must not be before %s %q", prefix, endField, *end, startField, *start))
	}
	return errs
}
