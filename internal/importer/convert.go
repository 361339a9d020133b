package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pulse/internal/domain"
	"github.com/google/uuid"
)

// recordNamespace seeds ids for records exported without one.
var recordNamespace = uuid.MustParse("8f6d3c2e-4b1a-5e7f-9a0b-1c2d3e4f5a6b")

// derivedID returns a stable id for the i-th record of a kind, so the same
// export imported twice produces the same ids.
func derivedID(kind string, i int, parts ...string) string {
	key := fmt.Sprintf("%s/%d/%s", kind, i, strings.Join(parts, "/"))
	return uuid.NewSHA1(recordNamespace, []byte(key)).String()
}

// Convert transforms a validated SnapshotImport into a domain snapshot.
// Call ValidateSnapshot first; Convert assumes the export is valid.
func Convert(schema *SnapshotImport) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{}

	for _, p := range schema.Portfolios {
		snap.Portfolios = append(snap.Portfolios, domain.Portfolio{ID: p.ID, Name: strings.TrimSpace(p.Name)})
	}
	for _, s := range schema.Sites {
		snap.Sites = append(snap.Sites, domain.Site{
			ID:          s.ID,
			Name:        strings.TrimSpace(s.Name),
			CustomerID:  s.CustomerID,
			PortfolioID: s.PortfolioID,
		})
	}
	for _, p := range schema.Projects {
		snap.Projects = append(snap.Projects, domain.Project{
			ID:              p.ID,
			Name:            strings.TrimSpace(p.Name),
			CustomerID:      p.CustomerID,
			SiteID:          p.SiteID,
			PortfolioID:     p.PortfolioID,
			PercentComplete: float64(p.PercentComplete),
			BaselineStart:   parseOptionalDate(p.BaselineStart),
			BaselineEnd:     parseOptionalDate(p.BaselineEnd),
			ActualStart:     parseOptionalDate(p.ActualStart),
			ActualEnd:       parseOptionalDate(p.ActualEnd),
		})
	}

	rates := make(map[string]float64, len(schema.Employees))
	for _, e := range schema.Employees {
		snap.Employees = append(snap.Employees, domain.Employee{
			ID:          e.ID,
			Name:        strings.TrimSpace(e.Name),
			JobTitle:    e.JobTitle,
			Utilization: float64(e.Utilization),
			HourlyRate:  float64(e.HourlyRate),
		})
		rates[e.ID] = float64(e.HourlyRate)
	}

	for i, t := range schema.Tasks {
		snap.Tasks = append(snap.Tasks, domain.Task{
			ID:               domain.CoalesceStr(t.ID, derivedID("tasks", i, t.ProjectID, t.Name)),
			Name:             strings.TrimSpace(t.Name),
			ProjectID:        t.ProjectID,
			PhaseID:          t.PhaseID,
			ParentID:         t.ParentID,
			ResourceID:       t.ResourceID,
			EmployeeID:       t.EmployeeID,
			AssignedResource: strings.TrimSpace(t.AssignedResource),
			BaselineHours:    float64(t.BaselineHours),
			ActualHours:      float64(t.ActualHours),
			ProjectedHours:   float64(t.ProjectedHours),
			PercentComplete:  float64(t.PercentComplete),
			Status:           domain.TaskStatus(t.Status),
			IsCritical:       bool(t.IsCritical),
			QCStatus:         domain.QCStatus(strings.ToLower(strings.TrimSpace(t.QCStatus))),
			StartDate:        parseOptionalDate(t.StartDate),
			EndDate:          parseOptionalDate(t.EndDate),
		})
	}

	for i, q := range schema.QCTasks {
		snap.QCTasks = append(snap.QCTasks, domain.QCTask{
			ID:           domain.CoalesceStr(q.ID, derivedID("qc_tasks", i, q.ParentTaskID)),
			ParentTaskID: q.ParentTaskID,
			QCCount:      float64(q.QCCount),
			Status:       domain.QCStatus(strings.ToLower(strings.TrimSpace(q.Status))),
		})
	}

	for i, h := range schema.Hours {
		date, err := ParseDate(h.Date)
		if err != nil {
			return nil, fmt.Errorf("hours[%d].date: %w", i, err)
		}
		hours := float64(h.Hours)
		// Entries exported without cost are priced at the employee's rate.
		cost := domain.CoalescePositive(float64(h.Cost), hours*rates[h.EmployeeID])
		snap.Hours = append(snap.Hours, domain.HourEntry{
			ID:           domain.CoalesceStr(h.ID, derivedID("hours", i, h.EmployeeID, h.ProjectID, h.Date)),
			EmployeeID:   h.EmployeeID,
			EmployeeName: strings.TrimSpace(h.EmployeeName),
			TaskID:       h.TaskID,
			ProjectID:    h.ProjectID,
			Hours:        hours,
			Cost:         cost,
			Date:         date,
			ChargeType:   domain.ChargeType(strings.ToLower(strings.TrimSpace(h.ChargeType))),
		})
	}

	return snap, nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil
	}
	return &t
}
