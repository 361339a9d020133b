package domain

import "time"

type Portfolio struct {
	ID   string
	Name string
}

type Site struct {
	ID          string
	Name        string
	CustomerID  string
	PortfolioID string
}

type Project struct {
	ID              string
	Name            string
	CustomerID      string
	SiteID          string
	PortfolioID     string
	PercentComplete float64
	BaselineStart   *time.Time
	BaselineEnd     *time.Time
	ActualStart     *time.Time
	ActualEnd       *time.Time
}

// PlannedWindow returns the baseline window, falling back to actual dates
// for whichever end is missing. ok is false if either end is still unknown.
func (p *Project) PlannedWindow() (start, end time.Time, ok bool) {
	s := p.BaselineStart
	if s == nil {
		s = p.ActualStart
	}
	e := p.BaselineEnd
	if e == nil {
		e = p.ActualEnd
	}
	if s == nil || e == nil {
		return time.Time{}, time.Time{}, false
	}
	return *s, *e, true
}
