package app

import "time"

type AnalyticsErrorCode string

const (
	ErrInvalidAggregateBy AnalyticsErrorCode = "INVALID_AGGREGATE_BY"
	ErrEmptySnapshot      AnalyticsErrorCode = "EMPTY_SNAPSHOT"
	ErrUnknownFormula     AnalyticsErrorCode = "UNKNOWN_FORMULA"
	ErrInvalidAsOf        AnalyticsErrorCode = "INVALID_AS_OF"
	ErrInvalidView        AnalyticsErrorCode = "INVALID_VIEW"
)

type AnalyticsError struct {
	Code    AnalyticsErrorCode
	Message string
}

func (e *AnalyticsError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// Scope narrows the snapshot a use case reads. Empty fields mean the
// whole store.
type Scope struct {
	PortfolioID string
	ProjectIDs  []string
}

func (s Scope) IsZero() bool {
	return s.PortfolioID == "" && len(s.ProjectIDs) == 0
}

// ResolveAsOf returns the request date, or today at UTC midnight.
func ResolveAsOf(asOf *time.Time) time.Time {
	if asOf != nil {
		return asOf.UTC()
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
