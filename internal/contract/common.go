package contract

import "github.com/alexanderramin/pulse/internal/app"

type AnalyticsErrorCode = app.AnalyticsErrorCode

const (
	ErrInvalidAggregateBy AnalyticsErrorCode = app.ErrInvalidAggregateBy
	ErrEmptySnapshot      AnalyticsErrorCode = app.ErrEmptySnapshot
	ErrUnknownFormula     AnalyticsErrorCode = app.ErrUnknownFormula
	ErrInvalidAsOf        AnalyticsErrorCode = app.ErrInvalidAsOf
	ErrInvalidView        AnalyticsErrorCode = app.ErrInvalidView
)

type AnalyticsError = app.AnalyticsError
