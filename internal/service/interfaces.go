package service

import "github.com/alexanderramin/pulse/internal/app"

type AnalyticsService interface {
	app.PortfolioUseCase
	app.MetricsUseCase
	app.UtilizationUseCase
	app.SummaryUseCase
	app.FormulaUseCase
}

type ImportService interface {
	app.ImportSnapshotUseCase
}
