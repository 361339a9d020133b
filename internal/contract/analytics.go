package contract

import "github.com/alexanderramin/pulse/internal/app"

type Scope = app.Scope

type PortfolioRequest = app.PortfolioRequest

func NewPortfolioRequest() PortfolioRequest {
	return app.NewPortfolioRequest()
}

type PortfolioResponse = app.PortfolioResponse

type MetricsView = app.MetricsView

const (
	ViewTasks      MetricsView = app.ViewTasks
	ViewProjects   MetricsView = app.ViewProjects
	ViewCounts     MetricsView = app.ViewCounts
	ViewEfficiency MetricsView = app.ViewEfficiency
)

type MetricsRequest = app.MetricsRequest

type MetricsResponse = app.MetricsResponse

type UtilizationRequest = app.UtilizationRequest

type UtilizationResponse = app.UtilizationResponse

type SummaryRequest = app.SummaryRequest

type SummaryResponse = app.SummaryResponse

type FormulaRequest = app.FormulaRequest

type FormulaResponse = app.FormulaResponse

type ImportResult = app.ImportResult
