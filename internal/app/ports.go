package app

import (
	"context"

	"github.com/alexanderramin/pulse/internal/importer"
)

type PortfolioUseCase interface {
	Portfolio(ctx context.Context, req PortfolioRequest) (*PortfolioResponse, error)
}

type MetricsUseCase interface {
	Metrics(ctx context.Context, req MetricsRequest) (*MetricsResponse, error)
}

type UtilizationUseCase interface {
	Utilization(ctx context.Context, req UtilizationRequest) (*UtilizationResponse, error)
}

type SummaryUseCase interface {
	Summary(ctx context.Context, req SummaryRequest) (*SummaryResponse, error)
}

type FormulaUseCase interface {
	Evaluate(ctx context.Context, req FormulaRequest) (*FormulaResponse, error)
}

type ImportSnapshotUseCase interface {
	ImportFile(ctx context.Context, path string, replace bool) (*ImportResult, error)
	ImportSnapshot(ctx context.Context, schema *importer.SnapshotImport, replace bool) (*ImportResult, error)
}
