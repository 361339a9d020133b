package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/pulse/internal/app"
	"github.com/alexanderramin/pulse/internal/db"
	"github.com/alexanderramin/pulse/internal/domain"
	"github.com/alexanderramin/pulse/internal/importer"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, path string, replace bool) (*app.ImportResult, error) {
	schema, err := importer.LoadSnapshot(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSnapshot(ctx, schema, replace)
}

// ImportSnapshot validates, converts and stores the export in one
// transaction. With replace the store is emptied first; otherwise records
// are upserted by id.
func (s *importService) ImportSnapshot(ctx context.Context, schema *importer.SnapshotImport, replace bool) (result *app.ImportResult, err error) {
	fields := map[string]any{"replace": replace}
	done := track(ctx, s.observer, "import", fields)
	defer func() { done(err) }()

	if errs := importer.ValidateSnapshot(schema); len(errs) > 0 {
		fields["validation_errors"] = len(errs)
		return nil, fmt.Errorf("import validation failed (%d errors):\n%w", len(errs), errors.Join(errs...))
	}

	var snap *domain.Snapshot
	snap, err = importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import file: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repos := NewSQLiteRepositories(tx)
		if replace {
			if err := repos.Store.Clear(ctx); err != nil {
				return err
			}
		}
		return storeSnapshot(ctx, repos, snap)
	})
	if err != nil {
		return nil, err
	}

	result = &app.ImportResult{
		Replaced:   replace,
		Portfolios: len(snap.Portfolios),
		Sites:      len(snap.Sites),
		Projects:   len(snap.Projects),
		Employees:  len(snap.Employees),
		Tasks:      len(snap.Tasks),
		QCTasks:    len(snap.QCTasks),
		Hours:      len(snap.Hours),
	}
	fields["projects"] = result.Projects
	fields["tasks"] = result.Tasks
	fields["hours"] = result.Hours
	return result, nil
}

func storeSnapshot(ctx context.Context, repos Repositories, snap *domain.Snapshot) error {
	for i := range snap.Portfolios {
		if err := repos.Portfolios.Upsert(ctx, &snap.Portfolios[i]); err != nil {
			return fmt.Errorf("storing portfolio %q: %w", snap.Portfolios[i].ID, err)
		}
	}
	for i := range snap.Sites {
		if err := repos.Sites.Upsert(ctx, &snap.Sites[i]); err != nil {
			return fmt.Errorf("storing site %q: %w", snap.Sites[i].ID, err)
		}
	}
	for i := range snap.Projects {
		if err := repos.Projects.Upsert(ctx, &snap.Projects[i]); err != nil {
			return fmt.Errorf("storing project %q: %w", snap.Projects[i].ID, err)
		}
	}
	for i := range snap.Employees {
		if err := repos.Employees.Upsert(ctx, &snap.Employees[i]); err != nil {
			return fmt.Errorf("storing employee %q: %w", snap.Employees[i].ID, err)
		}
	}
	for i := range snap.Tasks {
		if err := repos.Tasks.Upsert(ctx, &snap.Tasks[i]); err != nil {
			return fmt.Errorf("storing task %q: %w", snap.Tasks[i].Name, err)
		}
	}
	for i := range snap.QCTasks {
		if err := repos.QCTasks.Upsert(ctx, &snap.QCTasks[i]); err != nil {
			return fmt.Errorf("storing qc task %q: %w", snap.QCTasks[i].ID, err)
		}
	}
	for i := range snap.Hours {
		if err := repos.Hours.Upsert(ctx, &snap.Hours[i]); err != nil {
			return fmt.Errorf("storing hour entry %q: %w", snap.Hours[i].ID, err)
		}
	}
	return nil
}
