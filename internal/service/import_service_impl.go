package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/rota/internal/app"
	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/importer"
	"github.com/alexanderramin/rota/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	audit    *AuditSink
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, audit *AuditSink, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		audit:    audit,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportRoster(ctx context.Context, filePath, actorID string) (*app.ImportResult, error) {
	schema, err := importer.LoadRosterSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading roster file: %w", err)
	}
	return s.ImportRosterFromSchema(ctx, schema, actorID)
}

// ImportRosterFromSchema persists a roster in one transaction. Doctors that
// already exist by name keep their id and gain the listed availability;
// periods must be new.
func (s *importService) ImportRosterFromSchema(ctx context.Context, schema *importer.RosterSchema, actorID string) (result *app.ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "import-roster", startedAt, fields, &err) }()

	if errs := importer.ValidateRosterSchema(schema); len(errs) > 0 {
		return nil, importError(errs)
	}
	roster := importer.Convert(schema, startedAt)
	result = &app.ImportResult{}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txConfigs := repository.NewSQLiteConfigRepo(tx)
		txPeriods := repository.NewSQLitePeriodRepo(tx)
		txDoctors := repository.NewSQLiteDoctorRepo(tx)
		txAvailability := repository.NewSQLiteAvailabilityRepo(tx)

		if roster.Configuration != nil {
			if err := txConfigs.Save(ctx, roster.Configuration); err != nil {
				return fmt.Errorf("saving configuration: %w", err)
			}
			result.ConfigurationSaved = true
		}

		for _, p := range roster.Periods {
			_, err := txPeriods.GetByName(ctx, p.Name)
			if err == nil {
				return &app.ImportError{Problems: []string{fmt.Sprintf("period %q already exists", p.Name)}}
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			if err := txPeriods.Create(ctx, p); err != nil {
				return fmt.Errorf("creating period %q: %w", p.Name, err)
			}
			result.Periods++
			result.Days += len(p.Days)
		}

		for _, da := range roster.Doctors {
			doctorID, err := s.upsertDoctor(ctx, txDoctors, da.Doctor)
			if err != nil {
				return err
			}
			if err := txAvailability.Add(ctx, doctorID, da.Dates); err != nil {
				return fmt.Errorf("adding availability for %q: %w", da.Doctor.Name, err)
			}
			result.Doctors++
			result.Availability += len(da.Dates)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["doctors"] = result.Doctors
	fields["periods"] = result.Periods
	fields["days"] = result.Days
	s.audit.Record(ctx, domain.AuditRosterImport, actorID, map[string]any{
		"doctors":            result.Doctors,
		"periods":            result.Periods,
		"days":               result.Days,
		"availability":       result.Availability,
		"configurationSaved": result.ConfigurationSaved,
	})
	return result, nil
}

func (s *importService) upsertDoctor(ctx context.Context, doctors repository.DoctorRepo, d *domain.Doctor) (string, error) {
	existing, err := doctors.GetByName(ctx, d.Name)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}
	if err := d.Validate(); err != nil {
		return "", err
	}
	if err := doctors.Create(ctx, d); err != nil {
		return "", fmt.Errorf("creating doctor %q: %w", d.Name, err)
	}
	return d.ID, nil
}

func importError(errs []error) error {
	problems := make([]string, 0, len(errs))
	for _, e := range errs {
		problems = append(problems, e.Error())
	}
	return &app.ImportError{Problems: problems}
}
