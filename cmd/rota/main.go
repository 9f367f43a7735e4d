package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/rota/internal/cli"
	"github.com/alexanderramin/rota/internal/config"
	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/logger"
	"github.com/alexanderramin/rota/internal/repository"
	"github.com/alexanderramin/rota/internal/service"
	"github.com/alexanderramin/rota/internal/solver"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// ROTA_CONFIG points at an explicit file; otherwise rota.yaml is searched
	// in the working directory and ~/.rota.
	cfg, err := config.Load(os.Getenv("ROTA_CONFIG"))
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	log.Debug("database_open", zap.String("path", cfg.Database.Path))

	// Wire repositories
	doctorRepo := repository.NewSQLiteDoctorRepo(database)
	availabilityRepo := repository.NewSQLiteAvailabilityRepo(database)
	periodRepo := repository.NewSQLitePeriodRepo(database)
	configRepo := repository.NewSQLiteConfigRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)
	versionRepo := repository.NewSQLitePlanVersionRepo(database)
	auditRepo := repository.NewSQLiteAuditRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	gateway := solver.NewProcessGateway(solver.Config{
		Command: cfg.Solver.Command,
		Args:    cfg.Solver.Args,
		Timeout: cfg.Solver.Timeout,
	}, solver.NewZapObserver(log))

	audit := service.NewAuditSink(auditRepo, log)
	observer := service.NewZapUseCaseObserver(log)

	app := &cli.App{
		Planning: service.NewPlanningService(availabilityRepo, periodRepo, configRepo, assignmentRepo, gateway, uow, audit, observer),
		Repair: service.NewRepairService(doctorRepo, availabilityRepo, periodRepo, configRepo, assignmentRepo,
			gateway, uow, audit, observer),
		Versions: service.NewVersionService(versionRepo, assignmentRepo, doctorRepo, periodRepo, configRepo,
			uow, audit, observer),
		Import:  service.NewImportService(uow, audit, observer),
		Doctors: service.NewDoctorService(doctorRepo, availabilityRepo),
		Audit:   service.NewAuditService(auditRepo),
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
