package app

import (
	"context"
	"time"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/importer"
)

type PlanAllUseCase interface {
	PlanAll(ctx context.Context, req PlanRequest) (*PlanningOutcome, error)
}

type RepairUseCase interface {
	Preview(ctx context.Context, req RepairRequest) (*RepairOutcome, error)
	Stage(ctx context.Context, req RepairRequest) (*RepairOutcome, error)
	Apply(ctx context.Context, req RepairRequest) (*RepairOutcome, error)
}

type VersionUseCase interface {
	List(ctx context.Context) ([]*domain.PlanVersion, error)
	Get(ctx context.Context, id string) (*domain.PlanVersion, error)
	Published(ctx context.Context) (*domain.PlanVersion, error)
	AssignmentsFor(ctx context.Context, id string) ([]domain.AssignmentView, error)
	Diff(ctx context.Context, fromID, toID string) (*DiffResponse, error)
	Risk(ctx context.Context, id string, now time.Time) (*RiskResponse, error)
	Publish(ctx context.Context, id, actorID string) (*PublishResponse, error)
}

type ImportRosterUseCase interface {
	ImportRoster(ctx context.Context, filePath, actorID string) (*ImportResult, error)
	ImportRosterFromSchema(ctx context.Context, schema *importer.RosterSchema, actorID string) (*ImportResult, error)
}
