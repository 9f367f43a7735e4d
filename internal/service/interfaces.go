package service

import (
	"context"

	"github.com/alexanderramin/rota/internal/app"
	"github.com/alexanderramin/rota/internal/domain"
)

type PlanningService interface {
	app.PlanAllUseCase
}

type RepairService interface {
	app.RepairUseCase
}

type VersionService interface {
	app.VersionUseCase
}

type ImportService interface {
	app.ImportRosterUseCase
}

type DoctorService interface {
	List(ctx context.Context, activeOnly bool) ([]*domain.Doctor, error)
	Get(ctx context.Context, id string) (*domain.Doctor, error)
	Availability(ctx context.Context, id string) ([]string, error)
}

type AuditService interface {
	Recent(ctx context.Context, limit int) ([]*domain.AuditEntry, error)
}
