package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/rota/internal/app"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/repository"
)

// systemActor is recorded when a caller does not identify itself.
const systemActor = "system"

// loadConfiguration returns the stored configuration, or the defaults when
// none has been saved yet.
func loadConfiguration(ctx context.Context, configs repository.ConfigRepo) (*domain.Configuration, error) {
	cfg, err := configs.Current(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.DefaultConfiguration(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

func resolveNow(now *time.Time) time.Time {
	if now != nil {
		return now.UTC()
	}
	return time.Now().UTC()
}

func actorOrSystem(actor string) string {
	return domain.CoalesceStr(actor, systemActor)
}

// mapNotFound translates the storage sentinel into the application one so
// callers only ever check app.ErrNotFound.
func mapNotFound(err error, what, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s %q: %w", what, id, app.ErrNotFound)
	}
	return err
}

func solverFailure(err error) error {
	return fmt.Errorf("%w: %w", app.ErrSolverUnavailable, err)
}

// toAssignments stamps snapshot rows with a version id and fresh ids.
func toAssignments(entries []domain.SnapshotEntry, versionID string, now time.Time, newID func() string) []*domain.Assignment {
	out := make([]*domain.Assignment, 0, len(entries))
	for _, e := range entries {
		out = append(out, &domain.Assignment{
			ID:            newID(),
			Date:          e.Date,
			DoctorID:      e.DoctorID,
			PeriodID:      e.PeriodID,
			PlanVersionID: versionID,
			CreatedAt:     now,
		})
	}
	return out
}

// mostFrequentVersion returns the version id most rows are tagged with.
// Ties resolve to the smallest id.
func mostFrequentVersion(rows []*domain.Assignment) string {
	counts := make(map[string]int)
	for _, a := range rows {
		counts[a.PlanVersionID]++
	}
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	best := ""
	for _, id := range ids {
		if best == "" || counts[id] > counts[best] {
			best = id
		}
	}
	return best
}
