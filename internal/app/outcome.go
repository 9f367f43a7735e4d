package app

import (
	"time"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/solver"
)

type OutcomeStatus string

const (
	StatusFeasible   OutcomeStatus = "FEASIBLE"
	StatusInfeasible OutcomeStatus = "INFEASIBLE"
	StatusOK         OutcomeStatus = "OK"
)

type PlanRequest struct {
	ActorID string
	Now     *time.Time
}

// PlanningOutcome is the result of a full re-plan. Infeasible outcomes carry
// the solver's bottlenecks unchanged and leave storage untouched.
type PlanningOutcome struct {
	Status             OutcomeStatus
	FreezeBoundary     string
	AssignmentsCreated int
	AssignmentsRemoved int
	DaysPlanned        int
	PlanVersion        *domain.PlanVersion
	Bottlenecks        []solver.Bottleneck
}
