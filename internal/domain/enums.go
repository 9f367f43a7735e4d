package domain

type DayState string

const (
	DayPending DayState = "PENDING"
	DayPlanned DayState = "PLANNED"
)

type PlanKind string

const (
	PlanBase            PlanKind = "BASE"
	PlanRepair          PlanKind = "REPAIR"
	PlanRepairCandidate PlanKind = "REPAIR_CANDIDATE"
)

type PlanState string

const (
	PlanDraft     PlanState = "DRAFT"
	PlanPublished PlanState = "PUBLISHED"
)

// ValidPlanKinds is the canonical set of accepted plan version kinds.
var ValidPlanKinds = map[PlanKind]bool{
	PlanBase: true, PlanRepair: true, PlanRepairCandidate: true,
}

type AuditAction string

const (
	AuditPlanAll          AuditAction = "PLAN_ALL"
	AuditRepairApply      AuditAction = "REPAIR_APPLY"
	AuditRepairCandidate  AuditAction = "REPAIR_CANDIDATE"
	AuditPublish          AuditAction = "PUBLISH"
	AuditDoctorDeactivate AuditAction = "DOCTOR_DEACTIVATE"
	AuditRosterImport     AuditAction = "ROSTER_IMPORT"
)
