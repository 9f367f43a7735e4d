package service

import (
	"context"
	"time"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/repository"
	"go.uber.org/zap"
)

// DefaultAuditLimit bounds Recent when the caller passes no limit.
const DefaultAuditLimit = 100

// AuditSink records completed mutations. A failed write is logged and
// swallowed: the mutation it describes has already committed.
type AuditSink struct {
	repo repository.AuditRepo
	log  *zap.Logger
	now  func() time.Time
}

func NewAuditSink(repo repository.AuditRepo, log *zap.Logger) *AuditSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuditSink{
		repo: repo,
		log:  log.Named("audit"),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Record appends one audit entry. A nil sink records nothing.
func (s *AuditSink) Record(ctx context.Context, action domain.AuditAction, actor string, details map[string]any) {
	if s == nil || s.repo == nil {
		return
	}
	entry := &domain.AuditEntry{
		Action:    action,
		Actor:     actorOrSystem(actor),
		Details:   details,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.log.Warn("audit_write_failed",
			zap.String("action", string(action)),
			zap.String("actor", entry.Actor),
			zap.Error(err),
		)
	}
}

type auditService struct {
	repo repository.AuditRepo
}

func NewAuditService(repo repository.AuditRepo) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) Recent(ctx context.Context, limit int) ([]*domain.AuditEntry, error) {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
