package domain

import "time"

type AuditEntry struct {
	ID        int64
	Action    AuditAction
	Actor     string
	Details   map[string]any
	CreatedAt time.Time
}
