// Package audit appends immutable records for state-changing operations.
// Recording is best-effort observability: a failed write is logged and
// swallowed, never surfaced as the operation's result.
package audit

import (
	"context"

	"go.uber.org/zap"

	"stockroom/internal/domain"
	"stockroom/internal/identity"
	"stockroom/internal/repository"
)

// Recorder writes audit records for mutations.
type Recorder struct {
	repo   repository.AuditLogRepository
	logger *zap.Logger
}

// NewRecorder creates a Recorder backed by the given repository.
func NewRecorder(repo repository.AuditLogRepository, logger *zap.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

// Record appends one audit entry attributed to actor. An unauthenticated or
// empty actor is recorded as the system actor. Errors are logged, never
// returned: the mutation that triggered the record has already committed.
func (r *Recorder) Record(ctx context.Context, actor identity.User, action, entityType, entityID, entityName, details string) {
	userID, username := actor.ID, actor.Username
	if !actor.Authenticated {
		userID, username = domain.SystemActor, domain.SystemActor
	}

	entry := domain.NewAuditLog(userID, username, action, entityType, entityID, entityName, details)

	if err := r.repo.Create(ctx, entry); err != nil {
		r.logger.Error("Failed to write audit record",
			zap.Error(err),
			zap.String("action", action),
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID),
		)
	}
}
