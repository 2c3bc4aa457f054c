package service

import (
	"context"
	"fmt"

	"stockroom/internal/command"
	"stockroom/internal/repository"
)

// AuditService serves read access to the audit trail.
type AuditService struct {
	logs repository.AuditLogRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(logs repository.AuditLogRepository) *AuditService {
	return &AuditService{logs: logs}
}

// Recent returns the most recent audit records, defaulting to 10.
func (s *AuditService) Recent(ctx context.Context, q command.GetRecentAuditLogsQuery) ([]AuditLogResponse, error) {
	limit := q.Limit
	if limit == 0 {
		limit = DefaultRecentLimit
	}

	entries, err := s.logs.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("find recent audit logs: %w", err)
	}

	out := make([]AuditLogResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toAuditLogResponse(entry))
	}
	return out, nil
}
