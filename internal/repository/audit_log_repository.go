package repository

import (
	"context"
	"database/sql"
	"fmt"

	"stockroom/internal/domain"
)

// AuditLogRepository defines the interface for the append-only audit trail.
// Records are never updated or deleted.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	FindRecent(ctx context.Context, limit int) ([]*domain.AuditLog, error)
}

type auditLogRepository struct {
	db *sql.DB
}

// NewAuditLogRepository creates a new instance of AuditLogRepository
func NewAuditLogRepository(db *sql.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

// Create appends a new audit record
func (r *auditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, user_id, username, action, entity_type, entity_id, entity_name, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.UserID,
		entry.Username,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.EntityName,
		entry.Details,
		entry.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	return nil
}

// FindRecent retrieves the most recent audit records, newest first.
// Ties on created_at are broken by id so the ordering is deterministic.
func (r *auditLogRepository) FindRecent(ctx context.Context, limit int) ([]*domain.AuditLog, error) {
	query := `
		SELECT id, user_id, username, action, entity_type, entity_id, entity_name, details, created_at
		FROM audit_logs
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find recent audit logs: %w", err)
	}
	defer rows.Close()

	entries := []*domain.AuditLog{}
	for rows.Next() {
		entry := &domain.AuditLog{}
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Username,
			&entry.Action,
			&entry.EntityType,
			&entry.EntityID,
			&entry.EntityName,
			&entry.Details,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit logs: %w", err)
	}

	return entries, nil
}
