package domain

import (
	"time"

	"github.com/google/uuid"
)

// SystemActor is recorded when no authenticated identity is available.
const SystemActor = "system"

// AuditLog is an immutable record of a single state-changing operation.
// Entries are created through NewAuditLog, never mutated and never deleted.
type AuditLog struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	Username   string    `json:"username" db:"username"`
	Action     string    `json:"action" db:"action"`
	EntityType string    `json:"entity_type" db:"entity_type"`
	EntityID   string    `json:"entity_id" db:"entity_id"`
	EntityName string    `json:"entity_name,omitempty" db:"entity_name"`
	Details    string    `json:"details,omitempty" db:"details"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// NewAuditLog creates an audit record. Empty userID or username fall back to
// SystemActor so anonymous and system-initiated actions are still attributed.
func NewAuditLog(userID, username, action, entityType, entityID, entityName, details string) *AuditLog {
	if userID == "" {
		userID = SystemActor
	}
	if username == "" {
		username = SystemActor
	}
	return &AuditLog{
		ID:         uuid.New(),
		UserID:     userID,
		Username:   username,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	}
}
