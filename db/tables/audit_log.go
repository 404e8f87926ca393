package tables

import "time"

// AuditLogTable represents a row of the audit_logs table
type AuditLogTable struct {
	ID        int       `db:"id"         json:"id"`
	EventType string    `db:"event_type" json:"eventType"`
	Event     string    `db:"event"      json:"event"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
