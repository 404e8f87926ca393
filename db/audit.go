package db

import (
	"context"
	"time"

	"github.com/crediflow/crediflow/db/tables"

	sq "github.com/Masterminds/squirrel"
)

type auditor struct {
	store *DataStore
}

// addToAuditLog adds a audit log entry

func (d *auditor) addToAuditLog(
	ctx context.Context,
	event string,
	payload tables.MapStructure,
) error {
	insert := sq.
		Insert("audit_logs").
		Columns("event_type", "event", "created_at").
		Values(event, payload, time.Now().UTC())
	_, err := d.store.insertStatement(ctx, insert, nil)
	return err
}
