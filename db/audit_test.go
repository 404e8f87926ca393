package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestAuditorInsertsLogEntry(t *testing.T) {
	store, mock := mockStore(t)
	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs("user_login", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := store.Auditor().addToAuditLog(context.Background(), "user_login", map[string]interface{}{
		"user_id": "b5a9f6e2",
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditorSurfacesInsertError(t *testing.T) {
	store, mock := mockStore(t)
	mock.ExpectExec("INSERT INTO audit_logs").
		WillReturnError(errors.New("table is locked"))

	err := store.Auditor().addToAuditLog(context.Background(), "user_login", map[string]interface{}{})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
