package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/crediflow/crediflow/db/tables"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Users lists users matching the query and returns the page window plus
// the total match count. The password hash and recovery token columns
// never leave the store on list reads.
func (d *DataStore) Users(ctx context.Context, query Query) ([]*tables.UserTable, int, error) {
	columns := tables.UserColumns()
	where := query.predicate(columns)

	var c int
	count := sq.Select("COUNT(*)").From("users")
	if len(where) > 0 {
		count = count.Where(where)
	}
	err := count.RunWith(d.db).ScanContext(ctx, &c)
	if err != nil {
		return nil, 0, err
	}
	if c < int(query.Skip()) {
		return []*tables.UserTable{}, c, nil
	}

	var entities []*tables.UserTable
	q := sq.
		Select(
			"id",
			"first_name",
			"last_name",
			"email",
			"phone",
			"role",
			"created_at",
			"updated_at",
		).
		From("users")
	if len(where) > 0 {
		q = q.Where(where)
	}
	q = q.OrderBy(query.orderBy(columns, "created_at")).
		Offset(query.Skip()).
		Limit(query.Take())
	err = d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []*tables.UserTable{}, c, nil
		}
		return nil, 0, err
	}

	return entities, c, nil
}

func (d *DataStore) User(ctx context.Context, userID uuid.UUID) (*tables.UserTable, error) {
	var userEntity tables.UserTable
	userQuery := sq.Select("*").From("users").Where(sq.Eq{"id": userID})
	err := d.getStatement(ctx, &userEntity, userQuery, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		d.log.Error("unable to query database", zap.Error(err))
		return nil, err
	}
	return &userEntity, nil
}

func (d *DataStore) UserByEmail(ctx context.Context, email string) (*tables.UserTable, error) {
	var userEntity tables.UserTable
	userQuery := sq.Select("*").From("users").Where(sq.Eq{"email": email})
	err := d.getStatement(ctx, &userEntity, userQuery, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		d.log.Error("unable to query database", zap.Error(err))
		return nil, err
	}
	return &userEntity, nil
}

func (d *DataStore) IsRegistred(ctx context.Context, email string) (bool, error) {
	user, err := d.exists(ctx, "users", sq.Eq{"email": email})
	if err != nil {
		return false, err
	}
	return user, nil
}

func (d *DataStore) IDFromEmail(ctx context.Context, email string) (bool, uuid.UUID, error) {
	q := sq.Select("id").From("users").Where(sq.Eq{"email": email})
	var id uuid.UUID
	err := d.getStatement(ctx, &id, q, nil)
	if err != nil && err != sql.ErrNoRows {
		return false, uuid.UUID{}, err
	} else if err == sql.ErrNoRows {
		return false, uuid.UUID{}, nil
	}
	return true, id, nil
}

func (d *DataStore) SetPassword(
	ctx context.Context,
	id uuid.UUID,
	passwordHash string,
) (bool, error) {
	q := sq.
		Update("users").
		Set("password", passwordHash).
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", id)
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

func (d *DataStore) SetRecoveryToken(
	ctx context.Context,
	id uuid.UUID,
	recoveryToken string,
) (bool, error) {
	q := sq.
		Update("users").
		Set("recovery_token", recoveryToken).
		Set("recovery_token_created", time.Now().UTC()).
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", id)
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

// UserByRecoveryToken resolves an outstanding recovery token, the
// caller still checks the token age.
func (d *DataStore) UserByRecoveryToken(
	ctx context.Context,
	recoveryToken string,
) (*tables.UserTable, error) {
	if recoveryToken == "" {
		return nil, ErrNotFound
	}
	var userEntity tables.UserTable
	q := sq.Select("*").From("users").Where(sq.Eq{"recovery_token": recoveryToken})
	err := d.getStatement(ctx, &userEntity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &userEntity, nil
}

func (d *DataStore) ConsumeRecoveryToken(
	ctx context.Context,
	id uuid.UUID,
	recoveryToken string,
) (bool, error) {
	q := sq.
		Update("users").
		Set("recovery_token", nil).
		Set("recovery_token_created", nil).
		Set("updated_at", time.Now().UTC()).
		Where("id = ? AND recovery_token = ?", id, recoveryToken)
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

func (d *DataStore) SetEmail(ctx context.Context, id uuid.UUID, email string) (bool, error) {
	q := sq.
		Update("users").
		Set("email", email).
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", id)
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

func (d *DataStore) SetName(
	ctx context.Context,
	id uuid.UUID,
	firstName string,
	lastName string,
) (bool, error) {
	q := sq.
		Update("users").
		Set("first_name", firstName).
		Set("last_name", lastName).
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", id)
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

func (d *DataStore) InsertUser(
	ctx context.Context,
	firstName string,
	lastName string,
	email string,
	passwordHash string,
	phone *string,
	role string,
) (uuid.UUID, error) {
	timestamp := time.Now().UTC()
	m := map[string]interface{}{
		"id":         uuid.New(),
		"first_name": firstName,
		"last_name":  lastName,
		"email":      email,
		"password":   passwordHash,
		"phone":      phone,
		"role":       role,
		"created_at": timestamp,
	}
	insert := sq.Insert("users").SetMap(m)
	insert = insert.Suffix("RETURNING id")
	var id uuid.UUID
	err := d.returningInsertStatement(ctx, &id, insert, nil)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return uuid.UUID{}, ErrAlreadyExists
		}
		d.log.Error("could not insert user", zap.Error(err))
		return uuid.UUID{}, err
	}
	return id, nil
}

func (d *DataStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	del := sq.Delete("users").Where(sq.Eq{"id": id})
	rs, err := d.deleteStatement(ctx, del, nil)
	if err != nil {
		return err
	}
	affected, err := rs.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
