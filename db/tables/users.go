package tables

import (
	"time"

	"github.com/google/uuid"
)

// UserTable represents the users table
type UserTable struct {
	ID                   uuid.UUID  `db:"id,omitempty"                     json:"id"`
	FirstName            string     `db:"first_name"                       json:"firstName"`
	LastName             string     `db:"last_name"                        json:"lastName"`
	Email                string     `db:"email"                            json:"email"`
	Phone                *string    `db:"phone"                            json:"phone,omitempty"`
	Role                 string     `db:"role"                             json:"role"`
	Password             string     `db:"password"                         json:"-"`
	RecoveryToken        *string    `db:"recovery_token"                   json:"-"`
	RecoveryTokenCreated *time.Time `db:"recovery_token_created,omitempty" json:"-"`
	CreatedAt            time.Time  `db:"created_at"                       json:"createdAt"`
	UpdatedAt            *time.Time `db:"updated_at,omitempty"             json:"updatedAt,omitempty"`
}

// UserColumns maps the public field names of a user to their columns.
// Query parameters, sort keys and projections are resolved against this
// map, anything not in here never reaches the generated SQL.
func UserColumns() map[string]string {
	return map[string]string{
		"id":        "id",
		"firstName": "first_name",
		"lastName":  "last_name",
		"email":     "email",
		"phone":     "phone",
		"role":      "role",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}
}
