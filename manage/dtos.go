package manage

import (
	"net/http"
	"time"

	"github.com/crediflow/crediflow/db"
	"github.com/crediflow/crediflow/db/tables"
	"github.com/google/uuid"
)

// UserDTO is the admin view of a reviewer account. The password hash
// and recovery columns never leave the store.
type UserDTO struct {
	ID        uuid.UUID  `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Phone     *string    `json:"phone,omitempty"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func (u *UserDTO) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func userDTOFromEntity(t *tables.UserTable) *UserDTO {
	return &UserDTO{
		ID:        t.ID,
		FirstName: t.FirstName,
		LastName:  t.LastName,
		Email:     t.Email,
		Phone:     t.Phone,
		Role:      t.Role,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// UserListResult is a page of accounts plus its metadata.
type UserListResult struct {
	Meta db.ListMeta `json:"meta"`
	Data []*UserDTO  `json:"data"`
}

func (u *UserListResult) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
