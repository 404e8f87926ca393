package users

import (
	"net/http"

	"github.com/go-chi/render"
)

func createError(err string, status int) *genericErrorResponse {
	return &genericErrorResponse{
		Error:      err,
		StatusCode: status,
	}
}

type genericErrorResponse struct {
	Error      string `json:"error,omitempty"`
	StatusCode int    `json:"-"`
}

func (e *genericErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

type genericSuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (g *genericSuccessResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type createUserRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Phone     *string `json:"phone,omitempty"`
	Role      string  `json:"role"`
}
