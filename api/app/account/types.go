package account

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

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type recoverRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email    string `json:"email"`
	Token    string `json:"token"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type tokenUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

type tokenResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	TokenType    string    `json:"tokenType"`
	ExpiresIn    int       `json:"expiresIn"`
	User         tokenUser `json:"user"`
}

func (t *tokenResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
