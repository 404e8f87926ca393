package applications

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/google/uuid"
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

// submissionResponse acknowledges a stored application to the
// applicant.
type submissionResponse struct {
	ID            int       `json:"id"`
	ReferenceID   uuid.UUID `json:"referenceId"`
	Status        string    `json:"status"`
	SubmittedDate time.Time `json:"submittedDate"`
}

func (s *submissionResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusCreated)
	return nil
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}
