// Package applications exposes the public intake endpoints and the
// reviewer endpoints of the application workflow.
package applications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/crediflow/crediflow/api/auth"
	"github.com/crediflow/crediflow/application"
	"github.com/crediflow/crediflow/db/tables"
	"github.com/crediflow/crediflow/manage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// PDFRenderer draws the reviewer summary of a stored application.
type PDFRenderer interface {
	Render(app *tables.ApplicationTable) ([]byte, error)
}

// ApplicationRessource habours the intake and review endpoints
type ApplicationRessource struct {
	log      *zap.Logger
	service  *application.Service
	renderer PDFRenderer
}

func NewApplicationRessource(
	logger *zap.Logger,
	service *application.Service,
	renderer PDFRenderer,
) *ApplicationRessource {
	return &ApplicationRessource{
		log:      logger,
		service:  service,
		renderer: renderer,
	}
}

func (a *ApplicationRessource) Router() *chi.Mux {
	r := chi.NewRouter()

	// applicant facing, no authentication
	r.Post("/personal", a.submitPersonal)
	r.Post("/business", a.submitBusiness)

	// reviewer facing
	r.Group(func(gr chi.Router) {
		gr.Use(jwtauth.Authenticator)
		gr.Use(auth.RequireAccessToken)
		gr.Use(auth.RequireRole(manage.RoleAdmin, manage.RoleReviewer))

		gr.Get("/", a.list)
		gr.Get("/overview", a.overview)
		gr.Get("/{id}", a.byID)
		gr.Put("/{id}/status", a.updateStatus)
		gr.Patch("/{id}", a.update)
		gr.Get("/{id}/pdf", a.pdf)
	})
	return r
}

func (a *ApplicationRessource) submitPersonal(w http.ResponseWriter, r *http.Request) {
	a.submit(w, r, a.service.SubmitPersonal)
}

func (a *ApplicationRessource) submitBusiness(w http.ResponseWriter, r *http.Request) {
	a.submit(w, r, a.service.SubmitBusiness)
}

func (a *ApplicationRessource) submit(
	w http.ResponseWriter,
	r *http.Request,
	store func(ctx context.Context, payload *application.Submission) (*tables.ApplicationTable, error),
) {
	var payload *application.Submission
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		a.log.Info("invalid application payload", zap.Error(err))
		render.Respond(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	if payload.FirstName == "" || payload.LastName == "" || payload.Email == "" {
		render.Respond(
			w,
			r,
			createError("firstName, lastName and email are required", http.StatusBadRequest),
		)
		return
	}
	app, err := store(r.Context(), payload)
	if err != nil {
		a.log.Error("unable to store application", zap.Error(err))
		render.Respond(w, r, createError("internal server error", http.StatusInternalServerError))
		return
	}
	err = render.Render(w, r, &submissionResponse{
		ID:            app.ID,
		ReferenceID:   app.ReferenceID,
		Status:        app.Status,
		SubmittedDate: app.SubmittedDate,
	})
	if err != nil {
		a.log.Error("unable to render response", zap.Error(err))
	}
}

func (a *ApplicationRessource) list(w http.ResponseWriter, r *http.Request) {
	result, err := a.service.List(r.Context(), r.URL.Query())
	if err != nil {
		a.log.Error("error listing applications", zap.Error(err))
		render.Respond(w, r, createError("internal server error", http.StatusInternalServerError))
		return
	}
	render.Respond(w, r, result)
}

func (a *ApplicationRessource) overview(w http.ResponseWriter, r *http.Request) {
	counts, err := a.service.Overview(r.Context())
	if err != nil {
		a.log.Error("error counting applications", zap.Error(err))
		render.Respond(w, r, createError("internal server error", http.StatusInternalServerError))
		return
	}
	render.Respond(w, r, counts)
}

func (a *ApplicationRessource) byID(w http.ResponseWriter, r *http.Request) {
	id, ok := a.applicationID(w, r)
	if !ok {
		return
	}
	app, err := a.service.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			render.Respond(w, r, createError("application not found", http.StatusNotFound))
			return
		}
		a.log.Error("error getting application by id", zap.Error(err))
		render.Respond(w, r, createError("internal server error", http.StatusInternalServerError))
		return
	}
	render.Respond(w, r, app)
}

func (a *ApplicationRessource) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := a.applicationID(w, r)
	if !ok {
		return
	}
	var req *statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.log.Info("invalid payload data for status update", zap.Error(err))
		render.Respond(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	target, err := application.ParseStatus(req.Status)
	if err != nil {
		render.Respond(w, r, createError(err.Error(), http.StatusBadRequest))
		return
	}
	update, err := a.service.UpdateStatus(r.Context(), id, target)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrNotFound):
			render.Respond(w, r, createError("application not found", http.StatusNotFound))
		case errors.Is(err, application.ErrTerminalStatus):
			render.Respond(w, r, createError(err.Error(), http.StatusConflict))
		case errors.Is(err, application.ErrInvalidTransition),
			errors.Is(err, application.ErrUnknownStatus):
			render.Respond(w, r, createError(err.Error(), http.StatusBadRequest))
		default:
			a.log.Error("error updating application status", zap.Error(err))
			render.Respond(
				w,
				r,
				createError("internal server error", http.StatusInternalServerError),
			)
		}
		return
	}
	render.Respond(w, r, update)
}

func (a *ApplicationRessource) update(w http.ResponseWriter, r *http.Request) {
	id, ok := a.applicationID(w, r)
	if !ok {
		return
	}
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		a.log.Info("invalid payload data for application update", zap.Error(err))
		render.Respond(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	err := a.service.Update(r.Context(), id, fields)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrNotFound):
			render.Respond(w, r, createError("application not found", http.StatusNotFound))
		case errors.Is(err, application.ErrProtectedField):
			render.Respond(w, r, createError(err.Error(), http.StatusBadRequest))
		default:
			a.log.Error("error updating application", zap.Error(err))
			render.Respond(
				w,
				r,
				createError("internal server error", http.StatusInternalServerError),
			)
		}
		return
	}
	app, err := a.service.ByID(r.Context(), id)
	if err != nil {
		a.log.Error("error reloading application", zap.Error(err))
		render.Respond(w, r, createError("internal server error", http.StatusInternalServerError))
		return
	}
	render.Respond(w, r, app)
}

func (a *ApplicationRessource) pdf(w http.ResponseWriter, r *http.Request) {
	id, ok := a.applicationID(w, r)
	if !ok {
		return
	}
	app, err := a.service.Raw(r.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			render.Respond(w, r, createError("application not found", http.StatusNotFound))
			return
		}
		a.log.Error("error loading application for pdf", zap.Error(err))
		render.Respond(w, r, createError("internal server error", http.StatusInternalServerError))
		return
	}
	data, err := a.renderer.Render(app)
	if err != nil {
		a.log.Error("unable to render application pdf", zap.Error(err))
		render.Respond(w, r, createError("internal server error", http.StatusInternalServerError))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().
		Set("Content-Disposition", fmt.Sprintf(`attachment; filename="application-%d.pdf"`, app.ID))
	_, _ = w.Write(data)
}

func (a *ApplicationRessource) applicationID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		render.Respond(w, r, createError("invalid application id", http.StatusBadRequest))
		return 0, false
	}
	return id, true
}
