// Package users habours the admin-only account management endpoints.
package users

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/crediflow/crediflow/api/auth"
	"github.com/crediflow/crediflow/manage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserRessource habours the account administration endpoints
type UserRessource struct {
	log     *zap.Logger
	service *manage.UserService
}

func NewUserRessource(logger *zap.Logger, service *manage.UserService) *UserRessource {
	return &UserRessource{
		log:     logger,
		service: service,
	}
}

func (u *UserRessource) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(jwtauth.Authenticator)
	r.Use(auth.RequireAccessToken)
	r.Use(auth.RequireRole(manage.RoleAdmin))

	r.Get("/", u.list)
	r.Post("/", u.create)
	r.Get("/{id}", u.byID)
	r.Delete("/{id}", u.delete)

	return r
}

func (u *UserRessource) list(w http.ResponseWriter, r *http.Request) {
	result, err := u.service.List(r.Context(), r.URL.Query())
	if err != nil {
		u.log.Error("error listing users", zap.Error(err))
		render.Respond(w, r, createError("internal server error", http.StatusInternalServerError))
		return
	}
	render.Respond(w, r, result)
}

func (u *UserRessource) byID(w http.ResponseWriter, r *http.Request) {
	id, ok := u.userID(w, r)
	if !ok {
		return
	}
	dto, err := u.service.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, manage.ErrNotFound) {
			render.Respond(w, r, createError("user not found", http.StatusNotFound))
			return
		}
		u.log.Error("error getting user by id", zap.Error(err))
		render.Respond(w, r, createError("internal server error", http.StatusInternalServerError))
		return
	}
	render.Respond(w, r, dto)
}

func (u *UserRessource) create(w http.ResponseWriter, r *http.Request) {
	var req *createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		u.log.Info("invalid payload data for create user", zap.Error(err))
		render.Respond(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	id, err := u.service.Create(
		r.Context(),
		req.FirstName,
		req.LastName,
		req.Email,
		req.Password,
		req.Phone,
		req.Role,
	)
	if err != nil {
		switch {
		case errors.Is(err, manage.ErrEntityAlreadyExists):
			render.Respond(w, r, createError("email already registered", http.StatusConflict))
		case errors.Is(err, manage.ErrPasswordGuidelines),
			errors.Is(err, manage.ErrUnknownRole):
			render.Respond(w, r, createError(err.Error(), http.StatusBadRequest))
		default:
			u.log.Error("error creating user", zap.Error(err))
			render.Respond(
				w,
				r,
				createError("internal server error", http.StatusInternalServerError),
			)
		}
		return
	}
	dto, err := u.service.ByID(r.Context(), id)
	if err != nil {
		u.log.Error("error reloading created user", zap.Error(err))
		render.Respond(w, r, createError("internal server error", http.StatusInternalServerError))
		return
	}
	render.Status(r, http.StatusCreated)
	render.Respond(w, r, dto)
}

func (u *UserRessource) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := u.userID(w, r)
	if !ok {
		return
	}
	current, err := auth.FromContext(r.Context())
	if err == nil && current.ID == id {
		render.Respond(w, r, createError("can not delete own account", http.StatusBadRequest))
		return
	}
	err = u.service.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, manage.ErrNotFound) {
			render.Respond(w, r, createError("user not found", http.StatusNotFound))
			return
		}
		u.log.Error("error deleting user", zap.Error(err))
		render.Respond(w, r, createError("internal server error", http.StatusInternalServerError))
		return
	}
	err = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Successfully deleted user",
	})
	if err != nil {
		u.log.Error("unable to render response", zap.Error(err))
	}
}

func (u *UserRessource) userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Respond(w, r, createError("invalid user id", http.StatusBadRequest))
		return uuid.UUID{}, false
	}
	return id, true
}
