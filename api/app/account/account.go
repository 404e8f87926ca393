// Package account exposes sign-in, token refresh and password
// recovery for reviewer accounts.
package account

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/crediflow/crediflow/api/auth"
	"github.com/crediflow/crediflow/manage"
	"github.com/crediflow/crediflow/tokens"
	"github.com/crediflow/crediflow/user"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// AccountRessource habours the account endpoints
type AccountRessource struct {
	log           *zap.Logger
	signInService *user.Service
	manageService *manage.UserService
	issuer        *tokens.TokenIssuer
}

func NewAccountRessource(
	logger *zap.Logger,
	signInService *user.Service,
	manageService *manage.UserService,
	issuer *tokens.TokenIssuer,
) *AccountRessource {
	return &AccountRessource{
		log:           logger,
		signInService: signInService,
		manageService: manageService,
		issuer:        issuer,
	}
}

func (a *AccountRessource) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Post("/signin", a.signin)
	r.Post("/recover", a.recover)
	r.Post("/reset-password", a.resetPassword)

	r.Group(func(gr chi.Router) {
		gr.Use(jwtauth.Authenticator)
		gr.Use(auth.RequireRefreshToken)
		gr.Post("/refresh", a.refresh)
	})

	r.Group(func(gr chi.Router) {
		gr.Use(jwtauth.Authenticator)
		gr.Use(auth.RequireAccessToken)
		gr.Get("/me", a.me)
		gr.Put("/me", a.updateProfile)
		gr.Post("/change-password", a.changePassword)
	})
	return r
}

func (a *AccountRessource) signin(w http.ResponseWriter, r *http.Request) {
	var req *signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.log.Info("invalid payload data for signin", zap.Error(err))
		render.Respond(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	signedIn, err := a.signInService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			render.Respond(w, r, createError("invalid credentials", http.StatusUnauthorized))
			return
		}
		a.log.Error("error during signin", zap.Error(err))
		render.Respond(w, r, createError("internal server error", http.StatusInternalServerError))
		return
	}
	a.respondWithTokens(w, r, signedIn, true)
}

func (a *AccountRessource) refresh(w http.ResponseWriter, r *http.Request) {
	current, err := auth.FromContext(r.Context())
	if err != nil {
		render.Respond(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	// reload the account so revoked users stop refreshing
	dto, err := a.manageService.ByID(r.Context(), current.ID)
	if err != nil {
		if errors.Is(err, manage.ErrNotFound) {
			render.Respond(w, r, createError("unauthorized", http.StatusUnauthorized))
			return
		}
		a.log.Error("error during token refresh", zap.Error(err))
		render.Respond(w, r, createError("internal server error", http.StatusInternalServerError))
		return
	}
	a.respondWithTokens(w, r, &user.SignedInUser{
		ID:        dto.ID,
		Email:     dto.Email,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Role:      dto.Role,
	}, false)
}

func (a *AccountRessource) respondWithTokens(
	w http.ResponseWriter,
	r *http.Request,
	signedIn *user.SignedInUser,
	withRefresh bool,
) {
	accessToken, err := a.issuer.IssueAccessToken(signedIn)
	if err != nil {
		a.log.Error("unable to issue access token", zap.Error(err))
		render.Respond(w, r, createError("internal server error", http.StatusInternalServerError))
		return
	}
	signedAccess, err := a.issuer.Sign(accessToken)
	if err != nil {
		a.log.Error("unable to sign access token", zap.Error(err))
		render.Respond(w, r, createError("internal server error", http.StatusInternalServerError))
		return
	}
	response := &tokenResponse{
		AccessToken: string(signedAccess),
		TokenType:   "bearer",
		ExpiresIn:   int(time.Until(accessToken.Expiration()).Seconds()),
		User: tokenUser{
			ID:        signedIn.ID.String(),
			Email:     signedIn.Email,
			FirstName: signedIn.FirstName,
			LastName:  signedIn.LastName,
			Role:      signedIn.Role,
		},
	}
	if withRefresh {
		refreshToken, err := a.issuer.IssueRefreshToken(signedIn)
		if err != nil {
			a.log.Error("unable to issue refresh token", zap.Error(err))
			render.Respond(
				w,
				r,
				createError("internal server error", http.StatusInternalServerError),
			)
			return
		}
		signedRefresh, err := a.issuer.Sign(refreshToken)
		if err != nil {
			a.log.Error("unable to sign refresh token", zap.Error(err))
			render.Respond(
				w,
				r,
				createError("internal server error", http.StatusInternalServerError),
			)
			return
		}
		response.RefreshToken = string(signedRefresh)
	}
	if err := render.Render(w, r, response); err != nil {
		a.log.Error("unable to render response", zap.Error(err))
	}
}

// recover always acknowledges, whether the address exists is not
// disclosed to the caller.
func (a *AccountRessource) recover(w http.ResponseWriter, r *http.Request) {
	var req *recoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.log.Info("invalid payload data for recover", zap.Error(err))
		render.Respond(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	err := a.signInService.TriggerPasswordRecovery(r.Context(), req.Email)
	if err != nil && !errors.Is(err, user.ErrEntityDoesNotExist) {
		a.log.Error("error triggering password recovery", zap.Error(err))
		render.Respond(w, r, createError("internal server error", http.StatusInternalServerError))
		return
	}
	err = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "If the address is registered a recovery mail has been sent",
	})
	if err != nil {
		a.log.Error("unable to render response", zap.Error(err))
	}
}

func (a *AccountRessource) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req *resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.log.Info("invalid payload data for reset password", zap.Error(err))
		render.Respond(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	err := a.signInService.RecoverPassword(r.Context(), req.Email, req.Token, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrPasswordGuidelines):
			render.Respond(w, r, createError(err.Error(), http.StatusBadRequest))
		case errors.Is(err, user.ErrTokenExpired):
			render.Respond(w, r, createError("recovery token expired", http.StatusBadRequest))
		case errors.Is(err, user.ErrEntityDoesNotExist):
			render.Respond(w, r, createError("invalid recovery token", http.StatusBadRequest))
		default:
			a.log.Error("error resetting password", zap.Error(err))
			render.Respond(
				w,
				r,
				createError("internal server error", http.StatusInternalServerError),
			)
		}
		return
	}
	err = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Password has been reset",
	})
	if err != nil {
		a.log.Error("unable to render response", zap.Error(err))
	}
}

func (a *AccountRessource) updateProfile(w http.ResponseWriter, r *http.Request) {
	current, err := auth.FromContext(r.Context())
	if err != nil {
		render.Respond(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	var req *updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.log.Info("invalid payload data for update profile", zap.Error(err))
		render.Respond(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	if req.FirstName != "" || req.LastName != "" {
		err = a.manageService.UpdateName(r.Context(), current.ID, req.FirstName, req.LastName)
		if err != nil {
			if errors.Is(err, manage.ErrNotFound) {
				render.Respond(w, r, createError("account not found", http.StatusNotFound))
				return
			}
			a.log.Error("error updating profile name", zap.Error(err))
			render.Respond(w, r, createError("internal server error", http.StatusInternalServerError))
			return
		}
	}
	if req.Email != "" && req.Email != current.Email {
		err = a.manageService.UpdateEmail(r.Context(), current.ID, req.Email)
		if err != nil {
			switch {
			case errors.Is(err, manage.ErrEntityAlreadyExists):
				render.Respond(w, r, createError("email already registered", http.StatusConflict))
			case errors.Is(err, manage.ErrNotFound):
				render.Respond(w, r, createError("account not found", http.StatusNotFound))
			default:
				a.log.Error("error updating profile email", zap.Error(err))
				render.Respond(
					w,
					r,
					createError("internal server error", http.StatusInternalServerError),
				)
			}
			return
		}
	}
	dto, err := a.manageService.ByID(r.Context(), current.ID)
	if err != nil {
		a.log.Error("error reloading account", zap.Error(err))
		render.Respond(w, r, createError("internal server error", http.StatusInternalServerError))
		return
	}
	render.Respond(w, r, dto)
}

func (a *AccountRessource) changePassword(w http.ResponseWriter, r *http.Request) {
	current, err := auth.FromContext(r.Context())
	if err != nil {
		render.Respond(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	var req *changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.log.Info("invalid payload data for change password", zap.Error(err))
		render.Respond(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	err = a.signInService.ChangePassword(r.Context(), current.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidCredentials):
			render.Respond(w, r, createError("invalid credentials", http.StatusUnauthorized))
		case errors.Is(err, user.ErrPasswordGuidelines):
			render.Respond(w, r, createError(err.Error(), http.StatusBadRequest))
		default:
			a.log.Error("error changing password", zap.Error(err))
			render.Respond(
				w,
				r,
				createError("internal server error", http.StatusInternalServerError),
			)
		}
		return
	}
	err = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Password has been changed",
	})
	if err != nil {
		a.log.Error("unable to render response", zap.Error(err))
	}
}

func (a *AccountRessource) me(w http.ResponseWriter, r *http.Request) {
	current, err := auth.FromContext(r.Context())
	if err != nil {
		render.Respond(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	dto, err := a.manageService.ByID(r.Context(), current.ID)
	if err != nil {
		if errors.Is(err, manage.ErrNotFound) {
			render.Respond(w, r, createError("account not found", http.StatusNotFound))
			return
		}
		a.log.Error("error loading account", zap.Error(err))
		render.Respond(w, r, createError("internal server error", http.StatusInternalServerError))
		return
	}
	render.Respond(w, r, dto)
}
