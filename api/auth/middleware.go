// Package auth guards API routes based on the claims of the verified
// bearer token.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/crediflow/crediflow/tokens"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

var ErrNoCurrentUser = errors.New("no authenticated user in context")

// CurrentUser is the identity carried by a validated access token.
type CurrentUser struct {
	ID    uuid.UUID
	Email string
	Role  string
}

type contextKey struct {
	name string
}

var currentUserKey = &contextKey{"CurrentUser"}

// FromContext returns the authenticated user placed there by
// RequireAccessToken.
func FromContext(ctx context.Context) (*CurrentUser, error) {
	user, ok := ctx.Value(currentUserKey).(*CurrentUser)
	if !ok {
		return nil, ErrNoCurrentUser
	}
	return user, nil
}

// RequireAccessToken rejects requests without a valid access token.
// Refresh tokens are refused here, they are only good for the refresh
// endpoint.
func RequireAccessToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := userFromToken(r, tokens.TokenUseAccess)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), currentUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRefreshToken admits only refresh tokens, used on the token
// refresh endpoint.
func RequireRefreshToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := userFromToken(r, tokens.TokenUseRefresh)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), currentUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole restricts a route to the given roles, it runs after
// RequireAccessToken.
func RequireRole(roles ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			user, err := FromContext(r.Context())
			if err != nil {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			for _, role := range roles {
				if strings.EqualFold(user.Role, role) {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		}
		return http.HandlerFunc(fn)
	}
}

func userFromToken(r *http.Request, expectedUse string) (*CurrentUser, error) {
	token, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, jwtauth.ErrNoTokenFound
	}
	use, ok := claims[tokens.ClaimTokenUse].(string)
	if !ok || use != expectedUse {
		return nil, errors.New("wrong token use")
	}
	id, err := uuid.Parse(token.Subject())
	if err != nil {
		return nil, err
	}
	user := &CurrentUser{ID: id}
	if email, ok := claims[tokens.ClaimEmail].(string); ok {
		user.Email = email
	}
	if role, ok := claims[tokens.ClaimRole].(string); ok {
		user.Role = role
	}
	return user, nil
}
