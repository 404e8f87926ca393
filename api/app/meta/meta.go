// Package meta contains the .well-known endpoints
package meta

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/crediflow/crediflow/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// MetaRessource contains the .well-known endpoints
type MetaRessource struct {
	log    *zap.Logger
	cfg    *config.BehaviourConfiguration
	issuer JwkSupplier
}

func (m *MetaRessource) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/crediflow-configuration", m.serviceConfiguration)
	r.Get("/jwks", m.jwks)
	return r
}

func (m *MetaRessource) jwks(w http.ResponseWriter, _ *http.Request) {
	switch m.issuer.Alg() {
	case "HS256", "HS384", "HS512", "RS256", "RS384", "RS512":
		jwk, err := m.issuer.AsPublicOnlyJWKSet()
		if err != nil {
			w.WriteHeader(500)
			return
		}

		b, err := json.Marshal(jwk)
		if err != nil {
			w.WriteHeader(500)
			return
		}
		_, _ = w.Write(b)
		return

	default:
		w.WriteHeader(500)
	}

}

// serviceConfiguration lets clients discover the endpoints without
// hardcoding paths.
func (m *MetaRessource) serviceConfiguration(w http.ResponseWriter, r *http.Request) {
	doc := &serviceMetaData{
		ServiceName:       m.cfg.Name,
		Issuer:            m.issuer.Issuer(),
		JWKSUri:           fmt.Sprintf("%s/.well-known/jwks", m.cfg.ServiceDomain),
		SignInEndpoint:    fmt.Sprintf("%s/account/signin", m.cfg.ServiceDomain),
		RefreshEndpoint:   fmt.Sprintf("%s/account/refresh", m.cfg.ServiceDomain),
		RecoveryEndpoint:  fmt.Sprintf("%s/account/recover", m.cfg.ServiceDomain),
		PersonalIntake:    fmt.Sprintf("%s/applications/personal", m.cfg.ServiceDomain),
		BusinessIntake:    fmt.Sprintf("%s/applications/business", m.cfg.ServiceDomain),
		SupportedStatuses: []string{"PENDING", "IN_REVIEW", "APPROVED", "REJECTED"},
	}
	err := render.Render(w, r, doc)
	if err != nil {
		m.log.Error("unable to render response", zap.Error(err))
	}
}

func NewMetaRessource(
	log *zap.Logger,
	cfg *config.BehaviourConfiguration,
	issuer JwkSupplier,
) *MetaRessource {
	return &MetaRessource{log: log, cfg: cfg, issuer: issuer}
}
