package api

import (
	"net/http"
	"time"

	"github.com/crediflow/crediflow/api/app/account"
	"github.com/crediflow/crediflow/api/app/applications"
	"github.com/crediflow/crediflow/api/app/meta"
	"github.com/crediflow/crediflow/api/app/users"
	"github.com/crediflow/crediflow/application"
	"github.com/crediflow/crediflow/config"
	"github.com/crediflow/crediflow/i18n"
	"github.com/crediflow/crediflow/manage"
	"github.com/crediflow/crediflow/tokens"
	"github.com/crediflow/crediflow/user"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"

	"go.uber.org/zap"
)

var tokenAuth *jwtauth.JWTAuth

func compose(logger *zap.Logger,
	cfg *config.Configuration,
	issuer *tokens.TokenIssuer,
	signInService *user.Service,
	appService *application.Service,
	manageUserService *manage.UserService,
	renderer applications.PDFRenderer,
	registry *i18n.TranslationRegistry) (*chi.Mux, error) {
	// use same settings as issuer (duh)
	tokenAuth = jwtauth.New(issuer.Alg(), issuer.PrivateKey(), issuer.PublicKey())

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	r.Use(loggerMiddleware(logger))

	r.Use(middleware.Recoverer)

	r.Use(middleware.Timeout(50 * time.Second))
	if len(registry.Languages()) > 1 {
		r.Use(languageMiddleware(cfg.Behaviour.DefaultLocale, registry))
	}
	if cfg.CORS != nil {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   cfg.CORS.AllowedMethods,
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Link", "Content-Disposition"},
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           300,
		}))
	}
	r.Use(jwtauth.Verifier(tokenAuth))

	if cfg.DebugMode() {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("running in debug mode - no auto redirects to site"))
		})
	} else {
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, cfg.Behaviour.Site, http.StatusFound)
		})
	}

	r.Get("/.ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})

	applicationRessource := applications.NewApplicationRessource(
		logger.Named("application_ressource"),
		appService,
		renderer,
	)
	accountRessource := account.NewAccountRessource(
		logger.Named("account_ressource"),
		signInService,
		manageUserService,
		issuer,
	)
	userRessource := users.NewUserRessource(
		logger.Named("user_ressource"),
		manageUserService,
	)
	metaRessource := meta.NewMetaRessource(logger.Named("meta_ressource"), cfg.Behaviour, issuer)

	r.Mount("/applications", applicationRessource.Router())

	r.Mount("/account", accountRessource.Router())

	r.Mount("/users", userRessource.Router())

	r.Mount("/.well-known", metaRessource.Router())

	return r, nil
}
