package api

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/crediflow/crediflow/api/app/applications"
	"github.com/crediflow/crediflow/application"
	"github.com/crediflow/crediflow/config"
	"github.com/crediflow/crediflow/i18n"
	"github.com/crediflow/crediflow/manage"
	"github.com/crediflow/crediflow/tokens"
	"github.com/crediflow/crediflow/user"
	"go.uber.org/zap"
)

type Server struct {
	server *http.Server
	log    *zap.Logger
}

func NewServer(
	cfg *config.Configuration,
	logger *zap.Logger,
	issuer *tokens.TokenIssuer,
	signInService *user.Service,
	appService *application.Service,
	manageUser *manage.UserService,
	renderer applications.PDFRenderer,
	registry *i18n.TranslationRegistry) (*Server, error) {
	api, err := compose(logger.Named("api"),
		cfg,
		issuer,
		signInService,
		appService,
		manageUser,
		renderer,
		registry)
	if err != nil {
		return nil, err
	}
	bind := net.JoinHostPort(cfg.Server.Address, strconv.Itoa(cfg.Server.Port))
	srv := http.Server{
		Addr:              bind,
		Handler:           api,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return &Server{
		server: &srv,
		log:    logger,
	}, nil
}

// Start runs ListenAndServe on the http.Server with graceful shutdown.
func (srv *Server) Start() error {
	srv.log.Info("starting server")
	go func() {
		if err := srv.server.ListenAndServe(); err != http.ErrServerClosed {
			panic(err)
		}
	}()
	srv.log.Info("listening", zap.String("addr", srv.server.Addr))

	quit := make(chan os.Signal, 1)
	//nolint
	signal.Notify(quit, os.Interrupt)
	sig := <-quit
	srv.log.Info("shutting down", zap.String("signal", sig.String()))

	if err := srv.server.Shutdown(context.Background()); err != nil {
		srv.log.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	srv.log.Info("graceful shutdown completed")
	return nil
}
