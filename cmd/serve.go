package cmd

import (
	"context"

	"github.com/crediflow/crediflow/api"
	"github.com/crediflow/crediflow/application"
	"github.com/crediflow/crediflow/manage"
	"github.com/crediflow/crediflow/pdf"
	"github.com/crediflow/crediflow/tokens"
	"github.com/crediflow/crediflow/user"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCommand = cobra.Command{
	Use:   "serve",
	Short: "starts the http server",
	Long:  `Starts a http server and serves the service`,
	Run: func(cmd *cobra.Command, args []string) {
		//this is our composite root - might wanna shift that somewhere else later

		//setup datastore
		dataStore := mustResolveUsableDataStore()
		//load translations
		registry := mustResolveTranslationRegistry()

		//setup token issuer
		issuer := tokens.NewIssuer(TopLevelLogger.Named("token_issuer"), LoadedConfig.JWT)

		//setup mailer
		mailer := mustResolveMailer(registry)

		//events dispatcher
		dispatcher := bootstrapDispatcher(dataStore.Auditor())

		//setup management services
		userManager := manage.NewUserService(dataStore, TopLevelLogger.Named("user_manager"), LoadedConfig, dispatcher)
		if err := userManager.EnsureAdmin(context.Background()); err != nil {
			TopLevelLogger.Fatal("Failed to seed admin account", zap.Error(err))
		}

		//setup business services
		signInService := user.New(dataStore, TopLevelLogger.Named("user_service"), LoadedConfig, mailer, dispatcher)
		appService := application.NewApplicationService(dataStore, TopLevelLogger.Named("application_service"), dispatcher)

		//setup pdf renderer
		renderer := pdf.NewRenderer(LoadedConfig.Behaviour.Name)

		server, err := api.NewServer(LoadedConfig, TopLevelLogger.Named("server"),
			issuer,
			signInService,
			appService,
			userManager,
			renderer,
			registry,
		)
		if err != nil {
			TopLevelLogger.Fatal("Failed to create server", zap.Error(err))
		}
		if err := server.Start(); err != nil {
			TopLevelLogger.Fatal("Server stopped with error", zap.Error(err))
		}
		TopLevelLogger.Info("Shutdown complete")
	},
}

func init() {
	viper.SetDefault("port", "3000")
	viper.SetDefault("log_level", "debug")
}
