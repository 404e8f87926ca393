package cmd

import (
	"fmt"
	"os"

	"github.com/crediflow/crediflow/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ConfigFileLocation is of the config to load
var ConfigFileLocation string

// TopLevelLogger is the logger all loggers come from
var TopLevelLogger *zap.Logger

// LoadedConfig is the currently loaded configuration after initial bootstrapping
var LoadedConfig *config.Configuration

// FileSystemsConfig consists of the filesystems to use (either local or embed)
var FileSystemsConfig *config.FileSystems

var rootCommand = cobra.Command{
	Use:   "crediflow",
	Short: "crediflow a loan application service",
	Long: `crediflow is a loan application intake and review service,
	For more information visit https://github.com/crediflow/crediflow`,
	Run: func(cmd *cobra.Command, args []string) {
		serveCommand.Run(cmd, args)
	},
}

func Execute() {
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {

	rootCommand.PersistentFlags().
		StringVar(&ConfigFileLocation, "config", "", "config file to be used")

	verifyCommand.AddCommand(&sendTestMailCommand)

	userCommand.AddCommand(&userCreateCommand)
	userCommand.AddCommand(&listUsersCommand)
	userCommand.AddCommand(&removeUserCommand)

	applicationCommand.AddCommand(&listApplicationsCommand)
	applicationCommand.AddCommand(&showApplicationCommand)

	rootCommand.AddCommand(&verifyCommand)
	rootCommand.AddCommand(&userCommand)
	rootCommand.AddCommand(&applicationCommand)
	rootCommand.AddCommand(&seedCommand)
	rootCommand.AddCommand(&serveCommand)
}
