package cmd

import (
	"fmt"
	"os"

	"github.com/crediflow/crediflow/manage"
	"github.com/spf13/cobra"
)

var seedCommand = cobra.Command{
	Use:   "seed",
	Short: "seeds the configured admin account",
	Long:  `this command seeds the administrator account from the behaviour.admin configuration`,
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		dispatcher := bootstrapDispatcher(dataStore.Auditor())
		service := manage.NewUserService(
			dataStore,
			TopLevelLogger.Named("user_manager"),
			LoadedConfig,
			dispatcher)
		if err := service.EnsureAdmin(cmd.Context()); err != nil {
			fmt.Printf("Unable to seed admin account: %s \r\n", err)
			os.Exit(1)
			return
		}
		fmt.Println("Admin account is in place")
	},
}
