package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/crediflow/crediflow/manage"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var removeUserCommand = cobra.Command{
	Use:   "rm",
	Short: "removes a user account",
	Long:  `this command removes the reviewer account with the given id or email`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.New("requires a user id or email")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		id, err := uuid.Parse(args[0])
		if err != nil {
			found, resolved, lerr := dataStore.IDFromEmail(cmd.Context(), args[0])
			if lerr != nil {
				fmt.Printf("Unable to resolve user: %s \r\n", lerr)
				os.Exit(1)
				return
			}
			if !found {
				fmt.Printf("No user with id or email: %s \r\n", args[0])
				os.Exit(1)
				return
			}
			id = resolved
		}
		dispatcher := bootstrapDispatcher(dataStore.Auditor())
		service := manage.NewUserService(
			dataStore,
			TopLevelLogger.Named("user_manager"),
			LoadedConfig,
			dispatcher)
		if err := service.Delete(cmd.Context(), id); err != nil {
			fmt.Printf("Unable to remove user: %s \r\n", err)
			os.Exit(1)
			return
		}
		fmt.Printf("Removed user %s", id)
	},
}
