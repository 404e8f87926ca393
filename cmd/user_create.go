package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/crediflow/crediflow/manage"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var userCreateCommand = cobra.Command{
	Use:   "create",
	Short: "launches a on terminal user creation dialog",
	Long:  `this command may be used to create a reviewer account from command line`,
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		dispatcher := bootstrapDispatcher(dataStore.Auditor())
		userManager := manage.NewUserService(
			dataStore,
			TopLevelLogger.Named("user_manager"),
			LoadedConfig,
			dispatcher,
		)
		reader := bufio.NewReader(os.Stdin)

		prompt := func(question string) string {
			fmt.Println(question)
			line, err := reader.ReadString('\n')
			if err != nil {
				fmt.Printf("Unable to read input: %s", err)
				os.Exit(1)
			}
			return strings.Trim(line, " \t\r\n")
		}

		firstName := prompt("first name?")
		lastName := prompt("last name?")
		email := prompt("email?")
		role := prompt("role? (admin/reviewer, empty for reviewer)")

		fmt.Println("password?")
		pwd, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			fmt.Printf("Unable to read password: %s", err)
			os.Exit(1)
			return
		}
		for len(pwd) < LoadedConfig.Behaviour.PasswordMinLength {
			fmt.Printf(
				"password needs to be at least %d long.\r\n",
				LoadedConfig.Behaviour.PasswordMinLength,
			)
			fmt.Println("password?")
			pwd, err = term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				fmt.Printf("Unable to read password: %s", err)
				os.Exit(1)
				return
			}
		}
		id, err := userManager.Create(
			cmd.Context(),
			firstName,
			lastName,
			email,
			string(pwd),
			nil,
			role,
		)
		if err != nil {
			fmt.Printf("Unable to create user: %s \r\n", err)
			os.Exit(1)
			return
		}
		fmt.Printf("Created user for email %s with id: %v", email, id)
	},
}
