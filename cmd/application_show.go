package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var showApplicationCommand = cobra.Command{
	Use:   "show",
	Short: "shows a single application",
	Long:  `this command shows the loan application with the given reference id`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.New("requires a reference id")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		ref, err := uuid.Parse(args[0])
		if err != nil {
			fmt.Printf("Not a valid reference id: %s \r\n", args[0])
			os.Exit(1)
			return
		}
		dataStore := mustResolveUsableDataStore()
		app, err := dataStore.ApplicationByReferenceID(cmd.Context(), ref)
		if err != nil {
			fmt.Printf("Unable to load application: %s \r\n", err)
			os.Exit(1)
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 1, 1, 1, ' ', 0)
		fmt.Fprintf(w, "ID:\t%d\r\n", app.ID)
		fmt.Fprintf(w, "ReferenceID:\t%s\r\n", app.ReferenceID)
		fmt.Fprintf(w, "Type:\t%s\r\n", app.Type)
		fmt.Fprintf(w, "Status:\t%s\r\n", app.Status)
		fmt.Fprintf(w, "Applicant:\t%s %s\r\n", app.FirstName, app.LastName)
		fmt.Fprintf(w, "Email:\t%s\r\n", app.Email)
		fmt.Fprintf(w, "SubmittedDate:\t%s\r\n", app.SubmittedDate)
		if app.UpdatedAt != nil {
			fmt.Fprintf(w, "UpdatedAt:\t%s\r\n", *app.UpdatedAt)
		}
		w.Flush()
	},
}
