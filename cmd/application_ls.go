package cmd

import (
	"fmt"
	"math"
	"net/url"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/crediflow/crediflow/db"
	"github.com/spf13/cobra"
)

var listApplicationsCommand = cobra.Command{
	Use:   "ls",
	Short: "Lists all applications",
	Long:  `This will list all stored loan applications`,
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		params := url.Values{
			"limit": []string{strconv.Itoa(math.MaxInt)},
		}
		query := db.NewQueryBuilder(params).
			Sort("submittedDate").
			Paginate().
			Build()
		entities, total, err := dataStore.Applications(cmd.Context(), query)
		if err != nil {
			fmt.Printf("Unable to load applications: %s", err)
			os.Exit(1)
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 1, 1, 1, ' ', 0)
		fmt.Fprintf(
			w,
			"%s\t%s\t%s\t%s\t%s\t%s\r\n",
			"ID",
			"ReferenceID",
			"Type",
			"Status",
			"Applicant",
			"SubmittedDate",
		)
		for _, v := range entities {
			fmt.Fprintf(
				w,
				"%d\t%s\t%s\t%s\t%s %s\t%s \r\n",
				v.ID,
				v.ReferenceID,
				v.Type,
				v.Status,
				v.FirstName,
				v.LastName,
				v.SubmittedDate,
			)
		}

		fmt.Fprintf(w, "------------------------------------------------- \r\n")
		fmt.Fprintf(w, "%d entries loaded", total)
		w.Flush()
	},
}
