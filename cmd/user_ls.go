package cmd

import (
	"fmt"
	"math"
	"net/url"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/crediflow/crediflow/manage"
	"github.com/spf13/cobra"
)

var listUsersCommand = cobra.Command{
	Use:   "ls",
	Short: "Lists all users",
	Long:  `This will list all reviewer accounts`,
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		dispatcher := bootstrapDispatcher(dataStore.Auditor())
		service := manage.NewUserService(
			dataStore,
			TopLevelLogger.Named("user_manager"),
			LoadedConfig,
			dispatcher)
		params := url.Values{
			"limit": []string{strconv.Itoa(math.MaxInt)},
		}
		lst, err := service.List(cmd.Context(), params)
		if err != nil {
			fmt.Printf("Unable to load users: %s", err)
			os.Exit(1)
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 1, 1, 1, ' ', 0)
		fmt.Fprintf(
			w,
			"%s\t%s\t%s\t%s\t%s\t%s\r\n",
			"ID",
			"FirstName",
			"LastName",
			"Email",
			"Role",
			"CreatedAt",
		)
		for _, v := range lst.Data {
			fmt.Fprintf(
				w,
				"%s\t%s\t%s\t%s\t%s\t%s \r\n",
				v.ID,
				v.FirstName,
				v.LastName,
				v.Email,
				v.Role,
				v.CreatedAt,
			)
		}

		fmt.Fprintf(w, "------------------------------------------------- \r\n")
		fmt.Fprintf(w, "%d entries loaded", lst.Meta.Total)
		w.Flush()
	},
}
