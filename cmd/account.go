package cmd

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"lending/handler/views"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/yiplee/structs"
)

var accountCmd = &cobra.Command{
	Use:   "account {user_id}",
	Short: "show collateral value, borrowed value and health factor of a user",
	Example: heredoc.Doc(`
		$lending account 8dcf823d-9eb3-4da2-8734-f0aad50c0da6
	`),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var account views.Account
		path := fmt.Sprintf("/accounts/%s", url.PathEscape(args[0]))
		if err := callAPI(cmd.Context(), cmd, http.MethodGet, path, nil, &account); err != nil {
			return err
		}

		fields := structs.Map(account)
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			cmd.Printf("%-18s %v\n", k, fields[k])
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	addClientFlags(accountCmd)
}
