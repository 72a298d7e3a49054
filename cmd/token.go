package cmd

import (
	"net/http"

	"lending/handler/views"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "allow-list cmd group",
	Example: heredoc.Doc(`
		$lending token set --asset {asset_id} --feed {price_feed}
		$lending token list
	`),
}

var setTokenCmd = &cobra.Command{
	Use:   "set",
	Short: "register or replace the price feed of an asset, owner only",
	RunE: func(cmd *cobra.Command, args []string) error {
		assetID, _ := cmd.Flags().GetString("asset")
		feed, _ := cmd.Flags().GetString("feed")

		body := map[string]string{
			"asset_id":   assetID,
			"price_feed": feed,
		}

		var event views.Event
		if err := callAPI(cmd.Context(), cmd, http.MethodPost, "/tokens", body, &event); err != nil {
			return err
		}

		cmd.Printf("%s #%d %s => %s\n", event.Name, event.ID, event.AssetID, event.PriceFeed)
		return nil
	},
}

var listTokenCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "list the allow-list",
	RunE: func(cmd *cobra.Command, args []string) error {
		var tokens []views.Token
		if err := callAPI(cmd.Context(), cmd, http.MethodGet, "/tokens", nil, &tokens); err != nil {
			return err
		}

		for _, token := range tokens {
			cmd.Println(token.AssetID, token.PriceFeed)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(setTokenCmd, listTokenCmd)

	addClientFlags(setTokenCmd)
	setTokenCmd.Flags().StringP("asset", "a", "", "asset id")
	setTokenCmd.Flags().StringP("feed", "f", "", "price feed id")
	_ = setTokenCmd.MarkFlagRequired("asset")
	_ = setTokenCmd.MarkFlagRequired("feed")

	addClientFlags(listTokenCmd)
}
