package cmd

import (
	"net/http"

	"lending/handler/views"
	"lending/pkg/number"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
)

// balanceCommand deposit, withdraw, borrow and repay share flags and flow
func balanceCommand(use, short, path string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Example: heredoc.Docf(`
			$lending %s --asset {asset_id} --amount 110.5 --decimals 18
		`, use),
		RunE: func(cmd *cobra.Command, args []string) error {
			assetID, _ := cmd.Flags().GetString("asset")
			amount, _ := cmd.Flags().GetString("amount")
			decimals, _ := cmd.Flags().GetUint8("decimals")

			raw, err := number.Parse(amount, decimals)
			if err != nil {
				return err
			}

			body := map[string]string{
				"asset_id": assetID,
				"amount":   raw.Dec(),
			}

			var event views.Event
			if err := callAPI(cmd.Context(), cmd, http.MethodPost, path, body, &event); err != nil {
				return err
			}

			cmd.Printf("%s #%d %s %s (%s)\n", event.Name, event.ID, event.AssetID, amount, event.TraceID)
			return nil
		},
	}

	addClientFlags(cmd)
	cmd.Flags().StringP("asset", "a", "", "asset id")
	cmd.Flags().StringP("amount", "q", "", "amount, e.g. 110.5")
	cmd.Flags().Uint8("decimals", 18, "decimals of the asset")
	_ = cmd.MarkFlagRequired("asset")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func init() {
	rootCmd.AddCommand(
		balanceCommand("deposit", "deposit collateral", "/deposits"),
		balanceCommand("withdraw", "withdraw collateral", "/withdrawals"),
		balanceCommand("borrow", "borrow an asset against the collateral", "/borrows"),
		balanceCommand("repay", "repay borrowed asset", "/repays"),
	)
}
