// Copyright © 2026 The polygonmcp authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Dbillionaer/polygonmcp/config"
)

var balancesCmd = &cobra.Command{
	Use:   "balances <address>",
	Short: "Report net token balance changes for an address over a block range",
	Long: `Balances scans the Transfer logs of every token in the registry and nets
the address's incoming against outgoing amounts over the block range. Tokens
with zero net movement are omitted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sim, err := buildSimulator()
		if err != nil {
			return err
		}
		if config.Current {
			report, err := sim.CurrentTokenBalances(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(report)
		}
		report, err := sim.TokenBalanceChanges(
			cmd.Context(), args[0], config.FromBlock, config.ToBlock,
		)
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

func init() {
	balancesCmd.PersistentFlags().StringVar(
		&config.FromBlock, "from-block", "", `start block, "latest" when omitted`,
	)
	balancesCmd.PersistentFlags().StringVar(
		&config.ToBlock, "to-block", "", `end block, "latest" when omitted`,
	)
	balancesCmd.PersistentFlags().BoolVar(
		&config.Current, "current", false,
		"report current balances instead of the range delta",
	)
	rootCmd.AddCommand(balancesCmd)
}
