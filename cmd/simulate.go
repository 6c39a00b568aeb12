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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dbillionaer/polygonmcp/common"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Speculatively execute a transaction without broadcasting it",
	Long: `Simulate runs the transaction as a read-only call at the latest block and
reports whether it would succeed, the gas it would use and cost, and any
token transfers it would cause. Nothing is signed or broadcast.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sim, err := buildSimulator()
		if err != nil {
			return err
		}
		req, err := buildTxRequest()
		if err != nil {
			return err
		}
		result := sim.SimulateTransaction(cmd.Context(), req)
		if result.Success {
			fmt.Println("simulation:", common.InfoColor("would succeed"))
		} else {
			fmt.Println("simulation:", common.AlertColor("would fail"))
		}
		return printJSON(result)
	},
}

func init() {
	addTxFlags(simulateCmd)
	rootCmd.AddCommand(simulateCmd)
}
