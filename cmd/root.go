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
	"os"

	"github.com/spf13/cobra"

	"github.com/Dbillionaer/polygonmcp/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "polygonmcp",
	Short: "Simulate, analyze and cost Polygon transactions from the command line",
	Long: `polygonmcp speculatively executes candidate Polygon transactions without
broadcasting them, analyzes settled transactions by hash, estimates gas with
a safety buffer and reconstructs historical token balance changes from
Transfer logs.

Every command prints a JSON result suitable for piping into other tools.

By default it talks to public Polygon PoS nodes; point it at your own node
with --node or the POLYGON_MAINNET_NODE / POLYGON_AMOY_NODE env vars.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&config.Network, "network", "n", "polygon",
		"network to talk to (polygon, amoy)",
	)
	rootCmd.PersistentFlags().StringVar(
		&config.NodeURL, "node", "",
		"RPC node URL, overrides the network's default nodes",
	)
	rootCmd.PersistentFlags().StringVar(
		&config.TokensFile, "tokens", "",
		"JSON file mapping token symbols to addresses, replaces the builtin book",
	)
	rootCmd.PersistentFlags().StringVar(
		&config.Wallet, "wallet", "",
		"address to treat as the connected wallet",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&config.Verbose, "verbose", "v", false,
		"log enrichment warnings to stderr",
	)
}
