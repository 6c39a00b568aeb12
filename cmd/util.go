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
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Dbillionaer/polygonmcp/common"
	"github.com/Dbillionaer/polygonmcp/config"
	"github.com/Dbillionaer/polygonmcp/networks"
	"github.com/Dbillionaer/polygonmcp/tokens"
	"github.com/Dbillionaer/polygonmcp/txsim"
	"github.com/Dbillionaer/polygonmcp/util/reader"
	"github.com/Dbillionaer/polygonmcp/wallet"
)

func newLogger() zerolog.Logger {
	level := zerolog.ErrorLevel
	if config.Verbose {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// buildSimulator assembles the simulator from the current flag settings.
func buildSimulator() (*txsim.Simulator, error) {
	network, err := networks.GetNetwork(config.Network)
	if err != nil {
		return nil, err
	}

	var r *reader.EthReader
	if config.NodeURL != "" {
		r = reader.NewEthReaderGeneric(map[string]string{"custom": config.NodeURL})
	} else {
		r = reader.NewEthReader(network)
	}

	registry := tokens.NewDefaultRegistry()
	if config.TokensFile != "" {
		registry, err = tokens.NewRegistryFromFile(config.TokensFile)
		if err != nil {
			return nil, fmt.Errorf("couldn't load token book %s: %w", config.TokensFile, err)
		}
	}

	signer := wallet.NewContext()
	if config.Wallet != "" {
		if err := signer.Connect(network.GetName(), config.Wallet); err != nil {
			return nil, err
		}
	}

	return txsim.NewSimulator(r, registry, signer, network, newLogger()), nil
}

// buildTxRequest reads the shared transaction flags. --value is a wei amount
// in decimal, --data is hex with or without the 0x prefix.
func buildTxRequest() (*txsim.TxRequest, error) {
	req := &txsim.TxRequest{
		From:     config.From,
		To:       config.To,
		GasLimit: config.GasLimit,
	}
	if config.Value != "" {
		value, err := common.StringToBigInt(config.Value)
		if err != nil {
			return nil, err
		}
		req.Value = value
	}
	if config.Data != "" {
		raw := config.Data
		if !strings.HasPrefix(raw, "0x") {
			raw = "0x" + raw
		}
		data, err := hexutil.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("couldn't decode --data: %w", err)
		}
		req.Data = data
	}
	return req, nil
}

func addTxFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&config.From, "from", "", "sender address, defaults to the connected wallet")
	cmd.PersistentFlags().StringVar(&config.To, "to", "", "recipient address, empty for contract creation")
	cmd.PersistentFlags().StringVar(&config.Value, "value", "", "value in wei")
	cmd.PersistentFlags().StringVar(&config.Data, "data", "", "call data in hex")
	cmd.PersistentFlags().Uint64Var(&config.GasLimit, "gas-limit", 0, "gas limit, estimated when omitted")
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
