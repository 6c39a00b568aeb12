package txsim

import (
	"context"
	"encoding/hex"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/Dbillionaer/polygonmcp/common"
)

// callDecoder decodes one recognized call-data shape into result entries.
type callDecoder func(s *Simulator, ctx context.Context, tx *TxRequest, result *SimulationResult)

// callDecoders maps a 4-byte selector (hex encoded) to its decoder. This is a
// closed set: unrecognized selectors (transferFrom, batched calls) produce
// no entries.
var callDecoders = map[string]callDecoder{
	erc20TransferSelector(): (*Simulator).decodeERC20Transfer,
}

func erc20TransferSelector() string {
	return hex.EncodeToString(common.GetERC20ABI().Methods["transfer"].ID)
}

// DetectTokenTransfers inspects the call data for recognized token movement
// shapes and appends the decoded transfers to result.TokenTransfers.
func (s *Simulator) DetectTokenTransfers(ctx context.Context, tx *TxRequest, result *SimulationResult) {
	if tx.To == "" || len(tx.Data) < 4 {
		return
	}
	decode, found := callDecoders[hex.EncodeToString(tx.Data[:4])]
	if !found {
		return
	}
	decode(s, ctx, tx, result)
}

func (s *Simulator) decodeERC20Transfer(ctx context.Context, tx *TxRequest, result *SimulationResult) {
	method := common.GetERC20ABI().Methods["transfer"]
	args, err := method.Inputs.UnpackValues(tx.Data[4:])
	if err != nil || len(args) != 2 {
		s.logger.Warn().Err(err).Str("token", tx.To).Msg("couldn't decode transfer call data")
		return
	}
	to, okTo := args[0].(ethcommon.Address)
	amount, okAmount := args[1].(*big.Int)
	if !okTo || !okAmount {
		return
	}

	token := ethcommon.HexToAddress(tx.To).Hex()
	symbol, decimals := s.tokenMetadata(ctx, token)
	result.TokenTransfers = append(result.TokenTransfers, TokenTransfer{
		Token:     token,
		Symbol:    symbol,
		From:      tx.From,
		To:        to.Hex(),
		Amount:    common.BigToDecimalString(amount, decimals),
		RawAmount: amount.String(),
		Type:      TransferTypeERC20,
	})
}
