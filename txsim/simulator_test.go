package txsim_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dbillionaer/polygonmcp/common"
	"github.com/Dbillionaer/polygonmcp/networks"
	"github.com/Dbillionaer/polygonmcp/tokens"
	"github.com/Dbillionaer/polygonmcp/txsim"
)

const (
	testSender    = "0x1111111111111111111111111111111111111111"
	testRecipient = "0x2222222222222222222222222222222222222222"
	testToken     = "0x3333333333333333333333333333333333333333"
)

func newTestSimulator(t *testing.T, reader txsim.ChainReader, signer txsim.SignerContext) *txsim.Simulator {
	t.Helper()
	registry, err := tokens.NewRegistry(map[string]string{"TST": testToken})
	require.NoError(t, err)
	return txsim.NewSimulator(reader, registry, signer, networks.PolygonMainnet, zerolog.Nop())
}

func TestBufferedGasLimit(t *testing.T) {
	// floor division, never rounded to nearest
	assert.Equal(t, uint64(120), txsim.BufferedGasLimit(100))
	assert.Equal(t, uint64(121), txsim.BufferedGasLimit(101))
	assert.Equal(t, uint64(25200), txsim.BufferedGasLimit(21000))
	assert.Equal(t, uint64(1), txsim.BufferedGasLimit(1))
}

func TestSimulateSuccess(t *testing.T) {
	reader := &fakeReader{estimate: 21000}
	sim := newTestSimulator(t, reader, nil)

	result := sim.SimulateTransaction(context.Background(), &txsim.TxRequest{
		From:  testSender,
		To:    testRecipient,
		Value: big.NewInt(1000),
	})

	require.True(t, result.Success)
	assert.Empty(t, result.ErrorMessage)
	assert.Equal(t, "21000", result.GasUsed)
	// gas used can't exceed the buffered limit the simulation ran with
	gasUsed, err := common.StringToBigInt(result.GasUsed)
	require.NoError(t, err)
	assert.LessOrEqual(t, gasUsed.Uint64(), txsim.BufferedGasLimit(21000))
	assert.Empty(t, result.TokenTransfers)
	assert.Empty(t, result.ContractInteractions)
}

func TestSimulateDoesNotMutateRequest(t *testing.T) {
	reader := &fakeReader{estimate: 21000}
	sim := newTestSimulator(t, reader, &fakeSigner{address: testSender})

	req := &txsim.TxRequest{To: testRecipient}
	sim.SimulateTransaction(context.Background(), req)

	assert.Empty(t, req.From)
	assert.Zero(t, req.GasLimit)
	assert.Nil(t, req.GasPrice)
	assert.Nil(t, req.MaxFeePerGas)
}

func TestSimulateFillsSenderFromSigner(t *testing.T) {
	reader := &fakeReader{estimate: 21000}
	sim := newTestSimulator(t, reader, &fakeSigner{address: testSender})

	result := sim.SimulateTransaction(context.Background(), &txsim.TxRequest{
		To: testRecipient,
	})
	require.True(t, result.Success)
}

func TestSimulateRevert(t *testing.T) {
	reader := &fakeReader{
		estimate: 21000,
		callErr:  errors.New("execution reverted: ERC20: transfer amount exceeds balance"),
	}
	sim := newTestSimulator(t, reader, nil)

	result := sim.SimulateTransaction(context.Background(), &txsim.TxRequest{
		From: testSender,
		To:   testToken,
	})

	require.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "transaction would revert: ")
	assert.Contains(t, result.ErrorMessage, "exceeds balance")
}

func TestSimulateEstimationFailureFallsBack(t *testing.T) {
	reader := &fakeReader{
		estimateErr: errors.New("node overloaded"),
	}
	sim := newTestSimulator(t, reader, nil)

	result := sim.SimulateTransaction(context.Background(), &txsim.TxRequest{
		From: testSender,
		To:   testRecipient,
	})

	// estimation failure is not fatal: the call still ran with the default
	// limit and the failure surfaces as the error message only because the
	// speculative call itself succeeded
	require.True(t, result.Success)
	assert.Equal(t, "300000", result.GasUsed)
	assert.Contains(t, result.ErrorMessage, "gas estimation failed")
}

func TestSimulateInvalidAddressDegradesToFailedResult(t *testing.T) {
	reader := &fakeReader{estimate: 21000}
	sim := newTestSimulator(t, reader, nil)

	result := sim.SimulateTransaction(context.Background(), &txsim.TxRequest{
		From: "0xnot-an-address",
		To:   testRecipient,
	})

	require.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "INVALID_ADDRESS")
}

func TestSimulateDetectsERC20Transfer(t *testing.T) {
	amount, ok := big.NewInt(0).SetString("500000000000000000000", 10)
	require.True(t, ok)
	data, err := common.PackERC20Data("transfer", ethcommon.HexToAddress(testRecipient), amount)
	require.NoError(t, err)

	token := ethcommon.HexToAddress(testToken).Hex()
	reader := &fakeReader{
		estimate: 52000,
		symbols:  map[string]string{token: "TEST"},
		decimals: map[string]uint64{token: 18},
	}
	sim := newTestSimulator(t, reader, nil)

	result := sim.SimulateTransaction(context.Background(), &txsim.TxRequest{
		From: testSender,
		To:   testToken,
		Data: data,
	})

	require.Len(t, result.TokenTransfers, 1)
	transfer := result.TokenTransfers[0]
	assert.Equal(t, token, transfer.Token)
	assert.Equal(t, "TEST", transfer.Symbol)
	assert.Equal(t, testSender, transfer.From)
	assert.Equal(t, ethcommon.HexToAddress(testRecipient).Hex(), transfer.To)
	assert.Equal(t, "500.0", transfer.Amount)
	assert.Equal(t, "500000000000000000000", transfer.RawAmount)
	assert.Equal(t, txsim.TransferTypeERC20, transfer.Type)
}

func TestSimulateTransferSymbolLookupFailure(t *testing.T) {
	data, err := common.PackERC20Data(
		"transfer", ethcommon.HexToAddress(testRecipient), big.NewInt(1000000),
	)
	require.NoError(t, err)

	token := ethcommon.HexToAddress(testToken).Hex()
	reader := &fakeReader{
		estimate:  52000,
		symbolErr: map[string]error{token: errors.New("execution reverted")},
		decimals:  map[string]uint64{token: 6},
	}
	sim := newTestSimulator(t, reader, nil)

	result := sim.SimulateTransaction(context.Background(), &txsim.TxRequest{
		From: testSender,
		To:   testToken,
		Data: data,
	})

	// a token without symbol() must still be detected
	require.Len(t, result.TokenTransfers, 1)
	assert.Equal(t, "Unknown", result.TokenTransfers[0].Symbol)
	assert.Equal(t, "1.0", result.TokenTransfers[0].Amount)
}

func TestSimulateUnrecognizedSelectorProducesNoTransfers(t *testing.T) {
	data, err := common.PackERC20Data(
		"transferFrom",
		ethcommon.HexToAddress(testSender),
		ethcommon.HexToAddress(testRecipient),
		big.NewInt(1),
	)
	require.NoError(t, err)

	reader := &fakeReader{estimate: 52000}
	sim := newTestSimulator(t, reader, nil)

	result := sim.SimulateTransaction(context.Background(), &txsim.TxRequest{
		From: testSender,
		To:   testToken,
		Data: data,
	})
	assert.Empty(t, result.TokenTransfers)
}

func TestSimulateContractCreation(t *testing.T) {
	reader := &fakeReader{estimate: 500000, nonce: 7}
	sim := newTestSimulator(t, reader, nil)

	result := sim.SimulateTransaction(context.Background(), &txsim.TxRequest{
		From: testSender,
		Data: ethcommon.Hex2Bytes("6080604052"),
	})

	require.Len(t, result.ContractInteractions, 1)
	creation := result.ContractInteractions[0]
	assert.Equal(t, "creation", creation.Type)
	assert.Equal(t, "0x6080604052", creation.Bytecode)
	assert.True(t, ethcommon.IsHexAddress(creation.EstimatedAddress))
}

func TestSimulateGasCostUsesFallbackPrice(t *testing.T) {
	reader := &fakeReader{
		estimate: 21000,
		feeErr:   errors.New("fee data unavailable"),
	}
	sim := newTestSimulator(t, reader, nil)

	result := sim.SimulateTransaction(context.Background(), &txsim.TxRequest{
		From: testSender,
		To:   testRecipient,
	})

	require.True(t, result.Success)
	// 21000 gas at the 50 gwei fallback
	assert.Equal(t, "1050000000000000", result.GasCost.Wei)
	assert.Equal(t, "1050000.0", result.GasCost.Gwei)
	assert.Equal(t, "0.00105", result.GasCost.Ether)
}

func TestAnalyzePending(t *testing.T) {
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    1,
		To:       addrPtr(testRecipient),
		Value:    big.NewInt(1000000000000000000),
		Gas:      21000,
		GasPrice: big.NewInt(30000000000),
	})
	from := ethcommon.HexToAddress(testSender)
	reader := &fakeReader{
		tx:        &common.Transaction{Transaction: tx, Extra: common.TxExtraInfo{From: &from}},
		txPending: true,
	}
	sim := newTestSimulator(t, reader, nil)

	analysis, err := sim.AnalyzeTransaction(context.Background(), tx.Hash().Hex())
	require.NoError(t, err)
	assert.Equal(t, txsim.StatusPending, analysis.Status)
	assert.Equal(t, txsim.StatusPending, analysis.GasUsed)
	assert.Equal(t, txsim.StatusPending, analysis.BlockNumber)
	assert.Equal(t, from.Hex(), analysis.From)
	assert.Equal(t, "1.0", analysis.Value.Ether)
	assert.Equal(t, "30.0", analysis.GasPrice.Gwei)
	assert.Nil(t, analysis.GasCost)
}

func TestAnalyzeMined(t *testing.T) {
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    1,
		To:       addrPtr(testRecipient),
		Value:    big.NewInt(0),
		Gas:      60000,
		GasPrice: big.NewInt(30000000000),
	})
	from := ethcommon.HexToAddress(testSender)
	reader := &fakeReader{
		tx: &common.Transaction{Transaction: tx, Extra: common.TxExtraInfo{From: &from}},
		receipt: &types.Receipt{
			Status:            types.ReceiptStatusSuccessful,
			GasUsed:           52341,
			BlockNumber:       big.NewInt(123456),
			Logs:              []*types.Log{{}, {}},
			EffectiveGasPrice: big.NewInt(28000000000),
		},
	}
	sim := newTestSimulator(t, reader, nil)

	analysis, err := sim.AnalyzeTransaction(context.Background(), tx.Hash().Hex())
	require.NoError(t, err)
	assert.Equal(t, txsim.StatusSuccess, analysis.Status)
	assert.Equal(t, "52341", analysis.GasUsed)
	assert.Equal(t, "123456", analysis.BlockNumber)
	assert.Equal(t, 2, analysis.Logs)
	require.NotNil(t, analysis.GasCost)
	// 52341 * 28 gwei
	assert.Equal(t, "1465548000000000", analysis.GasCost.Wei)
}

func TestAnalyzeFailedStatus(t *testing.T) {
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    1,
		To:       addrPtr(testRecipient),
		Value:    big.NewInt(0),
		Gas:      60000,
		GasPrice: big.NewInt(30000000000),
	})
	reader := &fakeReader{
		tx: &common.Transaction{Transaction: tx},
		receipt: &types.Receipt{
			Status:      types.ReceiptStatusFailed,
			GasUsed:     60000,
			BlockNumber: big.NewInt(100),
		},
	}
	sim := newTestSimulator(t, reader, nil)

	analysis, err := sim.AnalyzeTransaction(context.Background(), tx.Hash().Hex())
	require.NoError(t, err)
	assert.Equal(t, txsim.StatusFailed, analysis.Status)
}

func TestAnalyzeUnknownHash(t *testing.T) {
	reader := &fakeReader{txErr: errors.New("not found")}
	sim := newTestSimulator(t, reader, nil)

	_, err := sim.AnalyzeTransaction(context.Background(), "0xdeadbeef")
	require.Error(t, err)
	var typed *common.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, common.ErrCodeTxAnalysis, typed.Code)
}

func TestEstimateGas(t *testing.T) {
	reader := &fakeReader{estimate: 21000}
	sim := newTestSimulator(t, reader, nil)

	estimate, err := sim.EstimateGas(context.Background(), &txsim.TxRequest{
		From:  testSender,
		To:    testRecipient,
		Value: big.NewInt(1),
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(21000), estimate.GasEstimate)
	assert.Equal(t, uint64(21000), estimate.GasLimit)
	assert.Equal(t, uint64(25200), estimate.RecommendedGasLimit)
}

func TestEstimateGasHardError(t *testing.T) {
	cause := errors.New("node unreachable")
	reader := &fakeReader{estimateErr: cause}
	sim := newTestSimulator(t, reader, nil)

	_, err := sim.EstimateGas(context.Background(), &txsim.TxRequest{
		To:    testRecipient,
		Value: big.NewInt(1),
	})
	require.Error(t, err)
	var typed *common.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, common.ErrCodeGasEstimation, typed.Code)
	assert.ErrorIs(t, err, cause)
}

func addrPtr(hex string) *ethcommon.Address {
	addr := ethcommon.HexToAddress(hex)
	return &addr
}
