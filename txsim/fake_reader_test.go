package txsim_test

import (
	"context"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/Dbillionaer/polygonmcp/common"
)

// fakeReader is an in-memory ChainReader with canned responses per token.
type fakeReader struct {
	estimate    uint64
	estimateErr error

	callErr error

	feeData *common.FeeData
	feeErr  error

	nonce    uint64
	nonceErr error

	tx        *common.Transaction
	txPending bool
	txErr     error

	receipt    *types.Receipt
	receiptErr error

	symbols     map[string]string
	symbolErr   map[string]error
	decimals    map[string]uint64
	decimalsErr map[string]error

	balances   map[string]*big.Int
	balanceErr map[string]error

	currentBlock    uint64
	currentBlockErr error

	outgoing    map[string][]types.Log
	incoming    map[string][]types.Log
	transferErr map[string]error

	estimateCalls int
}

func (f *fakeReader) EstimateGas(ctx context.Context, from, to string, gasPrice, value *big.Int, data []byte) (uint64, error) {
	f.estimateCalls++
	return f.estimate, f.estimateErr
}

func (f *fakeReader) CallContract(ctx context.Context, from, to string, value *big.Int, gas uint64, data []byte) ([]byte, error) {
	return []byte{}, f.callErr
}

func (f *fakeReader) FeeData(ctx context.Context) (*common.FeeData, error) {
	if f.feeErr != nil {
		return nil, f.feeErr
	}
	if f.feeData == nil {
		return &common.FeeData{GasPrice: big.NewInt(30000000000)}, nil
	}
	return f.feeData, nil
}

func (f *fakeReader) GetPendingNonce(ctx context.Context, address string) (uint64, error) {
	return f.nonce, f.nonceErr
}

func (f *fakeReader) TransactionByHash(ctx context.Context, txHash string) (*common.Transaction, bool, error) {
	return f.tx, f.txPending, f.txErr
}

func (f *fakeReader) TransactionReceipt(ctx context.Context, txHash string) (*types.Receipt, error) {
	return f.receipt, f.receiptErr
}

func (f *fakeReader) ERC20Symbol(ctx context.Context, caddr string) (string, error) {
	if err := f.symbolErr[caddr]; err != nil {
		return "", err
	}
	return f.symbols[caddr], nil
}

func (f *fakeReader) ERC20Decimals(ctx context.Context, caddr string) (uint64, error) {
	if err := f.decimalsErr[caddr]; err != nil {
		return 0, err
	}
	if d, found := f.decimals[caddr]; found {
		return d, nil
	}
	return 18, nil
}

func (f *fakeReader) ERC20Balance(ctx context.Context, caddr, user string) (*big.Int, error) {
	if err := f.balanceErr[caddr]; err != nil {
		return nil, err
	}
	if b, found := f.balances[caddr]; found {
		return b, nil
	}
	return big.NewInt(0), nil
}

func (f *fakeReader) CurrentBlock(ctx context.Context) (uint64, error) {
	return f.currentBlock, f.currentBlockErr
}

func (f *fakeReader) TransferLogs(ctx context.Context, token string, fromBlock, toBlock int64, from, to *ethcommon.Address) ([]types.Log, error) {
	if err := f.transferErr[token]; err != nil {
		return nil, err
	}
	if from != nil {
		return f.outgoing[token], nil
	}
	return f.incoming[token], nil
}

type fakeSigner struct {
	address string
}

func (f *fakeSigner) IsConnected(network string) bool {
	return f.address != ""
}

func (f *fakeSigner) Address(network string) (string, error) {
	return f.address, nil
}

func transferLog(amount *big.Int) types.Log {
	return types.Log{Data: ethcommon.LeftPadBytes(amount.Bytes(), 32)}
}
