package reader

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/Dbillionaer/polygonmcp/common"
)

// EthereumNode is a single RPC endpoint. EthReader fans every read out to all
// of its nodes and takes the first success, so implementations must be safe
// for concurrent use. An empty `to` address means contract creation.
type EthereumNode interface {
	NodeName() string
	NodeURL() string
	EstimateGas(
		ctx context.Context,
		from, to string,
		gasPrice, value *big.Int,
		data []byte,
	) (gas uint64, err error)
	CallContract(
		ctx context.Context,
		from, to string,
		value *big.Int,
		gas uint64,
		data []byte,
	) ([]byte, error)
	GetPendingNonce(ctx context.Context, address string) (nonce uint64, err error)
	TransactionReceipt(ctx context.Context, txHash string) (receipt *types.Receipt, err error)
	TransactionByHash(ctx context.Context, txHash string) (tx *common.Transaction, isPending bool, err error)
	SuggestedGasPrice(ctx context.Context) (*big.Int, error)
	SuggestedGasTipCap(ctx context.Context) (*big.Int, error)
	ReadContractToBytes(
		ctx context.Context,
		atBlock int64,
		from, caddr string,
		abi *abi.ABI,
		method string,
		args ...interface{},
	) ([]byte, error)
	HeaderByNumber(ctx context.Context, number int64) (*types.Header, error)
	GetLogs(
		ctx context.Context,
		fromBlock, toBlock int64,
		addresses []string,
		topics [][]ethcommon.Hash,
	) ([]types.Log, error)
	CurrentBlock(ctx context.Context) (uint64, error)
	ChainID(ctx context.Context) (*big.Int, error)
}
