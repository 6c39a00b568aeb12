package reader

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/Dbillionaer/polygonmcp/common"
	"github.com/Dbillionaer/polygonmcp/networks"
)

var DEFAULT_ADDRESS string = "0x0000000000000000000000000000000000000000"

// EthReader reads from a set of RPC nodes at once: every query is sent to all
// nodes concurrently and the first success wins. It only fails when all nodes
// fail, returning the joined per-node errors.
type EthReader struct {
	nodes map[string]EthereumNode
}

func NewEthReaderGeneric(nodes map[string]string) *EthReader {
	ns := map[string]EthereumNode{}
	for name, c := range nodes {
		ns[name] = NewOneNodeReader(name, c)
	}
	return &EthReader{nodes: ns}
}

// NewEthReader builds a reader for the given network using its default nodes
// (or the node override env var when set).
func NewEthReader(network networks.Network) *EthReader {
	return NewEthReaderGeneric(network.GetDefaultNodes())
}

func wrapError(e error, name string) error {
	if e == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, e)
}

type nodeResult[T any] struct {
	result T
	err    error
}

// broadcast runs fn against every node concurrently and returns the first
// successful result.
func broadcast[T any](nodes map[string]EthereumNode, fn func(n EthereumNode) (T, error)) (T, error) {
	resCh := make(chan nodeResult[T], len(nodes))
	for i := range nodes {
		n := nodes[i]
		go func() {
			res, err := fn(n)
			resCh <- nodeResult[T]{result: res, err: wrapError(err, n.NodeName())}
		}()
	}
	errs := []error{}
	for i := 0; i < len(nodes); i++ {
		r := <-resCh
		if r.err == nil {
			return r.result, nil
		}
		errs = append(errs, r.err)
	}
	var zero T
	return zero, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

func (er *EthReader) EstimateGas(
	ctx context.Context,
	from, to string,
	gasPrice, value *big.Int,
	data []byte,
) (uint64, error) {
	return broadcast(er.nodes, func(n EthereumNode) (uint64, error) {
		return n.EstimateGas(ctx, from, to, gasPrice, value, data)
	})
}

func (er *EthReader) CallContract(
	ctx context.Context,
	from, to string,
	value *big.Int,
	gas uint64,
	data []byte,
) ([]byte, error) {
	return broadcast(er.nodes, func(n EthereumNode) ([]byte, error) {
		return n.CallContract(ctx, from, to, value, gas, data)
	})
}

func (er *EthReader) GetPendingNonce(ctx context.Context, address string) (uint64, error) {
	return broadcast(er.nodes, func(n EthereumNode) (uint64, error) {
		return n.GetPendingNonce(ctx, address)
	})
}

func (er *EthReader) TransactionReceipt(ctx context.Context, txHash string) (*types.Receipt, error) {
	return broadcast(er.nodes, func(n EthereumNode) (*types.Receipt, error) {
		return n.TransactionReceipt(ctx, txHash)
	})
}

type txByHash struct {
	Tx        *common.Transaction
	IsPending bool
}

func (er *EthReader) TransactionByHash(
	ctx context.Context,
	txHash string,
) (tx *common.Transaction, isPending bool, err error) {
	res, err := broadcast(er.nodes, func(n EthereumNode) (txByHash, error) {
		tx, isPending, err := n.TransactionByHash(ctx, txHash)
		return txByHash{Tx: tx, IsPending: isPending}, err
	})
	return res.Tx, res.IsPending, err
}

func (er *EthReader) SuggestedGasPrice(ctx context.Context) (*big.Int, error) {
	return broadcast(er.nodes, func(n EthereumNode) (*big.Int, error) {
		return n.SuggestedGasPrice(ctx)
	})
}

func (er *EthReader) SuggestedGasTipCap(ctx context.Context) (*big.Int, error) {
	return broadcast(er.nodes, func(n EthereumNode) (*big.Int, error) {
		return n.SuggestedGasTipCap(ctx)
	})
}

func (er *EthReader) HeaderByNumber(ctx context.Context, number int64) (*types.Header, error) {
	return broadcast(er.nodes, func(n EthereumNode) (*types.Header, error) {
		return n.HeaderByNumber(ctx, number)
	})
}

func (er *EthReader) GetLogs(
	ctx context.Context,
	fromBlock, toBlock int64,
	addresses []string,
	topics [][]ethcommon.Hash,
) ([]types.Log, error) {
	return broadcast(er.nodes, func(n EthereumNode) ([]types.Log, error) {
		return n.GetLogs(ctx, fromBlock, toBlock, addresses, topics)
	})
}

func (er *EthReader) CurrentBlock(ctx context.Context) (uint64, error) {
	return broadcast(er.nodes, func(n EthereumNode) (uint64, error) {
		return n.CurrentBlock(ctx)
	})
}

func (er *EthReader) ChainID(ctx context.Context) (*big.Int, error) {
	return broadcast(er.nodes, func(n EthereumNode) (*big.Int, error) {
		return n.ChainID(ctx)
	})
}

func (er *EthReader) ReadContractToBytes(
	ctx context.Context,
	atBlock int64,
	from, caddr string,
	abi *abi.ABI,
	method string,
	args ...interface{},
) ([]byte, error) {
	return broadcast(er.nodes, func(n EthereumNode) ([]byte, error) {
		return n.ReadContractToBytes(ctx, atBlock, from, caddr, abi, method, args...)
	})
}

// CheckDynamicFeeTxAvailable detects EIP-1559 support by checking whether the
// latest block carries a base fee. Not bulletproof but good enough in
// practice.
func (er *EthReader) CheckDynamicFeeTxAvailable(ctx context.Context) (bool, error) {
	header, err := er.HeaderByNumber(ctx, -1)
	if err != nil {
		return false, err
	}
	return header.BaseFee != nil && header.BaseFee.Cmp(ethcommon.Big0) > 0, nil
}

// FeeData assembles the network's current fee schedule. On EIP-1559 chains
// the max fee is 2x the current base fee plus the suggested tip, leaving room
// for base fee growth in the next blocks.
func (er *EthReader) FeeData(ctx context.Context) (*common.FeeData, error) {
	header, err := er.HeaderByNumber(ctx, -1)
	if err != nil {
		return nil, err
	}
	gasPrice, err := er.SuggestedGasPrice(ctx)
	if err != nil {
		return nil, err
	}
	result := &common.FeeData{GasPrice: gasPrice}
	if header.BaseFee != nil && header.BaseFee.Cmp(ethcommon.Big0) > 0 {
		tip, err := er.SuggestedGasTipCap(ctx)
		if err != nil {
			return nil, err
		}
		result.MaxPriorityFeePerGas = tip
		result.MaxFeePerGas = big.NewInt(0).Add(
			big.NewInt(0).Mul(header.BaseFee, big.NewInt(2)),
			tip,
		)
	}
	return result, nil
}

func (er *EthReader) readContractWithABI(
	ctx context.Context,
	result interface{},
	caddr string,
	a *abi.ABI,
	method string,
	args ...interface{},
) error {
	responseBytes, err := er.ReadContractToBytes(ctx, -1, DEFAULT_ADDRESS, caddr, a, method, args...)
	if err != nil {
		return err
	}
	return a.UnpackIntoInterface(result, method, responseBytes)
}

func (er *EthReader) ERC20Symbol(ctx context.Context, caddr string) (string, error) {
	var result string
	err := er.readContractWithABI(ctx, &result, caddr, common.GetERC20ABI(), "symbol")
	return result, err
}

func (er *EthReader) ERC20Decimals(ctx context.Context, caddr string) (uint64, error) {
	var result uint8
	err := er.readContractWithABI(ctx, &result, caddr, common.GetERC20ABI(), "decimals")
	return uint64(result), err
}

func (er *EthReader) ERC20Balance(ctx context.Context, caddr, user string) (*big.Int, error) {
	result := big.NewInt(0)
	err := er.readContractWithABI(
		ctx, &result, caddr, common.GetERC20ABI(),
		"balanceOf", common.HexToAddress(user),
	)
	return result, err
}

// TransferLogs returns the token's ERC-20 Transfer logs over
// [fromBlock, toBlock], optionally filtered by the indexed from/to address.
// Negative block bounds mean the latest block.
func (er *EthReader) TransferLogs(
	ctx context.Context,
	token string,
	fromBlock, toBlock int64,
	from, to *ethcommon.Address,
) ([]types.Log, error) {
	topics := [][]ethcommon.Hash{{common.TransferEventTopic()}}
	fromFilter := []ethcommon.Hash{}
	if from != nil {
		fromFilter = append(fromFilter, ethcommon.BytesToHash(from.Bytes()))
	}
	toFilter := []ethcommon.Hash{}
	if to != nil {
		toFilter = append(toFilter, ethcommon.BytesToHash(to.Bytes()))
	}
	topics = append(topics, fromFilter, toFilter)
	return er.GetLogs(ctx, fromBlock, toBlock, []string{token}, topics)
}
