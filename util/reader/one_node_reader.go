package reader

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/Dbillionaer/polygonmcp/common"
)

// TIMEOUT caps a single node round trip. The caller's context can cancel
// earlier but never extend it.
const TIMEOUT time.Duration = 8 * time.Second

type OneNodeReader struct {
	nodeName  string
	nodeURL   string
	client    *rpc.Client
	ethClient *ethclient.Client
	mu        sync.Mutex
}

func NewOneNodeReader(name, url string) *OneNodeReader {
	return &OneNodeReader{
		nodeName: name,
		nodeURL:  url,
	}
}

func (onr *OneNodeReader) NodeName() string {
	return onr.nodeName
}

func (onr *OneNodeReader) NodeURL() string {
	return onr.nodeURL
}

func (onr *OneNodeReader) initConnection() error {
	onr.mu.Lock()
	defer onr.mu.Unlock()
	if onr.client != nil {
		return nil
	}
	client, err := rpc.Dial(onr.nodeURL)
	if err != nil {
		return fmt.Errorf("couldn't connect to %s: %w", onr.nodeName, err)
	}
	onr.client = client
	onr.ethClient = ethclient.NewClient(client)
	return nil
}

func (onr *OneNodeReader) Client() (*rpc.Client, error) {
	if onr.client != nil {
		return onr.client, nil
	}
	err := onr.initConnection()
	return onr.client, err
}

func (onr *OneNodeReader) EthClient() (*ethclient.Client, error) {
	if onr.ethClient != nil {
		return onr.ethClient, nil
	}
	err := onr.initConnection()
	return onr.ethClient, err
}

func callTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, TIMEOUT)
}

func toAddrPtr(to string) *ethcommon.Address {
	if to == "" {
		return nil
	}
	addr := ethcommon.HexToAddress(to)
	return &addr
}

func (onr *OneNodeReader) EstimateGas(
	ctx context.Context,
	from, to string,
	gasPrice, value *big.Int,
	data []byte,
) (uint64, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return 0, err
	}
	timeout, cancel := callTimeout(ctx)
	defer cancel()
	return ethcli.EstimateGas(timeout, ethereum.CallMsg{
		From:     ethcommon.HexToAddress(from),
		To:       toAddrPtr(to),
		Gas:      0,
		GasPrice: gasPrice,
		Value:    value,
		Data:     data,
	})
}

func (onr *OneNodeReader) CallContract(
	ctx context.Context,
	from, to string,
	value *big.Int,
	gas uint64,
	data []byte,
) ([]byte, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	timeout, cancel := callTimeout(ctx)
	defer cancel()
	return ethcli.CallContract(timeout, ethereum.CallMsg{
		From:  ethcommon.HexToAddress(from),
		To:    toAddrPtr(to),
		Gas:   gas,
		Value: value,
		Data:  data,
	}, nil)
}

func (onr *OneNodeReader) GetPendingNonce(ctx context.Context, address string) (uint64, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return 0, err
	}
	timeout, cancel := callTimeout(ctx)
	defer cancel()
	return ethcli.PendingNonceAt(timeout, ethcommon.HexToAddress(address))
}

func (onr *OneNodeReader) TransactionReceipt(ctx context.Context, txHash string) (*types.Receipt, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	timeout, cancel := callTimeout(ctx)
	defer cancel()
	return ethcli.TransactionReceipt(timeout, ethcommon.HexToHash(txHash))
}

func (onr *OneNodeReader) TransactionByHash(
	ctx context.Context,
	txHash string,
) (tx *common.Transaction, isPending bool, err error) {
	cli, err := onr.Client()
	if err != nil {
		return nil, false, err
	}
	timeout, cancel := callTimeout(ctx)
	defer cancel()
	var json *common.Transaction
	err = cli.CallContext(timeout, &json, "eth_getTransactionByHash", ethcommon.HexToHash(txHash))
	if err != nil {
		return nil, false, err
	} else if json == nil {
		return nil, false, ethereum.NotFound
	}
	return json, json.Extra.BlockNumber == nil, nil
}

func (onr *OneNodeReader) SuggestedGasPrice(ctx context.Context) (*big.Int, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	timeout, cancel := callTimeout(ctx)
	defer cancel()
	return ethcli.SuggestGasPrice(timeout)
}

func (onr *OneNodeReader) SuggestedGasTipCap(ctx context.Context) (*big.Int, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	timeout, cancel := callTimeout(ctx)
	defer cancel()
	return ethcli.SuggestGasTipCap(timeout)
}

func (onr *OneNodeReader) ReadContractToBytes(
	ctx context.Context,
	atBlock int64,
	from, caddr string,
	abi *abi.ABI,
	method string,
	args ...interface{},
) ([]byte, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	contract := ethcommon.HexToAddress(caddr)
	data, err := abi.Pack(method, args...)
	if err != nil {
		return nil, err
	}
	var blockBig *big.Int
	if atBlock > 0 {
		blockBig = big.NewInt(atBlock)
	}
	timeout, cancel := callTimeout(ctx)
	defer cancel()
	return ethcli.CallContract(timeout, ethereum.CallMsg{
		From: ethcommon.HexToAddress(from),
		To:   &contract,
		Data: data,
	}, blockBig)
}

func (onr *OneNodeReader) HeaderByNumber(ctx context.Context, number int64) (*types.Header, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	var numberBig *big.Int
	if number > -1 {
		numberBig = big.NewInt(number)
	}
	timeout, cancel := callTimeout(ctx)
	defer cancel()
	return ethcli.HeaderByNumber(timeout, numberBig)
}

// GetLogs queries logs over [fromBlock, toBlock]. Negative bounds mean the
// latest block.
func (onr *OneNodeReader) GetLogs(
	ctx context.Context,
	fromBlock, toBlock int64,
	addresses []string,
	topics [][]ethcommon.Hash,
) ([]types.Log, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	q := ethereum.FilterQuery{
		Addresses: common.HexToAddresses(addresses),
		Topics:    topics,
	}
	if fromBlock >= 0 {
		q.FromBlock = big.NewInt(fromBlock)
	}
	if toBlock >= 0 {
		q.ToBlock = big.NewInt(toBlock)
	}
	timeout, cancel := callTimeout(ctx)
	defer cancel()
	return ethcli.FilterLogs(timeout, q)
}

func (onr *OneNodeReader) CurrentBlock(ctx context.Context) (uint64, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return 0, err
	}
	timeout, cancel := callTimeout(ctx)
	defer cancel()
	header, err := ethcli.HeaderByNumber(timeout, nil)
	if err != nil {
		return 0, err
	}
	return header.Number.Uint64(), nil
}

func (onr *OneNodeReader) ChainID(ctx context.Context) (*big.Int, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	timeout, cancel := callTimeout(ctx)
	defer cancel()
	return ethcli.ChainID(timeout)
}
