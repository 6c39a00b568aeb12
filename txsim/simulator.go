// Package txsim is the transaction simulation and analysis engine: it
// estimates and buffers gas, executes candidate transactions speculatively
// without broadcasting them, decodes the token transfers they would cause,
// analyzes settled transactions, and reconstructs historical token balance
// deltas from Transfer logs.
//
// The package holds no mutable state between calls. Optional enrichment
// steps (token metadata, gas re-estimates, per-token scans) degrade to
// documented defaults instead of failing the whole operation.
package txsim

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"

	"github.com/Dbillionaer/polygonmcp/common"
	"github.com/Dbillionaer/polygonmcp/networks"
	"github.com/Dbillionaer/polygonmcp/tokens"
)

const (
	// DefaultGasLimit is the conservative fallback when estimation fails
	// during simulation.
	DefaultGasLimit uint64 = 300000

	// FallbackGasPriceGwei prices the gas cost report when the request
	// carries no fee fields at all.
	FallbackGasPriceGwei int64 = 50

	TransferTypeERC20 = "ERC20"

	StatusSuccess = "Success"
	StatusFailed  = "Failed"
	StatusPending = "Pending"

	ContractCreationMarker = "Contract Creation"

	revertPrefix = "transaction would revert: "
)

// BufferedGasLimit adds a 20% safety margin to an estimate, floor division,
// so an estimate of E always yields exactly E*120/100.
func BufferedGasLimit(estimate uint64) uint64 {
	return estimate * 120 / 100
}

// ChainReader is the read-only chain RPC surface the simulator consumes.
// *reader.EthReader implements it.
type ChainReader interface {
	EstimateGas(ctx context.Context, from, to string, gasPrice, value *big.Int, data []byte) (uint64, error)
	CallContract(ctx context.Context, from, to string, value *big.Int, gas uint64, data []byte) ([]byte, error)
	FeeData(ctx context.Context) (*common.FeeData, error)
	GetPendingNonce(ctx context.Context, address string) (uint64, error)
	TransactionByHash(ctx context.Context, txHash string) (*common.Transaction, bool, error)
	TransactionReceipt(ctx context.Context, txHash string) (*types.Receipt, error)
	ERC20Symbol(ctx context.Context, caddr string) (string, error)
	ERC20Decimals(ctx context.Context, caddr string) (uint64, error)
	ERC20Balance(ctx context.Context, caddr, user string) (*big.Int, error)
	TransferLogs(ctx context.Context, token string, fromBlock, toBlock int64, from, to *ethcommon.Address) ([]types.Log, error)
	CurrentBlock(ctx context.Context) (uint64, error)
}

// SignerContext answers which address is currently connected on a network.
// *wallet.Context implements it.
type SignerContext interface {
	IsConnected(network string) bool
	Address(network string) (string, error)
}

type Simulator struct {
	reader   ChainReader
	registry *tokens.Registry
	signer   SignerContext
	network  networks.Network
	logger   zerolog.Logger
}

// NewSimulator wires a simulator to its collaborators. signer may be nil when
// no wallet is connected.
func NewSimulator(
	reader ChainReader,
	registry *tokens.Registry,
	signer SignerContext,
	network networks.Network,
	logger zerolog.Logger,
) *Simulator {
	return &Simulator{
		reader:   reader,
		registry: registry,
		signer:   signer,
		network:  network,
		logger:   logger.With().Str("component", "txsim").Logger(),
	}
}

// SimulateTransaction speculatively executes req and reports the outcome. It
// never returns an error: anything the pipeline can't recover from degrades
// to a structurally valid failed result, since callers treat "would fail"
// and "couldn't determine" the same way for display.
func (s *Simulator) SimulateTransaction(ctx context.Context, req *TxRequest) *SimulationResult {
	result, err := s.runSimulation(ctx, req)
	if err != nil {
		s.logger.Warn().Err(err).Msg("simulation aborted, returning failed result")
		failed := NewSimulationResult()
		failed.Success = false
		failed.ErrorMessage = err.Error()
		failed.GasUsed = "0"
		failed.GasCost = newGasCost(big.NewInt(0))
		return failed
	}
	return result
}

func (s *Simulator) runSimulation(ctx context.Context, req *TxRequest) (*SimulationResult, error) {
	tx := req.Clone()
	if err := validateRequest(tx); err != nil {
		return nil, err
	}
	s.fillSender(tx)

	result := NewSimulationResult()

	// gas limit pre-fill; estimation failure is not fatal here
	if tx.GasLimit == 0 {
		estimate, err := s.reader.EstimateGas(ctx, tx.From, tx.To, tx.GasPrice, tx.Value, tx.Data)
		if err != nil {
			s.logger.Warn().Err(err).
				Uint64("fallback", DefaultGasLimit).
				Msg("gas estimation failed, using default gas limit")
			tx.GasLimit = DefaultGasLimit
		} else {
			tx.GasLimit = BufferedGasLimit(estimate)
		}
	}

	if tx.GasPrice == nil && tx.MaxFeePerGas == nil && tx.MaxPriorityFeePerGas == nil {
		feeData, err := s.reader.FeeData(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("couldn't fetch fee data")
		} else if feeData.MaxFeePerGas != nil {
			tx.MaxFeePerGas = feeData.MaxFeePerGas
			tx.MaxPriorityFeePerGas = feeData.MaxPriorityFeePerGas
		} else {
			tx.GasPrice = feeData.GasPrice
		}
	}

	// speculative read-only call at the latest block
	if _, err := s.reader.CallContract(ctx, tx.From, tx.To, tx.Value, tx.GasLimit, tx.Data); err != nil {
		result.Success = false
		result.ErrorMessage = err.Error()
		if looksLikeRevert(err) {
			result.ErrorMessage = revertPrefix + result.ErrorMessage
		}
	} else {
		result.Success = true
	}

	// independent re-estimate for the gas usage report
	gasUsed := tx.GasLimit
	if estimate, err := s.reader.EstimateGas(ctx, tx.From, tx.To, tx.GasPrice, tx.Value, tx.Data); err != nil {
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("gas estimation failed: %s", err)
		}
	} else {
		gasUsed = estimate
	}
	result.GasUsed = fmt.Sprintf("%d", gasUsed)

	s.DetectTokenTransfers(ctx, tx, result)

	if tx.To == "" && len(tx.Data) > 0 {
		result.ContractInteractions = append(
			result.ContractInteractions,
			s.predictCreation(ctx, tx),
		)
	}

	result.GasCost = newGasCost(big.NewInt(0).Mul(
		big.NewInt(0).SetUint64(gasUsed),
		s.effectiveGasPrice(tx),
	))
	return result, nil
}

func validateRequest(tx *TxRequest) error {
	if tx.From != "" && !ethcommon.IsHexAddress(tx.From) {
		return common.NewInvalidAddressError(tx.From)
	}
	if tx.To != "" && !ethcommon.IsHexAddress(tx.To) {
		return common.NewInvalidAddressError(tx.To)
	}
	return nil
}

func (s *Simulator) fillSender(tx *TxRequest) {
	if tx.From != "" || s.signer == nil {
		return
	}
	name := s.network.GetName()
	if !s.signer.IsConnected(name) {
		return
	}
	from, err := s.signer.Address(name)
	if err != nil {
		s.logger.Warn().Err(err).Msg("couldn't read connected wallet address")
		return
	}
	tx.From = from
}

func looksLikeRevert(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "revert")
}

func (s *Simulator) effectiveGasPrice(tx *TxRequest) *big.Int {
	if tx.GasPrice != nil {
		return tx.GasPrice
	}
	if tx.MaxFeePerGas != nil {
		return tx.MaxFeePerGas
	}
	return common.GweiToWei(FallbackGasPriceGwei)
}

const maxBytecodeDisplay = 130 // "0x" + 64 bytes

func truncateBytecode(data []byte) string {
	bytecode := "0x" + ethcommon.Bytes2Hex(data)
	if len(bytecode) > maxBytecodeDisplay {
		return bytecode[:maxBytecodeDisplay] + "..."
	}
	return bytecode
}

// predictCreation reports the contract a creation transaction would deploy.
// The estimated address is a heuristic over chain id, sender and pending
// nonce, not the canonical CREATE derivation keccak256(rlp(sender, nonce)).
// Treat it as a display-level estimate only.
func (s *Simulator) predictCreation(ctx context.Context, tx *TxRequest) ContractInteraction {
	interaction := ContractInteraction{
		Type:            "creation",
		Bytecode:        truncateBytecode(tx.Data),
		ConstructorArgs: "not decoded",
	}
	nonce, err := s.reader.GetPendingNonce(ctx, tx.From)
	if err != nil {
		s.logger.Warn().Err(err).Msg("couldn't fetch nonce for creation address estimate")
		return interaction
	}
	seed := fmt.Sprintf("%d:%s:%d", s.network.GetChainID(), strings.ToLower(tx.From), nonce)
	hash := crypto.Keccak256([]byte(seed))
	interaction.EstimatedAddress = ethcommon.BytesToAddress(hash[12:]).Hex()
	return interaction
}

// AnalyzeTransaction resolves a historical transaction hash into a settled
// analysis. A missing receipt leaves the receipt-dependent fields at their
// Pending markers rather than failing.
func (s *Simulator) AnalyzeTransaction(ctx context.Context, txHash string) (*TxAnalysis, error) {
	tx, isPending, err := s.reader.TransactionByHash(ctx, txHash)
	if err != nil {
		return nil, common.NewTxAnalysisError(txHash, err)
	}

	value := tx.Value()
	gasPrice := tx.GasPrice()
	analysis := &TxAnalysis{
		Hash: tx.Hash().Hex(),
		To:   ContractCreationMarker,
		Value: NativeValue{
			Wei:   value.String(),
			Ether: common.BigToDecimalString(value, 18),
		},
		GasPrice: GasPriceValue{
			Wei:  gasPrice.String(),
			Gwei: common.BigToDecimalString(gasPrice, 9),
		},
		Status:      StatusPending,
		GasUsed:     StatusPending,
		BlockNumber: StatusPending,
	}
	if tx.Extra.From != nil {
		analysis.From = tx.Extra.From.Hex()
	}
	if to := tx.To(); to != nil {
		analysis.To = to.Hex()
	}
	if isPending {
		return analysis, nil
	}

	receipt, err := s.reader.TransactionReceipt(ctx, txHash)
	if err != nil {
		s.logger.Warn().Err(err).Str("tx", txHash).Msg("couldn't fetch receipt")
		return analysis, nil
	}
	if receipt == nil {
		return analysis, nil
	}

	if receipt.Status == types.ReceiptStatusSuccessful {
		analysis.Status = StatusSuccess
	} else {
		analysis.Status = StatusFailed
	}
	analysis.GasUsed = fmt.Sprintf("%d", receipt.GasUsed)
	if receipt.BlockNumber != nil {
		analysis.BlockNumber = receipt.BlockNumber.String()
	}
	analysis.Logs = len(receipt.Logs)

	price := gasPrice
	if receipt.EffectiveGasPrice != nil {
		price = receipt.EffectiveGasPrice
	}
	cost := newGasCost(big.NewInt(0).Mul(
		big.NewInt(0).SetUint64(receipt.GasUsed),
		price,
	))
	analysis.GasCost = &cost
	return analysis, nil
}

// EstimateGas returns the network's gas estimate plus a 20%-buffered
// recommended limit. Unlike simulation there is no fallback use case here, so
// an estimation failure is a hard typed error carrying the cause.
func (s *Simulator) EstimateGas(ctx context.Context, req *TxRequest) (*GasEstimate, error) {
	tx := req.Clone()
	if err := validateRequest(tx); err != nil {
		return nil, err
	}
	s.fillSender(tx)

	estimate, err := s.reader.EstimateGas(ctx, tx.From, tx.To, tx.GasPrice, tx.Value, tx.Data)
	if err != nil {
		return nil, common.NewGasEstimationError(err, map[string]any{
			"from": tx.From,
			"to":   tx.To,
		})
	}
	gasLimit := tx.GasLimit
	if gasLimit == 0 {
		gasLimit = estimate
	}
	return &GasEstimate{
		GasEstimate:         estimate,
		GasLimit:            gasLimit,
		RecommendedGasLimit: BufferedGasLimit(estimate),
	}, nil
}

// tokenMetadata fetches a token's symbol and decimals concurrently. Each
// lookup degrades independently: a token without symbol() still reports its
// decimals and vice versa.
func (s *Simulator) tokenMetadata(ctx context.Context, token string) (string, uint64) {
	symbol := "Unknown"
	decimals := uint64(18)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if result, err := s.reader.ERC20Symbol(ctx, token); err != nil {
			s.logger.Warn().Err(err).Str("token", token).Msg("symbol lookup failed")
		} else {
			symbol = result
		}
	}()
	go func() {
		defer wg.Done()
		if result, err := s.reader.ERC20Decimals(ctx, token); err != nil {
			s.logger.Warn().Err(err).Str("token", token).Msg("decimals lookup failed")
		} else {
			decimals = result
		}
	}()
	wg.Wait()
	return symbol, decimals
}
