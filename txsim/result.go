package txsim

import (
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/Dbillionaer/polygonmcp/common"
)

// TxRequest is a caller-constructed candidate transaction. Optional fields
// stay zero; the simulator fills them on its own copy, never on the caller's
// struct.
type TxRequest struct {
	From                 string   `json:"from,omitempty"`
	To                   string   `json:"to,omitempty"`
	Value                *big.Int `json:"value,omitempty"`
	Data                 []byte   `json:"data,omitempty"`
	GasLimit             uint64   `json:"gasLimit,omitempty"`
	GasPrice             *big.Int `json:"gasPrice,omitempty"`
	MaxFeePerGas         *big.Int `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *big.Int `json:"maxPriorityFeePerGas,omitempty"`
}

func copyBig(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return big.NewInt(0).Set(v)
}

// Clone copies the request deeply enough that the simulator's fills never
// alias back into the caller's struct.
func (r *TxRequest) Clone() *TxRequest {
	c := *r
	c.Data = append([]byte(nil), r.Data...)
	c.Value = copyBig(r.Value)
	c.GasPrice = copyBig(r.GasPrice)
	c.MaxFeePerGas = copyBig(r.MaxFeePerGas)
	c.MaxPriorityFeePerGas = copyBig(r.MaxPriorityFeePerGas)
	return &c
}

// GasCost expresses one wei amount in the three denominations tool callers
// render.
type GasCost struct {
	Wei   string `json:"wei"`
	Gwei  string `json:"gwei"`
	Ether string `json:"ether"`
}

func newGasCost(wei *big.Int) GasCost {
	return GasCost{
		Wei:   wei.String(),
		Gwei:  common.BigToDecimalString(wei, 9),
		Ether: common.BigToDecimalString(wei, 18),
	}
}

type TokenTransfer struct {
	Token     string `json:"token"`
	Symbol    string `json:"symbol"`
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    string `json:"amount"`
	RawAmount string `json:"rawAmount"`
	Type      string `json:"type"`
}

// ContractInteraction is discriminated by Type; "creation" is the only
// populated variant.
type ContractInteraction struct {
	Type             string `json:"type"`
	Bytecode         string `json:"bytecode,omitempty"`
	EstimatedAddress string `json:"estimatedAddress,omitempty"`
	ConstructorArgs  string `json:"constructorArgs,omitempty"`
}

type SimulationResult struct {
	Success              bool                  `json:"success"`
	GasUsed              string                `json:"gasUsed"`
	GasCost              GasCost               `json:"gasCost"`
	Logs                 []types.Log           `json:"logs"`
	TokenTransfers       []TokenTransfer       `json:"tokenTransfers"`
	ContractInteractions []ContractInteraction `json:"contractInteractions"`
	ErrorMessage         string                `json:"errorMessage,omitempty"`
}

func NewSimulationResult() *SimulationResult {
	return &SimulationResult{
		Logs:                 []types.Log{},
		TokenTransfers:       []TokenTransfer{},
		ContractInteractions: []ContractInteraction{},
	}
}

type NativeValue struct {
	Wei   string `json:"wei"`
	Ether string `json:"ether"`
}

type GasPriceValue struct {
	Wei  string `json:"wei"`
	Gwei string `json:"gwei"`
}

// TxAnalysis describes a settled (or still pending) on-chain transaction.
// Receipt-dependent fields hold the Pending marker until the transaction is
// mined.
type TxAnalysis struct {
	Hash        string        `json:"hash"`
	From        string        `json:"from"`
	To          string        `json:"to"`
	Value       NativeValue   `json:"value"`
	GasUsed     string        `json:"gasUsed"`
	GasPrice    GasPriceValue `json:"gasPrice"`
	Status      string        `json:"status"`
	BlockNumber string        `json:"blockNumber"`
	Logs        int           `json:"logs"`
	GasCost     *GasCost      `json:"gasCost,omitempty"`
}

type GasEstimate struct {
	GasEstimate         uint64 `json:"gasEstimate"`
	GasLimit            uint64 `json:"gasLimit"`
	RecommendedGasLimit uint64 `json:"recommendedGasLimit"`
}

type TransferEventCounts struct {
	Outgoing int `json:"outgoing"`
	Incoming int `json:"incoming"`
}

// TokenBalanceChange is one tracked token's net movement for an address over
// a block range. Change is a signed decimal string scaled by the token's
// decimals; RawChange keeps the exact signed integer for precision-sensitive
// consumers.
type TokenBalanceChange struct {
	Token      string              `json:"token"`
	Symbol     string              `json:"symbol"`
	Change     string              `json:"change"`
	RawChange  string              `json:"rawChange"`
	ChangeType string              `json:"changeType"`
	FromBlock  string              `json:"fromBlock"`
	ToBlock    string              `json:"toBlock"`
	Events     TransferEventCounts `json:"events"`
}

// TokenBalance is one tracked token's current holdings.
type TokenBalance struct {
	Token      string `json:"token"`
	Symbol     string `json:"symbol"`
	Balance    string `json:"balance"`
	RawBalance string `json:"rawBalance"`
}

type CurrentBalanceReport struct {
	Address  string         `json:"address"`
	Block    string         `json:"block"`
	Balances []TokenBalance `json:"balances"`
}

type BalanceChangeReport struct {
	Address   string               `json:"address"`
	FromBlock string               `json:"fromBlock"`
	ToBlock   string               `json:"toBlock"`
	Changes   []TokenBalanceChange `json:"changes"`
}
