// Package tokens holds the configured token registry: the mapping from
// human-readable token symbols to on-chain ERC-20 contract addresses that the
// simulator tracks.
//
// The registry is immutable after construction. Callers either resolve a
// known symbol or pass a raw address through; anything else is a typed
// parameter error.
package tokens

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/Dbillionaer/polygonmcp/common"
)

type Registry struct {
	addresses map[string]string // upper-cased symbol -> checksummed address
}

func NewRegistry(book map[string]string) (*Registry, error) {
	addresses := map[string]string{}
	for symbol, addr := range book {
		if !ethcommon.IsHexAddress(addr) {
			return nil, common.NewInvalidAddressError(addr)
		}
		addresses[strings.ToUpper(symbol)] = ethcommon.HexToAddress(addr).Hex()
	}
	return &Registry{addresses: addresses}, nil
}

// NewRegistryFromFile reads a symbol -> address JSON object, the same shape
// the default book has.
func NewRegistryFromFile(path string) (*Registry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	book := map[string]string{}
	if err := json.Unmarshal(content, &book); err != nil {
		return nil, err
	}
	return NewRegistry(book)
}

// Resolve accepts a known symbol or a raw hex address and returns the
// canonical checksummed address.
func (r *Registry) Resolve(symbolOrAddress string) (string, error) {
	if ethcommon.IsHexAddress(symbolOrAddress) {
		return ethcommon.HexToAddress(symbolOrAddress).Hex(), nil
	}
	if addr, found := r.addresses[strings.ToUpper(symbolOrAddress)]; found {
		return addr, nil
	}
	return "", common.NewInvalidParameterError(
		"token", symbolOrAddress, "neither a known symbol nor an address",
	)
}

func (r *Registry) Address(symbol string) (string, bool) {
	addr, found := r.addresses[strings.ToUpper(symbol)]
	return addr, found
}

func (r *Registry) Symbols() []string {
	result := make([]string, 0, len(r.addresses))
	for symbol := range r.addresses {
		result = append(result, symbol)
	}
	sort.Strings(result)
	return result
}

func (r *Registry) Len() int {
	return len(r.addresses)
}
