// Package wallet provides the signer context the simulator consults for the
// "currently connected" address. It is an explicit object handed to
// consumers at construction, never ambient process state, so two simulators
// can run against different identities in the same process.
//
// Key handling and signing live outside this codebase entirely; the context
// only answers which address is connected on which network.
package wallet

import (
	"sync"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/Dbillionaer/polygonmcp/common"
)

type Context struct {
	mu        sync.RWMutex
	addresses map[string]string // network name -> checksummed address
}

func NewContext() *Context {
	return &Context{addresses: map[string]string{}}
}

// Connect records addr as the connected identity on the named network.
func (c *Context) Connect(network, addr string) error {
	if !ethcommon.IsHexAddress(addr) {
		return common.NewInvalidAddressError(addr)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.addresses[network] = ethcommon.HexToAddress(addr).Hex()
	return nil
}

func (c *Context) Disconnect(network string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.addresses, network)
}

func (c *Context) IsConnected(network string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, found := c.addresses[network]
	return found
}

func (c *Context) Address(network string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	addr, found := c.addresses[network]
	if !found {
		return "", common.NewInvalidParameterError(
			"network", network, "no wallet connected",
		)
	}
	return addr, nil
}
