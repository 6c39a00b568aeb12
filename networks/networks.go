package networks

import (
	"fmt"
	"strings"
	"time"
)

type Network interface {
	GetName() string
	GetChainID() int64
	GetAlternativeNames() []string
	GetNativeTokenSymbol() string
	GetNativeTokenDecimal() int64
	GetBlockTime() time.Duration

	// GetNodeVariableName returns the env var users can set to point this
	// network at their own node instead of the defaults.
	GetNodeVariableName() string
	GetDefaultNodes() map[string]string
}

var supportedNetworks = []Network{
	PolygonMainnet,
	PolygonAmoy,
}

func GetSupportedNetworks() []Network {
	return supportedNetworks
}

func GetNetwork(name string) (Network, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, n := range supportedNetworks {
		if n.GetName() == name {
			return n, nil
		}
		for _, alt := range n.GetAlternativeNames() {
			if alt == name {
				return n, nil
			}
		}
	}
	return nil, fmt.Errorf("'%s' is not a supported network", name)
}
