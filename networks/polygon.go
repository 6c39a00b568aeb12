package networks

import (
	"os"
	"strings"
	"time"
)

var PolygonMainnet Network = polygonMainnet{}

type polygonMainnet struct{}

func (n polygonMainnet) GetName() string {
	return "polygon"
}

func (n polygonMainnet) GetChainID() int64 {
	return 137
}

func (n polygonMainnet) GetAlternativeNames() []string {
	return []string{"matic", "polygon-mainnet"}
}

func (n polygonMainnet) GetNativeTokenSymbol() string {
	return "POL"
}

func (n polygonMainnet) GetNativeTokenDecimal() int64 {
	return 18
}

func (n polygonMainnet) GetBlockTime() time.Duration {
	return 2 * time.Second
}

func (n polygonMainnet) GetNodeVariableName() string {
	return "POLYGON_MAINNET_NODE"
}

func (n polygonMainnet) GetDefaultNodes() map[string]string {
	if node := strings.Trim(os.Getenv(n.GetNodeVariableName()), " "); node != "" {
		return map[string]string{"custom": node}
	}
	return map[string]string{
		"polygon-rpc": "https://polygon-rpc.com",
		"llamarpc":    "https://polygon.llamarpc.com",
	}
}
