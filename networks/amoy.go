package networks

import (
	"os"
	"strings"
	"time"
)

var PolygonAmoy Network = polygonAmoy{}

type polygonAmoy struct{}

func (n polygonAmoy) GetName() string {
	return "amoy"
}

func (n polygonAmoy) GetChainID() int64 {
	return 80002
}

func (n polygonAmoy) GetAlternativeNames() []string {
	return []string{"polygon-amoy", "polygon-testnet"}
}

func (n polygonAmoy) GetNativeTokenSymbol() string {
	return "POL"
}

func (n polygonAmoy) GetNativeTokenDecimal() int64 {
	return 18
}

func (n polygonAmoy) GetBlockTime() time.Duration {
	return 2 * time.Second
}

func (n polygonAmoy) GetNodeVariableName() string {
	return "POLYGON_AMOY_NODE"
}

func (n polygonAmoy) GetDefaultNodes() map[string]string {
	if node := strings.Trim(os.Getenv(n.GetNodeVariableName()), " "); node != "" {
		return map[string]string{"custom": node}
	}
	return map[string]string{
		"amoy-rpc": "https://rpc-amoy.polygon.technology",
	}
}
