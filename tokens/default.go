package tokens

// DefaultPolygonBook is the builtin token book for Polygon PoS mainnet.
// Users can replace it with --tokens <file>.
var DefaultPolygonBook = map[string]string{
	"USDC":   "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359",
	"USDC.E": "0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174",
	"USDT":   "0xc2132D05D31c914a87C6611C10748AEb04B58e8F",
	"DAI":    "0x8f3Cf7ad23Cd3CaDbD9735AFf958023239c6A063",
	"WETH":   "0x7ceB23fD6bC0adD59E62ac25578270cFf1b9f619",
	"WPOL":   "0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270",
	"LINK":   "0x53E0bca35eC356BD5ddDFebbD1Fc0fD03FaBad39",
	"AAVE":   "0xD6DF932A45C0f255f85145f286eA0b292B21C90B",
}

func NewDefaultRegistry() *Registry {
	result, err := NewRegistry(DefaultPolygonBook)
	if err != nil {
		// the builtin book is static, a bad entry is a programming error
		panic(err)
	}
	return result
}
