package config

// Flag-bound settings shared across commands.
var (
	Network    string
	NodeURL    string
	TokensFile string
	Wallet     string
	Verbose    bool

	From     string
	To       string
	Value    string
	Data     string
	GasLimit uint64

	FromBlock string
	ToBlock   string
	Current   bool
)
