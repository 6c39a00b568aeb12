package txsim

import (
	"context"
	"math/big"
	"strconv"
	"sync"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/sync/errgroup"

	"github.com/Dbillionaer/polygonmcp/common"
)

const (
	ChangeTypeIncrease = "increase"
	ChangeTypeDecrease = "decrease"
)

func parseBlockBound(name, value string) (int64, error) {
	if value == "" || value == "latest" {
		return -1, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 0 {
		return 0, common.NewInvalidParameterError(
			name, value, `must be a non-negative block number or "latest"`,
		)
	}
	return n, nil
}

func blockLabel(n int64) string {
	if n < 0 {
		return "latest"
	}
	return strconv.FormatInt(n, 10)
}

// TokenBalanceChanges reconstructs the address's net balance delta for every
// registry token over [fromBlock, toBlock] from Transfer logs. Bounds default
// to the latest block when empty. Tokens are scanned concurrently; a token
// whose scan fails is skipped with a warning and tokens with zero net
// movement are omitted.
func (s *Simulator) TokenBalanceChanges(
	ctx context.Context,
	address, fromBlock, toBlock string,
) (*BalanceChangeReport, error) {
	if !ethcommon.IsHexAddress(address) {
		return nil, common.NewInvalidAddressError(address)
	}
	from, err := parseBlockBound("fromBlock", fromBlock)
	if err != nil {
		return nil, err
	}
	to, err := parseBlockBound("toBlock", toBlock)
	if err != nil {
		return nil, err
	}

	addr := ethcommon.HexToAddress(address)
	symbols := s.registry.Symbols()
	scanned := make([]*TokenBalanceChange, len(symbols))
	var wg sync.WaitGroup
	for i, symbol := range symbols {
		token, _ := s.registry.Address(symbol)
		wg.Add(1)
		go func(i int, symbol, token string) {
			defer wg.Done()
			scanned[i] = s.scanToken(ctx, symbol, token, addr, from, to)
		}(i, symbol, token)
	}
	wg.Wait()

	report := &BalanceChangeReport{
		Address:   addr.Hex(),
		FromBlock: blockLabel(from),
		ToBlock:   blockLabel(to),
		Changes:   []TokenBalanceChange{},
	}
	for _, change := range scanned {
		if change != nil {
			report.Changes = append(report.Changes, *change)
		}
	}
	return report, nil
}

// scanToken nets one token's Transfer logs for addr. Returns nil when the
// net movement is zero or the scan failed.
func (s *Simulator) scanToken(
	ctx context.Context,
	symbol, token string,
	addr ethcommon.Address,
	fromBlock, toBlock int64,
) *TokenBalanceChange {
	decimals, err := s.reader.ERC20Decimals(ctx, token)
	if err != nil {
		s.logger.Warn().Err(err).Str("token", token).Msg("decimals lookup failed, assuming 18")
		decimals = 18
	}

	// outgoing and incoming are independent filters, query them jointly
	var outgoing, incoming []types.Log
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		outgoing, err = s.reader.TransferLogs(gctx, token, fromBlock, toBlock, &addr, nil)
		return err
	})
	g.Go(func() error {
		var err error
		incoming, err = s.reader.TransferLogs(gctx, token, fromBlock, toBlock, nil, &addr)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn().Err(err).
			Str("token", token).
			Str("symbol", symbol).
			Msg("transfer log scan failed, skipping token")
		return nil
	}

	// exact integer arithmetic throughout, token amounts overflow float64
	net := big.NewInt(0)
	for _, l := range outgoing {
		net.Sub(net, transferAmount(l))
	}
	for _, l := range incoming {
		net.Add(net, transferAmount(l))
	}
	if net.Sign() == 0 {
		return nil
	}

	changeType := ChangeTypeIncrease
	if net.Sign() < 0 {
		changeType = ChangeTypeDecrease
	}
	return &TokenBalanceChange{
		Token:      token,
		Symbol:     symbol,
		Change:     common.BigToDecimalString(net, decimals),
		RawChange:  net.String(),
		ChangeType: changeType,
		FromBlock:  blockLabel(fromBlock),
		ToBlock:    blockLabel(toBlock),
		Events: TransferEventCounts{
			Outgoing: len(outgoing),
			Incoming: len(incoming),
		},
	}
}

func transferAmount(l types.Log) *big.Int {
	return big.NewInt(0).SetBytes(l.Data)
}

// CurrentTokenBalances reads the address's present balanceOf for every
// registry token. Zero balances are omitted and a token whose lookup fails is
// skipped with a warning, mirroring the delta scan.
func (s *Simulator) CurrentTokenBalances(
	ctx context.Context,
	address string,
) (*CurrentBalanceReport, error) {
	if !ethcommon.IsHexAddress(address) {
		return nil, common.NewInvalidAddressError(address)
	}
	addr := ethcommon.HexToAddress(address).Hex()

	block := "latest"
	if n, err := s.reader.CurrentBlock(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("couldn't fetch current block number")
	} else {
		block = strconv.FormatUint(n, 10)
	}

	symbols := s.registry.Symbols()
	scanned := make([]*TokenBalance, len(symbols))
	var wg sync.WaitGroup
	for i, symbol := range symbols {
		token, _ := s.registry.Address(symbol)
		wg.Add(1)
		go func(i int, symbol, token string) {
			defer wg.Done()
			scanned[i] = s.readBalance(ctx, symbol, token, addr)
		}(i, symbol, token)
	}
	wg.Wait()

	report := &CurrentBalanceReport{
		Address:  addr,
		Block:    block,
		Balances: []TokenBalance{},
	}
	for _, balance := range scanned {
		if balance != nil {
			report.Balances = append(report.Balances, *balance)
		}
	}
	return report, nil
}

func (s *Simulator) readBalance(ctx context.Context, symbol, token, addr string) *TokenBalance {
	balance, err := s.reader.ERC20Balance(ctx, token, addr)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("token", token).
			Str("symbol", symbol).
			Msg("balance lookup failed, skipping token")
		return nil
	}
	if balance.Sign() == 0 {
		return nil
	}
	decimals, err := s.reader.ERC20Decimals(ctx, token)
	if err != nil {
		s.logger.Warn().Err(err).Str("token", token).Msg("decimals lookup failed, assuming 18")
		decimals = 18
	}
	return &TokenBalance{
		Token:      token,
		Symbol:     symbol,
		Balance:    common.BigToDecimalString(balance, decimals),
		RawBalance: balance.String(),
	}
}
