package common

import (
	"fmt"
	"math/big"
	"strings"
)

// BigToFloat converts a big int to float according to its number of decimal digits
// Example:
// - BigToFloat(1100, 3) = 1.1
// - BigToFloat(1100, 2) = 11
// - BigToFloat(1100, 5) = 0.11
func BigToFloat(b *big.Int, decimal uint64) float64 {
	f := new(big.Float).SetInt(b)
	power := new(big.Float).SetInt(new(big.Int).Exp(
		big.NewInt(10), big.NewInt(int64(decimal)), nil,
	))
	res := new(big.Float).Quo(f, power)
	result, _ := res.Float64()
	return result
}

func StringToBigInt(str string) (*big.Int, error) {
	result, success := big.NewInt(0).SetString(str, 10)
	if !success {
		return nil, fmt.Errorf("parsed %s to big int failed", str)
	}
	return result, nil
}

// GweiToWei converts an integer amount of gwei to wei.
func GweiToWei(n int64) *big.Int {
	return big.NewInt(0).Mul(big.NewInt(n), big.NewInt(1000000000))
}

// BigToDecimalString renders an integer on-chain amount as a human decimal
// string scaled by the given decimal count. Trailing zeros are trimmed but at
// least one fractional digit is kept, so 500 * 10^18 at 18 decimals renders
// as "500.0" rather than "500." or "500.000000000000000000". The integer part
// and the sign are exact for any magnitude since no float conversion happens.
func BigToDecimalString(value *big.Int, decimal uint64) string {
	sign := ""
	abs := value
	if value.Sign() < 0 {
		sign = "-"
		abs = big.NewInt(0).Neg(value)
	}
	if decimal == 0 {
		return sign + abs.String() + ".0"
	}
	power := big.NewInt(0).Exp(big.NewInt(10), big.NewInt(int64(decimal)), nil)
	quo, rem := big.NewInt(0).QuoRem(abs, power, big.NewInt(0))
	frac := strings.TrimRight(fmt.Sprintf("%0*s", int(decimal), rem.String()), "0")
	if frac == "" {
		frac = "0"
	}
	return fmt.Sprintf("%s%s.%s", sign, quo.String(), frac)
}
