package utils

import (
	"math/big"
	"strings"
)

// AmountFromRaw converts a raw integer amount in the smallest unit to a
// human-readable float64, dividing by 10^decimals.
// Example: raw=1000000000000000000, decimals=18 => 1.0
func AmountFromRaw(raw *big.Int, decimals uint8) float64 {
	if raw == nil {
		return 0
	}
	amountFloat := new(big.Float).SetInt(raw)
	divisor := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	value, _ := new(big.Float).Quo(amountFloat, divisor).Float64()
	return value
}

// FormatBigInt converts a raw amount to a human-readable decimal string,
// trimming trailing zeros.
// Example: amount=1234500000000000000, decimals=18 => "1.2345"
func FormatBigInt(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	if decimals == 0 {
		return amount.String()
	}

	amountFloat := new(big.Float).SetInt(amount)
	divisor := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	value := new(big.Float).Quo(amountFloat, divisor)

	formatted := value.Text('f', int(decimals))
	if strings.Contains(formatted, ".") {
		formatted = strings.TrimRight(formatted, "0")
		formatted = strings.TrimRight(formatted, ".")
	}
	if formatted == "" || formatted == "-" {
		return "0"
	}
	if strings.HasPrefix(formatted, ".") {
		formatted = "0" + formatted
	}
	return formatted
}
