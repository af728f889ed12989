package wallet

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatBalance turns a raw smallest-unit balance into the display form
// used across the dashboard: four fractional digits plus the symbol,
// e.g. "1.2345 ETH". Returns "" when the balance is unknown or unparsable.
func FormatBalance(rawWei string, decimals int32, symbol string) string {
	if rawWei == "" {
		return ""
	}

	wei, err := decimal.NewFromString(rawWei)
	if err != nil {
		return ""
	}

	return fmt.Sprintf("%s %s", wei.Shift(-decimals).StringFixed(4), symbol)
}
