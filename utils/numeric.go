package utils

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// The exchange feed encodes every numeric field as a string, often with
// thousands separators ("1,234") and sometimes empty or "--" for halted
// stocks. A bad field must never fail the row: substitute zero and move on.

func ParseFeedInt64(input string) int64 {
	clean := cleanNumeric(input)
	if clean == "" {
		return 0
	}
	n, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func ParseFeedInt(input string) int {
	return int(ParseFeedInt64(input))
}

func ParseFeedDecimal(input string) decimal.Decimal {
	clean := cleanNumeric(input)
	if clean == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func cleanNumeric(input string) string {
	return strings.TrimSpace(strings.ReplaceAll(input, ",", ""))
}
