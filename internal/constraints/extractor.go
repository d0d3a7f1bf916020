package constraints

import (
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// thousandsCutoff separates short numbers read as thousands ("under 500")
// from numbers taken literally.
const thousandsCutoff = 5000

var (
	dollarPattern     = regexp.MustCompile(`\$\s*([\d,]+(?:\.\d+)?)\s*([km]?)\b`)
	groupedPattern    = regexp.MustCompile(`\b(\d{1,3}(?:,\d{3})+)\b`)
	suffixPattern     = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*([km])\b`)
	cuePattern        = regexp.MustCompile(`(?:budget|under|max|up to|<=|less than)\s*\$?\s*(\d{2,})\b`)
	standalonePattern = regexp.MustCompile(`\b(\d{3,4})\b`)
	bedroomPattern    = regexp.MustCompile(`(\d+)\s*-?\s*(?:bedrooms?|beds?)\b`)
)

// Extract parses the budget ceiling and minimum bedroom count from a free
// text query. Both are best-effort.
func Extract(query string) Set {
	return Set{
		Budget:      ExtractBudget(query),
		MinBedrooms: ExtractBedrooms(query),
	}
}

// ExtractBudget tries each budget rule in order and returns the value of the
// first one that matches, or nil.
func ExtractBudget(query string) *int64 {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	lower := strings.ToLower(query)

	if m := dollarPattern.FindStringSubmatch(lower); m != nil {
		value, err := scale(m[1], suffixMultiplier(m[2]))
		if err != nil {
			return nil
		}
		return &value
	}

	if m := groupedPattern.FindStringSubmatch(query); m != nil {
		value, err := scale(m[1], 1)
		if err != nil {
			return nil
		}
		return &value
	}

	if m := suffixPattern.FindStringSubmatch(lower); m != nil {
		value, err := scale(m[1], suffixMultiplier(m[2]))
		if err != nil {
			return nil
		}
		return &value
	}

	if m := cuePattern.FindStringSubmatch(lower); m != nil {
		return shortNumber(m[1])
	}

	if m := standalonePattern.FindStringSubmatch(lower); m != nil {
		return shortNumber(m[1])
	}

	return nil
}

// ExtractBedrooms returns the first "<n> bed/beds/bedroom/bedrooms" count.
func ExtractBedrooms(query string) *int {
	m := bedroomPattern.FindStringSubmatch(strings.ToLower(query))
	if m == nil {
		return nil
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

func suffixMultiplier(suffix string) int64 {
	switch suffix {
	case "k":
		return 1_000
	case "m":
		return 1_000_000
	default:
		return 1
	}
}

// scale multiplies a decimal string by multiplier and floors the result.
// Exact rational arithmetic keeps "1.15m" at 1150000.
func scale(number string, multiplier int64) (int64, error) {
	number = strings.ReplaceAll(number, ",", "")
	if strings.HasPrefix(number, ".") {
		number = "0" + number
	}

	r, ok := new(big.Rat).SetString(number)
	if !ok {
		return 0, fmt.Errorf("not a number: %q", number)
	}
	r.Mul(r, new(big.Rat).SetInt64(multiplier))

	floored := new(big.Int).Quo(r.Num(), r.Denom())
	if !floored.IsInt64() {
		return 0, fmt.Errorf("number out of range: %q", number)
	}
	return floored.Int64(), nil
}

func shortNumber(digits string) *int64 {
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil
	}
	if n < thousandsCutoff {
		n *= 1000
	}
	return &n
}
