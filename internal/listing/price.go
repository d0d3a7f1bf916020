package listing

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Price keeps the display string of a listing price together with its parsed
// amount. The amount is parsed once, when the price is created or decoded.
type Price struct {
	display string
	amount  int64
	valid   bool
}

// ParsePrice parses a currency display string such as "$650,000".
func ParsePrice(display string) (Price, error) {
	p := Price{display: display}
	amount, err := parseAmount(display)
	if err != nil {
		return p, err
	}
	p.amount = amount
	p.valid = true
	return p, nil
}

// NewPrice builds a price from an amount, formatted as "$1,250,000".
func NewPrice(amount int64) Price {
	return Price{
		display: FormatAmount(amount),
		amount:  amount,
		valid:   true,
	}
}

// Amount returns the parsed amount. ok is false when the display string did
// not parse as a whole number of currency units.
func (p Price) Amount() (amount int64, ok bool) {
	return p.amount, p.valid
}

func (p Price) String() string {
	return p.display
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.display)
}

// UnmarshalJSON accepts the display string form and, for model output that
// drops the quotes, a bare integer. An unparsable string is kept as-is and
// reported by Validate.
func (p *Price) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, _ := ParsePrice(s)
		*p = parsed
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("price must be a string or an integer: %w", err)
	}
	*p = NewPrice(n)
	return nil
}

func parseAmount(display string) (int64, error) {
	cleaned := strings.TrimSpace(display)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, fmt.Errorf("empty price %q", display)
	}

	amount, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unparsable price %q: %w", display, err)
	}
	return amount, nil
}

// FormatAmount renders an amount with a dollar sign and thousands separators.
func FormatAmount(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + "$" + b.String()
}
