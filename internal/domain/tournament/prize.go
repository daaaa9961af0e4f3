package tournament

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePrizePool converts a decimal amount such as "2500", "2,500.5" or "1000.75"
// to cents. Blank input means no prize pool.
func ParsePrizePool(raw string) (*int64, error) {
	value := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if value == "" {
		return nil, nil
	}
	if strings.HasPrefix(value, "-") {
		return nil, fmt.Errorf("prize pool must not be negative")
	}

	whole, frac, hasFrac := strings.Cut(value, ".")
	if whole == "" {
		whole = "0"
	}
	if hasFrac && (frac == "" || len(frac) > 2) {
		return nil, fmt.Errorf("prize pool %q must have at most two decimal places", raw)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse prize pool %q: %w", raw, err)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse prize pool %q: %w", raw, err)
	}
	if units > (1<<63-1-cents)/100 {
		return nil, fmt.Errorf("prize pool %q is too large", raw)
	}

	total := units*100 + cents
	return &total, nil
}

// FormatPrizePool renders cents back as a decimal string with two places.
func FormatPrizePool(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
