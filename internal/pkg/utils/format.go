package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatUSDMillions renders a dollar amount in millions with one decimal.
// Example: 141200000 => "$141.2M"
func FormatUSDMillions(usd uint64) string {
	return fmt.Sprintf("$%.1fM", float64(usd)/1e6)
}

// FormatBasisPoints renders basis points as a percentage with two decimals.
// Example: 849 => "8.49%"
func FormatBasisPoints(bp uint64) string {
	return fmt.Sprintf("%d.%02d%%", bp/100, bp%100)
}

// FormatChange renders a signed percentage change. Zero counts as positive.
// Example: -2.1 => "-2.10%"
func FormatChange(change float64) string {
	if change >= 0 {
		return fmt.Sprintf("+%.2f%%", change)
	}
	return fmt.Sprintf("%.2f%%", change)
}

// ParseUSDDisplay parses display amounts such as "$45.2M", "$12,450" or "$2.1K".
func ParseUSDDisplay(s string) (uint64, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, "$")
	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" {
		return 0, fmt.Errorf("empty amount %q", s)
	}

	mult := 1.0
	switch raw[len(raw)-1] {
	case 'K', 'k':
		mult = 1e3
	case 'M', 'm':
		mult = 1e6
	case 'B', 'b':
		mult = 1e9
	}
	if mult != 1 {
		raw = raw[:len(raw)-1]
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return uint64(math.Round(f * mult)), nil
}

// ParsePercentBasisPoints converts "12.34%" to 1234.
func ParsePercentBasisPoints(s string) (uint64, error) {
	raw := strings.TrimSuffix(strings.TrimSpace(s), "%")
	f, err := strconv.ParseFloat(strings.TrimPrefix(raw, "+"), 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("invalid percentage %q", s)
	}
	return uint64(math.Round(f * 100)), nil
}

// ParseUint64List parses a comma separated list such as "0,1,2". Blank items
// are ignored and duplicates removed, keeping first-seen order.
func ParseUint64List(s string) ([]uint64, error) {
	var out []uint64
	seen := make(map[uint64]struct{})
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", part, err)
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}
