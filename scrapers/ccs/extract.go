package ccs

import (
	"fmt"
	"regexp"
)

var (
	itemNamePattern  = regexp.MustCompile(`item_name:\s*"([^"]+)"`)
	itemPricePattern = regexp.MustCompile(`price:\s*([\d.]+)`)
)

// PairingPolicy decides what happens when the page yields a different number
// of names than prices.
type PairingPolicy int

const (
	// PairTruncate pairs up to the shorter sequence and drops the rest.
	PairTruncate PairingPolicy = iota
	// PairStrict refuses to pair sequences of different length.
	PairStrict
)

// ParsePairingPolicy maps a config value onto a policy.
func ParsePairingPolicy(v string) (PairingPolicy, error) {
	switch v {
	case "", "truncate":
		return PairTruncate, nil
	case "strict":
		return PairStrict, nil
	}
	return PairTruncate, fmt.Errorf("unknown pairing policy %q", v)
}

// CountMismatchError is returned under PairStrict.
type CountMismatchError struct {
	Names  int
	Prices int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("found %d item names but %d prices", e.Names, e.Prices)
}

// Matches holds the raw captures in document order.
type Matches struct {
	Names  []string
	Prices []string
}

// Pair is the Kth name matched with the Kth price.
type Pair struct {
	Name  string
	Price string
}

// Extract scans rendered markup for item_name and price captures.
func Extract(markup string) Matches {
	return Matches{
		Names:  captures(itemNamePattern, markup),
		Prices: captures(itemPricePattern, markup),
	}
}

func captures(re *regexp.Regexp, s string) []string {
	found := re.FindAllStringSubmatch(s, -1)
	out := make([]string, 0, len(found))
	for _, m := range found {
		out = append(out, m[1])
	}
	return out
}

// Pair aligns names and prices by position. It returns the pairs and the
// number of captures left without a partner.
func (m Matches) Pair(policy PairingPolicy) ([]Pair, int, error) {
	n := min(len(m.Names), len(m.Prices))
	dropped := len(m.Names) + len(m.Prices) - 2*n

	if dropped > 0 && policy == PairStrict {
		return nil, dropped, &CountMismatchError{Names: len(m.Names), Prices: len(m.Prices)}
	}

	pairs := make([]Pair, n)
	for i := 0; i < n; i++ {
		pairs[i] = Pair{Name: m.Names[i], Price: m.Prices[i]}
	}
	return pairs, dropped, nil
}
