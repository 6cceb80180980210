package ccs

import (
	"strings"
	"unicode"

	"github.com/raushankrgupta/shoe-price-tracker/models"
	"github.com/raushankrgupta/shoe-price-tracker/scrapers/base"
)

const SourceLabel = "CCS.com"

// SplitName splits an item name into its first word (the brand) and the rest.
// The rest keeps trailing whitespace; leading whitespace is dropped.
func SplitName(name string) (brand, rest string) {
	trimmed := strings.TrimLeftFunc(name, unicode.IsSpace)
	i := strings.IndexFunc(trimmed, unicode.IsSpace)
	if i < 0 {
		return trimmed, ""
	}
	return trimmed[:i], strings.TrimLeftFunc(trimmed[i:], unicode.IsSpace)
}

// ModelFromRest cuts the colorway after the first hyphen, then anything from
// "Shoes" on.
func ModelFromRest(rest string) string {
	return base.TruncateAt(base.TruncateAt(rest, "-"), "Shoes")
}

// Normalize turns a paired capture into a listing.
func Normalize(p Pair) models.Listing {
	brand, rest := SplitName(p.Name)
	return models.Listing{
		Brand:  brand,
		Model:  ModelFromRest(rest),
		Price:  "$" + p.Price,
		Source: SourceLabel,
	}
}
