package pipeline

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/raushankrgupta/shoe-price-tracker/models"
)

var priceNoise = regexp.MustCompile(`[$,]`)

// ParsePrice coerces listing price text to a number. The placeholder maps to
// 0; anything else that will not parse also maps to 0 and reports false.
func ParsePrice(s string) (float64, bool) {
	if s == models.Placeholder {
		s = "0"
	}
	cleaned := strings.TrimSpace(priceNoise.ReplaceAllString(s, ""))
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Combine concatenates the batches in order and stamps every row with the
// same capture time. It returns the number of prices that could not be parsed.
func Combine(batches [][]models.Listing, capturedAt time.Time) ([]models.ShoeRecord, int) {
	total := 0
	for _, b := range batches {
		total += len(b)
	}

	records := make([]models.ShoeRecord, 0, total)
	unparsed := 0
	for _, b := range batches {
		for _, l := range b {
			price, ok := ParsePrice(l.Price)
			if !ok {
				unparsed++
			}
			records = append(records, models.ShoeRecord{
				Brand:      l.Brand,
				Model:      l.Model,
				Price:      price,
				Source:     l.Source,
				CapturedAt: capturedAt,
			})
		}
	}
	return records, unparsed
}
