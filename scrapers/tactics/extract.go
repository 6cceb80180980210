package tactics

import (
	"errors"
	"io"
	"strings"

	"github.com/raushankrgupta/shoe-price-tracker/models"
	"github.com/raushankrgupta/shoe-price-tracker/scrapers/base"
)

const (
	gridID     = "browse-grid"
	brandClass = "browse-grid-item-brand"
	priceClass = "browse-grid-item-price"
	colorClass = "browse-grid-item-color"
)

// ErrGridNotFound means the page had no product grid at all, which usually
// signals a block page or a redesign rather than an empty catalogue.
var ErrGridNotFound = errors.New("tactics: product grid #" + gridID + " not found")

// RawProduct is one grid cell as read from the page.
type RawProduct struct {
	Brand string
	Model string
	Price string
}

// Extract walks the product grid and returns one RawProduct per grid cell,
// in page order.
func Extract(r io.Reader) ([]RawProduct, error) {
	doc, err := base.ParseDocument(r)
	if err != nil {
		return nil, err
	}

	grid := doc.FindByID(gridID)
	if grid == nil {
		return nil, ErrGridNotFound
	}

	var products []RawProduct
	for _, cell := range grid.ElementChildren() {
		products = append(products, extractCell(cell))
	}
	return products, nil
}

func extractCell(cell *base.Element) RawProduct {
	anchor := cell.FindFirst("a", "")
	if anchor == nil {
		return RawProduct{Brand: models.Placeholder, Model: models.Placeholder, Price: models.Placeholder}
	}

	brand := cell.FindFirst("span", brandClass)
	price := cell.FindFirst("span", priceClass)
	color := cell.FindFirst("span", colorClass)

	model := anchor.StrippedText()
	model = removeText(model, brand)
	model = removeText(model, color)

	return RawProduct{
		Brand: textOr(brand, models.Placeholder),
		Model: strings.TrimSpace(model),
		Price: textOr(price, models.Placeholder),
	}
}

func removeText(s string, e *base.Element) string {
	if e == nil {
		return s
	}
	needle := strings.TrimSpace(e.Text())
	if needle == "" {
		return s
	}
	return strings.ReplaceAll(s, needle, "")
}

// textOr returns the trimmed text of e, or fallback when e is missing.
func textOr(e *base.Element, fallback string) string {
	if e == nil {
		return fallback
	}
	return strings.TrimSpace(e.Text())
}
