package models

import "time"

// Placeholder is written into any field whose source marker was missing.
const Placeholder = "N/A"

// Listing is a normalized shoe listing before price coercion
type Listing struct {
	Brand  string `json:"brand"`
	Model  string `json:"model"`
	Price  string `json:"price"` // currency-prefixed text, or Placeholder
	Source string `json:"source"`
}

// ShoeRecord is one row of the shoes table.
type ShoeRecord struct {
	Brand      string    `json:"brand" bson:"brand"`
	Model      string    `json:"model" bson:"model"`
	Price      float64   `json:"price" bson:"price"`
	Source     string    `json:"source" bson:"source"`
	CapturedAt time.Time `json:"dt" bson:"dt"`
}

// ScrapeResult is what a single source scrape produced
type ScrapeResult struct {
	Source   string    `json:"source"`
	URL      string    `json:"url"`
	Page     []byte    `json:"-"` // raw markup as fetched
	Listings []Listing `json:"listings"`
	Dropped  int       `json:"dropped,omitempty"` // matches left without a partner
}
