package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/raushankrgupta/shoe-price-tracker/config"
	"github.com/raushankrgupta/shoe-price-tracker/scrapers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	all, err := scrapers.NewScrapers(cfg)
	if err != nil {
		log.Fatalf("Failed to build scrapers: %v", err)
	}

	for _, s := range all {
		fmt.Printf("Testing source: %s\n", s.Name())
		fmt.Printf("Scraper: %T\n", s)

		result, err := s.Scrape(context.Background())
		if err != nil {
			log.Printf("Failed to scrape %s: %v\n", s.Name(), err)
			continue
		}

		b, _ := json.MarshalIndent(result, "", "  ")
		fmt.Printf("Result: %s\n", string(b))
		fmt.Println("--------------------------------------------------")
	}
}
