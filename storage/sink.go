package storage

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/raushankrgupta/shoe-price-tracker/models"
)

// Sink appends a batch of shoe records. Existing rows are never touched.
type Sink interface {
	Append(ctx context.Context, records []models.ShoeRecord) (int, error)
	Close(ctx context.Context) error
}

// MultiSink appends to every sink in order. The first sink is the system of
// record and only its failure fails the append. Mirrors are attempted after
// it commits and their failures are logged.
type MultiSink []Sink

func (m MultiSink) Append(ctx context.Context, records []models.ShoeRecord) (int, error) {
	if len(m) == 0 {
		return 0, nil
	}

	written, err := m[0].Append(ctx, records)
	if err != nil {
		return 0, fmt.Errorf("sink 0: %w", err)
	}

	for i, s := range m[1:] {
		if _, err := s.Append(ctx, records); err != nil {
			log.Printf("[Sink] Mirror %d failed, %d rows are in the primary only: %v\n", i+1, written, err)
		}
	}
	return written, nil
}

func (m MultiSink) Close(ctx context.Context) error {
	var errs []error
	for _, s := range m {
		if err := s.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
