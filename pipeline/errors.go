package pipeline

import (
	"errors"
	"fmt"

	"github.com/raushankrgupta/shoe-price-tracker/scrapers/ccs"
	"github.com/raushankrgupta/shoe-price-tracker/scrapers/tactics"
)

// Stage names the step of a run that failed.
type Stage string

const (
	StageCredentials Stage = "credentials"
	StageFetch       Stage = "fetch"
	StageExtract     Stage = "extract"
	StageSink        Stage = "sink"
)

// StageError wraps a fatal run failure with where it happened.
type StageError struct {
	Stage  Stage
	Source string
	Err    error
}

func (e *StageError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s %s: %v", e.Stage, e.Source, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// scrapeStage tells a structural page problem apart from a failed fetch.
func scrapeStage(err error) Stage {
	var mismatch *ccs.CountMismatchError
	if errors.As(err, &mismatch) || errors.Is(err, tactics.ErrGridNotFound) {
		return StageExtract
	}
	return StageFetch
}
