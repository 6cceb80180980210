package pipeline

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/raushankrgupta/shoe-price-tracker/models"
	"github.com/raushankrgupta/shoe-price-tracker/scrapers"
	"github.com/raushankrgupta/shoe-price-tracker/storage"
	"github.com/raushankrgupta/shoe-price-tracker/utils"
)

// SinkOpener connects to the database named by connString.
type SinkOpener func(ctx context.Context, connString string) (storage.Sink, error)

// Archiver stores the raw page of a source.
type Archiver interface {
	Archive(ctx context.Context, runID, source string, page []byte) (string, error)
}

// Reporter is told how every run ended.
type Reporter interface {
	Report(ctx context.Context, runID, runLog string, runErr error) error
}

// Pipeline is one scrape-combine-append run with all of its collaborators.
type Pipeline struct {
	Credentials utils.CredentialProvider
	Sources     []scrapers.Scraper
	OpenSink    SinkOpener

	// Optional.
	Archiver Archiver
	Reporter Reporter

	// DryRun scrapes and combines but never touches credentials or the sink.
	DryRun bool
	Now    func() time.Time
}

// RunResult is filled in as far as the run got, including on failure.
type RunResult struct {
	RunID      string
	CapturedAt time.Time
	Records    []models.ShoeRecord
	Written    int
	Unparsed   int
	Log        string
}

func New(creds utils.CredentialProvider, sources []scrapers.Scraper, openSink SinkOpener) *Pipeline {
	return &Pipeline{
		Credentials: creds,
		Sources:     sources,
		OpenSink:    openSink,
		Now:         time.Now,
	}
}

// Run resolves credentials, scrapes every source in order, combines the
// listings under one timestamp and appends them to the sink. Any stage
// failure aborts the run with a *StageError and nothing is written.
func (p *Pipeline) Run(ctx context.Context) (result *RunResult, err error) {
	var logMessagesBuilder strings.Builder
	result = &RunResult{RunID: uuid.NewString()}

	defer func() {
		if err != nil {
			utils.AddToLogMessage(&logMessagesBuilder, "[Run] %s failed: %v", result.RunID, err)
		}
		result.Log = logMessagesBuilder.String()
		// an interrupted run still gets its failure report
		p.report(context.WithoutCancel(ctx), result, err)
	}()

	utils.AddToLogMessage(&logMessagesBuilder, "[Run] Starting %s (dry run: %t)", result.RunID, p.DryRun)

	var connString string
	if !p.DryRun {
		if p.Credentials == nil {
			return result, &StageError{Stage: StageCredentials, Err: errors.New("no credential provider configured")}
		}
		connString, err = p.Credentials.ConnString(ctx)
		if err != nil {
			return result, &StageError{Stage: StageCredentials, Err: err}
		}
		utils.AddToLogMessage(&logMessagesBuilder, "[Run] Database credentials resolved")
	}

	batches := make([][]models.Listing, 0, len(p.Sources))
	for _, s := range p.Sources {
		res, scrapeErr := s.Scrape(ctx)
		if scrapeErr != nil {
			return result, &StageError{Stage: scrapeStage(scrapeErr), Source: s.Name(), Err: scrapeErr}
		}
		utils.AddToLogMessage(&logMessagesBuilder, "[Run] %s: %d listings from %s", res.Source, len(res.Listings), res.URL)
		if res.Dropped > 0 {
			utils.AddToLogMessage(&logMessagesBuilder, "[Run] %s: %d unpaired matches dropped", res.Source, res.Dropped)
		}
		p.archive(ctx, result.RunID, res, &logMessagesBuilder)
		batches = append(batches, res.Listings)
	}

	result.CapturedAt = p.now()
	result.Records, result.Unparsed = Combine(batches, result.CapturedAt)
	utils.AddToLogMessage(&logMessagesBuilder, "[Run] Combined %d rows at %s", len(result.Records), result.CapturedAt.Format(time.RFC3339))
	if result.Unparsed > 0 {
		utils.AddToLogMessage(&logMessagesBuilder, "[Run] %d prices could not be parsed and were stored as 0", result.Unparsed)
	}

	if p.DryRun {
		return result, nil
	}

	sink, err := p.OpenSink(ctx, connString)
	if err != nil {
		return result, &StageError{Stage: StageSink, Err: err}
	}
	defer func() {
		if closeErr := sink.Close(ctx); closeErr != nil {
			log.Printf("[Run] Error closing sink: %v\n", closeErr)
		}
	}()

	result.Written, err = sink.Append(ctx, result.Records)
	if err != nil {
		return result, &StageError{Stage: StageSink, Err: err}
	}
	utils.AddToLogMessage(&logMessagesBuilder, "[Run] Appended %d rows", result.Written)
	return result, nil
}

func (p *Pipeline) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

func (p *Pipeline) archive(ctx context.Context, runID string, res *models.ScrapeResult, b *strings.Builder) {
	if p.Archiver == nil || len(res.Page) == 0 {
		return
	}
	key, err := p.Archiver.Archive(ctx, runID, res.Source, res.Page)
	if err != nil {
		utils.AddToLogMessage(b, "[Run] Snapshot of %s not stored: %v", res.Source, err)
		return
	}
	utils.AddToLogMessage(b, "[Run] Snapshot of %s stored at %s", res.Source, key)
}

func (p *Pipeline) report(ctx context.Context, result *RunResult, runErr error) {
	if p.Reporter == nil {
		return
	}
	if err := p.Reporter.Report(ctx, result.RunID, result.Log, runErr); err != nil {
		log.Printf("[Run] Error sending run report: %v\n", err)
	}
}
