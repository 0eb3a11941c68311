package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/septivank/danube-levels-bot/internal/composer"
	"github.com/septivank/danube-levels-bot/internal/logging"
	"github.com/septivank/danube-levels-bot/internal/model"
	"go.uber.org/zap"
)

// Fetcher retrieves the status page body
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Extractor turns the page body into readings
type Extractor interface {
	Extract(body string) (model.ReadingSet, error)
}

// Poster publishes a composed message and returns the status id
type Poster interface {
	Publish(ctx context.Context, message string) (string, error)
}

// EventSink receives an event for every published status
type EventSink interface {
	PublishReadings(ctx context.Context, event model.ReadingsPublishedEvent) error
}

// Narrator records a message and returns the recording URL
type Narrator interface {
	Narrate(ctx context.Context, message string) (string, error)
}

// NopEventSink discards events
type NopEventSink struct{}

// PublishReadings does nothing
func (NopEventSink) PublishReadings(context.Context, model.ReadingsPublishedEvent) error {
	return nil
}

// Pipeline runs one fetch, extract, compose and publish cycle
type Pipeline struct {
	fetcher   Fetcher
	extractor Extractor
	poster    Poster
	sink      EventSink
	narrator  Narrator
	clock     clockwork.Clock
	logger    *zap.Logger
}

// PipelineConfig holds pipeline collaborators. Sink and Narrator are optional.
type PipelineConfig struct {
	Fetcher   Fetcher
	Extractor Extractor
	Poster    Poster
	Sink      EventSink
	Narrator  Narrator
	Clock     clockwork.Clock
	Logger    *zap.Logger
}

// NewPipeline creates a new pipeline
func NewPipeline(cfg PipelineConfig) *Pipeline {
	sink := cfg.Sink
	if sink == nil {
		sink = NopEventSink{}
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Pipeline{
		fetcher:   cfg.Fetcher,
		extractor: cfg.Extractor,
		poster:    cfg.Poster,
		sink:      sink,
		narrator:  cfg.Narrator,
		clock:     clock,
		logger:    cfg.Logger,
	}
}

// Run performs one update. Nothing is posted unless every step before
// publishing succeeds.
func (p *Pipeline) Run(ctx context.Context) error {
	runID := uuid.NewString()
	runLogger := logging.WithRunID(p.logger, runID)
	start := p.clock.Now()

	runLogger.Info("update started")

	body, err := p.fetcher.Fetch(ctx)
	if err != nil {
		runLogger.Error("failed to fetch status page", zap.Error(err))
		return fmt.Errorf("failed to fetch status page: %w", err)
	}

	readings, err := p.extractor.Extract(body)
	if err != nil {
		runLogger.Error("failed to extract readings", zap.Error(err))
		return fmt.Errorf("failed to extract readings: %w", err)
	}
	runLogger.Debug("readings extracted", zap.Int("readings_count", len(readings)))

	message := composer.Compose(readings)

	statusID, err := p.poster.Publish(ctx, message)
	if err != nil {
		runLogger.Error("failed to publish status", zap.Error(err))
		return fmt.Errorf("failed to publish status: %w", err)
	}

	event := model.ReadingsPublishedEvent{
		RunID:       runID,
		StatusID:    statusID,
		Message:     message,
		Readings:    readings,
		PublishedAt: p.clock.Now().UTC(),
	}

	if p.narrator != nil {
		audioURL, err := p.narrator.Narrate(ctx, message)
		if err != nil {
			runLogger.Warn("narration failed", zap.Error(err))
		} else {
			event.AudioURL = audioURL
		}
	}

	if err := p.sink.PublishReadings(ctx, event); err != nil {
		runLogger.Warn("failed to publish readings event", zap.Error(err))
	}

	runLogger.Info("update finished",
		zap.String("status_id", statusID),
		zap.Int("readings_count", len(readings)),
		zap.Duration("took", p.clock.Since(start)),
	)

	return nil
}

// RunScheduled runs one update and logs its failure. A failed update
// never stops the schedule.
func (p *Pipeline) RunScheduled(ctx context.Context) {
	if err := p.Run(ctx); err != nil {
		p.logger.Error("scheduled update failed", zap.Error(err))
	}
}
