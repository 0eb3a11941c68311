package main

import (
	"context"
	"net/http"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/septivank/danube-levels-bot/internal/audio"
	"github.com/septivank/danube-levels-bot/internal/auth"
	"github.com/septivank/danube-levels-bot/internal/config"
	"github.com/septivank/danube-levels-bot/internal/credentials"
	"github.com/septivank/danube-levels-bot/internal/extractor"
	"github.com/septivank/danube-levels-bot/internal/fetcher"
	"github.com/septivank/danube-levels-bot/internal/mq"
	"github.com/septivank/danube-levels-bot/internal/publisher"
	"github.com/septivank/danube-levels-bot/internal/scheduler"
	"github.com/septivank/danube-levels-bot/internal/service"
	"github.com/septivank/danube-levels-bot/internal/speech"
	"github.com/septivank/danube-levels-bot/internal/validator"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func providers() fx.Option {
	return fx.Options(
		fx.WithLogger(newFxLogger),
		fx.Provide(
			config.Load,
			newLogger,
			ProvideClock,
			ProvideCredentialStore,
			ProvideAuthManager,
			ProvideClient,
			ProvideFetcher,
			ProvideValidator,
			ProvidePublisher,
			ProvideEventSink,
			ProvideNarrator,
			ProvidePipeline,
			ProvideScheduler,
		),
	)
}

// ProvideClock returns the wall clock
func ProvideClock() clockwork.Clock {
	return clockwork.NewRealClock()
}

// ProvideCredentialStore opens the credential file named by CREDENTIALS_FILE
func ProvideCredentialStore(cfg *config.Config) *credentials.Store {
	return credentials.NewStore(cfg.CredentialsFile)
}

// ProvideAuthManager creates the auth manager prompting on the terminal
func ProvideAuthManager(cfg *config.Config, store *credentials.Store, logger *zap.Logger) *auth.Manager {
	httpClient := &http.Client{Timeout: cfg.Twitter.Timeout}

	return auth.NewManager(
		store,
		auth.NewOAuthHandshaker(auth.TwitterEndpoints, httpClient),
		auth.NewConsolePrompter(os.Stdin, os.Stdout),
		auth.NewAnacondaClient(httpClient),
		logger,
	)
}

// ProvideClient obtains the authorized client and checks which account it posts as
func ProvideClient(manager *auth.Manager, logger *zap.Logger) (auth.Client, error) {
	client, err := manager.ObtainClient()
	if err != nil {
		return nil, err
	}

	screenName, err := auth.Verify(client)
	if err != nil {
		return nil, err
	}
	logger.Info("authorized", zap.String("screen_name", screenName))

	return client, nil
}

// ProvideFetcher creates the status page fetcher
func ProvideFetcher(cfg *config.Config, logger *zap.Logger) *fetcher.PageFetcher {
	return fetcher.NewPageFetcher(cfg.Source.URL, cfg.Source.Timeout, logger)
}

// ProvideValidator creates the status length validator
func ProvideValidator(cfg *config.Config) *validator.Validator {
	return validator.NewValidator(cfg.Twitter.MaxLength)
}

// ProvidePublisher creates the status publisher
func ProvidePublisher(client auth.Client, v *validator.Validator, logger *zap.Logger) *publisher.Publisher {
	return publisher.NewPublisher(client, v, logger)
}

// ProvideEventSink returns the RabbitMQ readings publisher, or a no-op sink
// when RABBITMQ_URL is empty
func ProvideEventSink(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (service.EventSink, error) {
	if cfg.RabbitMQ.URL == "" {
		logger.Info("readings fan-out disabled")
		return service.NopEventSink{}, nil
	}

	conn, err := mq.NewConnection(lc, logger, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	pub, err := mq.NewPublisher(conn, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.RoutingKey, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return pub.Close()
		},
	})

	return pub, nil
}

// ProvideNarrator returns nil when TTS_URL is empty
func ProvideNarrator(cfg *config.Config, logger *zap.Logger) (service.Narrator, error) {
	if cfg.Speech.TTSURL == "" {
		logger.Info("narration disabled")
		return nil, nil
	}

	lang, err := speech.ParseLanguage(cfg.Speech.Language)
	if err != nil {
		return nil, err
	}

	return speech.NewNarrator(
		speech.NewHTTPSynthesizer(cfg.Speech.TTSURL, "", cfg.Speech.UploadTimeout),
		audio.NewClypUploader(cfg.Speech.UploadURL, cfg.Speech.UploadTimeout),
		lang,
		logger,
	), nil
}

// ProvidePipeline wires the update pipeline
func ProvidePipeline(
	f *fetcher.PageFetcher,
	p *publisher.Publisher,
	sink service.EventSink,
	narrator service.Narrator,
	clock clockwork.Clock,
	logger *zap.Logger,
) *service.Pipeline {
	return service.NewPipeline(service.PipelineConfig{
		Fetcher:   f,
		Extractor: extractor.NewLocalTable(),
		Poster:    p,
		Sink:      sink,
		Narrator:  narrator,
		Clock:     clock,
		Logger:    logger,
	})
}

// ProvideScheduler creates the daily scheduler running the pipeline
func ProvideScheduler(cfg *config.Config, pipeline *service.Pipeline, clock clockwork.Clock, logger *zap.Logger) *scheduler.Scheduler {
	return scheduler.New(scheduler.Config{
		Clock:    clock,
		At:       cfg.Schedule.At,
		Location: cfg.Schedule.Location,
		Interval: cfg.Schedule.Interval,
		Job:      pipeline.RunScheduled,
		Logger:   logger,
	})
}
