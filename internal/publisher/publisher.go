package publisher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/septivank/danube-levels-bot/internal/auth"
	"github.com/septivank/danube-levels-bot/internal/validator"
	"go.uber.org/zap"
)

// ErrPublish is returned when a status could not be posted
var ErrPublish = errors.New("failed to publish status")

// Publisher posts composed messages through the authorized client
type Publisher struct {
	client    auth.Client
	validator *validator.Validator
	logger    *zap.Logger
}

// NewPublisher creates a new publisher
func NewPublisher(client auth.Client, validator *validator.Validator, logger *zap.Logger) *Publisher {
	return &Publisher{
		client:    client,
		validator: validator,
		logger:    logger,
	}
}

// Publish trims the trailing newline from message, validates it and posts it.
// It returns the id of the created status.
func (p *Publisher) Publish(ctx context.Context, message string) (string, error) {
	status := strings.TrimSuffix(message, "\n")

	if err := p.validator.ValidateMessage(status); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPublish, err)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPublish, err)
	}

	tweet, err := p.client.PostTweet(status, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPublish, err)
	}

	p.logger.Info("status published",
		zap.String("status_id", tweet.IdStr),
		zap.Int("length", len([]rune(status))),
	)

	return tweet.IdStr, nil
}
