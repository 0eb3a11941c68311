package speech

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Synthesizer produces an audio file for text
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, voice Voice) (string, error)
}

// Uploader publishes an audio file and returns its public URL
type Uploader interface {
	Upload(ctx context.Context, path, description string) (string, error)
}

// Narrator reads a status aloud and uploads the recording
type Narrator struct {
	synthesizer Synthesizer
	uploader    Uploader
	language    Language
	logger      *zap.Logger
}

// NewNarrator creates a new narrator
func NewNarrator(synthesizer Synthesizer, uploader Uploader, language Language, logger *zap.Logger) *Narrator {
	return &Narrator{
		synthesizer: synthesizer,
		uploader:    uploader,
		language:    language,
		logger:      logger,
	}
}

// Narrate returns the public URL of a recording of message
func (n *Narrator) Narrate(ctx context.Context, message string) (string, error) {
	text := Prepare(message, n.language)

	path, err := n.synthesizer.Synthesize(ctx, text, n.language.Voice())
	if err != nil {
		return "", fmt.Errorf("failed to synthesize speech: %w", err)
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			n.logger.Warn("failed to remove audio file", zap.String("path", path), zap.Error(err))
		}
	}()

	url, err := n.uploader.Upload(ctx, path, strings.TrimRight(message, "\n"))
	if err != nil {
		return "", fmt.Errorf("failed to upload speech: %w", err)
	}

	n.logger.Info("narration uploaded",
		zap.String("language", string(n.language)),
		zap.String("url", url),
	)

	return url, nil
}
