package speech

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

type synthesisRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Voice    string `json:"voice"`
}

// HTTPSynthesizer converts text to audio through a TTS endpoint
type HTTPSynthesizer struct {
	client *resty.Client
	url    string
	dir    string
}

// NewHTTPSynthesizer creates a synthesizer posting to url. Audio files are
// written to dir, or the system temp dir when dir is empty.
func NewHTTPSynthesizer(url, dir string, timeout time.Duration) *HTTPSynthesizer {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "audio/mpeg")

	return &HTTPSynthesizer{
		client: client,
		url:    url,
		dir:    dir,
	}
}

// Synthesize returns the path of an mp3 file holding text spoken by voice.
// The caller removes the file.
func (s *HTTPSynthesizer) Synthesize(ctx context.Context, text string, voice Voice) (string, error) {
	res, err := s.client.R().
		SetContext(ctx).
		SetBody(synthesisRequest{
			Text:     text,
			Language: voice.Locale,
			Voice:    voice.Name,
		}).
		Post(s.url)
	if err != nil {
		return "", fmt.Errorf("failed to request speech: %w", err)
	}
	if !res.IsSuccess() {
		return "", fmt.Errorf("speech endpoint returned %s", res.Status())
	}
	if len(res.Body()) == 0 {
		return "", fmt.Errorf("speech endpoint returned no audio")
	}

	f, err := os.CreateTemp(s.dir, "speech-*.mp3")
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}
	if _, err := f.Write(res.Body()); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	return f.Name(), nil
}
