package audio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrUploadFailed is returned when the upload service does not accept the file
var ErrUploadFailed = errors.New("audio upload failed")

type uploadResponse struct {
	Successful bool   `json:"Successful"`
	URL        string `json:"Url"`
}

// ClypUploader uploads mp3 files as multipart forms
type ClypUploader struct {
	client *resty.Client
	url    string
}

// NewClypUploader creates an uploader posting to url
func NewClypUploader(url string, timeout time.Duration) *ClypUploader {
	return &ClypUploader{
		client: resty.New().SetTimeout(timeout),
		url:    url,
	}
}

// Upload sends the file at path and returns its public URL
func (u *ClypUploader) Upload(ctx context.Context, path, description string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	res, err := u.client.R().
		SetContext(ctx).
		SetMultipartField("audioFile", filepath.Base(path), "audio/mpeg3", f).
		SetMultipartFormData(map[string]string{
			"description": description,
		}).
		Post(u.url)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	if !res.IsSuccess() {
		return "", fmt.Errorf("%w: unexpected response %s", ErrUploadFailed, res.Status())
	}

	var body uploadResponse
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return "", fmt.Errorf("%w: unreadable response: %w", ErrUploadFailed, err)
	}
	if !body.Successful || strings.TrimSpace(body.URL) == "" {
		return "", fmt.Errorf("%w: service reported no url", ErrUploadFailed)
	}

	return body.URL, nil
}
