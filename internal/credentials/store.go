package credentials

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magiconair/properties"
)

// Recognized keys of the credential file
const (
	KeyConsumerKey       = "consumerKey"
	KeyConsumerSecret    = "consumerSecret"
	KeyAccessToken       = "accessToken"
	KeyAccessTokenSecret = "accessToken.secret"
)

// Credentials are the OAuth1 consumer and access token pairs
type Credentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
}

// HasConsumer reports whether both consumer values are non-blank
func (c Credentials) HasConsumer() bool {
	return !isBlank(c.ConsumerKey) && !isBlank(c.ConsumerSecret)
}

// HasAccessToken reports whether both access token values are non-blank.
// A half-filled pair counts as absent.
func (c Credentials) HasAccessToken() bool {
	return !isBlank(c.AccessToken) && !isBlank(c.AccessTokenSecret)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Store persists credentials in a flat key-value properties file
type Store struct {
	path string
}

// NewStore creates a store backed by the file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Load reads the credential file
func (s *Store) Load() (Credentials, error) {
	p, err := s.read(false)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{
		ConsumerKey:       p.GetString(KeyConsumerKey, ""),
		ConsumerSecret:    p.GetString(KeyConsumerSecret, ""),
		AccessToken:       p.GetString(KeyAccessToken, ""),
		AccessTokenSecret: p.GetString(KeyAccessTokenSecret, ""),
	}, nil
}

// Save overwrites the credential file with c. Keys other than the recognized
// ones are carried over from the existing file. The file is replaced atomically.
func (s *Store) Save(c Credentials) error {
	p, err := s.read(true)
	if err != nil {
		return err
	}

	values := map[string]string{
		KeyConsumerKey:       c.ConsumerKey,
		KeyConsumerSecret:    c.ConsumerSecret,
		KeyAccessToken:       c.AccessToken,
		KeyAccessTokenSecret: c.AccessTokenSecret,
	}
	for key, value := range values {
		if _, _, err := p.Set(key, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return s.replace(p)
}

func (s *Store) read(ignoreMissing bool) (*properties.Properties, error) {
	loader := properties.Loader{
		Encoding:         properties.UTF8,
		DisableExpansion: true,
		IgnoreMissing:    ignoreMissing,
	}
	p, err := loader.LoadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials from %s: %w", s.path, err)
	}
	return p, nil
}

func (s *Store) replace(p *properties.Properties) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp credentials file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := p.Write(tmp, properties.UTF8); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close credentials file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("failed to chmod credentials file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}
