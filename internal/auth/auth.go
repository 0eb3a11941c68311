package auth

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ChimeraCoder/anaconda"
	"github.com/septivank/danube-levels-bot/internal/credentials"
	"go.uber.org/zap"
)

var (
	// ErrConfig means the consumer key/secret are missing from the credential file
	ErrConfig = errors.New("oauth consumer key/secret is not set")
	// ErrHandshake means the interactive authorization exchange failed
	ErrHandshake = errors.New("oauth handshake failed")
)

// Client is the authorized publishing API client
type Client interface {
	PostTweet(status string, v url.Values) (anaconda.Tweet, error)
	GetSelf(v url.Values) (anaconda.User, error)
}

// ClientFactory builds an authorized client from a complete set of credentials
type ClientFactory func(creds credentials.Credentials) Client

// NewAnacondaClient returns a factory of Twitter API clients that share httpClient
func NewAnacondaClient(httpClient *http.Client) ClientFactory {
	return func(creds credentials.Credentials) Client {
		api := anaconda.NewTwitterApiWithCredentials(
			creds.AccessToken,
			creds.AccessTokenSecret,
			creds.ConsumerKey,
			creds.ConsumerSecret,
		)
		api.HttpClient = httpClient
		return api
	}
}

// Manager obtains an authorized client, bootstrapping the access token on first run
type Manager struct {
	store      *credentials.Store
	handshaker Handshaker
	prompter   Prompter
	newClient  ClientFactory
	logger     *zap.Logger
}

// NewManager creates a new auth manager
func NewManager(
	store *credentials.Store,
	handshaker Handshaker,
	prompter Prompter,
	newClient ClientFactory,
	logger *zap.Logger,
) *Manager {
	return &Manager{
		store:      store,
		handshaker: handshaker,
		prompter:   prompter,
		newClient:  newClient,
		logger:     logger,
	}
}

// ObtainClient returns a client authorized with the stored access token. When the
// store has no access token, it runs the interactive handshake and persists the
// new token before returning.
func (m *Manager) ObtainClient() (Client, error) {
	creds, err := m.store.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if !creds.HasConsumer() {
		return nil, ErrConfig
	}

	if creds.HasAccessToken() {
		m.logger.Debug("using stored access token", zap.String("file", m.store.Path()))
		return m.newClient(creds), nil
	}

	m.logger.Info("no access token stored, starting authorization", zap.String("file", m.store.Path()))

	token, err := m.bootstrap(Token{Token: creds.ConsumerKey, Secret: creds.ConsumerSecret})
	if err != nil {
		return nil, err
	}

	creds.AccessToken = token.Token
	creds.AccessTokenSecret = token.Secret
	if err := m.store.Save(creds); err != nil {
		return nil, fmt.Errorf("failed to persist access token: %w", err)
	}
	m.logger.Info("access token stored", zap.String("file", m.store.Path()))

	return m.newClient(creds), nil
}

func (m *Manager) bootstrap(consumer Token) (Token, error) {
	req, err := m.handshaker.RequestToken(consumer)
	if err != nil {
		return Token{}, fmt.Errorf("%w: %w", ErrHandshake, err)
	}
	m.logger.Debug("got request token", zap.String("request_token", req.Token.Token))

	pin, err := m.prompter.Prompt(req.AuthorizationURL)
	if err != nil {
		return Token{}, fmt.Errorf("%w: %w", ErrHandshake, err)
	}
	if pin == "" {
		m.logger.Info("no PIN entered, exchanging request token without verifier")
	}

	token, err := m.handshaker.AccessToken(consumer, req, pin)
	if err != nil {
		return Token{}, fmt.Errorf("%w: %w", ErrHandshake, err)
	}
	if token.Token == "" || token.Secret == "" {
		return Token{}, fmt.Errorf("%w: empty access token returned", ErrHandshake)
	}
	return token, nil
}

// Verify looks up the authorized account and returns its screen name
func Verify(client Client) (string, error) {
	user, err := client.GetSelf(nil)
	if err != nil {
		return "", fmt.Errorf("failed to verify credentials: %w", err)
	}
	return user.ScreenName, nil
}
