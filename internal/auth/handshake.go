package auth

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/garyburd/go-oauth/oauth"
)

// Token is an OAuth1 token/secret pair
type Token struct {
	Token  string
	Secret string
}

// RequestToken is the temporary credential issued at the start of the handshake
type RequestToken struct {
	Token            Token
	AuthorizationURL string
}

// Handshaker performs the two network legs of the three-legged OAuth1 flow
type Handshaker interface {
	RequestToken(consumer Token) (RequestToken, error)
	// AccessToken exchanges an authorized request token. An empty verifier
	// exchanges without one.
	AccessToken(consumer Token, req RequestToken, verifier string) (Token, error)
}

// Prompter shows the authorization URL to the operator and returns the PIN
// they enter. An empty PIN is valid.
type Prompter interface {
	Prompt(authorizationURL string) (string, error)
}

// Endpoints are the OAuth1 URLs of the publishing API
type Endpoints struct {
	RequestTokenURL string
	AuthorizeURL    string
	AccessTokenURL  string
}

// TwitterEndpoints are the OAuth1 endpoints of the Twitter API
var TwitterEndpoints = Endpoints{
	RequestTokenURL: "https://api.twitter.com/oauth/request_token",
	AuthorizeURL:    "https://api.twitter.com/oauth/authorize",
	AccessTokenURL:  "https://api.twitter.com/oauth/access_token",
}

// out-of-band callback, the API shows a PIN instead of redirecting
const callbackOOB = "oob"

// OAuthHandshaker implements Handshaker with github.com/garyburd/go-oauth
type OAuthHandshaker struct {
	endpoints  Endpoints
	httpClient *http.Client
}

// NewOAuthHandshaker creates a handshaker for the given endpoints
func NewOAuthHandshaker(endpoints Endpoints, httpClient *http.Client) *OAuthHandshaker {
	return &OAuthHandshaker{endpoints: endpoints, httpClient: httpClient}
}

func (h *OAuthHandshaker) client(consumer Token) *oauth.Client {
	return &oauth.Client{
		Credentials: oauth.Credentials{
			Token:  consumer.Token,
			Secret: consumer.Secret,
		},
		TemporaryCredentialRequestURI: h.endpoints.RequestTokenURL,
		ResourceOwnerAuthorizationURI: h.endpoints.AuthorizeURL,
		TokenRequestURI:               h.endpoints.AccessTokenURL,
	}
}

// RequestToken obtains a temporary request token and its authorization URL
func (h *OAuthHandshaker) RequestToken(consumer Token) (RequestToken, error) {
	c := h.client(consumer)
	tempCred, err := c.RequestTemporaryCredentials(h.httpClient, callbackOOB, nil)
	if err != nil {
		return RequestToken{}, fmt.Errorf("failed to get request token: %w", err)
	}
	return RequestToken{
		Token:            Token{Token: tempCred.Token, Secret: tempCred.Secret},
		AuthorizationURL: c.AuthorizationURL(tempCred, nil),
	}, nil
}

// AccessToken exchanges the request token for a permanent access token
func (h *OAuthHandshaker) AccessToken(consumer Token, req RequestToken, verifier string) (Token, error) {
	c := h.client(consumer)
	tempCred := &oauth.Credentials{Token: req.Token.Token, Secret: req.Token.Secret}
	cred, _, err := c.RequestToken(h.httpClient, tempCred, verifier)
	if err != nil {
		return Token{}, fmt.Errorf("failed to get access token: %w", err)
	}
	return Token{Token: cred.Token, Secret: cred.Secret}, nil
}

// ConsolePrompter asks for the PIN on a line-oriented terminal
type ConsolePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsolePrompter creates a prompter reading from in and writing to out
func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{in: bufio.NewReader(in), out: out}
}

// Prompt prints the authorization URL and reads one line
func (p *ConsolePrompter) Prompt(authorizationURL string) (string, error) {
	fmt.Fprintln(p.out, "Open the following URL and grant access to your account:")
	fmt.Fprintln(p.out, authorizationURL)
	fmt.Fprint(p.out, "Enter the PIN (if available) and hit enter after you granted access. [PIN]: ")

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read PIN: %w", err)
	}
	return strings.TrimSpace(line), nil
}
