package oauth

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"

	"booking-service/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
)

var (
	ErrNoRefreshToken        = errors.New("gmail refresh token not configured")
	ErrStateMismatch         = errors.New("oauth state mismatch")
	ErrRefreshTokenNotIssued = errors.New("consent did not issue a refresh token")
)

// Credentials configure the Gmail account receipts are sent from. A zero Endpoint means Google.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	RedirectURL  string
	Endpoint     oauth2.Endpoint
}

// ReceiptAuth authorizes the receipt mailer. It only ever asks for the send scope.
type ReceiptAuth struct {
	config       *oauth2.Config
	refreshToken string
	state        string
	logger       logger.Logger
}

func NewReceiptAuth(creds Credentials, logger logger.Logger) *ReceiptAuth {
	endpoint := creds.Endpoint
	if endpoint.TokenURL == "" {
		endpoint = google.Endpoint
	}
	return &ReceiptAuth{
		config: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			RedirectURL:  creds.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{gmail.GmailSendScope},
		},
		refreshToken: creds.RefreshToken,
		state:        uuid.NewString(),
		logger:       logger,
	}
}

// TokenSource returns a cached source that mints access tokens from the refresh token.
func (a *ReceiptAuth) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	if a.refreshToken == "" {
		return nil, ErrNoRefreshToken
	}
	src := a.config.TokenSource(ctx, &oauth2.Token{RefreshToken: a.refreshToken})
	return &loggingTokenSource{src: src, logger: a.logger}, nil
}

// ConsentURL asks for offline access and forces the consent screen so a refresh token is issued.
func (a *ReceiptAuth) ConsentURL() string {
	return a.config.AuthCodeURL(a.state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades the callback's code for a token. state must be the one ConsentURL sent.
func (a *ReceiptAuth) Exchange(ctx context.Context, state, code string) (*oauth2.Token, error) {
	if subtle.ConstantTimeCompare([]byte(state), []byte(a.state)) != 1 {
		return nil, ErrStateMismatch
	}
	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange consent code: %w", err)
	}
	if token.RefreshToken == "" {
		return nil, ErrRefreshTokenNotIssued
	}
	a.logger.Info("Gmail refresh token issued", "expiry", token.Expiry)
	return token, nil
}

type loggingTokenSource struct {
	src    oauth2.TokenSource
	logger logger.Logger
}

func (s *loggingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.src.Token()
	if err != nil {
		s.logger.Error("Gmail token refresh failed", "error", err)
		return nil, err
	}
	return token, nil
}

// FormatToken renders a token as indented JSON for the operator to copy.
func FormatToken(token *oauth2.Token) (string, error) {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
