// Package identity signs guests in through an external identity provider.
package identity

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"photogrip/internal/api"
	"photogrip/internal/domain"
)

// TokenEnv holds a Google ID token for non-interactive sign in
const TokenEnv = "PHOTOGRIP_GOOGLE_ID_TOKEN"

var (
	// ErrNoToken is returned by Prompt when no ID token was supplied.
	ErrNoToken = errors.New("no Google ID token supplied")
	// ErrNotInitialized is returned by Prompt before Initialize.
	ErrNotInitialized = errors.New("identity provider not initialized")
)

// Config configures a provider
type Config struct {
	ClientID string
}

// Credential is a server session obtained through the provider
type Credential struct {
	AccessToken string
	Username    string
	Email       string
}

// Provider is an injected sign-in mechanism
type Provider interface {
	Initialize(cfg Config) error
	RenderButton(width int) string
	Prompt(ctx context.Context) (Credential, error)
}

// Exchanger trades an ID token for a server session
type Exchanger interface {
	GoogleLogin(ctx context.Context, idToken string) (api.LoginResult, error)
}

// GoogleTokenProvider signs in with a Google ID token pasted by the user or
// taken from PHOTOGRIP_GOOGLE_ID_TOKEN.
type GoogleTokenProvider struct {
	exchanger Exchanger
	getenv    func(string) string

	mu          sync.Mutex
	initialized bool
	clientID    string
	pending     string
}

// NewGoogleTokenProvider creates a provider exchanging tokens through ex
func NewGoogleTokenProvider(ex Exchanger) *GoogleTokenProvider {
	return &GoogleTokenProvider{exchanger: ex, getenv: os.Getenv}
}

// Initialize records the client configuration
func (p *GoogleTokenProvider) Initialize(cfg Config) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clientID = strings.TrimSpace(cfg.ClientID)
	p.initialized = true
	return nil
}

// Supply sets the ID token used by the next Prompt
func (p *GoogleTokenProvider) Supply(idToken string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = strings.TrimSpace(idToken)
}

var buttonStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("0")).
	Background(lipgloss.Color("15")).
	Bold(true).
	Padding(0, 2)

// RenderButton renders the sign-in call to action centred in width
func (p *GoogleTokenProvider) RenderButton(width int) string {
	btn := buttonStyle.Render("G  Sign in with Google")
	if width <= lipgloss.Width(btn) {
		return btn
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, btn)
}

// Prompt exchanges the supplied token, or the environment token, for a session.
// The supplied token is consumed.
func (p *GoogleTokenProvider) Prompt(ctx context.Context) (Credential, error) {
	p.mu.Lock()
	if !p.initialized {
		p.mu.Unlock()
		return Credential{}, ErrNotInitialized
	}
	token := p.pending
	p.pending = ""
	p.mu.Unlock()

	if token == "" {
		token = strings.TrimSpace(p.getenv(TokenEnv))
	}
	if token == "" {
		return Credential{}, ErrNoToken
	}

	res, err := p.exchanger.GoogleLogin(ctx, token)
	if err != nil {
		return Credential{}, fmt.Errorf("google sign in: %w", err)
	}
	return Credential{AccessToken: res.AccessToken, Username: res.Username, Email: res.Email}, nil
}

// SessionSaver persists a signed in user
type SessionSaver interface {
	SaveSession(u domain.User) error
}

// SignIn runs the provider and stores the resulting session
func SignIn(ctx context.Context, p Provider, store SessionSaver) (domain.User, error) {
	cred, err := p.Prompt(ctx)
	if err != nil {
		return domain.User{}, err
	}
	u := domain.User{Username: cred.Username, Email: cred.Email, Token: cred.AccessToken}
	if u.Username == "" {
		u.Username = u.Email
	}
	if err := store.SaveSession(u); err != nil {
		return domain.User{}, fmt.Errorf("save session: %w", err)
	}
	return u, nil
}
