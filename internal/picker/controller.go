package picker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/katatrina/plg-shop/internal/backend"
	"github.com/katatrina/plg-shop/internal/checkout"
	"github.com/katatrina/plg-shop/internal/logistics"
	"github.com/rs/zerolog/log"
)

var (
	ErrMethodNotPickable = errors.New("shipping method has no store picker")
	ErrPopupBlocked      = errors.New("popup window was blocked")
	ErrPickerBusy        = errors.New("store picker is already opening")
	ErrSessionSuperseded = errors.New("picker session was superseded or closed")
)

// MapTokenError wraps a failed map token request; the popup has already been closed.
type MapTokenError struct {
	Err error
}

func (e *MapTokenError) Error() string {
	return fmt.Sprintf("failed to request map token: %v", e.Err)
}

func (e *MapTokenError) Unwrap() error {
	return e.Err
}

// Session is one open popup of a checkout scope. It lives in memory only.
type Session struct {
	Scope    string
	Method   checkout.ShippingMethod
	SubType  string
	Token    string
	Window   Window
	OpenedAt time.Time
}

// Controller guarantees at most one live picker popup per checkout scope.
type Controller struct {
	provider     logistics.Provider
	tokens       *TokenIssuer
	tokenTimeout time.Duration
	now          func() time.Time

	mu       sync.Mutex
	opening  map[string]bool
	sessions map[string]*Session
}

func NewController(provider logistics.Provider, tokens *TokenIssuer, tokenTimeout time.Duration) *Controller {
	return &Controller{
		provider:     provider,
		tokens:       tokens,
		tokenTimeout: tokenTimeout,
		now:          time.Now,
		opening:      make(map[string]bool),
		sessions:     make(map[string]*Session),
	}
}

// Open navigates win to the provider's store map for method.
// A concurrent Open for the same scope returns ErrPickerBusy without touching win.
func (c *Controller) Open(ctx context.Context, scope string, method checkout.ShippingMethod, creds backend.Credentials, win Window) (*Session, error) {
	c.mu.Lock()
	if c.opening[scope] {
		c.mu.Unlock()
		return nil, ErrPickerBusy
	}

	subType, ok := method.SubType()
	if !ok {
		c.mu.Unlock()
		return nil, ErrMethodNotPickable
	}

	if win == nil {
		c.mu.Unlock()
		return nil, ErrPopupBlocked
	}

	c.opening[scope] = true
	previous := c.sessions[scope]
	session := &Session{
		Scope:    scope,
		Method:   method,
		SubType:  subType,
		Window:   win,
		OpenedAt: c.now(),
	}
	c.sessions[scope] = session
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.opening, scope)
		c.mu.Unlock()
	}()

	if previous != nil {
		c.release(ctx, previous, "superseded")
	}

	if err := win.WriteLoading(LoadingMessage); err != nil {
		c.abandon(ctx, session, "loading failed")
		return nil, fmt.Errorf("failed to write loading message: %w", err)
	}

	token, err := c.tokens.Issue(ctx, scope)
	if err != nil {
		c.abandon(ctx, session, "token failed")
		return nil, err
	}
	c.mu.Lock()
	session.Token = token
	c.mu.Unlock()

	tokenCtx, cancel := context.WithTimeout(ctx, c.tokenTimeout)
	defer cancel()

	form, err := c.provider.RequestMapToken(tokenCtx, creds, subType, token)
	if !c.isCurrent(session) {
		// Popup đã bị đóng hoặc bị thay thế trong lúc chờ backend.
		c.abandon(ctx, session, "superseded")
		return nil, ErrSessionSuperseded
	}
	if err != nil {
		c.abandon(ctx, session, "map token failed")
		return nil, &MapTokenError{Err: err}
	}

	if err = win.SubmitForm(form); err != nil {
		c.abandon(ctx, session, "submit failed")
		return nil, fmt.Errorf("failed to submit map form: %w", err)
	}

	log.Info().Str("scope", scope).Str("sub_type", subType).Msg("store picker opened ✅")
	return session, nil
}

func (c *Controller) isCurrent(session *Session) bool {
	c.mu.Lock()
	current := c.sessions[session.Scope] == session
	c.mu.Unlock()
	return current && !session.Window.Closed()
}

// abandon closes the session's window and forgets it if it is still the current one.
func (c *Controller) abandon(ctx context.Context, session *Session, reason string) {
	c.mu.Lock()
	if c.sessions[session.Scope] == session {
		delete(c.sessions, session.Scope)
	}
	c.mu.Unlock()

	c.release(ctx, session, reason)
}

func (c *Controller) release(ctx context.Context, session *Session, reason string) {
	if err := session.Window.Close(reason); err != nil {
		log.Warn().Err(err).Str("scope", session.Scope).Msg("failed to close picker window")
	}
	c.mu.Lock()
	token := session.Token
	c.mu.Unlock()

	if token != "" {
		if err := c.tokens.Revoke(ctx, token); err != nil {
			log.Warn().Err(err).Str("scope", session.Scope).Msg("failed to revoke selection token")
		}
	}
}

// Cancel closes the live session of scope, if any. It is used when the shopper switches shipping method.
func (c *Controller) Cancel(ctx context.Context, scope string) bool {
	c.mu.Lock()
	session := c.sessions[scope]
	delete(c.sessions, scope)
	c.mu.Unlock()

	if session == nil {
		return false
	}

	c.release(ctx, session, "cancelled")
	return true
}

// Current returns the live session of scope, if any.
func (c *Controller) Current(scope string) *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessions[scope]
}

func (c *Controller) Sessions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

// Complete resolves a callback token to its scope and ends the session it belongs to.
// Tokens of superseded, expired or forged sessions yield ErrUnknownToken.
func (c *Controller) Complete(ctx context.Context, token string) (string, error) {
	scope, err := c.tokens.Resolve(ctx, token)
	if err != nil {
		return "", err
	}

	if err = c.tokens.Revoke(ctx, token); err != nil {
		log.Warn().Err(err).Str("scope", scope).Msg("failed to revoke used selection token")
	}

	c.mu.Lock()
	if session := c.sessions[scope]; session != nil && session.Token == token {
		delete(c.sessions, scope)
	}
	c.mu.Unlock()

	return scope, nil
}

// Expire closes every session opened before the cutoff and returns how many were closed.
func (c *Controller) Expire(ctx context.Context, maxAge time.Duration) int {
	cutoff := c.now().Add(-maxAge)

	var expired []*Session
	c.mu.Lock()
	for scope, session := range c.sessions {
		if session.OpenedAt.Before(cutoff) && !c.opening[scope] {
			expired = append(expired, session)
			delete(c.sessions, scope)
		}
	}
	c.mu.Unlock()

	for _, session := range expired {
		c.release(ctx, session, "expired")
	}
	return len(expired)
}
