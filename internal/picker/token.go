package picker

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/katatrina/plg-shop/internal/storage"
	"github.com/katatrina/plg-shop/internal/util"
	"github.com/zpmep/hmacutil"
)

const (
	tokenKeyPrefix = "picker-token"

	// ExtraData của ECPay chỉ giữ được tối đa 20 ký tự.
	tokenIDLength  = 10
	tokenMACLength = 10
	TokenLength    = tokenIDLength + tokenMACLength
)

var ErrUnknownToken = errors.New("unknown or expired selection token")

// TokenIssuer issues the one-time selection tokens that correlate a picker session with its callback.
type TokenIssuer struct {
	secret string
	store  storage.KV
	ttl    time.Duration
}

func NewTokenIssuer(secret string, store storage.KV, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: secret,
		store:  store,
		ttl:    ttl,
	}
}

func (t *TokenIssuer) mac(id string) string {
	return hmacutil.HexStringEncode(hmacutil.SHA256, t.secret, id)[:tokenMACLength]
}

func (t *TokenIssuer) Issue(ctx context.Context, scope string) (string, error) {
	id := util.GenerateSelectionID()
	if len(id) < tokenIDLength {
		return "", fmt.Errorf("generated selection id is too short")
	}
	id = id[:tokenIDLength]
	token := id + t.mac(id)

	if err := t.store.Set(ctx, util.ScopeKey(tokenKeyPrefix, token), []byte(scope), t.ttl); err != nil {
		return "", fmt.Errorf("failed to store selection token: %w", err)
	}

	return token, nil
}

func (t *TokenIssuer) Verify(token string) bool {
	if len(token) != TokenLength {
		return false
	}
	id, mac := token[:tokenIDLength], token[tokenIDLength:]
	return subtle.ConstantTimeCompare([]byte(mac), []byte(t.mac(id))) == 1
}

// Resolve returns the scope a token was issued for.
func (t *TokenIssuer) Resolve(ctx context.Context, token string) (string, error) {
	if !t.Verify(token) {
		return "", ErrUnknownToken
	}

	scope, err := t.store.Get(ctx, util.ScopeKey(tokenKeyPrefix, token))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrUnknownToken
		}
		return "", fmt.Errorf("failed to resolve selection token: %w", err)
	}

	return string(scope), nil
}

func (t *TokenIssuer) Revoke(ctx context.Context, token string) error {
	return t.store.Del(ctx, util.ScopeKey(tokenKeyPrefix, token))
}
