package auth

import (
	"context"
	"errors"
	"time"

	"github.com/trezcool/ratiba/core/account"
)

var (
	// errors
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("permission denied")
)

// Identity is the acting identity resolved from a verified token for the
// duration of one request. It is immutable after construction and passed
// explicitly; authorization is a pure function of it.
type Identity struct {
	AccountID int
	Username  string
	Role      account.Role
}

// AccountGetter is the single persistence call the resolver needs.
type AccountGetter interface {
	GetByUsername(ctx context.Context, username string) (account.Account, error)
}

// Resolver derives an Identity from a bearer token: verify the token, then
// load the live account so that tokens for deleted accounts stop working.
type Resolver struct {
	tokens   *account.TokenService
	accounts AccountGetter
	nowFunc  func() time.Time // mockable
}

func NewResolver(tokens *account.TokenService, accounts AccountGetter) *Resolver {
	return &Resolver{tokens: tokens, accounts: accounts, nowFunc: time.Now}
}

// Resolve returns the Identity behind raw. Every failure mode - missing
// token, bad signature, expiry, unknown subject - collapses into
// ErrUnauthenticated so that nothing leaks about which check failed.
func (r *Resolver) Resolve(ctx context.Context, raw string) (Identity, error) {
	if raw == "" {
		return Identity{}, ErrUnauthenticated
	}
	claims, err := r.tokens.Verify(raw, r.nowFunc())
	if err != nil {
		return Identity{}, ErrUnauthenticated
	}
	acct, err := r.accounts.GetByUsername(ctx, claims.Subject)
	if err != nil {
		return Identity{}, ErrUnauthenticated
	}
	return Identity{AccountID: acct.ID, Username: acct.Username, Role: claims.Role}, nil
}
