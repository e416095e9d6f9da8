package auth

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/account"
)

type accountGetterStub map[string]account.Account

func (s accountGetterStub) GetByUsername(ctx context.Context, username string) (account.Account, error) {
	if acct, ok := s[username]; ok {
		return acct, nil
	}
	return account.Account{}, account.ErrNotFound
}

func TestResolver_Resolve(t *testing.T) {
	tokens := account.NewTokenService(&core.Config{
		AppName:   "Ratiba",
		SecretKey: "secret",
		Server:    core.ServerConfig{JWTExpirationDelta: time.Hour},
	})
	accounts := accountGetterStub{
		"bob": {ID: 7, Username: "bob", Email: "bob@test.cd", Role: account.RoleParent},
	}
	resolver := NewResolver(tokens, accounts)

	now := time.Now()
	validToken, err := tokens.Issue("bob", account.RoleParent, now)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}
	// token whose subject was never registered
	ghostToken, err := tokens.Issue("casper", account.RoleParent, now)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}
	expiredToken, err := tokens.Issue("bob", account.RoleParent, now.Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		// every failure collapses into the same error
		{name: "no token", wantErr: ErrUnauthenticated},
		{name: "garbage token", token: "lmaooolol", wantErr: ErrUnauthenticated},
		{name: "expired token", token: expiredToken, wantErr: ErrUnauthenticated},
		{name: "unknown subject", token: ghostToken, wantErr: ErrUnauthenticated},
		{name: "valid token", token: validToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idn, err := resolver.Resolve(context.Background(), tt.token)
			if err != tt.wantErr {
				t.Fatalf("Resolve() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				want := Identity{AccountID: 7, Username: "bob", Role: account.RoleParent}
				if idn != want {
					t.Errorf("Resolve() = %+v, want %+v", idn, want)
				}
			}
		})
	}
}

func TestResolver_ResolveClockIsInjectable(t *testing.T) {
	tokens := account.NewTokenService(&core.Config{
		AppName:   "Ratiba",
		SecretKey: "secret",
		Server:    core.ServerConfig{JWTExpirationDelta: time.Hour},
	})
	accounts := accountGetterStub{
		"bob": {ID: 7, Username: "bob", Role: account.RoleParent},
	}
	resolver := NewResolver(tokens, accounts)

	token, err := tokens.Issue("bob", account.RoleParent, time.Now())
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	if _, err = resolver.Resolve(context.Background(), token); err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}

	// same token stops resolving once the clock passes its expiry
	resolver.nowFunc = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err = resolver.Resolve(context.Background(), token); err != ErrUnauthenticated {
		t.Errorf("Resolve() error = %v, want %v", err, ErrUnauthenticated)
	}
}
