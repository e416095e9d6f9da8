package account

import (
	"testing"
	"time"

	"github.com/trezcool/ratiba/core"
)

func newTestTokenService(key string, ttl time.Duration) *TokenService {
	return NewTokenService(&core.Config{
		AppName:   "Ratiba",
		SecretKey: key,
		Server:    core.ServerConfig{JWTExpirationDelta: ttl},
	})
}

func TestTokenService_IssueVerify(t *testing.T) {
	svc := newTestTokenService("secret", 24*time.Hour)
	otherSvc := newTestTokenService("other-secret", 24*time.Hour)

	now := time.Date(2021, 3, 14, 9, 26, 53, 0, time.UTC)

	validToken, err := svc.Issue("bob", RoleParent, now)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}
	foreignToken, err := otherSvc.Issue("bob", RoleParent, now)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}
	noSubjectToken, err := svc.Issue("", RoleParent, now)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}
	badRoleToken, err := svc.Issue("bob", Role("SUPERUSER"), now)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	tests := []struct {
		name    string
		token   string
		now     time.Time
		wantErr error
	}{
		{name: "garbage", token: "lmaooolol", now: now, wantErr: ErrTokenMalformed},
		{name: "empty", token: "", now: now, wantErr: ErrTokenMalformed},
		{name: "wrong key", token: foreignToken, now: now, wantErr: ErrTokenSignature},
		{name: "tampered signature", token: tamper(t, validToken), now: now, wantErr: ErrTokenSignature},
		{name: "no subject", token: noSubjectToken, now: now, wantErr: ErrTokenMalformed},
		{name: "unknown role", token: badRoleToken, now: now, wantErr: ErrTokenMalformed},
		{name: "expired", token: validToken, now: now.Add(svc.TTL()), wantErr: ErrTokenExpired},
		{name: "expired long ago", token: validToken, now: now.Add(72 * time.Hour), wantErr: ErrTokenExpired},
		{name: "valid just before expiry", token: validToken, now: now.Add(svc.TTL() - time.Second)},
		{name: "valid", token: validToken, now: now},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Verify(tt.token, tt.now)
			if err != tt.wantErr {
				t.Fatalf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if claims.Subject != "bob" {
					t.Errorf("Verify() subject = %q, want %q", claims.Subject, "bob")
				}
				if claims.Role != RoleParent {
					t.Errorf("Verify() role = %q, want %q", claims.Role, RoleParent)
				}
			}
		})
	}
}

func TestTokenService_VerifyChecksSignatureBeforeExpiry(t *testing.T) {
	svc := newTestTokenService("secret", time.Hour)
	otherSvc := newTestTokenService("other-secret", time.Hour)

	now := time.Now()
	expiredForeign, err := otherSvc.Issue("bob", RoleParent, now.Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	// a token that is both expired and forged must fail on the signature
	if _, err = svc.Verify(expiredForeign, now); err != ErrTokenSignature {
		t.Errorf("Verify() error = %v, want %v", err, ErrTokenSignature)
	}
}

// tamper flips a byte in the token's signature segment.
func tamper(t *testing.T, token string) string {
	b := []byte(token)
	dots := 0
	for i, c := range b {
		if c == '.' {
			dots++
			continue
		}
		if dots == 2 {
			if b[i] != 'A' {
				b[i] = 'A'
			} else {
				b[i] = 'B'
			}
			return string(b)
		}
	}
	t.Fatal("tamper() failed: no signature segment")
	return ""
}
