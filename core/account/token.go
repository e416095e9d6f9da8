package account

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/ratiba/core"
)

var (
	// errors
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenSignature = errors.New("invalid token signature")
	ErrTokenExpired   = errors.New("token expired")
)

// Claims represents the authorization claims transmitted via a JWT.
// Subject is the account username; Role is authoritative for the token's
// lifetime since roles are immutable after registration.
type Claims struct {
	jwt.StandardClaims
	Role Role `json:"role,omitempty"`
}

// TokenService issues and verifies signed session tokens. The signing key is
// established once at startup and injected here; the same service instance
// must verify what it issued.
type TokenService struct {
	issuer string
	key    []byte
	ttl    time.Duration
	parser jwt.Parser
}

func NewTokenService(conf *core.Config) *TokenService {
	return &TokenService{
		issuer: conf.AppName,
		key:    []byte(conf.SecretKey),
		ttl:    conf.Server.JWTExpirationDelta,
		// claims validation is skipped so that expiry is checked against the
		// caller-provided time instead of the parser's ambient clock
		parser: jwt.Parser{
			ValidMethods:         []string{jwt.SigningMethodHS256.Alg()},
			SkipClaimsValidation: true,
		},
	}
}

// TTL returns the lifetime of issued tokens.
func (ts *TokenService) TTL() time.Duration { return ts.ttl }

// Issue signs a token for username/role valid from now until now + TTL.
func (ts *TokenService) Issue(username string, role Role, now time.Time) (string, error) {
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    ts.issuer,
			Subject:   username,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ts.ttl).Unix(),
		},
		Role: role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(ts.key)
	if err != nil {
		return "", pkgerrors.Wrap(err, "signing token")
	}
	return ss, nil
}

// Verify parses and checks a raw token against the service key and the given
// time. On failure exactly one of ErrTokenMalformed, ErrTokenSignature or
// ErrTokenExpired is returned; the signature is always checked before expiry.
func (ts *TokenService) Verify(raw string, now time.Time) (Claims, error) {
	claims := new(Claims)
	if _, err := ts.parser.ParseWithClaims(raw, claims, ts.keyFunc); err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorSignatureInvalid != 0 {
			return Claims{}, ErrTokenSignature
		}
		return Claims{}, ErrTokenMalformed
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return Claims{}, ErrTokenMalformed
	}
	if now.Unix() >= claims.ExpiresAt {
		return Claims{}, ErrTokenExpired
	}
	return *claims, nil
}

func (ts *TokenService) keyFunc(*jwt.Token) (interface{}, error) {
	return ts.key, nil
}
