package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/ratiba/core/auth"
)

var contextIdentityKey = "identity"

// authMiddleware resolves the request's bearer token into an auth.Identity
// and stashes it in the context. Requests without a valid identity never
// reach the handler.
func authMiddleware(resolver *auth.Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			idn, err := resolver.Resolve(ctx.Request().Context(), extractToken(ctx))
			if err != nil {
				return err
			}
			ctx.Set(contextIdentityKey, idn)
			return next(ctx)
		}
	}
}

// extractToken pulls the raw token out of the Authorization header.
func extractToken(ctx echo.Context) string {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func getContextIdentity(ctx echo.Context) (auth.Identity, error) {
	if idn, ok := ctx.Get(contextIdentityKey).(auth.Identity); ok {
		return idn, nil
	}
	return auth.Identity{}, auth.ErrUnauthenticated
}
