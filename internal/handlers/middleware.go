package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/divyesh350/Skill-Swap-Platform/internal/model"
	"github.com/divyesh350/Skill-Swap-Platform/internal/token"
)

const principalKey = "principal"

// Principal is the authenticated caller attached to the request context by
// the bearer-token middleware.
type Principal struct {
	ID    model.AccountID
	Email string
	Role  string
}

func CurrentPrincipal(c echo.Context) *Principal {
	principal, _ := c.Get(principalKey).(*Principal)
	return principal
}

// Authenticate parses the bearer token and rejects with 401 when it is
// missing or expired and 403 when the signature does not check out.
func Authenticate(issuer *token.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			bearer := bearerToken(c)

			claims, err := issuer.VerifyAccess(bearer)
			if err != nil {
				switch {
				case errors.Is(err, token.ErrorTokenMissing):
					return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Access token required"})
				case errors.Is(err, token.ErrorTokenExpired):
					return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Token expired"})
				default:
					return c.JSON(http.StatusForbidden, errorResponse{Error: "Invalid token"})
				}
			}

			c.Set(principalKey, &Principal{
				ID:    claims.AccountID(),
				Email: claims.Email,
				Role:  claims.Role,
			})
			return next(c)
		}
	}
}

// RequireRole guards a route behind one of the given roles. It assumes
// Authenticate ran earlier in the chain.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := CurrentPrincipal(c)
			if principal != nil {
				for _, role := range roles {
					if principal.Role == role {
						return next(c)
					}
				}
			}
			return c.JSON(http.StatusForbidden, errorResponse{Error: "Forbidden: insufficient role"})
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
