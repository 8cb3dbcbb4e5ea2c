package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/campushub/room-booking-service/internal/models"
	"github.com/campushub/room-booking-service/internal/service"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// ActorContextKey is where JWTAuth stores the authenticated actor in the
// echo context.
const ActorContextKey = "actor"

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuth validates the bearer token and stashes the authenticated actor in
// the request context. Role checks stay in the service layer.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims := &Claims{}
			parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			})
			if err != nil || !parsed.Valid || claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ActorContextKey, service.Actor{
				ID:   claims.Subject,
				Role: models.ParseRole(claims.Role),
			})
			return next(c)
		}
	}
}

func ActorFrom(c echo.Context) service.Actor {
	actor, _ := c.Get(ActorContextKey).(service.Actor)
	return actor
}

// SignToken issues an HS256 token for the given identity. Used by tests and
// local tooling; the real identity provider lives outside this service.
func SignToken(secret, userID, role string, ttl time.Duration) (string, error) {
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
