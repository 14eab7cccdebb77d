package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/guttosm/kit-service/internal/domain/dto"
	"github.com/guttosm/kit-service/internal/i18n"
)

// Operator roles recognised on mutating routes.
const (
	RoleAdmin     = "admin"
	RoleWarehouse = "warehouse"
	RolePlanner   = "planner"
)

// OperatorClaims are the claims of a token issued by the external identity provider.
type OperatorClaims struct {
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// HasAnyRole reports whether the operator holds one of roles.
func (c *OperatorClaims) HasAnyRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range c.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// JWTConfig configures token verification. Tokens are HMAC-SHA256 signed.
type JWTConfig struct {
	Secret []byte
	Issuer string
	Leeway time.Duration
}

// ParseOperatorToken verifies a signed token and returns its claims.
func ParseOperatorToken(tokenString string, cfg JWTConfig) (*OperatorClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	claims := &OperatorClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return cfg.Secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// JWTAuth requires a valid bearer token and stores its claims on the context.
func JWTAuth(cfg JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyTokenRequired)
			return
		}
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidToken)
			return
		}

		claims, err := ParseOperatorToken(strings.TrimSpace(tokenString), cfg)
		if err != nil {
			Logger(c).Debug().Err(err).Msg("Rejected operator token")
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidToken)
			return
		}

		c.Set(string(OperatorKey), claims)
		c.Next()
	}
}

// RequireRole lets through operators holding any of roles. Without claims on the
// context (authentication disabled) the request passes.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetOperator(c)
		if !ok {
			c.Next()
			return
		}
		if !claims.HasAnyRole(roles...) {
			Logger(c).Warn().
				Str("operator", claims.Subject).
				Strs("roles", claims.Roles).
				Strs("required", roles).
				Msg("Operator lacks role")
			abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, i18n.ErrKeyForbidden)
			return
		}
		c.Next()
	}
}

// GetOperator returns the claims set by JWTAuth.
func GetOperator(c *gin.Context) (*OperatorClaims, bool) {
	v, ok := c.Get(string(OperatorKey))
	if !ok {
		return nil, false
	}
	claims, ok := v.(*OperatorClaims)
	return claims, ok
}
