package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"qalam/internal/auth"
	"qalam/internal/models"
	"qalam/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token expiration time - 24 hours
const tokenExpiration = 24 * time.Hour

var jwtSecret []byte

// ConfigureJWT sets the signing secret. Must be called once at startup
// before any token is generated or validated.
func ConfigureJWT(secret string) {
	jwtSecret = []byte(secret)
}

// Claims represents the JWT claims for our application
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a new JWT token for the given user
func GenerateToken(user *models.User) (string, error) {
	expirationTime := time.Now().Add(tokenExpiration)

	claims := &Claims{
		UserID: user.ID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "qalam-api",
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateToken validates the provided JWT token
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtSecret, nil
		},
	)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// Define a custom context key type to avoid collisions
type contextKey string

const principalKey contextKey = "principal"

// SetPrincipalInContext saves the authenticated principal in the request context
func SetPrincipalInContext(ctx context.Context, p *auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipalFromContext retrieves the authenticated principal, or nil
// when the request carried no valid token.
func GetPrincipalFromContext(ctx context.Context) *auth.Principal {
	p, _ := ctx.Value(principalKey).(*auth.Principal)
	return p
}

func principalFromRequest(r *http.Request) (*auth.Principal, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errors.New("authorization header required")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, errors.New("invalid authorization format")
	}

	claims, err := ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return nil, err
	}
	if time.Now().After(claims.ExpiresAt.Time) {
		return nil, errors.New("token expired")
	}

	return &auth.Principal{
		ID:   claims.UserID,
		Role: models.ParseRole(claims.Role),
	}, nil
}

// RequireAuth wraps a handler that must only run with a valid token. The
// rejection uses the same error envelope the handlers emit.
func RequireAuth(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, err := principalFromRequest(r)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]string{
					"code":    utils.ErrUnauthorized,
					"message": "unauthorized: " + err.Error(),
				},
			})
			return
		}
		handler(w, r.WithContext(SetPrincipalInContext(r.Context(), principal)))
	}
}

// OptionalAuth attaches a principal when a valid token is present and
// passes the request through untouched otherwise. Used on public reads
// that personalize their response (the caller's own reaction).
func OptionalAuth(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if principal, err := principalFromRequest(r); err == nil {
			r = r.WithContext(SetPrincipalInContext(r.Context(), principal))
		}
		handler(w, r)
	}
}
