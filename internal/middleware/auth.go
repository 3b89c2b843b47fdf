package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/Dan9191/wealth-tracker/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

type contextKey int

const userIDKey contextKey = iota

// Claims is the payload of an access token. The subject holds the numeric user id.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// UserRegistrar records the user behind a verified token
type UserRegistrar interface {
	EnsureUser(ctx context.Context, userID int64, email string) error
}

// UserID returns the authenticated user id stored in the request context
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// WithUserID returns a copy of ctx carrying the user id
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// ParseToken verifies an HS256 token and returns the user id and e-mail it carries
func ParseToken(tokenString, secret string) (int64, string, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return 0, "", err
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, "", jwt.ErrTokenInvalidSubject
	}
	return userID, claims.Email, nil
}

// AuthMiddleware rejects requests without a valid bearer token and stores the user id in the context
func AuthMiddleware(cfg *config.Config, users UserRegistrar, log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			userID, email, err := ParseToken(tokenString, cfg.JWTSecret)
			if err != nil {
				log.Debugf("Rejected token: %v", err)
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			if err := users.EnsureUser(r.Context(), userID, email); err != nil {
				log.Errorf("Failed to register user %d: %v", userID, err)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
