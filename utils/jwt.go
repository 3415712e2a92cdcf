package utils

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	redis "github.com/redis/go-redis/v9"
)

// NewRedisClient builds the optional Redis client used for token revocation
// and admin login lockout. It returns nil when REDIS_ADDR is not configured
// or unreachable; every call site falls back to in-memory behavior on a nil
// client. The handle is constructed in main and injected like the DB handle.
func NewRedisClient() *redis.Client {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil
	}
	addr = strings.ReplaceAll(addr, " ", "")
	opts := &redis.Options{Addr: addr}
	if p := os.Getenv("REDIS_PASS"); p != "" {
		opts.Password = p
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		var dbn int
		_, _ = fmt.Sscanf(dbStr, "%d", &dbn)
		opts.DB = dbn
	}
	rc := redis.NewClient(opts)
	if err := rc.Ping(context.Background()).Err(); err != nil {
		fmt.Printf("warning: redis ping failed: %v\n", err)
		return nil
	}
	return rc
}

type contextKey string

const UserIDKey = contextKey("userID")
const SubjectKey = contextKey("subject")
const DisplayNameKey = contextKey("displayName")
const RequestIDKey = contextKey("requestID")

// ValidateAccessToken parses and validates a bearer token. User tokens are
// issued by the external identity provider with the shared HS256 secret; the
// backend only ever verifies them. Registered claims (exp, nbf, aud, iss) and
// the jti revocation list are checked explicitly. rdb may be nil, which
// disables the revocation check.
func ValidateAccessToken(tokenStr string, rdb *redis.Client) (jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	token, err := jwt.ParseWithClaims(tokenStr, jwt.MapClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Require exact HS256 to avoid algorithm confusion.
		if t.Method == nil || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	now := time.Now()
	if expRaw, ok := claims["exp"]; ok {
		if exp, ok := expRaw.(float64); ok && now.Unix() > int64(exp) {
			return nil, errors.New("token expired")
		}
	}
	if nbfRaw, ok := claims["nbf"]; ok {
		if nbf, ok := nbfRaw.(float64); ok && now.Unix() < int64(nbf) {
			return nil, errors.New("token not yet valid")
		}
	}

	if audEnv := os.Getenv("JWT_AUD"); audEnv != "" {
		audRaw, ok := claims["aud"]
		if !ok {
			return nil, errors.New("aud claim missing")
		}
		switch v := audRaw.(type) {
		case string:
			if v != audEnv {
				return nil, errors.New("invalid audience")
			}
		case []interface{}:
			found := false
			for _, a := range v {
				if s, ok := a.(string); ok && s == audEnv {
					found = true
					break
				}
			}
			if !found {
				return nil, errors.New("invalid audience")
			}
		default:
			return nil, errors.New("invalid audience claim format")
		}
	}
	if issEnv := os.Getenv("JWT_ISS"); issEnv != "" {
		if issRaw, ok := claims["iss"].(string); !ok || issRaw != issEnv {
			return nil, errors.New("invalid issuer")
		}
	}

	// jti revocation via Redis blacklist. Redis outages must not lock every
	// caller out, so lookup errors are ignored.
	if jti, ok := claims["jti"].(string); ok && jti != "" && rdb != nil {
		res, err := rdb.Get(context.Background(), "jwt:blacklist:"+jti).Result()
		if err == nil && res == "1" {
			return nil, errors.New("token revoked")
		}
	}

	return claims, nil
}

// GenerateAdminJWT issues a short-lived admin console token. This is the only
// token the backend signs itself; user tokens come from the identity provider.
func GenerateAdminJWT(id int64, username string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	now := time.Now()
	jti, err := generateJTI(32)
	if err != nil {
		return "", err
	}
	claims := jwt.MapClaims{
		"id":       id,
		"username": username,
		"role":     "admin",
		"exp":      now.Add(6 * time.Hour).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      jti,
		"aud":      os.Getenv("JWT_AUD"),
		"iss":      os.Getenv("JWT_ISS"),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// RevokeJTI blacklists a token id for ttl. Fails without a revocation store.
func RevokeJTI(rdb *redis.Client, jti string, ttl time.Duration) error {
	if jti == "" {
		return errors.New("empty jti")
	}
	if rdb == nil {
		return errors.New("no revocation store configured")
	}
	return rdb.Set(context.Background(), "jwt:blacklist:"+jti, "1", ttl).Err()
}

// generateJTI creates a URL-safe random identifier used as JWT ID.
func generateJTI(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	const hex = "0123456789abcdef"
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = hex[int(b[i])%len(hex)]
	}
	return string(out), nil
}

// GetUserID returns the resolved profile id set by the auth middleware.
func GetUserID(r *http.Request) (uint, bool) {
	v := r.Context().Value(UserIDKey)
	id, ok := v.(uint)
	return id, ok
}

// GetSubject returns the identity-provider subject set by the auth middleware.
func GetSubject(r *http.Request) (string, bool) {
	v := r.Context().Value(SubjectKey)
	s, ok := v.(string)
	return s, ok
}

// GetDisplayName returns the display name claim, if the token carried one.
func GetDisplayName(r *http.Request) string {
	if s, ok := r.Context().Value(DisplayNameKey).(string); ok {
		return s
	}
	return ""
}
