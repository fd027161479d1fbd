// Package auth implements the shared-password session gate.
//
// Sessions are stateless: the cookie carries an HS256 JWT whose validity is
// recomputed from the signing secret and the current time on every request.
// There is no server-side session table, so logout only expires the client's
// cookie and a copied token stays valid until its exp claim.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"filegate/internal/config"
)

const tokenSubject = "filegate-session"

// Authenticator validates the shared password and issues/verifies session tokens.
type Authenticator struct {
	passwordDigest [sha256.Size]byte
	passwordHash   []byte
	secret         []byte
	ttl            time.Duration
	cookieName     string
	cookieSecure   bool
	now            func() time.Time
}

// New builds an Authenticator from validated settings.
func New(cfg config.AuthConfig) (*Authenticator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.TokenTTL <= 0 {
		return nil, errors.New("auth token ttl must be positive")
	}
	a := &Authenticator{
		secret:       []byte(cfg.TokenSecret),
		ttl:          cfg.TokenTTL,
		cookieName:   cfg.CookieName,
		cookieSecure: cfg.CookieSecure,
		now:          time.Now,
	}
	if a.cookieName == "" {
		a.cookieName = "auth_token"
	}
	if cfg.PasswordHash != "" {
		a.passwordHash = []byte(cfg.PasswordHash)
	} else {
		a.passwordDigest = sha256.Sum256([]byte(cfg.Password))
	}
	return a, nil
}

// CookieName is the name of the session cookie.
func (a *Authenticator) CookieName() string { return a.cookieName }

// ValidatePassword compares candidate with the configured password in constant time.
func (a *Authenticator) ValidatePassword(candidate string) bool {
	if candidate == "" {
		return false
	}
	if a.passwordHash != nil {
		return bcrypt.CompareHashAndPassword(a.passwordHash, []byte(candidate)) == nil
	}
	// Comparing digests keeps the comparison length-independent.
	got := sha256.Sum256([]byte(candidate))
	return subtle.ConstantTimeCompare(got[:], a.passwordDigest[:]) == 1
}

// GenerateToken issues a signed session token valid for the configured TTL.
func (a *Authenticator) GenerateToken() (string, error) {
	now := a.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   tokenSubject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	})
	return token.SignedString(a.secret)
}

// VerifyToken reports whether token was signed with the current secret and is
// inside its validity window. Malformed input yields false.
func (a *Authenticator) VerifyToken(token string) bool {
	if token == "" {
		return false
	}
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithSubject(tokenSubject),
		jwt.WithTimeFunc(a.now),
	)
	return err == nil && parsed.Valid
}

// VerifyAuth checks the session cookie carried by the request.
func (a *Authenticator) VerifyAuth(c *fiber.Ctx) bool {
	return a.VerifyToken(c.Cookies(a.cookieName))
}

// CreateCookie wraps token in a session cookie that expires with the token.
func (a *Authenticator) CreateCookie(token string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     a.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  a.now().Add(a.ttl),
		MaxAge:   int(a.ttl.Seconds()),
		Secure:   a.cookieSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

// CreateExpiredCookie returns a cookie with a past expiry so the client drops its session.
func (a *Authenticator) CreateExpiredCookie() *fiber.Cookie {
	return &fiber.Cookie{
		Name:     a.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0).UTC(),
		Secure:   a.cookieSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
