package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/amezghal/careergate/internal/app"
)

// Sentinel errors returned when decoding a session cookie.
var (
	// ErrNoSession means no session cookie was presented: the normal
	// logged-out condition, not a failure.
	ErrNoSession = errors.New("session: no cookie present")

	// ErrCorrupted means a cookie was presented but its record is unusable
	// (bad signature, expired, or a partial token/user pair). Callers must
	// treat the bearer as logged out and clear the cookie.
	ErrCorrupted = errors.New("session: cookie corrupted")
)

// Legacy cookie names from the previous portal frontend. They are never
// written, only expired on logout so stale clients converge on the single
// signed record.
var legacyCookieNames = []string{"AuthToken", "user", "Role"}

type cookieClaims struct {
	Token string `json:"tok"`
	User  User   `json:"usr"`
	jwt.RegisteredClaims
}

// CodecConfig bundles the settings needed to build a Codec.
type CodecConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
	Clock      func() time.Time
}

// Codec signs session records into a single cookie and verifies them back.
// One persisted record replaces the token/user/role cookie triple, so the
// route guard decodes the role from the same source of truth as everything
// else.
type Codec struct {
	secret     []byte
	cookieName string
	ttl        time.Duration
	secure     bool
	now        func() time.Time
}

// NewCodec constructs a Codec from configuration.
func NewCodec(cfg CodecConfig) (*Codec, error) {
	if cfg.Secret == "" {
		return nil, errors.New("session: secret must be provided")
	}

	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = "careergate_session"
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = app.DefaultSessionTTL
	}

	now := time.Now
	if cfg.Clock != nil {
		now = cfg.Clock
	}

	return &Codec{
		secret:     []byte(cfg.Secret),
		cookieName: cookieName,
		ttl:        ttl,
		secure:     cfg.Secure,
		now:        now,
	}, nil
}

// TTL exposes the configured session lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Encode signs the session into a compact cookie value.
func (c *Codec) Encode(s Session) (string, error) {
	if !s.LoggedIn() {
		return "", errors.New("session: refusing to encode a partial session")
	}

	now := c.now()
	claims := &cookieClaims{
		Token: s.Token,
		User:  s.User,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			Subject:   s.User.Email,
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("session: sign cookie: %w", err)
	}
	return signed, nil
}

// Decode verifies a cookie value and returns the session it carries.
// Partial records fail closed with ErrCorrupted.
func (c *Codec) Decode(value string) (Session, error) {
	if value == "" {
		return Session{}, ErrNoSession
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)

	var claims cookieClaims
	if _, err := parser.ParseWithClaims(value, &claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	}); err != nil {
		return Session{}, ErrCorrupted
	}

	sess := Session{
		ID:    claims.ID,
		Token: claims.Token,
		User:  claims.User,
	}
	sess.User.Role = ParseRole(string(claims.User.Role))

	if !sess.LoggedIn() {
		return Session{}, ErrCorrupted
	}
	return sess, nil
}

// FromRequest hydrates the session from the request's cookie jar.
func (c *Codec) FromRequest(r *http.Request) (Session, error) {
	cookie, err := r.Cookie(c.cookieName)
	if err != nil {
		return Session{}, ErrNoSession
	}
	return c.Decode(cookie.Value)
}

// Write persists the session as a signed cookie on the response.
func (c *Codec) Write(g *gin.Context, s Session) error {
	value, err := c.Encode(s)
	if err != nil {
		return err
	}

	g.SetSameSite(http.SameSiteLaxMode)
	g.SetCookie(c.cookieName, value, int(c.ttl.Seconds()), "/", "", c.secure, true)
	return nil
}

// Clear expires the session cookie along with the legacy cookie names.
func (c *Codec) Clear(g *gin.Context) {
	g.SetSameSite(http.SameSiteLaxMode)
	g.SetCookie(c.cookieName, "", -1, "/", "", c.secure, true)
	for _, name := range legacyCookieNames {
		g.SetCookie(name, "", -1, "/", "", c.secure, false)
	}
}
