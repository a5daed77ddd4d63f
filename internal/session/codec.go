package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName carries the signed session token.
const CookieName = "quizd_session"

// ErrBadToken covers missing, malformed, tampered, and expired tokens.
// Callers respond by minting a fresh session, never by failing the request.
var ErrBadToken = errors.New("invalid session token")

// Codec signs and verifies the session-ID cookie. The cookie only carries
// the ID; the state itself lives in a Store. Signing keeps one session's
// state from being opened under another session's ID by cookie editing.
type Codec struct {
	hmac []byte
	ttl  time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{hmac: []byte(secret), ttl: ttl}
}

// NewID mints a fresh session ID.
func NewID() string { return uuid.NewString() }

type claims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// Issue signs a token for the given session ID.
func (c *Codec) Issue(sid string) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "quizd",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})
	return t.SignedString(c.hmac)
}

// Parse verifies a token and returns the session ID it carries.
func (c *Codec) Parse(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		return c.hmac, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrBadToken
	}
	cl, ok := token.Claims.(*claims)
	if !ok || cl.SID == "" {
		return "", ErrBadToken
	}
	return cl.SID, nil
}

// ReadCookie extracts the session ID from the request cookie, if present
// and valid.
func (c *Codec) ReadCookie(r *http.Request) (string, bool) {
	ck, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	sid, err := c.Parse(ck.Value)
	if err != nil {
		return "", false
	}
	return sid, true
}

// WriteCookie issues a token for sid and sets the session cookie.
func (c *Codec) WriteCookie(w http.ResponseWriter, sid string) error {
	tok, err := c.Issue(sid)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(c.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearCookie removes the session cookie.
func (c *Codec) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
