package tokens

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every verification failure (bad
// signature, expired, malformed). Callers must not surface the exact
// failure mode to clients.
var ErrInvalidToken = errors.New("invalid token")

// ErrEmptyClaims is returned when Issue is called without any claims.
var ErrEmptyClaims = errors.New("empty claims")

// Issuer mints and verifies HMAC-signed identity tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer signing with secret; tokens expire after ttl.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs the supplied claims with HS256 and attaches iat/exp.
// The claims set is caller-defined; email is the only attribute the
// rest of the service relies on.
func (i *Issuer) Issue(claims map[string]interface{}) (string, error) {
	if len(claims) == 0 {
		return "", ErrEmptyClaims
	}
	now := time.Now()
	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	mc["iat"] = now.Unix()
	mc["exp"] = now.Add(i.ttl).Unix()
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	return jt.SignedString(i.secret)
}

// Verify validates signature and expiry and returns the decoded claims.
// All failures collapse into ErrInvalidToken.
func (i *Issuer) Verify(ctx context.Context, raw string) (map[string]interface{}, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return map[string]interface{}(mc), nil
}
