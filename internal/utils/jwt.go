package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// Principal kinds carried in the "kind" claim.  A token only ever
// authenticates against the store matching its kind.
const (
	KindUser  = "user"
	KindAdmin = "admin"
)

// ErrInvalidToken covers every reason a bearer token is refused: bad
// signature, wrong algorithm, expiry or missing claims.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken is a signed JWT along with its expiry.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Claims is the verified content of an access token.
type Claims struct {
	Subject string // principal id
	Kind    string // KindUser or KindAdmin
}

// NewAccessToken builds and signs an HS256 JWT for a principal.  The token
// carries sub (principal id), kind, exp and iat and lives ttlDays days.
func NewAccessToken(secret, subject, kind string, ttlDays int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlDays) * 24 * time.Hour)
	claims := jwt.MapClaims{
		"sub":  subject,
		"kind": kind,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies signature and expiry and returns the claims.
// Only HMAC-signed tokens are accepted.
func ParseAccessToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	sub, _ := mc["sub"].(string)
	kind, _ := mc["kind"].(string)
	if sub == "" || (kind != KindUser && kind != KindAdmin) {
		return Claims{}, ErrInvalidToken
	}
	return Claims{Subject: sub, Kind: kind}, nil
}
