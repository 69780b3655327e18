package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSubject is returned for a well-signed token that names no user.
var ErrNoSubject = errors.New("token has no subject")

// SessionTokens issues and checks the HS256 bearer tokens handed out at
// login. The user id travels in the "sub" claim.
type SessionTokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionTokens builds a signer; a non-positive ttl means 24h.
func NewSessionTokens(secret, issuer string, ttl time.Duration) *SessionTokens {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionTokens{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

func (s *SessionTokens) Issue(userID string) (string, error) {
	if userID == "" {
		return "", ErrNoSubject
	}
	now := s.now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature, algorithm, expiry and issuer, and returns the user id.
func (s *SessionTokens) Verify(token string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	var claims jwt.RegisteredClaims
	if _, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...); err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", ErrNoSubject
	}
	return claims.Subject, nil
}
