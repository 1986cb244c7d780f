package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is the fixed session lifetime. There is no refresh or rotation;
// clients re-authenticate after expiry.
const TokenTTL = time.Hour

const tokenIssuerName = "postly"

// Verification failures are distinguishable for logging but are collapsed
// to a single outward signal by the auth gate.
var (
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature mismatch")
)

// Claims are the identity assertions embedded in a session token.
type Claims struct {
	Email  string `json:"email"`
	UserID uint   `json:"userid"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies session tokens with an HMAC secret.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewTokenIssuer returns a TokenIssuer using the given signing secret.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// NewTokenIssuerAt returns a TokenIssuer whose clock is pinned to the given
// instant. Tokens it issues carry timestamps relative to that instant, which
// lets tests mint already-expired sessions.
func NewTokenIssuerAt(secret string, at time.Time) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: func() time.Time { return at }}
}

// Issue produces a signed token asserting {email, userID}, expiring exactly
// TokenTTL from now. Each token carries a unique jti so individual sessions
// are distinguishable in logs.
func (i *TokenIssuer) Issue(email string, userID uint) (string, error) {
	now := i.now()
	claims := &Claims{
		Email:  email,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuerName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify checks the signature and expiry of a token and returns its claims.
// Failures map to ErrTokenExpired, ErrTokenSignatureInvalid or
// ErrTokenMalformed.
func (i *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return i.now() }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
