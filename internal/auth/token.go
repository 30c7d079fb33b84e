package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed structure, expired. Callers get no finer detail.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the decoded payload of a verified token. Verify never checks
// TokenType itself; callers must compare it against the type they expect
// so a refresh token can't stand in for an access token (or vice versa).
type Claims struct {
	Subject   string
	Email     string
	TokenType string
}

// TokenCodec signs and verifies the access/refresh token pair with a
// process-wide HMAC secret. Stateless given the secret.
type TokenCodec struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenCodec(secret, algorithm string, accessTTL, refreshTTL time.Duration) (*TokenCodec, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not HMAC-based", algorithm)
	}
	return &TokenCodec{
		secret:     []byte(secret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// AccessTTL is exposed so handlers can report expires_in without reaching
// back into config.
func (c *TokenCodec) AccessTTL() time.Duration { return c.accessTTL }

// IssueAccess signs a short-lived access token carrying the user's id and
// email.
func (c *TokenCodec) IssueAccess(userID, email string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(c.accessTTL).Unix(),
		"type":  TokenTypeAccess,
	}
	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// IssueRefresh signs a longer-lived refresh token. No email claim.
func (c *TokenCodec) IssueRefresh(userID string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  userID,
		"iat":  now.Unix(),
		"exp":  now.Add(c.refreshTTL).Unix(),
		"type": TokenTypeRefresh,
	}
	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// Verify checks signature, structure and expiry, in that order of
// precedence, and returns ErrInvalidToken on any failure. Expiry is
// evaluated at the verifier's clock with no leeway: a token is dead the
// second its exp passes.
func (c *TokenCodec) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{c.method.Alg()}), jwt.WithExpirationRequired())
	if err != nil || token == nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := mapClaims["sub"].(string)
	email, _ := mapClaims["email"].(string)
	tokenType, _ := mapClaims["type"].(string)
	if sub == "" || tokenType == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{Subject: sub, Email: email, TokenType: tokenType}, nil
}
