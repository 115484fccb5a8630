package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// PartyClaims binds a bearer token to one party identity. The identity
// is treated as proven by whoever issued the token; the core performs no
// further authentication.
type PartyClaims struct {
	PartyID int64 `json:"party_id"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	Generate(partyID int64, ttl time.Duration) (string, error)
	Validate(tokenString string) (*PartyClaims, error)
}

type tokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) TokenManager {
	return &tokenManager{secret: []byte(secret)}
}

func (m *tokenManager) Generate(partyID int64, ttl time.Duration) (string, error) {
	claims := PartyClaims{
		PartyID: partyID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(partyID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "rentledger",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) Validate(tokenString string) (*PartyClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &PartyClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*PartyClaims)
	if !ok || !token.Valid || claims.PartyID <= 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
