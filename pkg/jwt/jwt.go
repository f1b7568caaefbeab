package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrEmptyKey = errors.New("jwt signing key is empty")

type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issuer signs and checks HS256 tokens with a shared key.
type Issuer struct {
	key    []byte
	ttl    time.Duration
	issuer string
}

func NewIssuer(key string, ttl time.Duration, issuer string) (*Issuer, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	return &Issuer{key: []byte(key), ttl: ttl, issuer: issuer}, nil
}

func (i *Issuer) CreateToken(username string) (string, error) {
	now := time.Now()
	tokenLifeTime := now.Add(i.ttl)
	claims := &claims{
		username,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(tokenLifeTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    i.issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(i.key)
	if err != nil {
		return "", err
	}
	return ss, nil
}

func (i *Issuer) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (interface{}, error) {
		return i.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(i.issuer))
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*claims)
	if ok && token.Valid {
		return claims.Username, nil
	}
	return "", errors.New("invalid token claims")
}
