// Package jwtmw はHS256のJWT発行とginの認証ミドルウェアを提供します。
package jwtmw

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// EnvKeyJWTSecret は署名鍵を保持する環境変数です。
	EnvKeyJWTSecret = "JWT_SECRET"
	// DefaultExpiration は管理トークンの有効期間です。
	DefaultExpiration = 12 * time.Hour
	// Issuer は発行するトークンのissです。検証時も一致を要求します。
	Issuer = "twstock"
)

// ErrMissingSecret は署名鍵が設定されていないことを示します。
var ErrMissingSecret = errors.New("jwt secret is not configured")

// Claims は管理トークンのペイロードです。
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Generator はsubjectとroleを載せたトークンを発行します。
type Generator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewGenerator は署名鍵と有効期間からGeneratorを作ります。ttlが0以下なら既定値です。
func NewGenerator(secret string, ttl time.Duration) *Generator {
	if ttl <= 0 {
		ttl = DefaultExpiration
	}
	return &Generator{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// SecretFromEnv はJWT_SECRETを返します。未設定ならErrMissingSecretです。
func SecretFromEnv() (string, error) {
	if s := os.Getenv(EnvKeyJWTSecret); s != "" {
		return s, nil
	}
	return "", ErrMissingSecret
}

// GenerateToken は署名済みトークンを返します。
func (g *Generator) GenerateToken(subject, role string) (string, error) {
	if len(g.secret) == 0 {
		return "", ErrMissingSecret
	}
	now := g.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
