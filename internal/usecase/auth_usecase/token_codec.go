package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// トークンの種類。access/refreshは鍵も期限も別
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

var (
	// 署名は正しいがexpを過ぎている
	ErrExpiredCredential = errors.New("credential expired")
	// 署名不正・形式不正・種類違い
	ErrMalformedCredential = errors.New("credential malformed")
)

// 検証済みトークンの中身
type Claims struct {
	CustomerID int64
	Email      string // refreshには入らない
	Kind       TokenKind
	ID         string // jti
	ExpiresAt  time.Time
}

type jwtClaims struct {
	Email string    `json:"email,omitempty"`
	Kind  TokenKind `json:"typ"`
	jwt.RegisteredClaims
}

// トークン発行の約束
type TokenIssuer interface {
	IssueAccessToken(customerID int64, email string) (token string, expiresAt time.Time, err error)
	IssueRefreshToken(customerID int64) (token string, expiresAt time.Time, err error)
}

// トークン検証の約束（middlewareもこれを使う）
type TokenVerifier interface {
	Verify(token string, kind TokenKind) (Claims, error)
}

type TokenCodec interface {
	TokenIssuer
	TokenVerifier
}

// JWT(HS256)の設定
type TokenConfig struct {
	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration
}

type JWTCodec struct {
	cfg   TokenConfig
	clock Clock
	idGen IDGenerator
}

// DI
func NewJWTCodec(cfg TokenConfig, clock Clock, idGen IDGenerator) *JWTCodec {
	return &JWTCodec{cfg: cfg, clock: clock, idGen: idGen}
}

func (c *JWTCodec) IssueAccessToken(customerID int64, email string) (string, time.Time, error) {
	return c.issue(customerID, email, TokenAccess)
}

// refreshはidだけ。jtiを毎回変えるので同じ秒に発行しても別トークンになる
func (c *JWTCodec) IssueRefreshToken(customerID int64) (string, time.Time, error) {
	return c.issue(customerID, "", TokenRefresh)
}

func (c *JWTCodec) issue(customerID int64, email string, kind TokenKind) (string, time.Time, error) {
	secret, ttl := c.keyFor(kind)

	now := c.clock.Now()
	exp := now.Add(ttl)

	claims := jwtClaims{
		Email: email,
		Kind:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(customerID, 10),
			ID:        c.idGen.NewID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, exp, nil
}

// Verifyは署名・exp・種類を確認する。
// 期限切れはErrExpiredCredential、それ以外はErrMalformedCredential。
func (c *JWTCodec) Verify(token string, kind TokenKind) (Claims, error) {
	secret, _ := c.keyFor(kind)

	var claims jwtClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredCredential
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}

	if claims.Kind != kind {
		return Claims{}, fmt.Errorf("%w: unexpected token type %q", ErrMalformedCredential, claims.Kind)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return Claims{}, fmt.Errorf("%w: invalid subject", ErrMalformedCredential)
	}

	return Claims{
		CustomerID: id,
		Email:      claims.Email,
		Kind:       claims.Kind,
		ID:         claims.ID,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}

func (c *JWTCodec) keyFor(kind TokenKind) ([]byte, time.Duration) {
	if kind == TokenRefresh {
		return []byte(c.cfg.RefreshSecret), c.cfg.RefreshTTL
	}
	return []byte(c.cfg.AccessSecret), c.cfg.AccessTTL
}

// HashTokenは台帳に保存するキー（SHA-256 hex）
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
