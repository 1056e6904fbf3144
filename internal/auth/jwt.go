package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"resume-assist-go/internal/config"
)

var (
	ErrInvalidToken = errors.New("无效的Token")
	ErrTokenExpired = errors.New("Token已过期")
)

// Claims JWT负载，user_id之外沿用标准注册字段
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenManager 签发和校验用户访问令牌
type TokenManager struct {
	secret     []byte
	expiration time.Duration
}

func NewTokenManager(cfg *config.JWTConfig) *TokenManager {
	hours := cfg.ExpirationHours
	if hours <= 0 {
		hours = 24 * 7
	}
	return &TokenManager{
		secret:     []byte(cfg.Secret),
		expiration: time.Duration(hours) * time.Hour,
	}
}

// Issue 为指定用户签发HS256令牌
func (m *TokenManager) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "resume-assist",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("签发Token失败: %w", err)
	}
	return token, nil
}

// Verify 校验令牌并返回其中的用户ID
func (m *TokenManager) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("不支持的签名算法: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
