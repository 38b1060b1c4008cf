package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"conn-hub/internal/pkg/config"
	"conn-hub/pkg/constants"
	"conn-hub/pkg/responses"
)

// UserClaims 用户Claims
type UserClaims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	Type     string   `json:"type"` // access
	jwt.RegisteredClaims
}

// Manager 签发与校验 Token
type Manager struct {
	secret []byte
	expire time.Duration
	now    func() time.Time
}

// NewManager 创建 Manager
func NewManager(cfg *config.JWTConfig) *Manager {
	return &Manager{
		secret: []byte(cfg.Secret),
		expire: time.Duration(cfg.AccessTokenExpire) * time.Second,
		now:    time.Now,
	}
}

// GenerateAccessToken 生成访问Token
func (m *Manager) GenerateAccessToken(username string, roles []string) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("未配置 auth.jwt.secret")
	}
	now := m.now()
	claims := UserClaims{
		Username: username,
		Roles:    roles,
		Type:     constants.JWTTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expire)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken 解析并校验Token
func (m *Manager) ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名方法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, responses.ErrTokenExpired
		}
		return nil, responses.Wrap(401, "Invalid token", err)
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, responses.ErrInvalidToken
	}
	if claims.Type != constants.JWTTypeAccess {
		return nil, responses.ErrInvalidToken
	}
	return claims, nil
}
