// internal/pkg/auth/jwt.go
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "nest-api-demo"

// GenerateFormToken 为指定页面 ID 生成一个表单令牌，用于校验页面上的 POST 提交
func GenerateFormToken(viewID string, secretKey []byte, ttl time.Duration) (string, error) {
	if len(secretKey) == 0 {
		return "", fmt.Errorf("表单令牌密钥不能为空")
	}
	if viewID == "" {
		return "", fmt.Errorf("页面ID不能为空")
	}

	now := time.Now()
	claims := FormClaims{
		ViewID: viewID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ParseFormToken 解析表单令牌
func ParseFormToken(tokenStr string, secretKey []byte) (*FormClaims, error) {
	if len(secretKey) == 0 {
		return nil, fmt.Errorf("表单令牌密钥不能为空")
	}

	claims := &FormClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secretKey, nil
	}, jwt.WithIssuer(issuer))

	if err != nil {
		return nil, fmt.Errorf("解析表单令牌失败: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("无效或过期的表单令牌")
	}

	return claims, nil
}

// VerifyFormToken 校验令牌有效且属于指定的页面 ID
func VerifyFormToken(tokenStr, viewID string, secretKey []byte) error {
	claims, err := ParseFormToken(tokenStr, secretKey)
	if err != nil {
		return err
	}
	if claims.ViewID != viewID {
		return fmt.Errorf("表单令牌与当前页面不匹配")
	}
	return nil
}
