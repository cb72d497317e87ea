package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// JWTMaker signs and verifies HS256 caller tokens. Tokens are issued by the
// identity provider upstream; CreateToken exists for tooling and tests.
type JWTMaker struct {
	secret []byte
}

func NewJWTMaker(secret string) *JWTMaker {
	return &JWTMaker{secret: []byte(secret)}
}

func (m *JWTMaker) CreateToken(claims *CallerClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (m *JWTMaker) VerifyToken(tokenStr string) (*CallerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CallerClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*CallerClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenUnverifiable
}
