package jwt

import (
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"time"
)

type JWT struct {
	key      []byte
	validity time.Duration
}

type User struct {
	Username string
	IssuedAt int64 // Unix second
	Expires  int64 // Unix second
}

type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func New(key string, validity time.Duration) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}
	if validity <= 0 {
		return nil, errors.New("validity must be positive")
	}

	return &JWT{key: []byte(key), validity: validity}, nil
}

func (j *JWT) ParseUser(tokenString string) (*User, error) {
	// 检查是否有效
	if len(tokenString) == 0 {
		return nil, errors.New("token string is empty")
	}

	// 映射字段
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(token *jwt.Token) (interface{}, error) {
		return j.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parse jwt failed: %w", err)
	}

	// 匹配内容
	if !token.Valid || c.Username == "" {
		return nil, fmt.Errorf("invalid token")
	}

	user := &User{
		Username: c.Username,
		Expires:  c.ExpiresAt.Unix(),
	}
	if c.IssuedAt != nil {
		user.IssuedAt = c.IssuedAt.Unix()
	}

	return user, nil
}

func (j *JWT) SignToken(user *User) (string, error) {
	// 创建声明
	c := claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Unix(user.IssuedAt, 0)),
			ExpiresAt: jwt.NewNumericDate(time.Unix(user.Expires, 0)),
		},
	}

	// 创建令牌
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)

	// 签名并返回
	return token.SignedString(j.key)
}

// Issue 为用户名签发固定有效期的令牌
func (j *JWT) Issue(username string) (string, error) {
	now := time.Now()
	return j.SignToken(&User{
		Username: username,
		IssuedAt: now.Unix(),
		Expires:  now.Add(j.validity).Unix(),
	})
}
