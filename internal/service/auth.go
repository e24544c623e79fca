package service

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService 主控台登入：帳號與 bcrypt 雜湊來自設定檔
type AuthService struct {
	Username     string
	PasswordHash []byte
	JWTSecret    []byte
	TTL          time.Duration
	now          func() time.Time
}

func NewAuthService(username, passwordHash, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &AuthService{
		Username:     username,
		PasswordHash: []byte(passwordHash),
		JWTSecret:    []byte(secret),
		TTL:          ttl,
		now:          time.Now,
	}
}

// Login 驗證並回傳 Token
func (s *AuthService) Login(username, password string) (string, error) {
	if len(s.PasswordHash) == 0 {
		return "", ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.Username)) != 1 {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.PasswordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
	})
	return token.SignedString(s.JWTSecret)
}

// Parse 驗證 Token 並回傳 subject
func (s *AuthService) Parse(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return s.JWTSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}
