package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/freshcheck/api-go/models"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type accessClaims struct {
	UserID uint        `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.StandardClaims
}

// GenerateAccessToken signs a time-limited HS256 token carrying the user id and role.
func GenerateAccessToken(userID uint, role models.Role, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := accessClaims{
		UserID: userID,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
			Subject:   fmt.Sprintf("%d", userID),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseAccessToken verifies the signature and expiry of token and returns its identity.
func ParseAccessToken(tokenString string, secret []byte) (*UserClaims, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == 0 || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return &UserClaims{UserID: claims.UserID, Role: claims.Role}, nil
}

// GenerateRefreshToken returns a random opaque token and the hash that gets stored.
func GenerateRefreshToken(length int) (raw string, hash string, err error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = base64.URLEncoding.EncodeToString(buf)
	return raw, HashRefreshToken(raw), nil
}

// HashRefreshToken returns the hex sha256 of a raw refresh token.
func HashRefreshToken(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}
