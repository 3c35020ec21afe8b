package services

import (
	"time"

	"main/utils"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken mints a short-lived access token for the user.
func GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iss":     utils.JWTIssuer,
		"iat":     now.Unix(),
		"exp":     now.Add(time.Duration(utils.JWTExpirationTime) * time.Second).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}

// GenerateRefreshToken mints a long-lived refresh token. The "type" claim
// keeps it from being accepted as an access token.
func GenerateRefreshToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"type":    "refresh",
		"iss":     utils.JWTIssuer,
		"iat":     now.Unix(),
		"exp":     now.Add(time.Duration(utils.RefreshTokenExpirationTime) * time.Second).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}
