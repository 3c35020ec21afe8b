package handler

import (
	"strings"
	"time"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// RefreshTokenHandler rotates the token pair. The old refresh token is
// blacklisted so it cannot be replayed.
func RefreshTokenHandler(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		utils.Unauthorized(c, "missing or invalid refresh token")
		return
	}
	refreshToken := strings.TrimPrefix(authHeader, "Bearer ")

	if services.IsTokenBlacklisted(refreshToken) {
		utils.TrackAuthAttempt("failure", "refresh")
		utils.Unauthorized(c, "refresh token has been invalidated")
		return
	}

	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(utils.JWTSecretKey), nil
	})
	if err != nil || !token.Valid {
		utils.TrackAuthAttempt("failure", "refresh")
		utils.Unauthorized(c, "invalid refresh token")
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["type"] != "refresh" || claims["user_id"] == nil {
		utils.TrackAuthAttempt("failure", "refresh")
		utils.Unauthorized(c, "invalid claims")
		return
	}

	if exp, ok := claims["exp"].(float64); ok && time.Unix(int64(exp), 0).Before(time.Now()) {
		utils.TrackAuthAttempt("failure", "refresh")
		utils.Unauthorized(c, "refresh token has expired")
		return
	}

	userID := claims["user_id"].(string)

	newAccessToken, err := services.GenerateToken(userID)
	if err != nil {
		utils.TrackError("auth", "token_generation")
		utils.InternalError(c, "failed to generate new access token")
		return
	}

	newRefreshToken, err := services.GenerateRefreshToken(userID)
	if err != nil {
		utils.TrackError("auth", "refresh_token_generation")
		utils.InternalError(c, "failed to generate new refresh token")
		return
	}

	if services.TokenBlacklist != nil {
		if err := services.BlacklistRefreshToken(refreshToken); err != nil {
			utils.TrackError("auth", "refresh_blacklist_failed")
		}
	}

	utils.TrackAuthAttempt("success", "refresh")
	utils.Success(c, gin.H{
		"token":   newAccessToken,
		"refresh": newRefreshToken,
	})
}
