package handler

import (
	"fmt"
	"strings"

	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// LogoutHandler blacklists both tokens and ends the current session.
func LogoutHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		utils.Unauthorized(c, "missing or invalid token")
		return
	}
	accessToken := strings.TrimPrefix(authHeader, "Bearer ")

	_, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(utils.JWTSecretKey), nil
	})
	if err != nil {
		utils.Unauthorized(c, "missing or invalid token")
		return
	}

	refreshToken := c.GetHeader("Refresh-Token")
	if refreshToken == "" {
		utils.BadRequest(c, "missing refresh token")
		return
	}

	if err := services.BlacklistTokens(accessToken, refreshToken); err != nil {
		utils.TrackError("auth", "logout_blacklist_failed")
		utils.InternalError(c, "failed to logout")
		return
	}

	if sessionID, err := c.Cookie("session_id"); err == nil && sessionID != "" {
		if session, err := sessionRepo.GetSession(sessionID); err == nil && session != nil {
			session.IsActive = false
			sessionRepo.UpdateSession(session)
		}
		if services.GlobalSessionCache != nil {
			services.GlobalSessionCache.DeleteSession(sessionID)
		}
		c.SetCookie("session_id", "", -1, "/", "", true, true)
	}

	utils.Success(c, gin.H{"message": "successfully logged out"})
}
