package handler

import (
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetActiveSessions(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "user not authenticated")
		return
	}

	sessions, err := sessionRepo.GetUserActiveSessions(userID.(string))
	if err != nil {
		utils.InternalError(c, "failed to fetch sessions")
		return
	}

	utils.Success(c, gin.H{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

func LogoutAllSessions(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "user not authenticated")
		return
	}

	if err := sessionRepo.EndAllSessions(userID.(string)); err != nil {
		utils.InternalError(c, "failed to end all sessions")
		return
	}

	c.SetCookie("session_id", "", -1, "/", "", true, true)

	utils.Success(c, gin.H{
		"message": "successfully logged out of all sessions",
	})
}
