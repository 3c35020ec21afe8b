package middleware

import (
	"time"

	"main/model"
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Sessions idle for longer than this are deactivated on next touch.
const sessionInactivityTimeout = 48 * time.Hour

// SessionMiddleware resolves the session cookie and refreshes the
// session's activity timestamp. Requests without a valid session pass
// through untouched; token auth still applies separately.
func SessionMiddleware(sessionRepo *repository.SessionRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie("session_id")
		if err != nil {
			c.Next()
			return
		}

		session, err := sessionRepo.GetSession(sessionID)
		if err != nil || session == nil || !session.IsActive {
			c.SetCookie("session_id", "", -1, "/", "", true, true)
			c.Next()
			return
		}

		if time.Since(session.LastActivityAt) > sessionInactivityTimeout {
			session.IsActive = false
			sessionRepo.UpdateSession(session)
			c.SetCookie("session_id", "", -1, "/", "", true, true)
			c.Next()
			return
		}

		session.LastActivityAt = time.Now()
		sessionRepo.UpdateSession(session)

		c.Set("session", session)
		c.Next()
	}
}

// CreateSession records a new device session for the user and sets the
// session cookie on the response.
func CreateSession(c *gin.Context, userID string, sessionRepo *repository.SessionRepo) error {
	userAgent := c.Request.UserAgent()
	browser, os, device := utils.ParseUserAgent(userAgent)

	session := &model.Session{
		SessionID:      uuid.New().String(),
		UserID:         userID,
		DisplayName:    utils.GenerateSessionName(userAgent),
		DeviceInfo:     browser + " on " + os + " (" + device + ")",
		IPAddress:      c.ClientIP(),
		CreatedAt:      time.Now(),
		ExpiresAt:      time.Now().Add(24 * time.Hour),
		LastActivityAt: time.Now(),
		IsActive:       true,
	}

	if err := sessionRepo.CreateSession(session); err != nil {
		return err
	}

	c.SetCookie(
		"session_id",
		session.SessionID,
		int(24*time.Hour.Seconds()),
		"/",
		"",
		true,
		true,
	)

	return nil
}
