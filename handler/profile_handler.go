package handler

import (
	"net/http"

	"main/dto"
	"main/model"
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// GetProfileHandler returns the caller's profile, creating it with
// defaults on first access.
func GetProfileHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}
	uid := userID.(string)

	defaults := &model.UserProfile{}
	userRepo := repository.GetUserRepo(utils.MongoClient)
	if user, err := userRepo.FindUser(c.Request.Context(), uid); err == nil && user != nil {
		defaults.Email = user.Email
	}

	profilesRepo := repository.GetProfilesRepo(utils.MongoClient)
	profile, err := profilesRepo.GetOrCreateProfile(c.Request.Context(), uid, defaults)
	if err != nil {
		respondError(c, err)
		return
	}

	links := map[string]dto.Link{
		"self":         {Href: "/api/profile", Method: http.MethodGet},
		"update":       {Href: "/api/profile", Method: http.MethodPatch},
		"score-target": {Href: "/api/profile/score-target", Method: http.MethodPut},
	}

	utils.Success(c, dto.ToProfileResponse(profile, links))
}

// UpdateProfileHandler merges the provided fields into the profile.
func UpdateProfileHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	var patch model.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BadRequest(c, "invalid request")
		return
	}

	profilesRepo := repository.GetProfilesRepo(utils.MongoClient)
	if err := profilesRepo.UpdateProfile(c.Request.Context(), userID.(string), &patch); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "profile updated"})
}

// UpdateScoreTargetHandler sets the personal score goal shown on the
// dashboard progress ring.
func UpdateScoreTargetHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	var req struct {
		ScoreTarget float64 `json:"score_target" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request")
		return
	}

	profilesRepo := repository.GetProfilesRepo(utils.MongoClient)
	if err := profilesRepo.UpdateScoreTarget(c.Request.Context(), userID.(string), req.ScoreTarget); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "score target updated", "score_target": req.ScoreTarget})
}

// UpdateDisplayNameHandler renames the profile.
func UpdateDisplayNameHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	var req struct {
		DisplayName string `json:"display_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request")
		return
	}

	profilesRepo := repository.GetProfilesRepo(utils.MongoClient)
	if err := profilesRepo.UpdateDisplayName(c.Request.Context(), userID.(string), req.DisplayName); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "display name updated"})
}
