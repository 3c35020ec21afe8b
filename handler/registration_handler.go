package handler

import (
	"main/model"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func RegistrationHandler(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", "registration")
		utils.BadRequest(c, "invalid request")
		return
	}

	userService := &usecase.UserService{
		Repo: repository.GetUserRepo(utils.MongoClient),
	}

	user, err := userService.CreateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if model.IsValidation(err) {
			utils.TrackAuthAttempt("failure", "registration")
			utils.Conflict(c, err.Error())
			return
		}
		utils.TrackError("auth", "registration_failed")
		utils.InternalError(c, "failed to register user")
		return
	}

	token, err := services.GenerateToken(user.UserID)
	if err != nil {
		utils.TrackError("auth", "token_generation")
		utils.InternalError(c, "failed to generate token")
		return
	}

	refreshToken, err := services.GenerateRefreshToken(user.UserID)
	if err != nil {
		utils.TrackError("auth", "refresh_token_generation")
		utils.InternalError(c, "failed to generate refresh token")
		return
	}

	utils.TrackAuthAttempt("success", "registration")
	utils.Created(c, gin.H{
		"message": "user registered successfully",
		"token":   token,
		"refresh": refreshToken,
		"user": gin.H{
			"id":    user.UserID,
			"email": user.Email,
		},
	})
}
