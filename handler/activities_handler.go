package handler

import (
	"main/model"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// ActivitiesHandler serves the CRUD surface over the owner's activities.
type ActivitiesHandler struct {
	Service *usecase.ActivitiesService
}

func NewActivitiesHandler(repo *repository.ActivitiesRepo) *ActivitiesHandler {
	return &ActivitiesHandler{
		Service: &usecase.ActivitiesService{Repo: repo},
	}
}

// invalidateStats drops the cached dashboard stats after any mutation.
func invalidateStats(uid string) {
	if services.GlobalStatsCache != nil {
		if err := services.GlobalStatsCache.Invalidate(uid); err != nil {
			utils.TrackError("cache", "stats_invalidate_failed")
		}
	}
}

// ListActivities returns the owner's activities, optionally filtered by
// the query parameters.
func (h *ActivitiesHandler) ListActivities(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	var filter model.FilterSpec
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.BadRequest(c, "invalid filter parameters")
		return
	}

	activities, err := h.Service.List(c.Request.Context(), userID.(string), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{
		"activities": activities,
		"count":      len(activities),
	})
}

// GetActivity returns one activity by id.
func (h *ActivitiesHandler) GetActivity(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	activity, err := h.Service.Repo.GetActivity(c.Request.Context(), c.Param("id"), userID.(string))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"activity": activity})
}

// CreateActivity records a new activity for the caller.
func (h *ActivitiesHandler) CreateActivity(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}
	uid := userID.(string)

	var draft model.Activity
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.BadRequest(c, "invalid request")
		return
	}

	id, err := h.Service.CreateActivity(c.Request.Context(), uid, &draft)
	if err != nil {
		respondError(c, err)
		return
	}

	invalidateStats(uid)
	utils.Created(c, gin.H{"id": id})
}

// UpdateActivity merges the provided fields into an existing activity.
func (h *ActivitiesHandler) UpdateActivity(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}
	uid := userID.(string)

	var patch model.ActivityPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BadRequest(c, "invalid request")
		return
	}

	if err := h.Service.UpdateActivity(c.Request.Context(), uid, c.Param("id"), &patch); err != nil {
		respondError(c, err)
		return
	}

	invalidateStats(uid)
	utils.Success(c, gin.H{"message": "activity updated"})
}

// DeleteActivity removes an activity and its stored attachments.
func (h *ActivitiesHandler) DeleteActivity(c *gin.Context, blobStore *services.BlobStore) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}
	uid := userID.(string)
	id := c.Param("id")

	// Collect attachment paths before the document disappears. A missing
	// document still deletes cleanly below.
	if blobStore != nil {
		if activity, err := h.Service.Repo.GetActivity(c.Request.Context(), id, uid); err == nil {
			for _, ref := range activity.Attachments {
				if ref.Path != "" {
					blobStore.Delete(ref.Path)
				}
			}
		}
	}

	if err := h.Service.RemoveActivity(c.Request.Context(), uid, id); err != nil {
		respondError(c, err)
		return
	}

	invalidateStats(uid)
	utils.Success(c, gin.H{"message": "activity deleted"})
}
