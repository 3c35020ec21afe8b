package handler

import (
	"time"

	"main/dto"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// GetActivityStats computes the dashboard numbers for the caller: the
// overall totals, the per-category score breakdown and the recent
// monthly series. Results are cached briefly in Redis.
func GetActivityStats(c *gin.Context, repo *repository.ActivitiesRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "missing or invalid token")
		return
	}
	uid := userID.(string)

	if services.GlobalStatsCache != nil {
		var cached dto.StatsResponse
		if hit, err := services.GlobalStatsCache.Get(uid, &cached); err == nil && hit {
			utils.TrackCacheOperation("stats", true)
			utils.Success(c, cached)
			return
		}
		utils.TrackCacheOperation("stats", false)
	}

	activities, err := repo.ListActivities(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.StatsResponse{
		Stats:     usecase.ComputeStats(activities, time.Now()),
		Breakdown: usecase.ComputeCategoryBreakdown(activities),
		Monthly:   usecase.ComputeMonthlySeries(activities),
	}

	if services.GlobalStatsCache != nil {
		if err := services.GlobalStatsCache.Set(uid, response); err != nil {
			utils.TrackError("cache", "stats_cache_set_failed")
		}
	}

	utils.Success(c, response)
}
