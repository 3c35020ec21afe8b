package handler

import (
	"net/http"
	"time"

	"main/model"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// ExportActivitiesCSV streams the caller's activities as a CSV download.
// The same filter parameters as the list endpoint apply, so the export
// matches what the user sees.
func ExportActivitiesCSV(c *gin.Context, repo *repository.ActivitiesRepo) {
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

	activities, err := repo.ListActivities(c.Request.Context(), userID.(string))
	if err != nil {
		respondError(c, err)
		return
	}
	activities = usecase.ApplyFilter(activities, filter)

	csv := utils.EncodeActivitiesCSV(activities)
	filename := utils.ExportFilename(utils.DefaultExportBaseName, time.Now())

	utils.ExportsTotal.Inc()

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}
