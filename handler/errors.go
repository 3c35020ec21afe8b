package handler

import (
	"errors"

	"main/model"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto the HTTP response envelope.
// Validation problems are the caller's fault, missing resources are 404,
// everything else is an internal failure whose details stay server-side.
func respondError(c *gin.Context, err error) {
	var validationErr *model.ValidationError
	var notFoundErr *model.NotFoundError
	var uploadErr *model.UploadError

	switch {
	case errors.As(err, &validationErr):
		utils.BadRequest(c, validationErr.Error())
	case errors.As(err, &notFoundErr):
		utils.NotFound(c, notFoundErr.Error())
	case errors.As(err, &uploadErr):
		// A rejected file is the client's problem; a storage failure is ours.
		if uploadErr.Err == nil {
			utils.BadRequest(c, uploadErr.Error())
		} else {
			utils.TrackError("upload", "storage_failure")
			utils.InternalError(c, uploadErr.Error())
		}
	default:
		utils.TrackError("handler", "internal_error")
		utils.InternalError(c, "internal error")
	}
}
