package handler

import (
	"io"
	"net/http"
	"strings"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// UploadAttachmentsHandler accepts a multipart batch of files and stores
// them for the caller. The batch is all-or-nothing; on success the
// attachment refs come back in input order, ready to be patched onto an
// activity.
func UploadAttachmentsHandler(c *gin.Context, uploadService *services.UploadService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequest(c, "invalid multipart form")
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		utils.BadRequest(c, "no files provided")
		return
	}

	activityID := c.PostForm("activity_id")

	files := make([]services.UploadFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			utils.InternalError(c, "failed to read uploaded file")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			utils.InternalError(c, "failed to read uploaded file")
			return
		}

		files = append(files, services.UploadFile{
			Name: fh.Filename,
			Type: fh.Header.Get("Content-Type"),
			Size: fh.Size,
			Data: data,
		})
	}

	refs, err := uploadService.UploadAll(userID.(string), activityID, files)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, gin.H{"attachments": refs})
}

// ServeAttachmentHandler serves stored attachment bytes by storage path.
// Paths are namespaced by user id, and only the owner may read them.
func ServeAttachmentHandler(c *gin.Context, blobStore *services.BlobStore) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" {
		utils.BadRequest(c, "missing file path")
		return
	}
	if !strings.HasPrefix(path, userID.(string)+"/") {
		utils.Forbidden(c, "access denied")
		return
	}

	data, meta, err := blobStore.Get(path)
	if err != nil {
		utils.NotFound(c, "file not found")
		return
	}

	contentType := meta.Type
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", `inline; filename="`+meta.Name+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// DeleteAttachmentHandler removes a stored blob. Deleting an absent path
// succeeds.
func DeleteAttachmentHandler(c *gin.Context, blobStore *services.BlobStore) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	path := strings.TrimPrefix(c.Param("path"), "/")
	if !strings.HasPrefix(path, userID.(string)+"/") {
		utils.Forbidden(c, "access denied")
		return
	}

	if err := blobStore.Delete(path); err != nil {
		utils.InternalError(c, "failed to delete file")
		return
	}

	utils.Success(c, gin.H{"message": "file deleted"})
}
