package services

import (
	"fmt"
	"sync"
	"time"

	"main/model"
	"main/utils"
)

// AllowedUploadTypes lists the MIME types accepted for attachments:
// images and PDFs only.
var AllowedUploadTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// UploadFile is one file of an upload batch, read fully into memory.
type UploadFile struct {
	Name string
	Type string
	Size int64
	Data []byte
}

// UploadService validates attachment files and stores them in the blob store.
type UploadService struct {
	Store   *BlobStore
	MaxSize int64
}

// ValidateFile checks MIME type and size before any storage I/O.
func (s *UploadService) ValidateFile(f UploadFile) error {
	if !AllowedUploadTypes[f.Type] {
		return &model.UploadError{Name: f.Name, Reason: "file type not allowed (images and PDF only)"}
	}
	if f.Size > s.MaxSize {
		maxMB := s.MaxSize / (1024 * 1024)
		return &model.UploadError{Name: f.Name, Reason: fmt.Sprintf("file exceeds %dMB limit", maxMB)}
	}
	return nil
}

// BuildStoragePath lays out blobs as {uid}/activities/{activityID}/{ts}_{name}.
// An empty activityID gets a temporary segment, matching uploads that happen
// before the activity document exists.
func BuildStoragePath(uid, activityID, filename string, now time.Time) string {
	if activityID == "" {
		activityID = fmt.Sprintf("temp_%d", now.Unix())
	}
	return fmt.Sprintf("%s/activities/%s/%d_%s", uid, activityID, now.UnixMilli(), filename)
}

// UploadAll stores every file of a batch concurrently and joins the results.
// The batch is all-or-nothing: if any file fails validation or storage, the
// already-stored blobs of this batch are deleted and the first error is
// returned. On success the attachment refs are in input order.
func (s *UploadService) UploadAll(uid, activityID string, files []UploadFile) ([]model.AttachmentRef, error) {
	if len(files) == 0 {
		return []model.AttachmentRef{}, nil
	}

	for _, f := range files {
		if err := s.ValidateFile(f); err != nil {
			utils.UploadsTotal.WithLabelValues("rejected").Inc()
			return nil, err
		}
	}

	now := time.Now()
	refs := make([]model.AttachmentRef, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f UploadFile) {
			defer wg.Done()

			path := BuildStoragePath(uid, activityID, f.Name, now)
			meta := BlobMeta{Name: f.Name, Type: f.Type, Size: f.Size, UploadedAt: now}

			url, err := s.Store.Put(path, f.Data, meta)
			if err != nil {
				errs[i] = &model.UploadError{Name: f.Name, Reason: "storage write failed", Err: err}
				return
			}

			refs[i] = model.AttachmentRef{
				Name:       f.Name,
				Type:       f.Type,
				Size:       f.Size,
				URL:        url,
				Path:       path,
				UploadedAt: now,
			}
		}(i, f)
	}
	wg.Wait()

	for i, err := range errs {
		if err == nil {
			continue
		}
		// Roll back the blobs that did get stored
		for j, ref := range refs {
			if errs[j] == nil && ref.Path != "" {
				s.Store.Delete(ref.Path)
			}
		}
		utils.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, errs[i]
	}

	utils.UploadsTotal.WithLabelValues("stored").Inc()
	return refs, nil
}
