package config

import "main/utils"

type StorageConfig struct {
	BlobPath      string // bbolt file backing the attachment store
	PublicBaseURL string // prefix of served attachment URLs
	MaxUploadSize int64  // bytes
}

func LoadStorageConfig() StorageConfig {
	return StorageConfig{
		BlobPath:      utils.GetEnvAsString("BLOB_STORE_PATH", "data/attachments.db"),
		PublicBaseURL: utils.GetEnvAsString("PUBLIC_FILES_URL", "/files"),
		MaxUploadSize: int64(utils.GetEnvAsUint64("MAX_UPLOAD_SIZE", 5*1024*1024)),
	}
}
