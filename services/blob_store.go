package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	filesBucket = []byte("files")
	metaBucket  = []byte("meta")
)

// BlobMeta is the stored metadata of one blob.
type BlobMeta struct {
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// BlobStore persists attachment bytes in a local BoltDB file, keyed by
// storage path. It stands in for a remote object store: Put returns a
// durable URL under the configured public prefix.
type BlobStore struct {
	db      *bolt.DB
	baseURL string
}

// OpenBlobStore initializes the BoltDB file and ensures both buckets exist.
func OpenBlobStore(path, baseURL string) (*BlobStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(filesBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(metaBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &BlobStore{db: db, baseURL: baseURL}, nil
}

// Put stores a blob under the given storage path and returns its URL.
func (s *BlobStore) Put(path string, data []byte, meta BlobMeta) (string, error) {
	if s == nil || s.db == nil {
		return "", bolt.ErrDatabaseNotOpen
	}
	if path == "" {
		return "", fmt.Errorf("blob path cannot be empty")
	}

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return "", err
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(filesBucket).Put([]byte(path), data); err != nil {
			return err
		}
		return tx.Bucket(metaBucket).Put([]byte(path), metaJSON)
	})
	if err != nil {
		return "", err
	}

	return s.baseURL + "/" + path, nil
}

// Get returns the blob bytes and metadata for a storage path.
func (s *BlobStore) Get(path string) ([]byte, *BlobMeta, error) {
	if s == nil || s.db == nil {
		return nil, nil, bolt.ErrDatabaseNotOpen
	}

	var data []byte
	var meta BlobMeta
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(filesBucket).Get([]byte(path))
		if v == nil {
			return fmt.Errorf("blob %s not found", path)
		}
		data = append([]byte(nil), v...)

		if m := tx.Bucket(metaBucket).Get([]byte(path)); m != nil {
			if err := json.Unmarshal(m, &meta); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return data, &meta, nil
}

// Delete removes a blob. Deleting an absent path is a no-op.
func (s *BlobStore) Delete(path string) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(filesBucket).Delete([]byte(path)); err != nil {
			return err
		}
		return tx.Bucket(metaBucket).Delete([]byte(path))
	})
}

// Close closes the underlying Bolt database.
func (s *BlobStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
