package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"main/model"
)

func newTestUploadService(t *testing.T) *UploadService {
	t.Helper()
	return &UploadService{Store: newTestStore(t), MaxSize: 5 * 1024 * 1024}
}

func TestValidateFile(t *testing.T) {
	svc := newTestUploadService(t)

	tests := []struct {
		name    string
		file    UploadFile
		wantErr bool
	}{
		{"jpeg allowed", UploadFile{Name: "a.jpg", Type: "image/jpeg", Size: 100}, false},
		{"png allowed", UploadFile{Name: "a.png", Type: "image/png", Size: 100}, false},
		{"pdf allowed", UploadFile{Name: "a.pdf", Type: "application/pdf", Size: 100}, false},
		{"webp allowed", UploadFile{Name: "a.webp", Type: "image/webp", Size: 100}, false},
		{"executable rejected", UploadFile{Name: "a.exe", Type: "application/octet-stream", Size: 100}, true},
		{"text rejected", UploadFile{Name: "a.txt", Type: "text/plain", Size: 100}, true},
		{"oversized rejected", UploadFile{Name: "big.png", Type: "image/png", Size: 6 * 1024 * 1024}, true},
		{"at limit allowed", UploadFile{Name: "edge.png", Type: "image/png", Size: 5 * 1024 * 1024}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateFile(tt.file)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr {
				var uploadErr *model.UploadError
				if !errors.As(err, &uploadErr) {
					t.Errorf("expected UploadError, got %T", err)
				}
			}
		})
	}
}

func TestBuildStoragePath(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	path := BuildStoragePath("u1", "act1", "photo.png", now)
	if !strings.HasPrefix(path, "u1/activities/act1/") || !strings.HasSuffix(path, "_photo.png") {
		t.Errorf("unexpected path: %q", path)
	}

	tempPath := BuildStoragePath("u1", "", "photo.png", now)
	if !strings.Contains(tempPath, "/activities/temp_") {
		t.Errorf("expected temp segment for empty activity id: %q", tempPath)
	}
}

func TestUploadAll(t *testing.T) {
	t.Run("empty batch succeeds", func(t *testing.T) {
		svc := newTestUploadService(t)
		refs, err := svc.UploadAll("u1", "a1", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(refs) != 0 {
			t.Errorf("expected no refs, got %d", len(refs))
		}
	})

	t.Run("stores all files and keeps input order", func(t *testing.T) {
		svc := newTestUploadService(t)
		files := []UploadFile{
			{Name: "one.png", Type: "image/png", Size: 3, Data: []byte("one")},
			{Name: "two.pdf", Type: "application/pdf", Size: 3, Data: []byte("two")},
			{Name: "three.jpg", Type: "image/jpeg", Size: 5, Data: []byte("three")},
		}

		refs, err := svc.UploadAll("u1", "a1", files)
		if err != nil {
			t.Fatalf("UploadAll failed: %v", err)
		}
		if len(refs) != 3 {
			t.Fatalf("expected 3 refs, got %d", len(refs))
		}
		for i, ref := range refs {
			if ref.Name != files[i].Name {
				t.Errorf("refs[%d].Name = %q, want %q", i, ref.Name, files[i].Name)
			}
			data, _, err := svc.Store.Get(ref.Path)
			if err != nil {
				t.Errorf("stored blob %q unreadable: %v", ref.Path, err)
				continue
			}
			if string(data) != string(files[i].Data) {
				t.Errorf("blob %q content mismatch", ref.Path)
			}
		}
	})

	t.Run("one invalid file fails the whole batch before storage", func(t *testing.T) {
		svc := newTestUploadService(t)
		files := []UploadFile{
			{Name: "ok.png", Type: "image/png", Size: 2, Data: []byte("ok")},
			{Name: "bad.exe", Type: "application/octet-stream", Size: 2, Data: []byte("no")},
		}

		refs, err := svc.UploadAll("u1", "a1", files)
		if err == nil {
			t.Fatal("expected error for invalid batch")
		}
		if refs != nil {
			t.Errorf("expected nil refs, got %v", refs)
		}

		var uploadErr *model.UploadError
		if !errors.As(err, &uploadErr) || uploadErr.Name != "bad.exe" {
			t.Errorf("expected UploadError for bad.exe, got %v", err)
		}
	})
}
