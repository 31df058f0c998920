package services

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"class-quest-system/models"
	"class-quest-system/utils"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// ObjectStorage is the gateway the upload workflow talks to. A disabled
// gateway is a first-class state, not an error to crash on.
type ObjectStorage interface {
	Enabled() bool
	Put(ctx context.Context, data []byte, key, contentType string) (string, error)
}

// UploadService runs the mission-proof workflow: validate, store the file,
// then record the upload row. It grants no XP — mission rewards go through
// the progression service as a separate admin action.
type UploadService struct {
	DB      *gorm.DB
	storage ObjectStorage
}

func NewUploadService(db *gorm.DB, storage ObjectStorage) *UploadService {
	return &UploadService{DB: db, storage: storage}
}

// FileKey builds a collision-resistant object key from a user-supplied
// filename: "<prefix>/<unix-millis>_<short-id>_<slugged-name>".
func FileKey(prefix, filename string, now time.Time) string {
	ext := filepath.Ext(filename)
	base := slug.Make(strings.TrimSuffix(filename, ext))
	if base == "" {
		base = "file"
	}
	if e := slug.Make(ext); e != "" {
		base = base + "." + e
	}
	return fmt.Sprintf("%s/%d_%s_%s", prefix, now.UnixMilli(), uuid.NewString()[:8], base)
}

// SubmitProof stores a proof file and records it. Policy on storage failure
// is refuse: no row is ever written without a real URL, and the caller gets
// ErrStorageUnavailable so they know the proof was not captured.
func (s *UploadService) SubmitProof(ctx context.Context, studentID uint, missionID *uint, data []byte, filename, contentType string) (*models.StudentUpload, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file: %w", ErrInvalidInput)
	}

	var student models.User
	err := s.DB.Where("id = ? AND role = ?", studentID, models.RoleStudent).
		First(&student).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("student %d: %w", studentID, ErrNotFound)
		}
		return nil, err
	}

	if missionID != nil {
		var mission models.Mission
		if err := s.DB.First(&mission, *missionID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, fmt.Errorf("mission %d: %w", *missionID, ErrNotFound)
			}
			return nil, err
		}
	}

	if !s.storage.Enabled() {
		return nil, fmt.Errorf("uploads are disabled: %w", ErrStorageUnavailable)
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := FileKey("uploads", filename, time.Now())
	url, err := s.storage.Put(ctx, data, key, contentType)
	if err != nil {
		return nil, fmt.Errorf("storing proof failed (%v): %w", err, ErrStorageUnavailable)
	}

	upload := models.StudentUpload{
		UserID:    studentID,
		MissionID: missionID,
		FileURL:   url,
	}
	if err := s.DB.Create(&upload).Error; err != nil {
		return nil, err
	}
	return &upload, nil
}

// ListUploads returns a student's proof uploads, newest first.
func (s *UploadService) ListUploads(studentID uint) ([]models.StudentUpload, error) {
	var uploads []models.StudentUpload
	err := s.DB.Where("user_id = ?", studentID).
		Order("created_at DESC").
		Find(&uploads).Error
	return uploads, err
}

// StoreCatalogImage saves an admin catalog image (mission, card, character).
// Unlike proofs this degrades gracefully: with the gateway disabled the file
// lands in the local uploads dir, and any failure just yields a nil URL so
// the catalog row is created without an image.
func (s *UploadService) StoreCatalogImage(ctx context.Context, data []byte, filename, contentType, prefix string) *string {
	if len(data) == 0 {
		return nil
	}

	key := FileKey(prefix, filename, time.Now())
	if s.storage.Enabled() {
		url, err := s.storage.Put(ctx, data, key, contentType)
		if err != nil {
			log.Printf("[Uploads] catalog image upload failed: %v", err)
			return nil
		}
		return &url
	}

	url, err := utils.SaveLocalFile(data, filepath.Base(key))
	if err != nil {
		log.Printf("[Uploads] local catalog image save failed: %v", err)
		return nil
	}
	return &url
}
