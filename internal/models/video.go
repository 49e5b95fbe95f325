package models

import (
	"io"
	"time"

	"github.com/google/uuid"
)

type VideoStatus string

const (
	StatusUploading VideoStatus = "UPLOADING"
	StatusReady     VideoStatus = "READY"
	StatusFailed    VideoStatus = "FAILED"
)

// StoragePathPending is the placeholder written before the uploaded bytes
// land on disk. It is replaced in the same upload call and never visible to
// readers afterwards.
const StoragePathPending = "pending"

type VideoRecord struct {
	VideoID          uuid.UUID   `json:"video_id" db:"video_id" redis:"video_id" validate:"omitempty"`
	Title            string      `json:"title" db:"title" redis:"title" validate:"required,lte=255"`
	OriginalFilename string      `json:"original_filename" db:"original_filename" redis:"original_filename" validate:"required,lte=255"`
	SizeBytes        int64       `json:"size_bytes" db:"size_bytes" redis:"size_bytes" validate:"omitempty"`
	Status           VideoStatus `json:"status" db:"status" redis:"status" validate:"required,oneof=UPLOADING READY FAILED"`
	ErrorCode        *string     `json:"error_code,omitempty" db:"error_code" redis:"error_code" validate:"omitempty"`
	ErrorMessage     *string     `json:"error_message,omitempty" db:"error_message" redis:"error_message" validate:"omitempty"`
	StoragePath      string      `json:"storage_path" db:"storage_path" redis:"storage_path" validate:"required"`
	ProxyPath        *string     `json:"proxy_path,omitempty" db:"proxy_path" redis:"proxy_path" validate:"omitempty"`
	CreatedAt        time.Time   `json:"created_at" db:"created_at" redis:"created_at" validate:"omitempty"`
	UpdatedAt        time.Time   `json:"updated_at" db:"updated_at" redis:"updated_at" validate:"omitempty"`
}

type VideoUploadInput struct {
	File        io.Reader `json:"-" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Filename    string    `json:"filename" validate:"omitempty,lte=255"`
	ContentType string    `json:"content_type" validate:"omitempty,lte=100"`
	Size        int64     `json:"size" validate:"omitempty"`
}

type VideoListItem struct {
	VideoID   uuid.UUID   `json:"video_id"`
	Title     string      `json:"title"`
	Status    VideoStatus `json:"status"`
	SizeBytes int64       `json:"size_bytes"`
	CreatedAt time.Time   `json:"created_at"`
}

type VideoList struct {
	Videos     []*VideoListItem `json:"videos"`
	TotalCount int              `json:"total_count"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	HasMore    bool             `json:"has_more"`
}

type VideoDetail struct {
	VideoID     uuid.UUID   `json:"video_id"`
	Title       string      `json:"title"`
	Status      VideoStatus `json:"status"`
	SizeBytes   int64       `json:"size_bytes"`
	CreatedAt   time.Time   `json:"created_at"`
	ManifestURL string      `json:"manifest_url"`
}

func (v *VideoRecord) ToListItem() *VideoListItem {
	return &VideoListItem{
		VideoID:   v.VideoID,
		Title:     v.Title,
		Status:    v.Status,
		SizeBytes: v.SizeBytes,
		CreatedAt: v.CreatedAt,
	}
}

func (v *VideoRecord) MarkFailed(code, message string) {
	v.Status = StatusFailed
	v.ErrorCode = &code
	v.ErrorMessage = &message
}

func (v *VideoRecord) MarkReady() {
	v.Status = StatusReady
	v.ErrorCode = nil
	v.ErrorMessage = nil
}
