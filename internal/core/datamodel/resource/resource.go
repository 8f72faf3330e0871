package resource

import "time"

// Resource mirrors the resources table. FilePath holds the sanitized
// filename inside the upload directory, never a full path.
type Resource struct {
	ID          int64     `gorm:"primaryKey"`
	Title       string    `gorm:"column:title;not null"`
	Description *string   `gorm:"column:description"`
	FilePath    string    `gorm:"column:file_path;not null"`
	UploadedBy  int64     `gorm:"column:uploaded_by;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (Resource) TableName() string {
	return "resources"
}
