package internship

import "time"

// Internship mirrors the internships table.
type Internship struct {
	ID          int64     `gorm:"primaryKey"`
	Title       string    `gorm:"column:title;not null"`
	Company     string    `gorm:"column:company;not null"`
	Description *string   `gorm:"column:description"`
	Deadline    time.Time `gorm:"column:deadline;type:date;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (Internship) TableName() string {
	return "internships"
}
