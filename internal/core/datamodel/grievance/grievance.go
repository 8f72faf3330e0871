package grievance

import "time"

// Grievance mirrors the grievances table. Status transitions happen through
// a single UPDATE; there is no version column.
type Grievance struct {
	ID          int64     `gorm:"primaryKey"`
	StudentID   int64     `gorm:"column:student_id;not null"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description;not null"`
	Status      string    `gorm:"column:status;not null;default:Pending"`
	AdminRemark *string   `gorm:"column:admin_remark"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (Grievance) TableName() string {
	return "grievances"
}
