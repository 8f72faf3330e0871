package grievance

import (
	"time"

	"github.com/aegisedu/campus-portal/internal"
)

// Status is the triage state of a grievance. The set is closed; anything
// else is rejected before touching storage.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
)

// ParseStatus validates a raw status value against the known set.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusInProgress, StatusResolved:
		return Status(raw), nil
	default:
		return "", internal.ErrInvalidStatus
	}
}

// Grievance is the domain shape of a filed complaint.
type Grievance struct {
	ID          int64     `json:"id"`
	StudentID   int64     `json:"student_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	AdminRemark *string   `json:"admin_remark,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Detail is the read model for grievance listings: the grievance joined with
// the filing student. Populated by a single query, never cached.
type Detail struct {
	ID           int64     `json:"id"`
	StudentID    int64     `json:"student_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Status       Status    `json:"status"`
	AdminRemark  *string   `json:"admin_remark,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	StudentName  string    `json:"student_name"`
	StudentEmail string    `json:"student_email"`
}
