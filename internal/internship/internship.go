package internship

import (
	"time"
)

// DeadlineFormat is the wire format for application deadlines.
const DeadlineFormat = "2006-01-02"

// Internship is an opportunity posted by an admin. Deadline carries a
// calendar date; the time of day is always midnight UTC.
type Internship struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Description *string   `json:"description,omitempty"`
	Deadline    time.Time `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
