package dashboard

// StudentStats is what the student landing page shows: the student's own
// grievance counters plus the freshest internship postings.
type StudentStats struct {
	TotalGrievances    int64               `json:"total_grievances"`
	ResolvedGrievances int64               `json:"resolved_grievances"`
	RecentInternships  []InternshipSummary `json:"recent_internships"`
}

// InternshipSummary is the trimmed posting shown on the student dashboard.
type InternshipSummary struct {
	ID       int64  `json:"id" db:"id"`
	Title    string `json:"title" db:"title"`
	Company  string `json:"company" db:"company"`
	Deadline string `json:"deadline" db:"deadline"`
}

// AdminStats is the admin landing page counter set.
type AdminStats struct {
	TotalUsers         int64 `json:"total_users"`
	TotalGrievances    int64 `json:"total_grievances"`
	PendingGrievances  int64 `json:"pending_grievances"`
	ResolvedGrievances int64 `json:"resolved_grievances"`
	TotalInternships   int64 `json:"total_internships"`
	TotalResources     int64 `json:"total_resources"`
}

// FacultyStats is the faculty landing page counter set.
type FacultyStats struct {
	TotalGrievances int64 `json:"total_grievances"`
	TotalResources  int64 `json:"total_resources"`
}
