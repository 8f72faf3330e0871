package dashboard

import (
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// recentInternshipLimit caps how many postings the student landing page
// shows.
const recentInternshipLimit = 5

// Service computes dashboard numbers with live queries on every request.
// Nothing here is cached; a grievance resolved a second ago shows up on the
// next load.
type Service struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewService(db *sqlx.DB, logger *slog.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger,
	}
}

type internshipRow struct {
	ID       int64     `db:"id"`
	Title    string    `db:"title"`
	Company  string    `db:"company"`
	Deadline time.Time `db:"deadline"`
}

// Student aggregates the student's own grievance counters and the most
// recent postings.
func (s *Service) Student(studentID int64) (*StudentStats, error) {
	stats := &StudentStats{}

	if err := s.count(&stats.TotalGrievances,
		"SELECT COUNT(*) FROM grievances WHERE student_id = ?", studentID); err != nil {
		return nil, err
	}
	if err := s.count(&stats.ResolvedGrievances,
		"SELECT COUNT(*) FROM grievances WHERE student_id = ? AND status = ?", studentID, "Resolved"); err != nil {
		return nil, err
	}

	var rows []internshipRow
	query := s.db.Rebind("SELECT id, title, company, deadline FROM internships ORDER BY deadline DESC LIMIT ?")
	if err := s.db.Select(&rows, query, recentInternshipLimit); err != nil {
		s.logger.Error("failed to load recent internships", "error", err)
		return nil, err
	}

	stats.RecentInternships = make([]InternshipSummary, 0, len(rows))
	for _, row := range rows {
		stats.RecentInternships = append(stats.RecentInternships, InternshipSummary{
			ID:       row.ID,
			Title:    row.Title,
			Company:  row.Company,
			Deadline: row.Deadline.Format("2006-01-02"),
		})
	}

	return stats, nil
}

// Admin aggregates the portal-wide counters.
func (s *Service) Admin() (*AdminStats, error) {
	stats := &AdminStats{}

	counters := []struct {
		dest  *int64
		query string
		args  []interface{}
	}{
		{&stats.TotalUsers, "SELECT COUNT(*) FROM users", nil},
		{&stats.TotalGrievances, "SELECT COUNT(*) FROM grievances", nil},
		{&stats.PendingGrievances, "SELECT COUNT(*) FROM grievances WHERE status = ?", []interface{}{"Pending"}},
		{&stats.ResolvedGrievances, "SELECT COUNT(*) FROM grievances WHERE status = ?", []interface{}{"Resolved"}},
		{&stats.TotalInternships, "SELECT COUNT(*) FROM internships", nil},
		{&stats.TotalResources, "SELECT COUNT(*) FROM resources", nil},
	}

	for _, c := range counters {
		if err := s.count(c.dest, c.query, c.args...); err != nil {
			return nil, err
		}
	}

	return stats, nil
}

// Faculty aggregates the counters shown to faculty members.
func (s *Service) Faculty() (*FacultyStats, error) {
	stats := &FacultyStats{}

	if err := s.count(&stats.TotalGrievances, "SELECT COUNT(*) FROM grievances"); err != nil {
		return nil, err
	}
	if err := s.count(&stats.TotalResources, "SELECT COUNT(*) FROM resources"); err != nil {
		return nil, err
	}

	return stats, nil
}

// count runs a single COUNT query, rebinding placeholders for the active
// driver.
func (s *Service) count(dest *int64, query string, args ...interface{}) error {
	if err := s.db.Get(dest, s.db.Rebind(query), args...); err != nil {
		s.logger.Error("dashboard count failed", "error", err, "query", query)
		return err
	}
	return nil
}
