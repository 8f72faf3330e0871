package grievance_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/aegisedu/campus-portal/internal/auth"
	grievanceDatamodel "github.com/aegisedu/campus-portal/internal/core/datamodel/grievance"
	userDatamodel "github.com/aegisedu/campus-portal/internal/core/datamodel/user"
	"github.com/aegisedu/campus-portal/internal/grievance"
	"github.com/aegisedu/campus-portal/internal/grievance/storage"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

var _ = Describe("Grievance Handler", func() {
	var (
		db      *gorm.DB
		handler *grievance.Handler
		router  *chi.Mux
		alice   userDatamodel.User
		bob     userDatamodel.User
	)

	do := func(method, target, body string, session *auth.Session) *httptest.ResponseRecorder {
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, target, strings.NewReader(body))
		} else {
			req = httptest.NewRequest(method, target, nil)
		}
		if session != nil {
			req = req.WithContext(auth.ContextWithSession(req.Context(), session))
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	sessionFor := func(u userDatamodel.User) *auth.Session {
		return &auth.Session{
			UserID: u.ID,
			Name:   u.Name,
			Email:  u.Email,
			Role:   auth.Role(u.Role),
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&userDatamodel.User{}, &grievanceDatamodel.Grievance{})
		Expect(err).NotTo(HaveOccurred())

		alice = userDatamodel.User{Name: "Alice Kumar", Email: "alice@aegis.edu", PasswordHash: "x", Role: "student"}
		bob = userDatamodel.User{Name: "Bob Singh", Email: "bob@aegis.edu", PasswordHash: "x", Role: "student"}
		Expect(db.Create(&alice).Error).NotTo(HaveOccurred())
		Expect(db.Create(&bob).Error).NotTo(HaveOccurred())

		repo := storage.NewGrievanceRepository(db)
		service := grievance.NewService(repo, slogger)
		handler = grievance.NewHandler(service)

		router = chi.NewRouter()
		router.Post("/student/grievance/new", handler.Create)
		router.Get("/student/grievances", handler.ListMine)
		router.Get("/admin/grievances", handler.ListAll)
		router.Post("/admin/grievance/update/{id}", handler.Update)
	})

	seedGrievance := func(studentID int64, title string, age time.Duration) grievanceDatamodel.Grievance {
		row := grievanceDatamodel.Grievance{
			StudentID:   studentID,
			Title:       title,
			Description: "seeded",
			Status:      string(grievance.StatusPending),
			CreatedAt:   time.Now().Add(-age),
		}
		Expect(db.Create(&row).Error).NotTo(HaveOccurred())
		return row
	}

	Describe("Create", func() {
		It("files the grievance as Pending for the signed-in student", func() {
			w := do(http.MethodPost, "/student/grievance/new",
				`{"title":"Broken projector","description":"Dies after ten minutes."}`,
				sessionFor(alice))

			Expect(w.Code).To(Equal(http.StatusCreated))

			var g grievance.Grievance
			Expect(json.NewDecoder(w.Body).Decode(&g)).To(Succeed())
			Expect(g.ID).NotTo(BeZero())
			Expect(g.StudentID).To(Equal(alice.ID))
			Expect(g.Status).To(Equal(grievance.StatusPending))
			Expect(g.AdminRemark).To(BeNil())

			var count int64
			db.Model(&grievanceDatamodel.Grievance{}).Count(&count)
			Expect(count).To(Equal(int64(1)))
		})

		It("rejects a missing session", func() {
			w := do(http.MethodPost, "/student/grievance/new",
				`{"title":"T","description":"D"}`, nil)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("rejects a blank description and stores nothing", func() {
			w := do(http.MethodPost, "/student/grievance/new",
				`{"title":"T","description":""}`, sessionFor(alice))

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var count int64
			db.Model(&grievanceDatamodel.Grievance{}).Count(&count)
			Expect(count).To(BeZero())
		})
	})

	Describe("ListMine", func() {
		It("returns only the caller's grievances, newest first, with the student joined", func() {
			seedGrievance(alice.ID, "Older complaint", 2*time.Hour)
			seedGrievance(alice.ID, "Newer complaint", 1*time.Hour)
			seedGrievance(bob.ID, "Someone else's", 30*time.Minute)

			w := do(http.MethodGet, "/student/grievances", "", sessionFor(alice))

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp grievance.ListResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Total).To(Equal(2))
			Expect(resp.Grievances[0].Title).To(Equal("Newer complaint"))
			Expect(resp.Grievances[1].Title).To(Equal("Older complaint"))
			Expect(resp.Grievances[0].StudentName).To(Equal("Alice Kumar"))
			Expect(resp.Grievances[0].StudentEmail).To(Equal("alice@aegis.edu"))
		})

		It("answers an empty list, not an error, for a student with none", func() {
			w := do(http.MethodGet, "/student/grievances", "", sessionFor(bob))

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp grievance.ListResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Total).To(BeZero())
		})
	})

	Describe("ListAll", func() {
		It("carries every student's grievances for triage", func() {
			seedGrievance(alice.ID, "From Alice", time.Hour)
			seedGrievance(bob.ID, "From Bob", 30*time.Minute)

			w := do(http.MethodGet, "/admin/grievances", "", nil)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp grievance.ListResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Total).To(Equal(2))

			names := []string{resp.Grievances[0].StudentName, resp.Grievances[1].StudentName}
			Expect(names).To(ConsistOf("Alice Kumar", "Bob Singh"))
		})
	})

	Describe("Update", func() {
		It("applies the triage decision and reports it back", func() {
			row := seedGrievance(alice.ID, "Hostel water supply", time.Hour)

			w := do(http.MethodPost, "/admin/grievance/update/"+itoa(row.ID),
				`{"status":"Resolved","admin_remark":"  pump replaced  "}`, nil)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp grievance.UpdateResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Status).To(Equal(grievance.StatusResolved))
			Expect(*resp.AdminRemark).To(Equal("pump replaced"))

			var stored grievanceDatamodel.Grievance
			Expect(db.First(&stored, row.ID).Error).NotTo(HaveOccurred())
			Expect(stored.Status).To(Equal("Resolved"))
			Expect(*stored.AdminRemark).To(Equal("pump replaced"))
		})

		It("clears the remark when the admin submits a blank one", func() {
			row := seedGrievance(alice.ID, "Wifi outage", time.Hour)
			remark := "looking into it"
			Expect(db.Model(&grievanceDatamodel.Grievance{}).
				Where("id = ?", row.ID).
				Update("admin_remark", &remark).Error).NotTo(HaveOccurred())

			w := do(http.MethodPost, "/admin/grievance/update/"+itoa(row.ID),
				`{"status":"In Progress","admin_remark":""}`, nil)

			Expect(w.Code).To(Equal(http.StatusOK))

			var stored grievanceDatamodel.Grievance
			Expect(db.First(&stored, row.ID).Error).NotTo(HaveOccurred())
			Expect(stored.AdminRemark).To(BeNil())
		})

		It("rejects a status outside the set and leaves the row untouched", func() {
			row := seedGrievance(alice.ID, "Exam clash", time.Hour)

			w := do(http.MethodPost, "/admin/grievance/update/"+itoa(row.ID),
				`{"status":"Closed"}`, nil)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var stored grievanceDatamodel.Grievance
			Expect(db.First(&stored, row.ID).Error).NotTo(HaveOccurred())
			Expect(stored.Status).To(Equal("Pending"))
		})

		It("answers 404 for an id with no row", func() {
			w := do(http.MethodPost, "/admin/grievance/update/9999",
				`{"status":"Resolved"}`, nil)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("answers 400 for a non-numeric id", func() {
			w := do(http.MethodPost, "/admin/grievance/update/abc",
				`{"status":"Resolved"}`, nil)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
