package internship_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	internshipDatamodel "github.com/aegisedu/campus-portal/internal/core/datamodel/internship"
	"github.com/aegisedu/campus-portal/internal/internship"
	"github.com/aegisedu/campus-portal/internal/internship/storage"
)

var _ = Describe("Internship Handler", func() {
	var (
		db      *gorm.DB
		handler *internship.Handler
		router  *chi.Mux
	)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/admin/internships", strings.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	list := func() internship.ListResponse {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/internships", nil))
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp internship.ListResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		return resp
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&internshipDatamodel.Internship{})
		Expect(err).NotTo(HaveOccurred())

		repo := storage.NewInternshipRepository(db)
		service := internship.NewService(repo, slogger)
		handler = internship.NewHandler(service)

		router = chi.NewRouter()
		router.Get("/admin/internships", handler.List)
		router.Post("/admin/internships", handler.Create)
		router.Get("/admin/internship/delete/{id}", handler.Delete)
	})

	Describe("Create", func() {
		It("round-trips the deadline in wire form", func() {
			w := post(`{"title":"Software Engineering Intern","company":"Google","deadline":"2024-12-31"}`)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var resp internship.InternshipResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.ID).NotTo(BeZero())
			Expect(resp.Deadline).To(Equal("2024-12-31"))
			Expect(resp.CreatedAt).NotTo(BeEmpty())
		})

		It("rejects a malformed deadline and stores nothing", func() {
			w := post(`{"title":"Intern","company":"Acme","deadline":"Dec 31, 2024"}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var count int64
			db.Model(&internshipDatamodel.Internship{}).Count(&count)
			Expect(count).To(BeZero())
		})

		It("rejects a missing company", func() {
			w := post(`{"title":"Intern","deadline":"2024-12-31"}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("List", func() {
		It("orders postings by deadline, latest first", func() {
			Expect(post(`{"title":"Data Analyst Intern","company":"Amazon","deadline":"2024-10-30"}`).Code).
				To(Equal(http.StatusCreated))
			Expect(post(`{"title":"Software Engineering Intern","company":"Google","deadline":"2024-12-31"}`).Code).
				To(Equal(http.StatusCreated))
			Expect(post(`{"title":"Product Management Intern","company":"Microsoft","deadline":"2024-11-15"}`).Code).
				To(Equal(http.StatusCreated))

			resp := list()

			Expect(resp.Total).To(Equal(3))
			Expect(resp.Internships[0].Deadline).To(Equal("2024-12-31"))
			Expect(resp.Internships[1].Deadline).To(Equal("2024-11-15"))
			Expect(resp.Internships[2].Deadline).To(Equal("2024-10-30"))
			Expect(resp.Internships[0].Company).To(Equal("Google"))
		})

		It("answers an empty list when nothing is posted", func() {
			resp := list()

			Expect(resp.Total).To(BeZero())
			Expect(resp.Internships).To(BeEmpty())
		})
	})

	Describe("Delete", func() {
		It("removes the posting from subsequent listings", func() {
			w := post(`{"title":"Intern","company":"Acme","deadline":"2024-12-31"}`)
			Expect(w.Code).To(Equal(http.StatusCreated))

			var created internship.InternshipResponse
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())

			dw := httptest.NewRecorder()
			router.ServeHTTP(dw, httptest.NewRequest(http.MethodGet,
				"/admin/internship/delete/"+strconv.FormatInt(created.ID, 10), nil))

			Expect(dw.Code).To(Equal(http.StatusOK))
			Expect(list().Total).To(BeZero())
		})

		It("answers 200 when the posting is already gone", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/internship/delete/9999", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("answers 400 for a non-numeric id", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/internship/delete/latest", nil))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
