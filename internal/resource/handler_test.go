package resource_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/aegisedu/campus-portal/internal/auth"
	resourceDatamodel "github.com/aegisedu/campus-portal/internal/core/datamodel/resource"
	userDatamodel "github.com/aegisedu/campus-portal/internal/core/datamodel/user"
	"github.com/aegisedu/campus-portal/internal/filestore"
	"github.com/aegisedu/campus-portal/internal/resource"
	"github.com/aegisedu/campus-portal/internal/resource/storage"
)

const testMaxUpload = 1 << 20

var _ = Describe("Resource Handler", func() {
	var (
		db        *gorm.DB
		uploadDir string
		handler   *resource.Handler
		router    *chi.Mux
		faculty   userDatamodel.User
	)

	multipartBody := func(title, description, filename string, content []byte) (*bytes.Buffer, string) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		Expect(writer.WriteField("title", title)).To(Succeed())
		Expect(writer.WriteField("description", description)).To(Succeed())
		part, err := writer.CreateFormFile("file", filename)
		Expect(err).NotTo(HaveOccurred())
		_, err = part.Write(content)
		Expect(err).NotTo(HaveOccurred())
		Expect(writer.Close()).To(Succeed())
		return body, writer.FormDataContentType()
	}

	upload := func(title, description, filename string, content []byte) *httptest.ResponseRecorder {
		body, contentType := multipartBody(title, description, filename, content)
		req := httptest.NewRequest(http.MethodPost, "/faculty/resources", body)
		req.Header.Set("Content-Type", contentType)
		req = req.WithContext(auth.ContextWithSession(req.Context(), &auth.Session{
			UserID: faculty.ID,
			Name:   faculty.Name,
			Email:  faculty.Email,
			Role:   auth.RoleFaculty,
		}))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&userDatamodel.User{}, &resourceDatamodel.Resource{})
		Expect(err).NotTo(HaveOccurred())

		faculty = userDatamodel.User{Name: "Prof. Rao", Email: "rao@aegis.edu", PasswordHash: "x", Role: "faculty"}
		Expect(db.Create(&faculty).Error).NotTo(HaveOccurred())

		uploadDir, err = os.MkdirTemp("", "resource-handler-test-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, uploadDir)

		store, err := filestore.NewLocalStore(uploadDir, testMaxUpload, []string{"pdf", "txt"})
		Expect(err).NotTo(HaveOccurred())

		repo := storage.NewResourceRepository(db)
		service := resource.NewService(repo, store, slogger)
		handler = resource.NewHandler(service, testMaxUpload)

		router = chi.NewRouter()
		router.Post("/faculty/resources", handler.Upload)
		router.Get("/faculty/resources", handler.List)
		router.Get("/admin/resources/delete/{id}", handler.Delete)
		router.Get("/download/{filename}", handler.Download)
	})

	Describe("Upload", func() {
		content := []byte("%PDF-1.4 lecture four")

		It("stores the file on disk and the row in the database", func() {
			w := upload("Week 4 notes", "Graph traversal", "lecture 4.pdf", content)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var res resource.Resource
			Expect(json.NewDecoder(w.Body).Decode(&res)).To(Succeed())
			Expect(res.FilePath).To(Equal("lecture_4.pdf"))
			Expect(res.UploadedBy).To(Equal(faculty.ID))

			onDisk, err := os.ReadFile(filepath.Join(uploadDir, "lecture_4.pdf"))
			Expect(err).NotTo(HaveOccurred())
			Expect(onDisk).To(Equal(content))
		})

		It("rejects a disallowed extension and leaves no trace", func() {
			w := upload("Tooling", "", "setup.exe", []byte("MZ"))

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var count int64
			db.Model(&resourceDatamodel.Resource{}).Count(&count)
			Expect(count).To(BeZero())

			entries, err := os.ReadDir(uploadDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})

		It("rejects a form without a file part", func() {
			body := &bytes.Buffer{}
			writer := multipart.NewWriter(body)
			Expect(writer.WriteField("title", "No file")).To(Succeed())
			Expect(writer.Close()).To(Succeed())

			req := httptest.NewRequest(http.MethodPost, "/faculty/resources", body)
			req.Header.Set("Content-Type", writer.FormDataContentType())
			req = req.WithContext(auth.ContextWithSession(req.Context(), &auth.Session{
				UserID: faculty.ID, Role: auth.RoleFaculty,
			}))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects a file over the cap", func() {
			big := bytes.Repeat([]byte("a"), testMaxUpload+1)

			w := upload("Too big", "", "big.pdf", big)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			entries, err := os.ReadDir(uploadDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})

		It("rejects an upload without a session", func() {
			body, contentType := multipartBody("T", "", "x.pdf", content)
			req := httptest.NewRequest(http.MethodPost, "/faculty/resources", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("List", func() {
		It("joins the uploader onto each resource", func() {
			Expect(upload("Syllabus", "", "syllabus.pdf", []byte("data")).Code).
				To(Equal(http.StatusCreated))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/faculty/resources", nil))

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp resource.ListResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Total).To(Equal(1))
			Expect(resp.Resources[0].UploaderName).To(Equal("Prof. Rao"))
			Expect(resp.Resources[0].FilePath).To(Equal("syllabus.pdf"))
		})
	})

	Describe("Download", func() {
		It("serves the stored bytes as an attachment", func() {
			content := []byte("plain text handout")
			Expect(upload("Handout", "", "handout.txt", content).Code).
				To(Equal(http.StatusCreated))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/download/handout.txt", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.Bytes()).To(Equal(content))
			Expect(w.Header().Get("Content-Disposition")).
				To(Equal(`attachment; filename="handout.txt"`))
		})

		It("answers 404 for a file nobody uploaded", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/download/ghost.pdf", nil))

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("Delete", func() {
		It("removes the row and the file", func() {
			w := upload("Old notes", "", "old.pdf", []byte("data"))
			Expect(w.Code).To(Equal(http.StatusCreated))

			var res resource.Resource
			Expect(json.NewDecoder(w.Body).Decode(&res)).To(Succeed())

			dw := httptest.NewRecorder()
			router.ServeHTTP(dw, httptest.NewRequest(http.MethodGet,
				"/admin/resources/delete/"+strconv.FormatInt(res.ID, 10), nil))

			Expect(dw.Code).To(Equal(http.StatusOK))

			var count int64
			db.Model(&resourceDatamodel.Resource{}).Count(&count)
			Expect(count).To(BeZero())

			_, err := os.Stat(filepath.Join(uploadDir, "old.pdf"))
			Expect(os.IsNotExist(err)).To(BeTrue())

			// deleting the same id again is a no-op
			dw2 := httptest.NewRecorder()
			router.ServeHTTP(dw2, httptest.NewRequest(http.MethodGet,
				"/admin/resources/delete/"+strconv.FormatInt(res.ID, 10), nil))
			Expect(dw2.Code).To(Equal(http.StatusOK))
		})

		It("still answers 200 for an id that was never there", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/resources/delete/424242", nil))

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp resource.DeleteResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.ID).To(Equal(int64(424242)))
		})
	})
})
