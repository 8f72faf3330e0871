package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/aegisedu/campus-portal/internal/auth"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type errorBody struct {
	Error struct {
		Type     string `json:"type"`
		Code     string `json:"code"`
		Message  string `json:"message"`
		Redirect string `json:"redirect"`
	} `json:"error"`
}

var _ = Describe("Auth Handler", func() {
	var (
		mockRepo *MockUserRepository
		service  *auth.Service
		handler  *auth.Handler
		router   *chi.Mux
	)

	okStub := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	login := func(email, password string) string {
		body := strings.NewReader(`{"email":"` + email + `","password":"` + password + `"}`)
		req := httptest.NewRequest(http.MethodPost, "/login", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp auth.LoginResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		return resp.Token
	}

	BeforeEach(func() {
		mockRepo = NewMockUserRepository()
		mockRepo.AddAccount("Student One", "student1@aegis.edu", "student123", auth.RoleStudent)
		mockRepo.AddAccount("Admin User", "admin@aegis.edu", "admin123", auth.RoleAdmin)

		tokens := auth.NewJWTTokenGenerator("test-session-secret-thats-long-enough", time.Hour)
		service = auth.NewService(mockRepo, tokens, bcrypt.MinCost)
		handler = auth.NewHandler(service, time.Hour)

		router = chi.NewRouter()
		router.Get("/", handler.Home)
		router.Post("/login", handler.Login)
		router.Post("/register", handler.Register)
		router.Get("/logout", handler.Logout)

		router.Group(func(pr chi.Router) {
			pr.Use(handler.SessionMiddleware)

			pr.Route("/student", func(sr chi.Router) {
				sr.Use(handler.RequireRoles(auth.RoleStudent))
				sr.Get("/dashboard", okStub)
			})
			pr.Route("/admin", func(ar chi.Router) {
				ar.Use(handler.RequireRoles(auth.RoleAdmin))
				ar.Get("/dashboard", okStub)
			})
		})
	})

	Describe("Login", func() {
		It("returns the role's dashboard redirect and sets the session cookie", func() {
			body := strings.NewReader(`{"email":"student1@aegis.edu","password":"student123"}`)
			req := httptest.NewRequest(http.MethodPost, "/login", body)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp auth.LoginResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Token).NotTo(BeEmpty())
			Expect(resp.Redirect).To(Equal("/student/dashboard"))
			Expect(resp.User.Email).To(Equal("student1@aegis.edu"))

			cookies := w.Result().Cookies()
			var session *http.Cookie
			for _, c := range cookies {
				if c.Name == auth.SessionCookieName {
					session = c
				}
			}
			Expect(session).NotTo(BeNil())
			Expect(session.Value).To(Equal(resp.Token))
			Expect(session.HttpOnly).To(BeTrue())
		})

		It("rejects bad credentials with the login redirect", func() {
			body := strings.NewReader(`{"email":"student1@aegis.edu","password":"nope"}`)
			req := httptest.NewRequest(http.MethodPost, "/login", body)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))

			var resp errorBody
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Error.Code).To(Equal("INVALID_CREDENTIALS"))
			Expect(resp.Error.Redirect).To(Equal("/login"))
		})
	})

	Describe("Register", func() {
		It("creates the account and points back at login", func() {
			body := strings.NewReader(`{"name":"New Student","email":"new@aegis.edu","password":"newpass12","role":"student"}`)
			req := httptest.NewRequest(http.MethodPost, "/register", body)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var resp auth.RegisterResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Redirect).To(Equal("/login"))
			Expect(resp.User.ID).NotTo(BeZero())
		})

		It("answers 409 for a taken email", func() {
			body := strings.NewReader(`{"name":"Clone","email":"student1@aegis.edu","password":"newpass12","role":"student"}`)
			req := httptest.NewRequest(http.MethodPost, "/register", body)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))

			var resp errorBody
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Error.Code).To(Equal("DUPLICATE_EMAIL"))
		})

		It("answers 400 for a role outside the set", func() {
			body := strings.NewReader(`{"name":"X","email":"x@aegis.edu","password":"newpass12","role":"dean"}`)
			req := httptest.NewRequest(http.MethodPost, "/register", body)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("session guard", func() {
		It("turns missing tokens into 401 with the login redirect", func() {
			req := httptest.NewRequest(http.MethodGet, "/student/dashboard", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))

			var resp errorBody
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Error.Redirect).To(Equal("/login"))
		})

		It("lets the matching role through", func() {
			token := login("student1@aegis.edu", "student123")

			req := httptest.NewRequest(http.MethodGet, "/student/dashboard", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("refuses the wrong role with 403, not a login bounce", func() {
			token := login("student1@aegis.edu", "student123")

			req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusForbidden))

			var resp errorBody
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Error.Code).To(Equal("UNAUTHORIZED"))
			Expect(resp.Error.Redirect).To(BeEmpty())
		})

		It("accepts the session cookie when no header is set", func() {
			token := login("admin@aegis.edu", "admin123")

			req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
			req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("rejects a tampered token", func() {
			token := login("student1@aegis.edu", "student123")

			req := httptest.NewRequest(http.MethodGet, "/student/dashboard", nil)
			req.Header.Set("Authorization", "Bearer "+token+"x")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("Home", func() {
		It("bounces anonymous visitors to login", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/login"))
		})

		It("sends a signed-in admin to the admin dashboard", func() {
			token := login("admin@aegis.edu", "admin123")

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/admin/dashboard"))
		})
	})

	Describe("Logout", func() {
		It("expires the cookie without needing a session", func() {
			req := httptest.NewRequest(http.MethodGet, "/logout", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			cookies := w.Result().Cookies()
			var session *http.Cookie
			for _, c := range cookies {
				if c.Name == auth.SessionCookieName {
					session = c
				}
			}
			Expect(session).NotTo(BeNil())
			Expect(session.Value).To(BeEmpty())
			Expect(session.MaxAge).To(BeNumerically("<", 0))
		})
	})
})
