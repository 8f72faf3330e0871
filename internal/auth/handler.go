package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/aegisedu/campus-portal/internal"
	"github.com/aegisedu/campus-portal/internal/transport"
	"github.com/aegisedu/campus-portal/pkg/logger"
)

// SessionCookieName is the cookie that mirrors the bearer token for
// browser clients.
const SessionCookieName = "session"

type Handler struct {
	*transport.BaseHandler
	Service    ServiceAPI
	sessionTTL time.Duration
}

func NewHandler(svc ServiceAPI, sessionTTL time.Duration) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		sessionTTL:  sessionTTL,
	}
}

// Login authenticates credentials, sets the session cookie and tells the
// client which dashboard its role lands on.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Error("authentication failed", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.setSessionCookie(w, result.Token)
	h.WriteJSON(w, http.StatusOK, LoginResponse{
		Token:    result.Token,
		Redirect: result.Session.Role.DashboardPath(),
		User: UserPayload{
			ID:    result.Session.UserID,
			Name:  result.Session.Name,
			Email: result.Session.Email,
			Role:  result.Session.Role,
		},
	})
}

// Register creates an account and points the client back to the login page.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.Service.Register(dto)
	if err != nil {
		h.Logger.Error("registration failed", "error", err, "email", dto.Email)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, RegisterResponse{
		Redirect: internal.LoginPath,
		User:     payloadFromAccount(account),
	})
}

// Logout clears the session cookie unconditionally. It never inspects the
// current session, so calling it without one is harmless.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	h.WriteJSON(w, http.StatusOK, LogoutResponse{Redirect: internal.LoginPath})
}

// Home routes the bare root path: a valid session goes to its dashboard,
// anything else goes to the login page.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	token := h.sessionToken(r)
	if token != "" {
		if session, err := h.Service.ValidateSessionToken(token); err == nil {
			http.Redirect(w, r, session.Role.DashboardPath(), http.StatusFound)
			return
		}
	}
	http.Redirect(w, r, internal.LoginPath, http.StatusFound)
}

// SessionMiddleware resolves the session token and stores the Session in the
// request context. Missing or invalid tokens get a 401 carrying the login
// redirect.
func (h *Handler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.sessionToken(r)
		if token == "" {
			h.Logger.Debug("session middleware: no token", "path", r.URL.Path)
			h.HandleServiceError(w, internal.ErrUnauthenticated)
			return
		}

		session, err := h.Service.ValidateSessionToken(token)
		if err != nil {
			h.Logger.Warn("session middleware: invalid token", "path", r.URL.Path, "error", err)
			h.HandleServiceError(w, internal.ErrUnauthenticated)
			return
		}

		ctx := ContextWithSession(r.Context(), session)
		ctx = logger.With(ctx, "user_id", session.UserID, "role", string(session.Role))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles gates a route subtree to the given roles. It runs after
// SessionMiddleware; a request that somehow reaches it without a session is
// treated as unauthenticated rather than forbidden.
func (h *Handler) RequireRoles(roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := SessionFromContext(r.Context())
			if !ok {
				h.HandleServiceError(w, internal.ErrUnauthenticated)
				return
			}

			for _, role := range roles {
				if session.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			h.Logger.Warn("role check failed",
				"user_id", session.UserID,
				"role", string(session.Role),
				"path", r.URL.Path)
			h.HandleServiceError(w, internal.ErrUnauthorized)
		})
	}
}

// sessionToken prefers the Authorization header and falls back to the
// session cookie for browser navigation.
func (h *Handler) sessionToken(r *http.Request) string {
	if token := h.ExtractTokenFromHeader(r); token != "" {
		return token
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
