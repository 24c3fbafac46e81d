// Package handler serves the admin login, logout and session validation endpoints.
package handler

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/service"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/httputil"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/requestcontext"
)

const msgInvalidSession = "Invalid or expired session"

// Service is the admin auth surface used by the HTTP layer.
type Service interface {
	Login(ctx context.Context, in service.LoginInput) (*service.LoginResult, error)
	Logout(ctx context.Context, token string) error
	ValidateSession(ctx context.Context, src service.TokenSource) service.ValidationResult
	UpdateLastActivity(ctx context.Context, token string)
}

// CookieConfig controls the attributes of the session cookie.
type CookieConfig struct {
	Secure bool
	Domain string
}

type Handler struct {
	auth   Service
	logger *slog.Logger
	cookie CookieConfig
}

func New(auth Service, logger *slog.Logger, cookie CookieConfig) *Handler {
	return &Handler{auth: auth, logger: logger, cookie: cookie}
}

// Register mounts the routes. loginLimiter wraps only the login route and may be nil.
func (h *Handler) Register(r chi.Router, loginLimiter func(http.Handler) http.Handler) {
	r.Route("/api/admin-auth", func(r chi.Router) {
		if loginLimiter != nil {
			r.With(loginLimiter).Post("/login", h.HandleLogin)
		} else {
			r.Post("/login", h.HandleLogin)
		}
		r.Post("/logout", h.HandleLogout)
		r.Get("/validate", h.HandleValidate)
	})
}

// HandleLogin implements POST /api/admin-auth/login.
//
// Input: { "email": "...", "password": "...", "remember_me": false }
// Output: { "success": true, "admin": {...}, "permissions": [...], "expires_at": "..." }
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.auth.Login(ctx, service.LoginInput{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
		UserAgent:  r.UserAgent(),
		ClientIP:   clientIP(r),
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(res.Token, res.TTL))
	httputil.WriteJSON(w, http.StatusOK, LoginResponse{
		Success:     true,
		Admin:       res.Admin.Profile(),
		Permissions: res.Permissions,
		ExpiresAt:   res.ExpiresAt,
	})
}

// HandleLogout implements POST /api/admin-auth/logout. It always succeeds
// from the client's point of view.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := service.ExtractToken(service.HTTPRequestSource{R: r})
	if err := h.auth.Logout(ctx, token); err != nil {
		h.logger.ErrorContext(ctx, "logout failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	http.SetCookie(w, h.sessionCookie("", -1))
	httputil.WriteMessage(w, "Logged out")
}

// HandleValidate implements GET /api/admin-auth/validate.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	src := service.HTTPRequestSource{R: r}
	res := h.auth.ValidateSession(ctx, src)
	if !res.Valid {
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorBody{Error: msgInvalidSession})
		return
	}
	h.auth.UpdateLastActivity(ctx, service.ExtractToken(src))
	httputil.WriteJSON(w, http.StatusOK, ValidateResponse{
		Success:     true,
		Admin:       res.Admin.Profile(),
		Permissions: res.Permissions,
	})
}

// sessionCookie builds the admin_session cookie. A negative ttl deletes it.
func (h *Handler) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	maxAge := int(ttl.Seconds())
	if ttl < 0 {
		maxAge = -1
	}
	return &http.Cookie{
		Name:     service.CookieName,
		Value:    value,
		Path:     "/",
		Domain:   h.cookie.Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func clientIP(r *http.Request) string {
	if ip := requestcontext.ClientIP(r.Context()); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
