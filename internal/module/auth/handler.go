package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/middleware"
	"github.com/simp-lee/photostore/internal/pkg"
)

// Cookie describes the session cookie set alongside the returned token.
// An empty Name disables the cookie.
type Cookie struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// AuthHandler handles REST API requests for sessions.
type AuthHandler struct {
	svc      Service
	resource crud.Resource[domain.User]
	cookie   Cookie
}

// NewHandler creates a new AuthHandler. Users are rendered with resource.
func NewHandler(svc Service, resource crud.Resource[domain.User], cookie Cookie) *AuthHandler {
	return &AuthHandler{svc: svc, resource: resource, cookie: cookie}
}

func clientInfo(c *gin.Context) domain.ClientInfo {
	return domain.ClientInfo{
		DeviceType: "web",
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	}
}

func (h *AuthHandler) setCookie(c *gin.Context, token string, maxAge int) {
	if h.cookie.Name == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, maxAge, "/", "", h.cookie.Secure, true)
}

// Login handles POST /api/v1/users/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password, clientInfo(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	h.setCookie(c, token, int(h.cookie.MaxAge.Seconds()))
	data := h.resource.Item(user)
	data["token"] = token
	pkg.Success(c, "Login successful", data)
}

// Logout handles POST /api/v1/users/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		pkg.Error(c, domain.ErrUnauthenticated)
		return
	}
	if err := h.svc.Logout(c.Request.Context(), identity.ID); err != nil {
		pkg.Error(c, err)
		return
	}

	h.setCookie(c, "", -1)
	pkg.Success(c, "Logout successful", gin.H{})
}

// ChangePassword handles POST /api/v1/users/password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		pkg.Error(c, domain.ErrUnauthenticated)
		return
	}
	var req ChangePasswordRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	token, err := h.svc.ChangePassword(c.Request.Context(), identity.ID,
		req.CurrentPassword, req.NewPassword, clientInfo(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	h.setCookie(c, token, int(h.cookie.MaxAge.Seconds()))
	pkg.Success(c, "Password changed successfully", gin.H{"token": token})
}
