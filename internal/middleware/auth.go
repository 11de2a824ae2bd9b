package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

const (
	identityContextKey = "identity"
	userContextKey     = "current_user"
)

// TokenResolver turns a raw credential into the live user it was issued to.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

// ProtectedRoute marks a path prefix as requiring an identity for the listed
// methods. An empty Methods slice protects every method.
type ProtectedRoute struct {
	Prefix  string
	Methods []string
}

// RouteTable is the list of protected routes consulted on every request.
type RouteTable []ProtectedRoute

// Requires reports whether method+path needs an authenticated identity.
// Prefixes match on whole path segments: "/admin/events" covers
// "/admin/events/1" but not "/admin/eventsx".
func (t RouteTable) Requires(method, path string) bool {
	for _, r := range t {
		if !matchPrefix(path, r.Prefix) {
			continue
		}
		if len(r.Methods) == 0 || slices.Contains(r.Methods, method) {
			return true
		}
	}
	return false
}

func matchPrefix(path, prefix string) bool {
	prefix = strings.TrimRight(prefix, "/")
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}

// DefaultRouteTable returns the protected routes of the storefront API mounted under base.
func DefaultRouteTable(base string) RouteTable {
	base = strings.TrimRight(base, "/")
	get, patch, post, del := http.MethodGet, http.MethodPatch, http.MethodPost, http.MethodDelete

	routes := []ProtectedRoute{
		{Prefix: "/users/profile", Methods: []string{get, patch}},
		{Prefix: "/users/orders", Methods: []string{get}},
		{Prefix: "/users/gallery", Methods: []string{get}},
		{Prefix: "/users/gallery-items", Methods: []string{get}},
		{Prefix: "/users/password", Methods: []string{post}},
		{Prefix: "/users/logout", Methods: []string{post}},
		{Prefix: "/users/checkout", Methods: []string{post}},
		{Prefix: "/currentuser", Methods: []string{get}},
		{Prefix: "/admin/profile", Methods: []string{get, patch}},
		{Prefix: "/admin/address"},
		{Prefix: "/admin/users"},
		{Prefix: "/admin/events/category"},
		{Prefix: "/admin/events/category/faq"},
		{Prefix: "/admin/blog", Methods: []string{post, patch, del}},
		{Prefix: "/admin/events"},
		{Prefix: "/admin/gallery"},
		{Prefix: "/admin/gallery-items"},
	}
	for i := range routes {
		routes[i].Prefix = base + routes[i].Prefix
	}
	return routes
}

// Authenticate resolves the request credential, if any, and stores the caller
// in the gin context. Requests matching table without a resolvable credential
// are rejected with 401. Unprotected requests pass through either way.
func Authenticate(resolver TokenResolver, table RouteTable, cookieName string, logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		if token := extractToken(c, cookieName); token != "" {
			user, err := resolver.Resolve(c.Request.Context(), token)
			switch {
			case err == nil && user != nil:
				SetCurrentUser(c, user)
			case err != nil && !domain.IsUnauthenticated(err):
				logger.WarnContext(c.Request.Context(), "token resolution failed", slog.String("error", err.Error()))
			}
		}

		if table.Requires(c.Request.Method, c.Request.URL.Path) && CurrentIdentity(c) == nil {
			pkg.Abort(c, domain.ErrUnauthenticated)
			return
		}

		c.Next()
	}
}

// RequireAdmin rejects authenticated non-admin callers with 403 and anonymous
// callers with 401.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil {
			pkg.Abort(c, domain.ErrUnauthenticated)
			return
		}
		if !identity.IsAdmin() {
			pkg.Abort(c, domain.NewFieldError(domain.CodeForbidden, "Forbidden", "authorization", "Administrator access required"))
			return
		}
		c.Next()
	}
}

// extractToken reads "Authorization: Bearer <token>", falling back to the cookie.
func extractToken(c *gin.Context, cookieName string) string {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			if token = strings.TrimSpace(token); token != "" {
				return token
			}
		}
	}
	if cookieName == "" {
		return ""
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

// SetCurrentUser stores user and its identity in the gin context.
func SetCurrentUser(c *gin.Context, user *domain.User) {
	c.Set(userContextKey, user)
	c.Set(identityContextKey, &domain.Identity{ID: user.ID, RoleID: user.UserGroupID, Email: user.Email})
}

// CurrentIdentity returns the authenticated caller or nil.
func CurrentIdentity(c *gin.Context) *domain.Identity {
	if v, ok := c.Get(identityContextKey); ok {
		if id, ok := v.(*domain.Identity); ok {
			return id
		}
	}
	return nil
}

// CurrentUser returns the authenticated user record or nil.
func CurrentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(userContextKey); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}
