package auth

import "github.com/gin-gonic/gin"

// AuthModule implements the app.Module interface for sessions.
type AuthModule struct {
	handler *AuthHandler
}

// NewModule creates a new AuthModule with the given handler.
// Panics if h is nil.
func NewModule(h *AuthHandler) *AuthModule {
	if h == nil {
		panic("auth.NewModule: handler must not be nil")
	}
	return &AuthModule{handler: h}
}

// RegisterRoutes registers session routes.
func (m *AuthModule) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/users/login", m.handler.Login)
	api.POST("/users/logout", m.handler.Logout)
	api.POST("/users/password", m.handler.ChangePassword)
}
