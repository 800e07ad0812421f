package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/learnfromme/accounts/internal/interface/http"
)

// AuthModule wires signup, login/logout and the password-reset endpoints.
// All routes are public; logout in particular must stay reachable without a
// live session so logging out twice is not an error.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/signup", m.Handler.Signup)
	rg.POST("/login", m.Handler.Login)
	rg.POST("/logout", m.Handler.Logout)
	rg.POST("/auth/forgot", m.Handler.Forgot)
	rg.GET("/auth/reset/:token", m.Handler.ResetCheck)
	rg.POST("/auth/reset", m.Handler.Reset)
}
