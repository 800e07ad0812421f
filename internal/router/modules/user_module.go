package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/learnfromme/accounts/internal/application"
	handlers "github.com/learnfromme/accounts/internal/interface/http"
	"github.com/learnfromme/accounts/internal/interface/middleware"
)

// UserModule wires profile routes.
// Public: GET /api/users, GET /api/users/:username
// Protected: GET /api/profile, PUT /api/profile
type UserModule struct {
	Handler *handlers.UserHandler
	Svc     *application.Service
}

func NewUserModule(h *handlers.UserHandler, svc *application.Service) *UserModule {
	return &UserModule{Handler: h, Svc: svc}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.GET("/users", m.Handler.List)
	rg.GET("/users/:username", m.Handler.GetByUsername)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Svc))
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
	}
}
