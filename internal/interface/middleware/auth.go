package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnfromme/accounts/internal/application"
	"github.com/learnfromme/accounts/pkg/helpers"
	"github.com/learnfromme/accounts/pkg/response"
)

const (
	CtxUserIDKey = "userID"
	CtxUserKey   = "currentUser"
)

// Auth resolves the session cookie into a fresh user record and injects it
// into the Gin context. Requests without a live session are rejected.
func Auth(svc *application.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || token == "" {
			response.AbortError(c, http.StatusUnauthorized, "You need to log in to view this page!", nil)
			return
		}
		u, err := svc.ResolveSession(c.Request.Context(), token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "You need to log in to view this page!", nil)
			return
		}
		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserKey, u)
		c.Next()
	}
}
