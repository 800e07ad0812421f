package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/learnfromme/accounts/internal/application"
	"github.com/learnfromme/accounts/internal/domain/entity"
	"github.com/learnfromme/accounts/internal/interface/middleware"
	"github.com/learnfromme/accounts/pkg/response"
	"github.com/learnfromme/accounts/pkg/validation"
)

// UserHandler serves profile pages: the public listing, public profiles by
// username, and the authenticated user's own profile.
type UserHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name" binding:"max=100"`
	Bio         string `json:"bio" binding:"max=2000"`
}

func publicProfile(u *entity.User) gin.H {
	return gin.H{
		"username":     u.Username,
		"name":         u.Name(),
		"display_name": u.DisplayName,
		"bio":          u.Bio,
		"created_at":   u.CreatedAt,
	}
}

// List GET /api/users — newest accounts first.
func (h *UserHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	users, err := h.Svc.ListUsers(limit)
	if err != nil {
		h.Logger.WithError(err).Error("list users failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to list users", nil)
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, publicProfile(u))
	}
	response.Success(c, http.StatusOK, out, "users", map[string]any{"count": len(out)})
}

// GetByUsername GET /api/users/:username
func (h *UserHandler) GetByUsername(c *gin.Context) {
	u, err := h.Svc.GetByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, application.ErrNoSuchUser) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get user failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load user", nil)
		return
	}
	response.Success(c, http.StatusOK, publicProfile(u), "user", nil)
}

// GetProfile GET /api/profile (auth required). The middleware already
// fetched the user fresh from the store for this request.
func (h *UserHandler) GetProfile(c *gin.Context) {
	v, exists := c.Get(middleware.CtxUserKey)
	u, ok := v.(*entity.User)
	if !exists || !ok {
		response.Error[any](c, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":           u.ID,
		"username":     u.Username,
		"email":        u.Email,
		"name":         u.Name(),
		"display_name": u.DisplayName,
		"bio":          u.Bio,
		"created_at":   u.CreatedAt,
		"updated_at":   u.UpdatedAt,
	}, "profile", nil)
}

// UpdateProfile PUT /api/profile (auth required). Only the session's own
// record can be edited; no target id is accepted.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.EditProfile(uid, req.DisplayName, req.Bio)
	if err != nil {
		if errors.Is(err, application.ErrNotAuthenticated) {
			response.Error[any](c, http.StatusUnauthorized, "not authenticated", nil)
			return
		}
		h.Logger.WithError(err).WithField("user_id", uid).Error("profile update failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to update profile", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":           u.ID,
		"username":     u.Username,
		"name":         u.Name(),
		"display_name": u.DisplayName,
		"bio":          u.Bio,
		"updated_at":   u.UpdatedAt,
	}, "Profile updated!", nil)
}
