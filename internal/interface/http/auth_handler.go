package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/learnfromme/accounts/internal/application"
	"github.com/learnfromme/accounts/pkg/helpers"
	"github.com/learnfromme/accounts/pkg/response"
	"github.com/learnfromme/accounts/pkg/validation"
)

// AuthHandler exposes signup, login/logout and the password-reset flow.
type AuthHandler struct {
	Svc     *application.Service
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type forgotRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,pwd"`
}

// Signup POST /api/signup
// Field validation lives in the service so every failure reason comes back in
// one response.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{
		Username: req.Username,
		Password: req.Password,
		Confirm:  req.Confirm,
		Email:    req.Email,
	})
	if err != nil {
		var verr *application.ValidationError
		switch {
		case errors.As(err, &verr):
			response.Error[any](c, http.StatusBadRequest, "signup validation failed", verr.Reasons)
		case errors.Is(err, application.ErrDuplicateIdentity):
			response.Error[any](c, http.StatusConflict, "User or email already exists!", nil)
		default:
			h.Logger.WithError(err).Error("signup failed")
			response.Error[any](c, http.StatusInternalServerError, "signup failed", nil)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
	}, "account created", nil)
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Authenticate(req.Username, req.Password)
	if err != nil {
		// The two credential failures carry distinct messages, matching the
		// login form's feedback.
		switch {
		case errors.Is(err, application.ErrNoSuchUser):
			response.Error[any](c, http.StatusUnauthorized, "User does not exist!", nil)
		case errors.Is(err, application.ErrBadPassword):
			response.Error[any](c, http.StatusUnauthorized, "Wrong password!", nil)
		default:
			h.Logger.WithError(err).Error("login failed")
			response.Error[any](c, http.StatusInternalServerError, "login failed", nil)
		}
		return
	}

	token, exp, err := h.Svc.EstablishSession(c.Request.Context(), u)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", u.ID).Error("session establish failed")
		response.Error[any](c, http.StatusInternalServerError, "login failed", nil)
		return
	}
	h.Cookies.SetSession(c, token, exp)

	response.Success(c, http.StatusOK, gin.H{
		"id":       u.ID,
		"username": u.Username,
		"name":     u.Name(),
	}, "login successful", map[string]any{"expires_at": exp})
}

// Logout POST /api/logout. Public on purpose: logging out twice, or with no
// session at all, is not an error.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(helpers.SessionCookieName); err == nil && token != "" {
		if err := h.Svc.DestroySession(c.Request.Context(), token); err != nil {
			h.Logger.WithError(err).Warn("session destroy failed")
		}
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// Forgot POST /api/auth/forgot {email}
func (h *AuthHandler) Forgot(c *gin.Context) {
	var req forgotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	err := h.Svc.RequestPasswordReset(c.Request.Context(), req.Email)
	switch {
	case err == nil:
		response.Success[any](c, http.StatusOK, gin.H{"sent": true},
			"An email has been sent to "+req.Email+" with further instructions.", nil)
	case errors.Is(err, application.ErrNoSuchEmail):
		response.Error[any](c, http.StatusNotFound, "No account with that email exists!", nil)
	case errors.Is(err, application.ErrMailDelivery):
		// The token is issued; only the notification failed.
		response.Error[any](c, http.StatusBadGateway, "failed to send reset email", nil)
	default:
		h.Logger.WithError(err).Error("password reset request failed")
		response.Error[any](c, http.StatusInternalServerError, "password reset request failed", nil)
	}
}

// ResetCheck GET /api/auth/reset/:token — preflight used before showing the
// reset form; shares the validate path with Reset.
func (h *AuthHandler) ResetCheck(c *gin.Context) {
	if _, err := h.Svc.ValidateResetToken(c.Param("token")); err != nil {
		if errors.Is(err, application.ErrTokenInvalidOrExpired) {
			response.Error[any](c, http.StatusBadRequest, "Password token is invalid or expired!", nil)
			return
		}
		h.Logger.WithError(err).Error("reset token check failed")
		response.Error[any](c, http.StatusInternalServerError, "reset token check failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"valid": true}, "token valid", nil)
}

// Reset POST /api/auth/reset {token, password}
func (h *AuthHandler) Reset(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	err := h.Svc.ResetPassword(c.Request.Context(), req.Token, req.Password)
	switch {
	case err == nil:
		response.Success[any](c, http.StatusOK, gin.H{"reset": true},
			"Success! Your password has been changed!", nil)
	case errors.Is(err, application.ErrTokenInvalidOrExpired):
		response.Error[any](c, http.StatusBadRequest, "Password token is invalid or expired!", nil)
	case errors.Is(err, application.ErrMailDelivery):
		// Password already changed; only the confirmation email failed.
		response.Error[any](c, http.StatusBadGateway, "password changed but confirmation email failed", nil)
	default:
		h.Logger.WithError(err).Error("password reset failed")
		response.Error[any](c, http.StatusInternalServerError, "password reset failed", nil)
	}
}
