package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/interviewprep/internal/domain/errors"
	"github.com/polkiloo/interviewprep/internal/server/http/dto"
	"github.com/polkiloo/interviewprep/internal/server/http/middleware"
)

// AuthHandler processes registration, login and admin bootstrap.
type AuthHandler struct {
	facade AuthFacade
	logger *slog.Logger
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{facade: facade, logger: logger}
}

// Register handles POST /api/user/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "registration failed", "malformed request body")
		return
	}

	token, err := h.facade.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if field, message, ok := validationField(err); ok {
			failField(c, http.StatusBadRequest, field, message)
			return
		}
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			fail(c, http.StatusBadRequest, "registration failed", "email and password are required")
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			fail(c, http.StatusConflict, "registration failed", "email already registered")
		default:
			h.logger.Error("register failed", slog.String("error", err.Error()))
			fail(c, http.StatusInternalServerError, "registration failed", "please retry")
		}
		return
	}

	middleware.SetAuthCookie(c, token)
	c.Status(http.StatusOK)
}

// Login handles POST /api/user/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "login failed", "malformed request body")
		return
	}

	token, err := h.facade.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.loginError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.Status(http.StatusOK)
}

// AdminLogin handles POST /api/admin/login.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "login failed", "malformed request body")
		return
	}

	token, err := h.facade.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.loginError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.Status(http.StatusOK)
}

func (h *AuthHandler) loginError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, "login failed", "invalid email or password")
	case errors.Is(err, domainErrors.ErrForbidden):
		fail(c, http.StatusForbidden, "login failed", "account has no console access")
	default:
		h.logger.Error("login failed", slog.String("error", err.Error()))
		fail(c, http.StatusInternalServerError, "login failed", "please retry")
	}
}

// AdminSetup handles POST /api/admin/setup.
func (h *AuthHandler) AdminSetup(c *gin.Context) {
	email, password, err := h.facade.SetupAdmin(c.Request.Context())
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			fail(c, http.StatusConflict, "admin setup failed", "admin account already exists")
			return
		}
		h.logger.Error("admin setup failed", slog.String("error", err.Error()))
		fail(c, http.StatusInternalServerError, "admin setup failed", "please retry")
		return
	}

	c.JSON(http.StatusCreated, dto.AdminSetupResponse{Email: email, Password: password})
}
