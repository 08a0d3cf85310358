package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	authapp "github.com/mediscribe/mediscribe-api/internal/application"
	"github.com/mediscribe/mediscribe-api/internal/interface/middleware"
	"github.com/mediscribe/mediscribe-api/pkg/helpers"
	"github.com/mediscribe/mediscribe-api/pkg/response"
	"github.com/mediscribe/mediscribe-api/pkg/validation"
)

type AuthHandler struct {
	Svc     *authapp.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAuthHandler(svc *authapp.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type signupRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	view, err := h.Svc.Signup(c.Request.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authapp.ErrEmailTaken) {
			response.Error(c, http.StatusConflict, "an account with this email already exists", nil)
			return
		}
		h.Logger.WithError(err).Error("signup failed")
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": view}, "user created successfully")
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	view, token, exp, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authapp.ErrInvalidCredentials) {
			// Same message for unknown email and wrong password.
			response.Error(c, http.StatusUnauthorized, "invalid email or password", nil)
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	h.Cookies.SetSession(c, token, exp)
	response.Success(c, http.StatusOK, gin.H{"user": view, "token": token}, "login successful")
}

// Me GET /api/auth/me (gated)
func (h *AuthHandler) Me(c *gin.Context) {
	u, ok := middleware.UserFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": authapp.NewUserView(u)}, "profile")
}

// Logout POST /api/auth/logout (gated). Clears the cookie only; the token
// itself stays valid until expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, "logged out")
}
