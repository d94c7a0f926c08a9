package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/hirewire/hirewire-api/internal/application"
	"github.com/hirewire/hirewire-api/internal/domain/entity"
	"github.com/hirewire/hirewire-api/pkg/response"
	"github.com/hirewire/hirewire-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *app.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *app.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string          `json:"name" binding:"required,min=2,max=100"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,pwd"`
	Role     string          `json:"role" binding:"required,oneof=jobseeker recruiter"`
	Phone    string          `json:"phone"`
	Location string          `json:"location"`
	Company  *companyPayload `json:"company"`
}

type companyPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website" binding:"omitempty,url"`
	Location    string `json:"location"`
}

func (p *companyPayload) toEntity() entity.Company {
	if p == nil {
		return entity.Company{}
	}
	return entity.Company{Name: p.Name, Description: p.Description, Website: p.Website, Location: p.Location}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validation.ToFieldErrors(err))
		return
	}
	role, err := entity.ParseRole(req.Role)
	if err != nil {
		response.ValidationFailed(c, []response.FieldError{{Msg: "role must be jobseeker or recruiter", Param: "role"}})
		return
	}

	u, pair, err := h.Svc.Register(c.Request.Context(), app.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
		Phone:    req.Phone,
		Location: req.Location,
		Company:  req.Company.toEntity(),
	})
	if err != nil {
		if errors.Is(err, app.ErrEmailTaken) {
			response.Message(c, http.StatusBadRequest, "User already exists with this email")
			return
		}
		h.Logger.WithError(err).Error("register failed")
		response.Message(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "User registered successfully",
		"token":        pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"user":         u,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validation.ToFieldErrors(err))
		return
	}

	u, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidCredentials):
			response.Message(c, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, app.ErrAccountDeactivated):
			response.Message(c, http.StatusUnauthorized, "Account is deactivated")
		default:
			h.Logger.WithError(err).Error("login failed")
			response.Message(c, http.StatusInternalServerError, "Login failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"token":        pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"user":         u,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validation.ToFieldErrors(err))
		return
	}

	pair, err := h.Svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Message(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":        pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword always returns 200 so the endpoint cannot be used to probe
// which emails are registered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validation.ToFieldErrors(err))
		return
	}
	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.Logger.WithError(err).Error("forgot password failed")
	}
	response.Message(c, http.StatusOK, "If the email exists, a reset link has been sent")
}

type resetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,pwd"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validation.ToFieldErrors(err))
		return
	}
	if err := h.Svc.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, app.ErrResetTokenInvalid) {
			response.Message(c, http.StatusBadRequest, "Invalid or expired reset token")
			return
		}
		h.Logger.WithError(err).Error("reset password failed")
		response.Message(c, http.StatusInternalServerError, "Password reset failed")
		return
	}
	response.Message(c, http.StatusOK, "Password has been reset")
}
