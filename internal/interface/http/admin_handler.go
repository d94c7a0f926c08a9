package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/hirewire/hirewire-api/internal/application"
	"github.com/hirewire/hirewire-api/internal/domain/entity"
	repo "github.com/hirewire/hirewire-api/internal/domain/repository"
	"github.com/hirewire/hirewire-api/pkg/helpers"
	"github.com/hirewire/hirewire-api/pkg/response"
	"github.com/hirewire/hirewire-api/pkg/validation"
)

type AdminHandler struct {
	Svc    *app.AdminService
	Logger *logrus.Logger
}

func NewAdminHandler(svc *app.AdminService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Logger: logger}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.Svc.Dashboard(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("dashboard failed")
		response.Message(c, http.StatusInternalServerError, "Dashboard failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h *AdminHandler) Analytics(c *gin.Context) {
	period, _ := strconv.Atoi(c.DefaultQuery("period", "30"))
	a, err := h.Svc.Analytics(c.Request.Context(), period)
	if err != nil {
		h.Logger.WithError(err).Error("analytics failed")
		response.Message(c, http.StatusInternalServerError, "Analytics failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"analytics": a})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := helpers.ParsePagination(c)
	f := repo.UserFilter{
		Role:   entity.Role(c.Query("role")),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}
	if s := c.Query("status"); s == "active" || s == "inactive" {
		active := s == "active"
		f.IsActive = &active
	}

	users, total, err := h.Svc.ListUsers(c.Request.Context(), f)
	if err != nil {
		h.Logger.WithError(err).Error("admin user list failed")
		response.Message(c, http.StatusInternalServerError, "Listing failed")
		return
	}
	response.List(c, "users", users, response.NewPage(total, page, limit))
}

type setUserStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

func (h *AdminHandler) SetUserStatus(c *gin.Context) {
	var req setUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validation.ToFieldErrors(err))
		return
	}

	u, err := h.Svc.SetUserActive(c.Request.Context(), c.Param("id"), *req.IsActive)
	if err != nil {
		if errors.Is(err, app.ErrUserNotFound) {
			response.Message(c, http.StatusNotFound, "User not found")
			return
		}
		h.Logger.WithError(err).Error("set user status failed")
		response.Message(c, http.StatusInternalServerError, "Status update failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User status updated", "user": u})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.Svc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, app.ErrUserNotFound) {
			response.Message(c, http.StatusNotFound, "User not found")
			return
		}
		h.Logger.WithError(err).Error("delete user failed")
		response.Message(c, http.StatusInternalServerError, "User deletion failed")
		return
	}
	response.Message(c, http.StatusOK, "User deleted successfully")
}

func (h *AdminHandler) ListJobs(c *gin.Context) {
	page, limit := helpers.ParsePagination(c)
	f := repo.JobFilter{
		Search:      c.Query("search"),
		RecruiterID: c.Query("recruiter"),
		Page:        page,
		Limit:       limit,
	}
	t, fa := true, false
	switch c.Query("status") {
	case "approved":
		f.Approved = &t
	case "pending":
		f.Approved = &fa
	case "active":
		f.Active = &t
	case "inactive":
		f.Active = &fa
	}

	jobs, total, err := h.Svc.ListJobs(c.Request.Context(), f)
	if err != nil {
		h.Logger.WithError(err).Error("admin job list failed")
		response.Message(c, http.StatusInternalServerError, "Listing failed")
		return
	}
	response.List(c, "jobs", jobs, response.NewPage(total, page, limit))
}

func (h *AdminHandler) ApproveJob(c *gin.Context) {
	j, err := h.Svc.ApproveJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, app.ErrJobNotFound) {
			response.Message(c, http.StatusNotFound, "Job not found")
			return
		}
		h.Logger.WithError(err).Error("approve job failed")
		response.Message(c, http.StatusInternalServerError, "Approval failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job approved successfully", "job": j})
}

func (h *AdminHandler) DeleteJob(c *gin.Context) {
	if err := h.Svc.DeleteJob(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, app.ErrJobNotFound) {
			response.Message(c, http.StatusNotFound, "Job not found")
			return
		}
		h.Logger.WithError(err).Error("admin delete job failed")
		response.Message(c, http.StatusInternalServerError, "Job deletion failed")
		return
	}
	response.Message(c, http.StatusOK, "Job deleted successfully")
}

func (h *AdminHandler) ListApplications(c *gin.Context) {
	page, limit := helpers.ParsePagination(c)
	f := repo.ApplicationFilter{
		Status:      entity.ApplicationStatus(c.Query("status")),
		JobID:       c.Query("job"),
		ApplicantID: c.Query("applicant"),
		Page:        page,
		Limit:       limit,
	}

	apps, total, err := h.Svc.ListApplications(c.Request.Context(), f)
	if err != nil {
		h.Logger.WithError(err).Error("admin application list failed")
		response.Message(c, http.StatusInternalServerError, "Listing failed")
		return
	}
	response.List(c, "applications", apps, response.NewPage(total, page, limit))
}
