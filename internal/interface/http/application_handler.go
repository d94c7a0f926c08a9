package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/hirewire/hirewire-api/internal/application"
	"github.com/hirewire/hirewire-api/internal/domain/entity"
	"github.com/hirewire/hirewire-api/internal/interface/middleware"
	"github.com/hirewire/hirewire-api/pkg/helpers"
	"github.com/hirewire/hirewire-api/pkg/response"
	"github.com/hirewire/hirewire-api/pkg/validation"
)

type ApplicationHandler struct {
	Svc    *app.ApplicationService
	Logger *logrus.Logger
}

func NewApplicationHandler(svc *app.ApplicationService, logger *logrus.Logger) *ApplicationHandler {
	return &ApplicationHandler{Svc: svc, Logger: logger}
}

type applyRequest struct {
	JobID          string `json:"jobId" binding:"required,uuid"`
	CoverLetter    string `json:"coverLetter" binding:"required,coverletter"`
	ResumeURL      string `json:"resumeUrl" binding:"omitempty,url"`
	ExpectedSalary *int64 `json:"expectedSalary" binding:"omitempty,gte=0"`
	Availability   string `json:"availability" binding:"omitempty,oneof=immediate 2-weeks 1-month 3-months negotiable"`
	Notes          string `json:"notes" binding:"omitempty,max=1000"`
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validation.ToFieldErrors(err))
		return
	}

	availability := entity.Availability(req.Availability)
	if availability == "" {
		availability = entity.AvailabilityNegotiable
	}

	u := middleware.CurrentUser(c)
	a, err := h.Svc.Apply(c.Request.Context(), u, app.ApplyInput{
		JobID:          req.JobID,
		CoverLetter:    req.CoverLetter,
		ResumeURL:      req.ResumeURL,
		ExpectedSalary: req.ExpectedSalary,
		Availability:   availability,
		Notes:          req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrJobNotFound):
			response.Message(c, http.StatusNotFound, "Job not found")
		case errors.Is(err, app.ErrJobUnavailable):
			response.Message(c, http.StatusBadRequest, "This job is not available for applications")
		case errors.Is(err, app.ErrAlreadyApplied):
			response.Message(c, http.StatusBadRequest, "You have already applied for this job")
		default:
			h.Logger.WithError(err).Error("apply failed")
			response.Message(c, http.StatusInternalServerError, "Application failed")
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Application submitted successfully", "application": a})
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	u := middleware.CurrentUser(c)
	a, err := h.Svc.Get(c.Request.Context(), u, c.Param("id"))
	if err != nil {
		h.writeError(c, err, "application lookup failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": a})
}

type updateStatusRequest struct {
	Status         string     `json:"status" binding:"required,oneof=pending reviewed shortlisted rejected hired"`
	RecruiterNotes *string    `json:"recruiterNotes" binding:"omitempty,max=1000"`
	InterviewDate  *time.Time `json:"interviewDate"`
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validation.ToFieldErrors(err))
		return
	}
	status, err := entity.ParseApplicationStatus(req.Status)
	if err != nil {
		response.ValidationFailed(c, []response.FieldError{{Msg: "invalid status", Param: "status"}})
		return
	}

	u := middleware.CurrentUser(c)
	a, err := h.Svc.UpdateStatus(c.Request.Context(), u, c.Param("id"), app.UpdateStatusInput{
		Status:         status,
		RecruiterNotes: req.RecruiterNotes,
		InterviewDate:  req.InterviewDate,
	})
	if err != nil {
		h.writeError(c, err, "status update failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application status updated", "application": a})
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	u := middleware.CurrentUser(c)
	a, err := h.Svc.Withdraw(c.Request.Context(), u, c.Param("id"))
	if err != nil {
		if errors.Is(err, app.ErrWithdrawForbidden) {
			response.Message(c, http.StatusBadRequest, "Cannot withdraw a hired application")
			return
		}
		h.writeError(c, err, "withdraw failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application withdrawn successfully", "application": a})
}

func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	u := middleware.CurrentUser(c)
	page, limit := helpers.ParsePagination(c)
	apps, total, err := h.Svc.ForApplicant(c.Request.Context(), u.ID, statusQuery(c), page, limit)
	if err != nil {
		h.Logger.WithError(err).Error("my applications failed")
		response.Message(c, http.StatusInternalServerError, "Listing failed")
		return
	}
	response.List(c, "applications", apps, response.NewPage(total, page, limit))
}

func (h *ApplicationHandler) RecruiterApplications(c *gin.Context) {
	u := middleware.CurrentUser(c)
	page, limit := helpers.ParsePagination(c)
	apps, total, err := h.Svc.ForRecruiter(c.Request.Context(), u.ID, statusQuery(c), c.Query("jobId"), page, limit)
	if err != nil {
		h.Logger.WithError(err).Error("recruiter applications failed")
		response.Message(c, http.StatusInternalServerError, "Listing failed")
		return
	}
	response.List(c, "applications", apps, response.NewPage(total, page, limit))
}

func (h *ApplicationHandler) JobApplications(c *gin.Context) {
	u := middleware.CurrentUser(c)
	page, limit := helpers.ParsePagination(c)
	apps, total, err := h.Svc.ForJob(c.Request.Context(), u, c.Param("jobId"), statusQuery(c), page, limit)
	if err != nil {
		if errors.Is(err, app.ErrJobNotFound) {
			response.Message(c, http.StatusNotFound, "Job not found")
			return
		}
		h.writeError(c, err, "job applications failed")
		return
	}
	response.List(c, "applications", apps, response.NewPage(total, page, limit))
}

func (h *ApplicationHandler) CheckApplied(c *gin.Context) {
	u := middleware.CurrentUser(c)
	a, err := h.Svc.CheckApplied(c.Request.Context(), u.ID, c.Param("jobId"))
	if err != nil {
		h.Logger.WithError(err).Error("check applied failed")
		response.Message(c, http.StatusInternalServerError, "Lookup failed")
		return
	}
	if a == nil {
		c.JSON(http.StatusOK, gin.H{"applied": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": true, "application": a})
}

func (h *ApplicationHandler) Stats(c *gin.Context) {
	u := middleware.CurrentUser(c)
	stats, err := h.Svc.Stats(c.Request.Context(), u.ID)
	if err != nil {
		h.Logger.WithError(err).Error("application stats failed")
		response.Message(c, http.StatusInternalServerError, "Stats failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h *ApplicationHandler) writeError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, app.ErrApplicationNotFound):
		response.Message(c, http.StatusNotFound, "Application not found")
	case errors.Is(err, app.ErrApplicationAccess):
		response.Message(c, http.StatusForbidden, "Access denied")
	default:
		h.Logger.WithError(err).Error(logMsg)
		response.Message(c, http.StatusInternalServerError, "Request failed")
	}
}

func statusQuery(c *gin.Context) entity.ApplicationStatus {
	return entity.ApplicationStatus(c.Query("status"))
}
