package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/hirewire/hirewire-api/internal/application"
	"github.com/hirewire/hirewire-api/internal/domain/entity"
	repo "github.com/hirewire/hirewire-api/internal/domain/repository"
	"github.com/hirewire/hirewire-api/internal/interface/middleware"
	"github.com/hirewire/hirewire-api/pkg/helpers"
	"github.com/hirewire/hirewire-api/pkg/response"
	"github.com/hirewire/hirewire-api/pkg/validation"
)

type JobHandler struct {
	Svc    *app.JobService
	Logger *logrus.Logger
}

func NewJobHandler(svc *app.JobService, logger *logrus.Logger) *JobHandler {
	return &JobHandler{Svc: svc, Logger: logger}
}

type salaryPayload struct {
	Min      int64  `json:"min" binding:"gte=0"`
	Max      int64  `json:"max" binding:"gtefield=Min"`
	Currency string `json:"currency"`
}

type createJobRequest struct {
	Title            string         `json:"title" binding:"required,min=3,max=200"`
	Description      string         `json:"description" binding:"required,min=10"`
	Requirements     string         `json:"requirements"`
	Responsibilities string         `json:"responsibilities"`
	Skills           []string       `json:"skills" binding:"required,min=1"`
	Experience       string         `json:"experience" binding:"required,oneof=entry mid senior expert"`
	Salary           salaryPayload  `json:"salary" binding:"required"`
	Location         string         `json:"location" binding:"required"`
	JobType          string         `json:"jobType" binding:"required,oneof=full-time part-time contract internship remote"`
	Company          companyPayload `json:"company" binding:"required"`
	Deadline         *time.Time     `json:"deadline"`
	Benefits         []string       `json:"benefits"`
	Tags             []string       `json:"tags"`
}

func (h *JobHandler) Create(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validation.ToFieldErrors(err))
		return
	}

	u := middleware.CurrentUser(c)
	j, err := h.Svc.Create(c.Request.Context(), u, app.CreateJobInput{
		Title:            req.Title,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Skills:           req.Skills,
		Experience:       entity.ExperienceLevel(req.Experience),
		Salary:           entity.Salary{Min: req.Salary.Min, Max: req.Salary.Max, Currency: req.Salary.Currency},
		Location:         req.Location,
		JobType:          entity.JobType(req.JobType),
		Company:          req.Company.toEntity(),
		Deadline:         req.Deadline,
		Benefits:         req.Benefits,
		Tags:             req.Tags,
	})
	if err != nil {
		h.Logger.WithError(err).Error("job create failed")
		response.Message(c, http.StatusInternalServerError, "Job creation failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Job created successfully", "job": j})
}

// List is the public listing: active and approved postings only.
func (h *JobHandler) List(c *gin.Context) {
	page, limit := helpers.ParsePagination(c)
	f := repo.JobFilter{
		Search:     c.Query("search"),
		Location:   c.Query("location"),
		JobType:    entity.JobType(c.Query("jobType")),
		Experience: entity.ExperienceLevel(c.Query("experience")),
		Skills:     c.QueryArray("skills"),
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
		Page:       page,
		Limit:      limit,
	}
	f.MinSalary, _ = strconv.ParseInt(c.Query("minSalary"), 10, 64)
	f.MaxSalary, _ = strconv.ParseInt(c.Query("maxSalary"), 10, 64)

	jobs, total, err := h.Svc.ListPublic(c.Request.Context(), f)
	if err != nil {
		h.Logger.WithError(err).Error("job list failed")
		response.Message(c, http.StatusInternalServerError, "Listing failed")
		return
	}
	response.List(c, "jobs", jobs, response.NewPage(total, page, limit))
}

func (h *JobHandler) Get(c *gin.Context) {
	j, err := h.Svc.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, app.ErrJobNotFound) {
			response.Message(c, http.StatusNotFound, "Job not found")
			return
		}
		h.Logger.WithError(err).Error("job lookup failed")
		response.Message(c, http.StatusInternalServerError, "Lookup failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": j})
}

type updateJobRequest struct {
	Title            *string         `json:"title" binding:"omitempty,min=3,max=200"`
	Description      *string         `json:"description" binding:"omitempty,min=10"`
	Requirements     *string         `json:"requirements"`
	Responsibilities *string         `json:"responsibilities"`
	Skills           []string        `json:"skills"`
	Experience       string          `json:"experience" binding:"omitempty,oneof=entry mid senior expert"`
	Salary           *salaryPayload  `json:"salary"`
	Location         *string         `json:"location"`
	JobType          string          `json:"jobType" binding:"omitempty,oneof=full-time part-time contract internship remote"`
	Company          *companyPayload `json:"company"`
	Deadline         *time.Time      `json:"deadline"`
	Benefits         []string        `json:"benefits"`
	Tags             []string        `json:"tags"`
}

func (h *JobHandler) Update(c *gin.Context) {
	var req updateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validation.ToFieldErrors(err))
		return
	}

	in := app.UpdateJobInput{
		Title:            req.Title,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Skills:           req.Skills,
		Experience:       entity.ExperienceLevel(req.Experience),
		Location:         req.Location,
		JobType:          entity.JobType(req.JobType),
		Deadline:         req.Deadline,
		Benefits:         req.Benefits,
		Tags:             req.Tags,
	}
	if req.Salary != nil {
		in.Salary = &entity.Salary{Min: req.Salary.Min, Max: req.Salary.Max, Currency: req.Salary.Currency}
	}
	if req.Company != nil {
		company := req.Company.toEntity()
		in.Company = &company
	}

	j, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		if errors.Is(err, app.ErrJobNotFound) {
			response.Message(c, http.StatusNotFound, "Job not found")
			return
		}
		h.Logger.WithError(err).Error("job update failed")
		response.Message(c, http.StatusInternalServerError, "Job update failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job updated successfully", "job": j})
}

func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, app.ErrJobNotFound) {
			response.Message(c, http.StatusNotFound, "Job not found")
			return
		}
		h.Logger.WithError(err).Error("job delete failed")
		response.Message(c, http.StatusInternalServerError, "Job deletion failed")
		return
	}
	response.Message(c, http.StatusOK, "Job deleted successfully")
}

func (h *JobHandler) ToggleStatus(c *gin.Context) {
	j, err := h.Svc.ToggleStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, app.ErrJobNotFound) {
			response.Message(c, http.StatusNotFound, "Job not found")
			return
		}
		h.Logger.WithError(err).Error("job toggle failed")
		response.Message(c, http.StatusInternalServerError, "Status toggle failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job status updated", "job": j})
}

// MyJobs lists the caller's own postings with an optional status facet.
func (h *JobHandler) MyJobs(c *gin.Context) {
	u := middleware.CurrentUser(c)
	page, limit := helpers.ParsePagination(c)
	jobs, total, err := h.Svc.ListForRecruiter(c.Request.Context(), u.ID, c.Query("status"), page, limit)
	if err != nil {
		h.Logger.WithError(err).Error("my jobs failed")
		response.Message(c, http.StatusInternalServerError, "Listing failed")
		return
	}
	response.List(c, "jobs", jobs, response.NewPage(total, page, limit))
}

func (h *JobHandler) Suggestions(c *gin.Context) {
	titles, err := h.Svc.Suggestions(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.Logger.WithError(err).Error("suggestions failed")
		response.Message(c, http.StatusInternalServerError, "Suggestions failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": titles})
}
