package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/hirewire/hirewire-api/internal/application"
	"github.com/hirewire/hirewire-api/internal/domain/entity"
	"github.com/hirewire/hirewire-api/internal/interface/middleware"
	"github.com/hirewire/hirewire-api/pkg/helpers"
	"github.com/hirewire/hirewire-api/pkg/response"
	"github.com/hirewire/hirewire-api/pkg/validation"
)

const maxUploadBytes = 10 << 20

type UserHandler struct {
	Svc    *app.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *app.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	u := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"user": u})
}

type updateProfileRequest struct {
	Name       string          `json:"name" binding:"omitempty,min=2,max=100"`
	Bio        *string         `json:"bio" binding:"omitempty,max=1000"`
	Skills     []string        `json:"skills"`
	ResumeURL  *string         `json:"resumeUrl" binding:"omitempty,url"`
	Experience string          `json:"experience" binding:"omitempty,oneof=entry mid senior expert"`
	Company    *companyPayload `json:"company"`
	Phone      *string         `json:"phone"`
	Location   *string         `json:"location"`
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validation.ToFieldErrors(err))
		return
	}

	in := app.UpdateProfileInput{
		Name:      req.Name,
		Bio:       req.Bio,
		Skills:    req.Skills,
		ResumeURL: req.ResumeURL,
		Phone:     req.Phone,
		Location:  req.Location,
	}
	if req.Experience != "" {
		in.Experience = entity.ExperienceLevel(req.Experience)
	}
	if req.Company != nil {
		company := req.Company.toEntity()
		in.Company = &company
	}

	u := middleware.CurrentUser(c)
	updated, err := h.Svc.UpdateProfile(c.Request.Context(), u.ID, in)
	if err != nil {
		h.Logger.WithError(err).Error("update profile failed")
		response.Message(c, http.StatusInternalServerError, "Profile update failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": updated})
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if err := h.Svc.DeleteAccount(c.Request.Context(), u.ID); err != nil {
		h.Logger.WithError(err).Error("delete account failed")
		response.Message(c, http.StatusInternalServerError, "Account deletion failed")
		return
	}
	response.Message(c, http.StatusOK, "Account deleted successfully")
}

func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	u, err := h.Svc.GetPublicProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, app.ErrUserNotFound) {
			response.Message(c, http.StatusNotFound, "User not found")
			return
		}
		h.Logger.WithError(err).Error("public profile lookup failed")
		response.Message(c, http.StatusInternalServerError, "Lookup failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// BrowseRecruiters and BrowseJobSeekers share the public directory listing.
func (h *UserHandler) BrowseRecruiters(c *gin.Context) { h.browse(c, entity.RoleRecruiter) }

func (h *UserHandler) BrowseJobSeekers(c *gin.Context) { h.browse(c, entity.RoleJobSeeker) }

func (h *UserHandler) browse(c *gin.Context, role entity.Role) {
	page, limit := helpers.ParsePagination(c)
	users, total, err := h.Svc.BrowseByRole(c.Request.Context(), role, c.Query("search"), c.QueryArray("skills"), page, limit)
	if err != nil {
		h.Logger.WithError(err).Error("user browse failed")
		response.Message(c, http.StatusInternalServerError, "Listing failed")
		return
	}
	response.List(c, "users", users, response.NewPage(total, page, limit))
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	h.upload(c, "avatar", h.Svc.UploadAvatar)
}

func (h *UserHandler) UploadResume(c *gin.Context) {
	h.upload(c, "resume", h.Svc.UploadResume)
}

func (h *UserHandler) upload(c *gin.Context, field string, store app.UploadFunc) {
	fh, err := c.FormFile(field)
	if err != nil {
		response.Message(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	if fh.Size > maxUploadBytes {
		response.Message(c, http.StatusBadRequest, "File too large")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Message(c, http.StatusBadRequest, "Unable to read file")
		return
	}
	defer func() { _ = f.Close() }()

	u := middleware.CurrentUser(c)
	url, err := store(c.Request.Context(), u.ID, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		h.Logger.WithError(err).WithField("field", field).Error("upload failed")
		response.Message(c, http.StatusInternalServerError, "Upload failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Upload successful", "url": url})
}
