// File: internal/profile/handler.go
package profile

import (
	"errors"
	"net/http"

	"devlink_backend/internal/common"
	"devlink_backend/internal/github"
	"devlink_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for profiles.
type Handler struct {
	service Service
	github  github.RepoFetcher
	logger  *zap.Logger
}

// NewHandler creates a new profile handler.
func NewHandler(service Service, githubClient github.RepoFetcher, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		github:  githubClient,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for profile operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	profiles := router.Group("/profile")
	{
		profiles.GET("", h.listProfiles)
		profiles.GET("/search", h.searchProfiles)
		profiles.GET("/user/:id", h.getProfileByID)
		profiles.GET("/github/:username", h.getGithubRepos)

		profiles.GET("/me", authMW, h.getMyProfile)
		profiles.POST("", authMW, h.upsertProfile)
		profiles.DELETE("", authMW, h.deleteAccount)

		profiles.PUT("/experience", authMW, h.addExperience)
		profiles.DELETE("/experience/:id", authMW, h.removeExperience)
		profiles.PUT("/education", authMW, h.addEducation)
		profiles.DELETE("/education/:id", authMW, h.removeEducation)
	}
}

// getMyProfile returns the profile of the authenticated user. A missing
// profile is a client error here, not a 404, because the owner is known
// to exist.
func (h *Handler) getMyProfile(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	p, err := h.service.GetByOwner(c.Request.Context(), userID)
	if err != nil {
		if common.IsNotFound(err) {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("There is no profile for this user."))
			return
		}
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile retrieved successfully.", ToProfileResponse(p))
}

// upsertProfile creates the caller's profile or partially updates it.
func (h *Handler) upsertProfile(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrs)))
		} else {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload."))
		}
		return
	}

	p, err := h.service.Upsert(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile saved successfully.", ToProfileResponse(p))
}

// listProfiles returns all profiles, newest first.
func (h *Handler) listProfiles(c *gin.Context) {
	profiles, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	responses := make([]ProfileResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, ToProfileResponse(&profiles[i]))
	}
	common.RespondOK(c, "Profiles retrieved successfully.", responses)
}

// getProfileByID returns a single profile by its identifier. Absent and
// malformed identifiers both answer with a client error.
func (h *Handler) getProfileByID(c *gin.Context) {
	p, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if common.IsNotFound(err) {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Profile not found."))
			return
		}
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile retrieved successfully.", ToProfileResponse(p))
}

// deleteAccount removes the caller's profile together with their user
// record.
func (h *Handler) deleteAccount(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	if err := h.service.DeleteOwner(c.Request.Context(), userID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User deleted.", nil)
}

func (h *Handler) addExperience(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	var req AddExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrs)))
		} else {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload."))
		}
		return
	}

	p, err := h.service.AddExperience(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Experience added successfully.", ToProfileResponse(p))
}

func (h *Handler) removeExperience(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	p, err := h.service.RemoveExperience(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Experience removed successfully.", ToProfileResponse(p))
}

func (h *Handler) addEducation(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	var req AddEducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrs)))
		} else {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload."))
		}
		return
	}

	p, err := h.service.AddEducation(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Education added successfully.", ToProfileResponse(p))
}

func (h *Handler) removeEducation(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	p, err := h.service.RemoveEducation(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Education removed successfully.", ToProfileResponse(p))
}

// getGithubRepos proxies the user's latest public repositories from
// GitHub.
func (h *Handler) getGithubRepos(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("A Github username is required."))
		return
	}

	repos, err := h.github.FetchRepos(c.Request.Context(), username)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, repos)
}

// searchProfiles queries the search index for matching profiles.
func (h *Handler) searchProfiles(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("The q query parameter is required."))
		return
	}

	var pq common.PaginationQuery
	if err := c.ShouldBindQuery(&pq); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid pagination parameters."))
		return
	}
	pq.Normalize(10, 100)

	hits, pagination, err := h.service.Search(c.Request.Context(), query, pq.Page, pq.PageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Profiles retrieved successfully.", hits, pagination)
}
