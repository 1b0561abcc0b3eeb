package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sabaqhub/sabaq/internal/service"
)

type SubjectController struct {
	subjectService  service.SubjectService
	progressService service.ProgressService
}

func NewSubjectController(subjectService service.SubjectService, progressService service.ProgressService) *SubjectController {
	return &SubjectController{subjectService: subjectService, progressService: progressService}
}

// GetDashboard godoc
// @Summary (Student) Dashboard with all subjects and enrollment state
// @Description Lists every subject plus the student's progress and summary statistics.
// @Tags Student - Subjects
// @Produce json
// @Param X-User-ID header int true "Student ID"
// @Success 200 {object} dto.StudentDashboardDTO
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid user identity"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects [get]
func (c *SubjectController) GetDashboard(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	dashboard, err := c.subjectService.GetDashboard(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetDashboard: service error")
		respondServiceError(ctx, err, "Failed to load dashboard")
		return
	}
	ctx.JSON(http.StatusOK, dashboard)
}

// GetSubjectDetail godoc
// @Summary (Student) Subject page with chapters and lessons
// @Description Full subject content plus the student's enrollment state when enrolled.
// @Tags Student - Subjects
// @Produce json
// @Param X-User-ID header int true "Student ID"
// @Param subject_id path int true "Subject ID"
// @Success 200 {object} dto.SubjectDetailDTO
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /subjects/{subject_id} [get]
func (c *SubjectController) GetSubjectDetail(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	subjectID, ok := parseUintParam(ctx, "subject_id")
	if !ok {
		return
	}
	detail, err := c.subjectService.GetSubjectDetail(userID, subjectID)
	if err != nil {
		respondServiceError(ctx, err, "Failed to load subject")
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// Enroll godoc
// @Summary (Student) Enroll into a subject
// @Description Creates the enrollment and progress rows for every chapter and lesson. Re-enrolling is a no-op.
// @Tags Student - Subjects
// @Produce json
// @Param X-User-ID header int true "Student ID"
// @Param subject_id path int true "Subject ID"
// @Success 200 {object} dto.UserSubjectDTO
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 409 {object} dto.ErrorResponse "Subject has no content yet"
// @Router /subjects/{subject_id}/enroll [post]
func (c *SubjectController) Enroll(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	subjectID, ok := parseUintParam(ctx, "subject_id")
	if !ok {
		return
	}
	us, err := c.progressService.Enroll(userID, subjectID)
	if err != nil {
		log.Warn().Err(err).Uint("userID", userID).Uint("subjectID", subjectID).Msg("Enroll: service error")
		respondServiceError(ctx, err, "Failed to enroll")
		return
	}
	ctx.JSON(http.StatusOK, us)
}
