package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sabaqhub/sabaq/internal/dto"
	"github.com/sabaqhub/sabaq/internal/service"
)

type LessonController struct {
	subjectService  service.SubjectService
	progressService service.ProgressService
}

func NewLessonController(subjectService service.SubjectService, progressService service.ProgressService) *LessonController {
	return &LessonController{subjectService: subjectService, progressService: progressService}
}

// GetLessonView godoc
// @Summary (Student) Lesson page with task list and navigation
// @Description The student's lesson state, its tasks (videos render inline and are not listed) and prev/next links.
// @Tags Student - Lessons
// @Produce json
// @Param X-User-ID header int true "Student ID"
// @Param user_subject_id path int true "UserSubject ID"
// @Param user_lesson_id path int true "UserLesson ID"
// @Success 200 {object} dto.LessonViewDTO
// @Failure 404 {object} dto.ErrorResponse "Lesson not found for this student"
// @Router /me/subjects/{user_subject_id}/lessons/{user_lesson_id} [get]
func (c *LessonController) GetLessonView(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	userSubjectID, ok := parseUintParam(ctx, "user_subject_id")
	if !ok {
		return
	}
	userLessonID, ok := parseUintParam(ctx, "user_lesson_id")
	if !ok {
		return
	}
	view, err := c.subjectService.GetLessonView(userID, userSubjectID, userLessonID)
	if err != nil {
		respondServiceError(ctx, err, "Failed to load lesson")
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// StartLesson godoc
// @Summary (Student) Start a lesson
// @Description Moves the lesson to in-progress and materializes an attempt row per task. Safe to call again.
// @Tags Student - Lessons
// @Produce json
// @Param X-User-ID header int true "Student ID"
// @Param user_subject_id path int true "UserSubject ID"
// @Param user_lesson_id path int true "UserLesson ID"
// @Success 200 {object} dto.StartLessonResultDTO
// @Failure 404 {object} dto.ErrorResponse "Lesson not found for this student"
// @Failure 409 {object} dto.ErrorResponse "Lesson has no tasks"
// @Router /me/subjects/{user_subject_id}/lessons/{user_lesson_id}/start [post]
func (c *LessonController) StartLesson(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	userSubjectID, ok := parseUintParam(ctx, "user_subject_id")
	if !ok {
		return
	}
	userLessonID, ok := parseUintParam(ctx, "user_lesson_id")
	if !ok {
		return
	}
	result, err := c.progressService.StartLesson(userID, userSubjectID, userLessonID)
	if err != nil {
		log.Warn().Err(err).Uint("userLessonID", userLessonID).Msg("StartLesson: service error")
		respondServiceError(ctx, err, "Failed to start lesson")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// FinishLesson godoc
// @Summary (Student) Finish a lesson and roll progress up
// @Description Marks the lesson finished and recomputes chapter and subject ratings and percentages atomically.
// @Tags Student - Lessons
// @Produce json
// @Param X-User-ID header int true "Student ID"
// @Param user_subject_id path int true "UserSubject ID"
// @Param user_lesson_id path int true "UserLesson ID"
// @Success 200 {object} dto.RollupResultDTO
// @Failure 404 {object} dto.ErrorResponse "Lesson not found for this student"
// @Failure 409 {object} dto.ErrorResponse "Lesson has no tasks"
// @Router /me/subjects/{user_subject_id}/lessons/{user_lesson_id}/finish [post]
func (c *LessonController) FinishLesson(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	userSubjectID, ok := parseUintParam(ctx, "user_subject_id")
	if !ok {
		return
	}
	userLessonID, ok := parseUintParam(ctx, "user_lesson_id")
	if !ok {
		return
	}
	result, err := c.progressService.FinishLesson(userID, userSubjectID, userLessonID)
	if err != nil {
		log.Warn().Err(err).Uint("userLessonID", userLessonID).Msg("FinishLesson: service error")
		respondServiceError(ctx, err, "Failed to finish lesson")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// SaveFeedback godoc
// @Summary (Student) Leave feedback for a lesson
// @Description Upserts the student's single feedback entry (rating 1-5 plus optional comment) for the lesson.
// @Tags Student - Lessons
// @Accept json
// @Produce json
// @Param X-User-ID header int true "Student ID"
// @Param user_subject_id path int true "UserSubject ID"
// @Param user_lesson_id path int true "UserLesson ID"
// @Param feedback body dto.FeedbackDTO true "Feedback payload"
// @Success 204 "Feedback saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid feedback payload"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found for this student"
// @Router /me/subjects/{user_subject_id}/lessons/{user_lesson_id}/feedback [post]
func (c *LessonController) SaveFeedback(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	if _, ok := parseUintParam(ctx, "user_subject_id"); !ok {
		return
	}
	userLessonID, ok := parseUintParam(ctx, "user_lesson_id")
	if !ok {
		return
	}
	var req dto.FeedbackDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	req.UserLessonID = userLessonID
	if err := c.progressService.SaveFeedback(userID, req); err != nil {
		respondServiceError(ctx, err, "Failed to save feedback")
		return
	}
	ctx.Status(http.StatusNoContent)
}
