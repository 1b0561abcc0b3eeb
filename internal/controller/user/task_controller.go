package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sabaqhub/sabaq/internal/dto"
	"github.com/sabaqhub/sabaq/internal/service"
)

type TaskController struct {
	subjectService service.SubjectService
	gradingService service.GradingService
}

func NewTaskController(subjectService service.SubjectService, gradingService service.GradingService) *TaskController {
	return &TaskController{subjectService: subjectService, gradingService: gradingService}
}

// GetTaskView godoc
// @Summary (Student) Task page with the submission form data
// @Description Per-type content for rendering the task form, plus prev/next task navigation.
// @Tags Student - Tasks
// @Produce json
// @Param X-User-ID header int true "Student ID"
// @Param user_subject_id path int true "UserSubject ID"
// @Param user_lesson_id path int true "UserLesson ID"
// @Param user_task_id path int true "UserTask ID"
// @Success 200 {object} dto.TaskViewDTO
// @Failure 404 {object} dto.ErrorResponse "Task not found for this student"
// @Router /me/subjects/{user_subject_id}/lessons/{user_lesson_id}/tasks/{user_task_id} [get]
func (c *TaskController) GetTaskView(ctx *gin.Context) {
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
	userTaskID, ok := parseUintParam(ctx, "user_task_id")
	if !ok {
		return
	}
	view, err := c.subjectService.GetTaskView(userID, userSubjectID, userLessonID, userTaskID)
	if err != nil {
		respondServiceError(ctx, err, "Failed to load task")
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// SubmitTask godoc
// @Summary (Student) Submit answers for a task
// @Description Grades the form submission with the task type's scoring rule and persists answers and rating atomically. Form fields: watched_<video_id>, answer_<id>, file_<id>, question_<id> (repeatable), column_<item_id>, cell_<row_id>_<column_id>.
// @Tags Student - Tasks
// @Accept x-www-form-urlencoded
// @Produce json
// @Param X-User-ID header int true "Student ID"
// @Param user_subject_id path int true "UserSubject ID"
// @Param user_lesson_id path int true "UserLesson ID"
// @Param user_task_id path int true "UserTask ID"
// @Success 200 {object} dto.GradingResultDTO
// @Failure 400 {object} dto.ErrorResponse "Malformed form payload"
// @Failure 404 {object} dto.ErrorResponse "Task not found for this student"
// @Router /me/subjects/{user_subject_id}/lessons/{user_lesson_id}/tasks/{user_task_id}/submit [post]
func (c *TaskController) SubmitTask(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	if _, ok := parseUintParam(ctx, "user_subject_id"); !ok {
		return
	}
	if _, ok := parseUintParam(ctx, "user_lesson_id"); !ok {
		return
	}
	userTaskID, ok := parseUintParam(ctx, "user_task_id")
	if !ok {
		return
	}
	if err := ctx.Request.ParseForm(); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Malformed form payload"})
		return
	}
	payload := dto.SubmissionPayload(ctx.Request.PostForm)

	result, err := c.gradingService.SubmitTask(userID, userTaskID, payload)
	if err != nil {
		log.Warn().Err(err).Uint("userTaskID", userTaskID).Msg("SubmitTask: service error")
		respondServiceError(ctx, err, "Failed to grade submission")
		return
	}
	ctx.JSON(http.StatusOK, result)
}
