package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sabaqhub/sabaq/internal/dto"
	"github.com/sabaqhub/sabaq/internal/service"
)

type ContentController struct {
	contentService  service.AdminContentService
	progressService service.ProgressService
}

func NewContentController(contentService service.AdminContentService, progressService service.ProgressService) *ContentController {
	return &ContentController{contentService: contentService, progressService: progressService}
}

func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

func respondServiceError(ctx *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrInvalidTaskContent):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: message, Details: []string{err.Error()}})
	}
}

// CreateSubject godoc
// @Summary (Admin) Create a subject
// @Tags Admin - Content
// @Accept json
// @Produce json
// @Param subject body dto.SubjectCreateDTO true "Subject data"
// @Success 201 {object} dto.SubjectSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Router /admin/subjects [post]
func (c *ContentController) CreateSubject(ctx *gin.Context) {
	var req dto.SubjectCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	subject, err := c.contentService.CreateSubject(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateSubject: service error")
		respondServiceError(ctx, err, "Failed to create subject")
		return
	}
	ctx.JSON(http.StatusCreated, subject)
}

// CreateChapter godoc
// @Summary (Admin) Add a chapter to a subject
// @Tags Admin - Content
// @Accept json
// @Produce json
// @Param subject_id path int true "Subject ID"
// @Param chapter body dto.ChapterCreateDTO true "Chapter data"
// @Success 201 {object} dto.ChapterDetailDTO
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /admin/subjects/{subject_id}/chapters [post]
func (c *ContentController) CreateChapter(ctx *gin.Context) {
	subjectID, ok := parseUintParam(ctx, "subject_id")
	if !ok {
		return
	}
	var req dto.ChapterCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	chapter, err := c.contentService.CreateChapter(subjectID, req)
	if err != nil {
		respondServiceError(ctx, err, "Failed to create chapter")
		return
	}
	ctx.JSON(http.StatusCreated, chapter)
}

// CreateLesson godoc
// @Summary (Admin) Add a lesson to a chapter
// @Description Creates the lesson and backfills progress rows for every enrolled student.
// @Tags Admin - Content
// @Accept json
// @Produce json
// @Param lesson body dto.LessonCreateDTO true "Lesson data"
// @Success 201 {object} dto.LessonSummaryDTO
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Router /admin/lessons [post]
func (c *ContentController) CreateLesson(ctx *gin.Context) {
	var req dto.LessonCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	lesson, err := c.contentService.CreateLesson(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateLesson: service error")
		respondServiceError(ctx, err, "Failed to create lesson")
		return
	}
	ctx.JSON(http.StatusCreated, lesson)
}

// CreateTask godoc
// @Summary (Admin) Add a task with its nested content
// @Description One request creates the task and all type-specific content; table cells reference row/column indexes of the same request.
// @Tags Admin - Content
// @Accept json
// @Produce json
// @Param task body dto.TaskCreateDTO true "Task data"
// @Success 201 {object} dto.TaskResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Content does not match the task type"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Router /admin/tasks [post]
func (c *ContentController) CreateTask(ctx *gin.Context) {
	var req dto.TaskCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	task, err := c.contentService.CreateTask(req)
	if err != nil {
		log.Error().Err(err).Str("taskType", req.TaskType).Msg("CreateTask: service error")
		respondServiceError(ctx, err, "Failed to create task")
		return
	}
	ctx.JSON(http.StatusCreated, task)
}

// MaterializeLesson godoc
// @Summary (Admin) Backfill progress rows for a lesson
// @Description Creates missing chapter and lesson progress rows for every student enrolled in the subject. Idempotent.
// @Tags Admin - Content
// @Produce json
// @Param lesson_id path int true "Lesson ID"
// @Success 200 {object} dto.MaterializeResultDTO
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Router /admin/lessons/{lesson_id}/materialize [post]
func (c *ContentController) MaterializeLesson(ctx *gin.Context) {
	lessonID, ok := parseUintParam(ctx, "lesson_id")
	if !ok {
		return
	}
	result, err := c.progressService.MaterializeLesson(lessonID)
	if err != nil {
		respondServiceError(ctx, err, "Failed to materialize lesson")
		return
	}
	ctx.JSON(http.StatusOK, result)
}
