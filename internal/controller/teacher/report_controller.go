package teacher

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sabaqhub/sabaq/internal/dto"
	"github.com/sabaqhub/sabaq/internal/service"
)

type ReportController struct {
	reportService service.ReportService
}

func NewReportController(reportService service.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// GetReport godoc
// @Summary (Teacher) Aggregated progress report
// @Description Per-subject and per-student averages of ratings and completion percentages across the teacher's subjects.
// @Tags Teacher - Reports
// @Produce json
// @Param owner_id query int true "Teacher ID owning the subjects"
// @Success 200 {object} dto.TeacherReportDTO
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid owner_id"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teacher/report [get]
func (c *ReportController) GetReport(ctx *gin.Context) {
	ownerID, err := strconv.ParseUint(ctx.Query("owner_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing or invalid owner_id"})
		return
	}
	report, err := c.reportService.GetTeacherReport(uint(ownerID))
	if err != nil {
		log.Error().Err(err).Uint64("ownerID", ownerID).Msg("GetReport: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to build report", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, report)
}
