package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/evalua-app/evalua-api/internal/service"
	appErrors "github.com/evalua-app/evalua-api/pkg/errors"
	"github.com/evalua-app/evalua-api/pkg/response"
)

// StatisticsHandler serves aggregated survey results and report exports.
type StatisticsHandler struct {
	statistics *service.StatisticsService
	exports    *service.ExportService
}

// NewStatisticsHandler constructs a statistics handler.
func NewStatisticsHandler(statistics *service.StatisticsService, exports *service.ExportService) *StatisticsHandler {
	return &StatisticsHandler{statistics: statistics, exports: exports}
}

// General godoc
// @Summary Per-teacher averages grouped by level
// @Tags Statistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /statistics/general [get]
func (h *StatisticsHandler) General(c *gin.Context) {
	summaries, err := h.statistics.General(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries, nil)
}

// TeacherQuestions godoc
// @Summary Per-question averages for one teacher
// @Tags Statistics
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /statistics/teachers/{id}/questions [get]
func (h *StatisticsHandler) TeacherQuestions(c *gin.Context) {
	averages, err := h.statistics.TeacherQuestions(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, averages, nil)
}

// Students godoc
// @Summary Raw answers matrix for a grade/teacher pair
// @Tags Statistics
// @Produce json
// @Param grade_id query int true "Grade ID"
// @Param teacher_id query string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /statistics/students [get]
func (h *StatisticsHandler) Students(c *gin.Context) {
	gradeID, err := strconv.Atoi(c.Query("grade_id"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "grade_id must be numeric"))
		return
	}
	teacherID := c.Query("teacher_id")
	if teacherID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "teacher_id is required"))
		return
	}
	table, err := h.statistics.Students(c.Request.Context(), gradeID, teacherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, table, nil)
}

// Export godoc
// @Summary Stream a report in CSV or PDF format
// @Tags Statistics
// @Produce text/csv
// @Produce application/pdf
// @Param report query string true "Report" Enums(general, teacher, students, comprehensive)
// @Param format query string true "Format" Enums(csv, pdf)
// @Param teacher_id query string false "Teacher ID (teacher report)"
// @Param grade_id query int false "Grade ID (students report)"
// @Success 200 {file} file
// @Router /statistics/export [get]
func (h *StatisticsHandler) Export(c *gin.Context) {
	var req service.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export request"))
		return
	}
	file, err := h.exports.Render(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}

// CreateReport godoc
// @Summary Generate a report and return a signed download token
// @Tags Statistics
// @Accept json
// @Produce json
// @Param payload body service.ExportRequest true "Report request"
// @Success 201 {object} response.Envelope
// @Router /reports [post]
func (h *StatisticsHandler) CreateReport(c *gin.Context) {
	var req service.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid report request"))
		return
	}
	report, err := h.exports.Store(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, report)
}

// Download godoc
// @Summary Download a previously generated report
// @Tags Statistics
// @Param token query string true "Signed download token"
// @Success 200 {file} file
// @Router /reports/download [get]
func (h *StatisticsHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	f, err := h.exports.OpenDownload(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to read report file"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", info.Name()))
	c.DataFromReader(http.StatusOK, info.Size(), "application/octet-stream", f, nil)
}
