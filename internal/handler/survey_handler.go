package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/evalua-app/evalua-api/internal/service"
	appErrors "github.com/evalua-app/evalua-api/pkg/errors"
	"github.com/evalua-app/evalua-api/pkg/response"
)

// SurveyHandler handles the student-facing survey flow and the admin
// evaluation cleanup endpoints.
type SurveyHandler struct {
	service *service.SurveyService
}

// NewSurveyHandler constructs a survey handler.
func NewSurveyHandler(svc *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{service: svc}
}

// Dashboard godoc
// @Summary Pending and completed evaluations for a student in a grade
// @Tags Surveys
// @Produce json
// @Param student query string true "Student name"
// @Param grade_id query int true "Grade ID"
// @Success 200 {object} response.Envelope
// @Router /surveys/dashboard [get]
func (h *SurveyHandler) Dashboard(c *gin.Context) {
	student := strings.TrimSpace(c.Query("student"))
	if student == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student name is required"))
		return
	}
	gradeID, err := strconv.Atoi(c.Query("grade_id"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "grade_id must be numeric"))
		return
	}
	dashboard, err := h.service.Dashboard(c.Request.Context(), student, gradeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dashboard, nil)
}

// Submit godoc
// @Summary Submit a completed survey
// @Tags Surveys
// @Accept json
// @Produce json
// @Param payload body service.SubmitSurveyRequest true "Survey payload"
// @Success 201 {object} response.Envelope
// @Router /surveys [post]
func (h *SurveyHandler) Submit(c *gin.Context) {
	var req service.SubmitSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Edit godoc
// @Summary Replace the answers of an existing evaluation
// @Tags Surveys
// @Accept json
// @Produce json
// @Param id path string true "Evaluation ID"
// @Param payload body service.EditSurveyRequest true "Replacement answers"
// @Success 200 {object} response.Envelope
// @Router /surveys/{id} [put]
func (h *SurveyHandler) Edit(c *gin.Context) {
	var req service.EditSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	evaluation, err := h.service.Edit(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, evaluation, nil)
}

// DeleteAll godoc
// @Summary Delete every stored evaluation
// @Tags Evaluations
// @Success 204
// @Router /evaluations [delete]
func (h *SurveyHandler) DeleteAll(c *gin.Context) {
	if err := h.service.DeleteAll(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteByStudent godoc
// @Summary Delete every evaluation submitted under a student name
// @Tags Evaluations
// @Produce json
// @Param name path string true "Student name"
// @Success 200 {object} response.Envelope
// @Router /evaluations/students/{name} [delete]
func (h *SurveyHandler) DeleteByStudent(c *gin.Context) {
	affected, err := h.service.DeleteByStudent(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": affected}, nil)
}
