package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evalua-app/evalua-api/internal/models"
	"github.com/evalua-app/evalua-api/internal/service"
	appErrors "github.com/evalua-app/evalua-api/pkg/errors"
	"github.com/evalua-app/evalua-api/pkg/response"
)

// QuestionHandler manages the per-level question catalog.
type QuestionHandler struct {
	service *service.QuestionService
}

// NewQuestionHandler constructs a question handler.
func NewQuestionHandler(svc *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{service: svc}
}

// ListByLevel godoc
// @Summary List survey questions for a level
// @Tags Questions
// @Produce json
// @Param level query string true "Level" Enums(PRIMARY, HIGH_SCHOOL)
// @Success 200 {object} response.Envelope
// @Router /questions [get]
func (h *QuestionHandler) ListByLevel(c *gin.Context) {
	level := models.Level(c.Query("level"))
	questions, err := h.service.ListByLevel(c.Request.Context(), level)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, questions, nil)
}

// Replace godoc
// @Summary Replace the full question list for a level
// @Tags Questions
// @Accept json
// @Produce json
// @Param level path string true "Level" Enums(PRIMARY, HIGH_SCHOOL)
// @Param payload body service.ReplaceQuestionsRequest true "Ordered question texts"
// @Success 200 {object} response.Envelope
// @Router /questions/{level} [put]
func (h *QuestionHandler) Replace(c *gin.Context) {
	var req service.ReplaceQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	questions, err := h.service.Replace(c.Request.Context(), models.Level(c.Param("level")), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, questions, nil)
}
