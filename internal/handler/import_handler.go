package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evalua-app/evalua-api/internal/service"
	appErrors "github.com/evalua-app/evalua-api/pkg/errors"
	"github.com/evalua-app/evalua-api/pkg/response"
)

// ImportHandler accepts CSV uploads for visualization and re-aggregation.
type ImportHandler struct {
	service *service.ImportService
}

// NewImportHandler constructs an import handler.
func NewImportHandler(svc *service.ImportService) *ImportHandler {
	return &ImportHandler{service: svc}
}

// Upload godoc
// @Summary Analyze an uploaded CSV file
// @Description Detects the report shape of the file and, for comprehensive
// exports, rebuilds the full statistics from its rows.
// @Tags Imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} response.Envelope
// @Router /imports/csv [post]
func (h *ImportHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file"))
		return
	}
	defer src.Close()

	result, err := h.service.Process(src)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
