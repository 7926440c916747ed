package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/evalua-app/evalua-api/internal/stats"
	appErrors "github.com/evalua-app/evalua-api/pkg/errors"
	"github.com/evalua-app/evalua-api/pkg/export"
	"github.com/evalua-app/evalua-api/pkg/storage"
)

// Report names accepted by the export endpoints.
const (
	ReportGeneral       = "general"
	ReportTeacher       = "teacher"
	ReportStudents      = "students"
	ReportComprehensive = "comprehensive"
)

// ExportRequest selects a report and its parameters.
type ExportRequest struct {
	Report    string `json:"report" form:"report" validate:"required,oneof=general teacher students comprehensive"`
	Format    string `json:"format" form:"format" validate:"required,oneof=csv pdf"`
	TeacherID string `json:"teacherId" form:"teacher_id"`
	GradeID   int    `json:"gradeId" form:"grade_id"`
}

// ExportFile is a rendered report ready to stream.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// StoredReport describes a generated file with its signed download URL.
type StoredReport struct {
	ReportID  string    `json:"reportId"`
	Filename  string    `json:"filename"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ExportService renders statistics reports as CSV or PDF, either streamed
// directly or stored on disk behind an HMAC-signed download token.
type ExportService struct {
	statistics *StatisticsService
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	storage    *storage.LocalStorage
	signer     *storage.SignedURLSigner
	metrics    *MetricsService
	validator  requestValidator
	logger     *zap.Logger
}

type requestValidator interface {
	Struct(s interface{}) error
}

// NewExportService creates a new export service.
func NewExportService(statistics *StatisticsService, store *storage.LocalStorage, signer *storage.SignedURLSigner, metrics *MetricsService, validate requestValidator, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		statistics: statistics,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		storage:    store,
		signer:     signer,
		metrics:    metrics,
		validator:  validate,
		logger:     logger,
	}
}

// Render produces the requested report in the requested format.
func (s *ExportService) Render(ctx context.Context, req ExportRequest) (*ExportFile, error) {
	if s.validator != nil {
		if err := s.validator.Struct(req); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export request")
		}
	}

	dataset, title, err := s.dataset(ctx, req)
	if err != nil {
		return nil, err
	}

	var content []byte
	var contentType, extension string
	switch req.Format {
	case "pdf":
		content, err = s.pdf.Render(*dataset, title)
		contentType, extension = "application/pdf", "pdf"
	default:
		content, err = s.csv.Render(*dataset)
		contentType, extension = "text/csv; charset=utf-8", "csv"
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}

	s.metrics.RecordExport(req.Report, req.Format)
	filename := fmt.Sprintf("%s_%s.%s", req.Report, time.Now().UTC().Format("20060102_150405"), extension)
	return &ExportFile{Filename: filename, ContentType: contentType, Content: content}, nil
}

// Store renders the report, saves it under the storage directory, and
// returns a signed download token.
func (s *ExportService) Store(ctx context.Context, req ExportRequest) (*StoredReport, error) {
	file, err := s.Render(ctx, req)
	if err != nil {
		return nil, err
	}
	relPath, err := s.storage.Save(file.Filename, file.Content)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store report")
	}
	reportID := fmt.Sprintf("%s-%d", req.Report, time.Now().UnixNano())
	token, expiresAt, err := s.signer.Generate(reportID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download url")
	}
	return &StoredReport{ReportID: reportID, Filename: file.Filename, Token: token, ExpiresAt: expiresAt}, nil
}

// OpenDownload verifies a signed token and opens the stored file.
func (s *ExportService) OpenDownload(token string) (*os.File, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}
	f, err := s.storage.Open(relPath)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "report file not found")
	}
	return f, nil
}

func (s *ExportService) dataset(ctx context.Context, req ExportRequest) (*export.Dataset, string, error) {
	switch req.Report {
	case ReportGeneral:
		summaries, err := s.statistics.General(ctx)
		if err != nil {
			return nil, "", err
		}
		data := stats.BuildGeneralDataset(summaries)
		return &data, "Calificaciones Generales", nil

	case ReportTeacher:
		if req.TeacherID == "" {
			return nil, "", appErrors.Clone(appErrors.ErrValidation, "teacher_id is required")
		}
		averages, err := s.statistics.TeacherQuestions(ctx, req.TeacherID)
		if err != nil {
			return nil, "", err
		}
		data := stats.BuildTeacherDataset(averages)
		return &data, "Análisis por Profesor", nil

	case ReportStudents:
		if req.GradeID == 0 || req.TeacherID == "" {
			return nil, "", appErrors.Clone(appErrors.ErrValidation, "grade_id and teacher_id are required")
		}
		table, err := s.statistics.Students(ctx, req.GradeID, req.TeacherID)
		if err != nil {
			return nil, "", err
		}
		data := stats.BuildStudentDataset(*table)
		return &data, "Respuestas por Estudiante", nil

	case ReportComprehensive:
		rows, _, err := s.statistics.Snapshot(ctx)
		if err != nil {
			return nil, "", err
		}
		data := stats.BuildComprehensiveDataset(rows)
		return &data, "Estadísticas Completas", nil
	}
	return nil, "", appErrors.Clone(appErrors.ErrValidation, "unknown report")
}
