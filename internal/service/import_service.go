package service

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/evalua-app/evalua-api/internal/models"
	"github.com/evalua-app/evalua-api/internal/stats"
	appErrors "github.com/evalua-app/evalua-api/pkg/errors"
)

// ImportResult is what an uploaded CSV yields. Every shape returns a
// tabular preview; the comprehensive shape additionally re-derives all
// three aggregates from the file alone, with teachers keyed by name since
// exports never carried internal ids.
type ImportResult struct {
	Shape    stats.Shape         `json:"shape"`
	Headers  []string            `json:"headers"`
	Preview  []map[string]string `json:"preview,omitempty"`
	RowCount int                 `json:"rowCount"`

	General          map[models.Level][]stats.TeacherSummary `json:"general,omitempty"`
	TeacherQuestions map[string][]stats.QuestionAverage      `json:"teacherQuestions,omitempty"`
	StudentTables    map[string]stats.StudentTable           `json:"studentTables,omitempty"`
}

// previewLimit caps how many raw rows the visualizer response carries.
const previewLimit = 100

// ImportService re-reads exported CSV files: it detects which shape the
// upload is and, for the comprehensive export, recomputes statistics
// without touching the database.
type ImportService struct {
	metrics *MetricsService
	logger  *zap.Logger
}

// NewImportService creates a new import service.
func NewImportService(metrics *MetricsService, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{metrics: metrics, logger: logger}
}

// Process parses the uploaded CSV stream. Malformed files surface a 400;
// nothing here ever mutates stored data.
func (s *ImportService) Process(r io.Reader) (*ImportResult, error) {
	headers, records, err := stats.ReadRecords(r)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed csv file")
	}

	shape := stats.DetectShape(headers)
	if shape == stats.ShapeUnknown {
		return nil, appErrors.Clone(appErrors.ErrUnknownFormat, "")
	}
	s.metrics.RecordImport(string(shape))

	result := &ImportResult{Shape: shape, Headers: headers, RowCount: len(records)}
	if len(records) > previewLimit {
		result.Preview = records[:previewLimit]
	} else {
		result.Preview = records
	}

	if shape != stats.ShapeComprehensive {
		return result, nil
	}

	rows, err := stats.ParseComprehensive(records)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed comprehensive export")
	}
	questions := stats.QuestionsFromRows(rows)

	result.General = stats.GeneralSummaries(rows)
	result.TeacherQuestions = make(map[string][]stats.QuestionAverage)
	result.StudentTables = make(map[string]stats.StudentTable)

	seenTeachers := make(map[string]struct{})
	seenPairs := make(map[string]struct{})
	for _, row := range rows {
		if _, ok := seenTeachers[row.TeacherKey]; !ok {
			seenTeachers[row.TeacherKey] = struct{}{}
			result.TeacherQuestions[row.TeacherKey] = stats.TeacherQuestionAverages(rows, row.TeacherKey, questions)
		}
		pair := fmt.Sprintf("%s::%s", row.GradeKey, row.TeacherKey)
		if _, ok := seenPairs[pair]; !ok {
			seenPairs[pair] = struct{}{}
			result.StudentTables[pair] = stats.BuildStudentTable(rows, row.GradeKey, row.TeacherKey, questions)
		}
	}
	return result, nil
}
