package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/evalua-app/evalua-api/internal/models"
	"github.com/evalua-app/evalua-api/pkg/export"
)

// Column names of the four export shapes. These are the exact headers the
// source system shipped; files written here must re-import byte-compatibly.
const (
	colTeacher     = "Profesor"
	colAverage     = "Calificación Promedio"
	colSurveys     = "Total de Encuestas"
	colLevel       = "Nivel"
	colQuestion    = "Pregunta"
	colScore       = "Puntaje Promedio"
	colStudentCell = "ESTUDIANTE (MATERIA)"

	colEvalID      = "ID Evaluación"
	colStudent     = "Estudiante"
	colGrade       = "Grado"
	colSubject     = "Materia"
	colDate        = "Fecha"
	colQuestionNum = "Nº Pregunta"
	colAnswer      = "Respuesta"
	colRawScore    = "Puntaje"
)

// timestampLayout renders evaluation timestamps in export files.
const timestampLayout = "2006-01-02 15:04:05"

// Shape identifies which of the known export formats a CSV file carries.
type Shape string

const (
	ShapeGeneral       Shape = "general"
	ShapeTeacher       Shape = "teacher"
	ShapeStudent       Shape = "student"
	ShapeComprehensive Shape = "comprehensive"
	ShapeUnknown       Shape = "unknown"
)

// DetectShape classifies a header row, most specific shape first: the
// comprehensive export also contains "Profesor" and "Pregunta" columns, so
// it must win before the narrower shapes get a look.
func DetectShape(headers []string) Shape {
	has := make(map[string]bool, len(headers))
	for _, h := range headers {
		has[h] = true
	}
	switch {
	case has[colEvalID] && has[colRawScore]:
		return ShapeComprehensive
	case has[colAverage] && has[colSurveys]:
		return ShapeGeneral
	case has[colScore] && has[colQuestion]:
		return ShapeTeacher
	case has[colStudentCell]:
		return ShapeStudent
	}
	return ShapeUnknown
}

// BuildGeneralDataset renders level-grouped teacher summaries as the
// general export. Levels appear in a fixed order; a teacher evaluated at
// both levels yields one row per level.
func BuildGeneralDataset(byLevel map[models.Level][]TeacherSummary) export.Dataset {
	data := export.Dataset{Headers: []string{colTeacher, colAverage, colSurveys, colLevel}}
	for _, level := range []models.Level{models.LevelPrimary, models.LevelHighSchool} {
		for _, s := range byLevel[level] {
			data.Rows = append(data.Rows, map[string]string{
				colTeacher: s.TeacherName,
				colAverage: formatFloat(s.Average),
				colSurveys: strconv.Itoa(s.SurveyCount),
				colLevel:   string(level),
			})
		}
	}
	return data
}

// BuildTeacherDataset renders per-question averages for one teacher.
func BuildTeacherDataset(averages []QuestionAverage) export.Dataset {
	data := export.Dataset{Headers: []string{colQuestion, colScore}}
	for _, qa := range averages {
		data.Rows = append(data.Rows, map[string]string{
			colQuestion: qa.Question,
			colScore:    formatFloat(qa.Average),
		})
	}
	return data
}

// BuildStudentDataset renders the per-student answer table.
func BuildStudentDataset(table StudentTable) export.Dataset {
	data := export.Dataset{Headers: append([]string{colStudentCell}, table.Questions...)}
	for _, row := range table.Rows {
		record := map[string]string{colStudentCell: row.Header}
		for i, cell := range row.Cells {
			if i < len(table.Questions) {
				record[table.Questions[i]] = cell
			}
		}
		data.Rows = append(data.Rows, record)
	}
	return data
}

// BuildComprehensiveDataset renders the full row set, one line per
// (evaluation, question). This file alone suffices to recompute every
// aggregate: ParseComprehensive followed by the aggregators reproduces the
// numbers within rounding tolerance.
func BuildComprehensiveDataset(rows []AnswerRow) export.Dataset {
	data := export.Dataset{Headers: []string{
		colEvalID, colStudent, colGrade, colTeacher, colSubject, colLevel,
		colDate, colQuestionNum, colQuestion, colAnswer, colRawScore,
	}}
	for _, row := range rows {
		data.Rows = append(data.Rows, map[string]string{
			colEvalID:      row.EvaluationID,
			colStudent:     row.Student,
			colGrade:       row.GradeName,
			colTeacher:     row.TeacherName,
			colSubject:     row.SubjectName,
			colLevel:       string(row.Level),
			colDate:        row.Timestamp.Format(timestampLayout),
			colQuestionNum: strconv.Itoa(row.QuestionIndex + 1),
			colQuestion:    row.QuestionText,
			colAnswer:      Label(row.Level, row.Answer),
			colRawScore:    strconv.Itoa(Score(row.Level, row.Answer)),
		})
	}
	return data
}

// ReadRecords parses a CSV stream into its header row and one map per data
// row. Rows shorter than the header are tolerated; missing cells read as
// empty strings.
func ReadRecords(r io.Reader) ([]string, []map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv row: %w", err)
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

// ParseComprehensive rebuilds AnswerRows from a comprehensive export. The
// file never carried internal ids, so TeacherKey is the teacher's display
// name; aggregates computed over the result match the live ones as long as
// teacher names are unique. Unparseable dates zero the timestamp, and
// malformed question numbers fail the import.
func ParseComprehensive(rows []map[string]string) ([]AnswerRow, error) {
	out := make([]AnswerRow, 0, len(rows))
	for i, row := range rows {
		num, err := strconv.Atoi(row[colQuestionNum])
		if err != nil || num < 1 {
			return nil, fmt.Errorf("row %d: invalid question number %q", i+1, row[colQuestionNum])
		}
		level := models.Level(row[colLevel])
		if !level.Valid() {
			return nil, fmt.Errorf("row %d: unknown level %q", i+1, row[colLevel])
		}
		timestamp, _ := time.Parse(timestampLayout, row[colDate])
		out = append(out, AnswerRow{
			EvaluationID:  row[colEvalID],
			Student:       row[colStudent],
			GradeKey:      row[colGrade],
			GradeName:     row[colGrade],
			TeacherKey:    row[colTeacher],
			TeacherName:   row[colTeacher],
			SubjectName:   row[colSubject],
			Level:         level,
			Timestamp:     timestamp,
			QuestionIndex: num - 1,
			QuestionText:  row[colQuestion],
			Answer:        ParseAnswerLabel(row[colAnswer]),
		})
	}
	return out, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
