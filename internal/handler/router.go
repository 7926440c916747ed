package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/evalua-app/evalua-api/internal/middleware"
	"github.com/evalua-app/evalua-api/internal/service"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth       *AuthHandler
	Teacher    *TeacherHandler
	Subject    *SubjectHandler
	Grade      *GradeHandler
	Question   *QuestionHandler
	Setting    *SettingHandler
	Survey     *SurveyHandler
	Statistics *StatisticsHandler
	Import     *ImportHandler
	Metrics    *MetricsHandler
}

// RegisterRoutes mounts the API under the given prefix. Catalog reads and
// the survey flow are open to students; everything that mutates data or
// reveals aggregates sits behind the admin token.
func RegisterRoutes(engine *gin.Engine, prefix string, h Handlers, auth *service.AuthService) {
	engine.GET("/health", h.Metrics.Health)
	engine.GET("/ready", h.Metrics.Ready)
	engine.GET("/metrics", h.Metrics.Prometheus)

	api := engine.Group(prefix)

	api.POST("/auth/login", h.Auth.Login)

	api.GET("/grades", h.Grade.List)
	api.GET("/grades/:id", h.Grade.Get)
	api.GET("/teachers", h.Teacher.List)
	api.GET("/subjects", h.Subject.List)
	api.GET("/questions", h.Question.ListByLevel)
	api.GET("/settings", h.Setting.List)

	api.GET("/surveys/dashboard", h.Survey.Dashboard)
	api.POST("/surveys", h.Survey.Submit)

	// Download tokens carry their own HMAC signature and expiry.
	api.GET("/reports/download", h.Statistics.Download)

	admin := api.Group("", middleware.AdminJWT(auth))

	admin.GET("/teachers/:id", h.Teacher.Get)
	admin.POST("/teachers", h.Teacher.Create)
	admin.PUT("/teachers/:id", h.Teacher.Update)
	admin.DELETE("/teachers/:id", h.Teacher.Delete)
	admin.PUT("/teachers/:id/assignments", h.Teacher.ReplaceAssignments)

	admin.GET("/subjects/:id", h.Subject.Get)
	admin.POST("/subjects", h.Subject.Create)
	admin.PUT("/subjects/:id", h.Subject.Update)
	admin.PUT("/subjects/:id/icon", h.Subject.UpdateIcon)
	admin.DELETE("/subjects/:id", h.Subject.Delete)

	admin.PUT("/questions/:level", h.Question.Replace)
	admin.PUT("/settings/:key", h.Setting.Set)

	admin.PUT("/surveys/:id", h.Survey.Edit)
	admin.DELETE("/evaluations", h.Survey.DeleteAll)
	admin.DELETE("/evaluations/students/:name", h.Survey.DeleteByStudent)

	admin.GET("/statistics/general", h.Statistics.General)
	admin.GET("/statistics/teachers/:id/questions", h.Statistics.TeacherQuestions)
	admin.GET("/statistics/students", h.Statistics.Students)
	admin.GET("/statistics/export", h.Statistics.Export)
	admin.POST("/reports", h.Statistics.CreateReport)

	admin.POST("/imports/csv", h.Import.Upload)
}
