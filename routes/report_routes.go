package routes

import (
	"github.com/gin-gonic/gin"

	"suraksha/internal/handlers"
	"suraksha/internal/middleware"
)

// SetupReportRoutes sets up the incident report workflow. The admin
// and counsellor surfaces live under their own prefixes with the role
// enforced at the router; ownership rules stay in the service layer.
func SetupReportRoutes(r *gin.RouterGroup, reportHandler *handlers.ReportHandler, jwtSecret string) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthRequired(jwtSecret))
	{
		reports.POST("", reportHandler.Submit)
		reports.GET("/my", reportHandler.ListMine)
		reports.GET("/:id", reportHandler.Get)
		reports.DELETE("/:id", reportHandler.Delete)
	}

	admin := r.Group("/reports/admin")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/all", reportHandler.ListAll)
		admin.PUT("/assign/:id", reportHandler.Assign)
		admin.PUT("/status/:id", reportHandler.SetStatus)
		admin.DELETE("/:id", reportHandler.Delete)
	}

	counsellor := r.Group("/reports/counsellor")
	counsellor.Use(middleware.AuthRequired(jwtSecret), middleware.CounsellorRequired())
	{
		counsellor.GET("/my", reportHandler.ListAssigned)
		counsellor.PUT("/status/:id", reportHandler.SetStatusAssigned)
	}
}
