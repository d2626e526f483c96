package router

import (
	"github.com/gin-gonic/gin"

	"facturo/internal/auth"
	"facturo/internal/handler"
	"facturo/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	verifier *auth.Verifier,
	allowedOrigins []string,
	healthH *handler.HealthHandler,
	seriesH *handler.SeriesHandler,
	invoiceH *handler.InvoiceHandler,
	settingsH *handler.SettingsHandler,
	statsH *handler.StatsHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(verifier))
	protected.Use(middleware.TenantGuard())

	// Numbering series
	series := protected.Group("/series")
	series.POST("", seriesH.Create)
	series.GET("", seriesH.List)
	series.GET("/:id", seriesH.GetByID)
	series.PUT("/:id", seriesH.Update)
	series.POST("/:id/toggle", seriesH.ToggleActive)
	series.POST("/:id/default", seriesH.SetDefault)
	series.DELETE("/:id", seriesH.Delete)

	// Invoices
	invoices := protected.Group("/invoices")
	invoices.POST("", invoiceH.Create)
	invoices.GET("", invoiceH.List)
	invoices.GET("/search", invoiceH.Search)
	invoices.GET("/export/csv", invoiceH.ExportCSV)
	invoices.GET("/export/xlsx", invoiceH.ExportXLSX)
	invoices.GET("/:id", invoiceH.GetByID)
	invoices.DELETE("/:id", invoiceH.Delete)
	invoices.POST("/:id/issue", invoiceH.Issue)
	invoices.POST("/:id/cancel", invoiceH.Cancel)
	invoices.POST("/:id/pay", invoiceH.MarkPaid)
	invoices.GET("/:id/print", invoiceH.Print)
	invoices.POST("/:id/lines", invoiceH.AddLine)
	invoices.PUT("/:id/lines/:lineId", invoiceH.UpdateLine)
	invoices.DELETE("/:id/lines/:lineId", invoiceH.DeleteLine)

	// Settings
	settings := protected.Group("/settings")
	settings.GET("", settingsH.Get)
	settings.PUT("", settingsH.Update)
	settings.POST("/reset", settingsH.Reset)

	// Dashboard stats
	stats := protected.Group("/stats")
	stats.GET("/dashboard", statsH.Dashboard)

	return r
}
