package api

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dgallego/incendios-backend-go/internal/config"
	"github.com/dgallego/incendios-backend-go/internal/handler"
	"github.com/dgallego/incendios-backend-go/internal/middleware"
	"github.com/dgallego/incendios-backend-go/internal/observability"
	"github.com/dgallego/incendios-backend-go/internal/repository"
	"github.com/dgallego/incendios-backend-go/internal/service"
)

// SetupRouter wires the middleware chain and the dashboard routes.
func SetupRouter(cfg *config.Config, db *sql.DB, metrics *observability.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics(metrics))

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Incendios Backend API is running",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	incidentRepo := repository.NewIncidentRepository(db)
	dashboardService := service.NewDashboardService(incidentRepo)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	api := r.Group("/api/v1")
	if cfg.RateLimit > 0 {
		api.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateWindow))
	}
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("/summary", dashboardHandler.GetSummary)
			dashboard.GET("/map", dashboardHandler.GetMap)
			dashboard.GET("/map/near", dashboardHandler.GetNearby)
			dashboard.GET("/timeseries", dashboardHandler.GetTimeseries)
			dashboard.GET("/causes", dashboardHandler.GetCauses)
			dashboard.GET("/options", dashboardHandler.GetOptions)
		}
	}

	return r
}
