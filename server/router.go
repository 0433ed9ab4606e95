package server

import (
	"time"

	httpHandler "github.com/Karthikk7293/social-media-handler/interfaces/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Observer provides request instrumentation and the metrics endpoint
type Observer interface {
	Middleware() gin.HandlerFunc
	Handler() gin.HandlerFunc
}

func InitiateRouter(
	dashboardHandler httpHandler.IDashboardHandler,
	healthHandler httpHandler.IHealthHandler,
	observer Observer,
	allowOrigins []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if observer != nil {
		router.Use(observer.Middleware())
		router.GET("/metrics", observer.Handler())
	}

	router.GET("/healthz", healthHandler.Healthz)

	dashboard := router.Group("/api/dashboard")
	{
		dashboard.GET("/overview", dashboardHandler.GetOverview)
		dashboard.GET("/chart", dashboardHandler.GetChart)
		dashboard.GET("/tabs", dashboardHandler.GetTabs)
		dashboard.GET("/platforms", dashboardHandler.GetPlatforms)
		dashboard.GET("/platforms/:platform", dashboardHandler.GetPlatform)
		dashboard.GET("/platforms/:platform/series", dashboardHandler.GetPlatformSeries)
	}

	return router
}
