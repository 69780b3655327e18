package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Re1354/building-management-system/internal/config"
	"github.com/Re1354/building-management-system/internal/database"
	"github.com/Re1354/building-management-system/internal/handler"
	"github.com/Re1354/building-management-system/internal/metrics"
	"github.com/Re1354/building-management-system/internal/middleware"
	"github.com/Re1354/building-management-system/internal/service"
	"github.com/Re1354/building-management-system/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRouter wires services, middleware and routes. The JSON API lives
// under /api; everything else falls through to the optional SPA directory.
func SetupRouter(cfg *config.Config, db *gorm.DB, log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(log),
		m.Middleware(),
	)

	r.GET("/healthz", func(c *gin.Context) {
		if err := database.Ping(db); err != nil {
			log.Error("health check", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", m.Handler())

	users := service.NewUserService(db, cfg.Security.BcryptCost)
	tenants := service.NewTenantService(db)
	collections := service.NewCollectionService(db, tenants)

	api := r.Group("/api")

	// register/login do not require a session
	tokens := util.NewSessionTokens(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.ExpireHours)*time.Hour)
	authHandler := handler.NewAuthHandler(users, tokens, log)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(tokens, db, log))

	protected.GET("/auth/me", authHandler.Me)

	tenantHandler := handler.NewTenantHandler(tenants, log)
	protected.POST("/tenants", tenantHandler.CreateTenant)
	protected.GET("/tenants", tenantHandler.ListTenants)
	protected.GET("/tenants/:id", tenantHandler.GetTenant)
	protected.PUT("/tenants/:id", tenantHandler.UpdateTenant)
	protected.DELETE("/tenants/:id", tenantHandler.DeleteTenant)

	collectionHandler := handler.NewCollectionHandler(collections, log)
	protected.POST("/collections", collectionHandler.AddCollection)
	protected.GET("/collections", collectionHandler.AllCollections)
	protected.GET("/collections/my", collectionHandler.MyCollections)
	protected.GET("/collections/summary/my/monthly", collectionHandler.MyMonthlySummary)
	protected.GET("/collections/summary/my/yearly", collectionHandler.MyYearlySummary)
	protected.GET("/collections/summary/building", collectionHandler.BuildingSummary)
	protected.GET("/collections/admin-summary", collectionHandler.AdminSummary)
	protected.GET("/collections/chart", collectionHandler.ChartData)

	exportHandler := handler.NewExportHandler(collections, log)
	protected.GET("/collections/export.csv", exportHandler.ExportCSV)
	protected.GET("/collections/export.xlsx", exportHandler.ExportXLSX)

	r.NoRoute(spaFallback(cfg.Server.StaticDir))

	return r
}

// spaFallback serves files from dir and index.html for client-side routes.
// Unknown /api paths always get a JSON 404.
func spaFallback(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if dir == "" || strings.HasPrefix(path, "/api/") || c.Request.Method != http.MethodGet {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Not found")
			return
		}

		file := filepath.Join(dir, filepath.Clean("/"+path))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	}
}
