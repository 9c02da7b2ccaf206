package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/polkiloo/paymentqa-dashboard/internal/server/http/handlers"
	"github.com/polkiloo/paymentqa-dashboard/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.AdminFacade, v *validatorv10.Validate, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Compression())

	authHandler := handlers.NewAuthHandler(facade, v)
	orderHandler := handlers.NewOrderHandler(facade, v)
	bulkHandler := handlers.NewBulkHandler(facade, v)
	metricsHandler := handlers.NewMetricsHandler(facade, v)
	activityHandler := handlers.NewActivityHandler(facade, v)
	syncHandler := handlers.NewSyncHandler(facade, v)
	preferencesHandler := handlers.NewPreferencesHandler(facade, v)

	api := engine.Group("/api")
	api.POST("/operator/login", authHandler.Login)
	api.POST("/operator/logout", authHandler.Logout)

	secured := api.Group("")
	secured.Use(middleware.AuthRequired(facade))

	secured.GET("/orders", orderHandler.List)
	secured.GET("/orders/:id", orderHandler.Detail)
	secured.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	secured.POST("/orders/bulk/status", bulkHandler.Status)
	secured.POST("/orders/bulk/tester", bulkHandler.Tester)
	secured.POST("/orders/bulk/delete", bulkHandler.Delete)

	secured.GET("/metrics", metricsHandler.Metrics)
	charts := secured.Group("/charts")
	charts.GET("/revenue", metricsHandler.Revenue)
	charts.GET("/status", metricsHandler.Status)
	charts.GET("/geo", metricsHandler.Geo)
	charts.GET("/packages", metricsHandler.Packages)

	secured.GET("/activity", activityHandler.Feed)
	secured.GET("/testers", activityHandler.Testers)
	secured.GET("/countries", activityHandler.Countries)

	secured.POST("/refresh", syncHandler.Refresh)
	secured.GET("/status", syncHandler.Status)
	secured.GET("/status/wait", syncHandler.Wait)

	secured.GET("/preferences", preferencesHandler.Get)
	secured.PUT("/preferences", preferencesHandler.Put)
	secured.DELETE("/preferences", preferencesHandler.Delete)

	return engine
}
