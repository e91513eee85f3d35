package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/ticketing/internal/config"
	"github.com/polkiloo/ticketing/internal/domain/model"
	"github.com/polkiloo/ticketing/internal/server/http/handlers"
	"github.com/polkiloo/ticketing/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.BoxOfficeFacade, logger *slog.Logger, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.CORS(cfg.CORSOrigins))
	engine.Use(middleware.DecompressRequest(middleware.DefaultMaxBodyBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	ticketHandler := handlers.NewTicketHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	voucherHandler := handlers.NewVoucherHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)
	api.GET("/tickets/:id", ticketHandler.Get)

	member := api.Group("")
	member.Use(middleware.AuthRequired(facade))
	member.POST("/orders", orderHandler.Place)
	member.GET("/orders/:code", orderHandler.Get)
	member.POST("/orders/:code/complete", orderHandler.Complete)
	member.POST("/orders/:code/cancel", orderHandler.Cancel)
	member.POST("/orders/:code/pending", orderHandler.MarkPending)
	member.GET("/orders/:code/vouchers/:voucher/qr", voucherHandler.QR)
	member.GET("/member/orders", orderHandler.ListOwn)

	admin := member.Group("")
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.GET("/orders", orderHandler.List)
	admin.POST("/admin/tickets", ticketHandler.Create)
	admin.PATCH("/admin/tickets/:id", ticketHandler.Update)
	admin.POST("/admin/vouchers/verify", voucherHandler.Verify)

	return engine
}
