package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/delivery/internal/metrics"
	"github.com/polkiloo/delivery/internal/server/http/handlers"
	"github.com/polkiloo/delivery/internal/server/http/middleware"
)

const metricsPath = "/metrics"

type setupParams struct {
	fx.In

	Facade  handlers.DeliveryFacade
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// Setup configures gin router with handlers and middleware.
func Setup(p setupParams) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.Metrics(p.Metrics))
	engine.Use(middleware.DecompressRequest())
	engine.Use(middleware.Compress(metricsPath))

	authHandler := handlers.NewAuthHandler(p.Facade, p.Logger)
	orderHandler := handlers.NewOrderHandler(p.Facade, p.Logger)
	healthHandler := handlers.NewHealthHandler(p.Facade, p.Logger)
	authRequired := middleware.AuthRequired(p.Facade, p.Logger)

	engine.GET("/healthz", healthHandler.Check)
	engine.GET(metricsPath, gin.WrapH(p.Metrics.Handler()))

	auth := engine.Group("/auth")
	auth.GET("/", authHandler.Home)
	auth.POST("/sign-in", authHandler.SignIn)
	auth.POST("/sign-in-form", authHandler.SignInForm)
	auth.POST("/sign-up", authRequired, authHandler.SignUp)
	auth.POST("/refresh", authRequired, authHandler.Refresh)

	orders := engine.Group("/orders")
	orders.Use(authRequired)
	orders.GET("/", orderHandler.Home)
	orders.POST("/pedido", orderHandler.Create)
	orders.POST("/pedido/cancelar/:id", orderHandler.Cancel)
	orders.POST("/pedido/finalizar/:id", orderHandler.Finalize)
	orders.GET("/listar", orderHandler.ListAll)
	orders.GET("/meus_pedidos", orderHandler.Mine)
	orders.GET("/pedido/:id", orderHandler.Get)
	orders.POST("/pedido/adicionar_item/:id", orderHandler.AddItem)
	orders.DELETE("/pedido/remover_item/:item_id", orderHandler.RemoveItem)

	return engine
}
