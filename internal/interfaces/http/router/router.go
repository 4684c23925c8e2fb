package router

import (
	"github.com/bizadmin/backend/internal/infrastructure/auth"
	"github.com/bizadmin/backend/internal/infrastructure/config"
	"github.com/bizadmin/backend/internal/infrastructure/logger"
	"github.com/bizadmin/backend/internal/interfaces/http/handler"
	"github.com/bizadmin/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	System           *handler.SystemHandler
	Auth             *handler.AuthHandler
	Clients          *handler.ClientHandler
	Suppliers        *handler.SupplierHandler
	Invoices         *handler.InvoiceHandler
	CashTransactions *handler.CashTransactionHandler
	Purchases        *handler.PurchaseHandler
	ReturnExchanges  *handler.ReturnExchangeHandler
	Inventory        *handler.InventoryHandler
	Reports          *handler.ReportHandler
}

// New builds the gin engine with the full middleware chain and every
// route mounted under /api/v1
func New(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order: request ID first so everything downstream logs
	// with it, recovery before the request logger, auth last.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecurityHeaders())

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}

	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	// Probes sit outside API versioning and authentication
	engine.GET("/ping", h.System.Ping)
	engine.GET("/health", h.System.Health)

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	engine.Use(middleware.JWTAuthWithConfig(middleware.JWTConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/ping",
			"/health",
			"/api/v1/auth/login",
			"/api/v1/auth/register",
		},
		SkipPathPrefixes: []string{
			"/swagger",
		},
	}))

	api := engine.Group("/api/v1")
	registerAuthRoutes(api, h.Auth)
	registerClientRoutes(api, h.Clients)
	registerSupplierRoutes(api, h.Suppliers)
	registerInvoiceRoutes(api, h.Invoices)
	registerCashTransactionRoutes(api, h.CashTransactions)
	registerPurchaseRoutes(api, h.Purchases)
	registerReturnExchangeRoutes(api, h.ReturnExchanges)
	registerInventoryRoutes(api, h.Inventory)
	registerReportRoutes(api, h.Reports)

	return engine
}

func registerAuthRoutes(api *gin.RouterGroup, h *handler.AuthHandler) {
	g := api.Group("/auth")
	g.POST("/login", h.Login)
	g.POST("/register", h.Register)
	g.PUT("/password", h.ChangePassword)
	g.GET("/profile", h.Profile)
}

func registerClientRoutes(api *gin.RouterGroup, h *handler.ClientHandler) {
	g := api.Group("/clients")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/summary", h.Summary)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/balance", h.Balance)

	// Path the previous frontend generation still calls
	legacy := api.Group("/client")
	legacy.GET("/:id/getBalance", h.Balance)
}

func registerSupplierRoutes(api *gin.RouterGroup, h *handler.SupplierHandler) {
	g := api.Group("/suppliers")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/summary", h.Summary)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/balance", h.Balance)

	legacy := api.Group("/supplier")
	legacy.GET("/:id/getBalance", h.Balance)
}

func registerInvoiceRoutes(api *gin.RouterGroup, h *handler.InvoiceHandler) {
	g := api.Group("/invoices")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Delete)
}

func registerCashTransactionRoutes(api *gin.RouterGroup, h *handler.CashTransactionHandler) {
	for _, prefix := range []string{"/cash-transactions", "/cashTransaction"} {
		g := api.Group(prefix)
		g.POST("", h.Create)
		g.GET("", h.List)
		g.GET("/summary", h.Summary)
		g.GET("/:id", h.Get)
		g.PATCH("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}
}

func registerPurchaseRoutes(api *gin.RouterGroup, h *handler.PurchaseHandler) {
	g := api.Group("/purchases")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("/:id/payments", h.RecordPayment)
	g.DELETE("/:id", h.Delete)
}

func registerReturnExchangeRoutes(api *gin.RouterGroup, h *handler.ReturnExchangeHandler) {
	for _, prefix := range []string{"/return-exchanges", "/returnExchange"} {
		g := api.Group(prefix)
		g.POST("", h.Create)
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.POST("/:id/approve", h.Approve)
		g.POST("/:id/reject", h.Reject)
		g.POST("/:id/complete", h.Complete)
		g.DELETE("/:id", h.Delete)
	}
}

func registerInventoryRoutes(api *gin.RouterGroup, h *handler.InventoryHandler) {
	g := api.Group("/inventory")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.POST("/:id/quantity", h.AdjustQuantity)
	g.DELETE("/:id", h.Delete)
}

func registerReportRoutes(api *gin.RouterGroup, h *handler.ReportHandler) {
	g := api.Group("/reports")
	g.GET("/detailed", h.Detailed)

	legacy := api.Group("/report")
	legacy.GET("/detailed", h.Detailed)
}
