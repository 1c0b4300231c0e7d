package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bankcore/customer-service/internal/api/handler"
	"github.com/bankcore/customer-service/internal/api/middleware"
	"github.com/bankcore/customer-service/internal/core/ports"
	"github.com/bankcore/customer-service/internal/core/service"
	mongodb "github.com/bankcore/customer-service/internal/infrastructure/db/mongo"
	redisdb "github.com/bankcore/customer-service/internal/infrastructure/db/redis"
	"github.com/bankcore/customer-service/internal/pkg/resilience"
)

// Deps carries everything the router needs to assemble the service graph.
type Deps struct {
	DB        *mongo.Database
	Redis     *redis.Client
	Products  ports.ProductClient
	Guard     *resilience.Wrapper
	Emitter   ports.EventEmitter
	JWTSecret string
	CacheTTL  time.Duration
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("customer_http"))

	// --- Dependencies ---
	customerRepo := mongodb.NewCustomerRepository(deps.DB)
	customerCache := redisdb.NewCustomerCache(deps.Redis, deps.CacheTTL)
	customerService := service.NewCustomerService(customerRepo, customerCache, deps.Products, deps.Guard, deps.Emitter, deps.Logger)
	reportService := service.NewReportService(deps.Products, deps.Guard, deps.Logger)
	debitCardService := service.NewDebitCardService(deps.Products, deps.Guard, deps.Logger)
	paymentService := service.NewPaymentService(deps.Products, deps.Guard, deps.Logger)

	authRepo := mongodb.NewAuthRepository(deps.DB)
	authService := service.NewAuthService(authRepo, deps.JWTSecret, 24*time.Hour)

	customerHandler := handler.NewCustomerHandler(customerService)
	productOpsHandler := handler.NewProductOpsHandler(reportService, debitCardService, paymentService)
	authHandler := handler.NewAuthHandler(authService)

	authRequired := middleware.Auth(deps.JWTSecret)
	adminOnly := middleware.RBAC("admin")

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Customer routes ---
	v1 := e.Group("/v1", authRequired)

	customers := v1.Group("/customers")
	customers.GET("", customerHandler.List)
	customers.POST("", customerHandler.Create)
	customers.GET("/:id", customerHandler.Get)
	customers.PUT("/:id", customerHandler.Update)
	customers.DELETE("/:id", customerHandler.Delete, adminOnly)
	customers.GET("/:id/products", customerHandler.GetProducts)
	customers.POST("/:id/products", customerHandler.AddProduct)
	customers.DELETE("/:id/products/:productId", customerHandler.RemoveProduct)
	customers.POST("/:id/debit-cards", productOpsHandler.AssociateDebitCard)
	customers.GET("/:id/debit-cards/:cardId/main-account", productOpsHandler.DebitCardMainAccount)

	products := v1.Group("/products")
	products.GET("/:productId/debit-cards/:cardId/balance", productOpsHandler.DebitCardBalance)
	products.POST("/:productId/pay", productOpsHandler.Pay)

	v1.GET("/reports/products", productOpsHandler.Report, adminOnly)

	return e
}
