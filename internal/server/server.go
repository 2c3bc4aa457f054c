package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"stockroom/internal/audit"
	"stockroom/internal/cache"
	"stockroom/internal/command"
	"stockroom/internal/config"
	"stockroom/internal/dispatch"
	"stockroom/internal/identity"
	custommiddleware "stockroom/internal/middleware"
	"stockroom/internal/repository"
	"stockroom/internal/service"
	"stockroom/internal/transport"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

// NewServer wires repositories, services, dispatcher and routes into an
// http.Server. A nil redis client degrades caching to a no-op.
func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, redisClient *redis.Client) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))
	router.Use(custommiddleware.IdentityMiddleware(cfg.JWT.Secret, logger))

	if redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: 100,
			Window:            time.Minute,
			KeyPrefix:         "ratelimit",
		}, logger))
	}

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// Cache backend
	var store cache.Cache = cache.Noop{}
	if redisClient != nil {
		store = cache.NewRedisCache(redisClient)
	}

	// Cross-cutting collaborators
	recorder := audit.NewRecorder(auditRepo, logger)
	idp := identity.ContextProvider{}

	// Initialize services
	productService := service.NewProductService(productRepo, categoryRepo, store, recorder, idp, logger)
	categoryService := service.NewCategoryService(categoryRepo, store, recorder, idp, logger)
	dashboardService := service.NewDashboardService(productRepo, categoryRepo, store, logger)
	auditService := service.NewAuditService(auditRepo)

	// Register every command and query with its single handler
	dispatcher := dispatch.New(logger)
	registerHandlers(dispatcher, productService, categoryService, dashboardService, auditService)

	// Initialize handlers
	productHandler := transport.NewProductHandler(dispatcher, logger)
	categoryHandler := transport.NewCategoryHandler(dispatcher, logger)
	dashboardHandler := transport.NewDashboardHandler(dispatcher, logger)

	// Register routes
	productHandler.RegisterRoutes(router)
	categoryHandler.RegisterRoutes(router)
	dashboardHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func registerHandlers(
	d *dispatch.Dispatcher,
	products *service.ProductService,
	categories *service.CategoryService,
	dashboard *service.DashboardService,
	auditLogs *service.AuditService,
) {
	d.Register(command.CreateProductCommand{}.Kind(), dispatch.HandlerOf(products.Create), command.Validate)
	d.Register(command.UpdateProductCommand{}.Kind(), dispatch.HandlerOf(products.Update), command.Validate)
	d.Register(command.DeleteProductCommand{}.Kind(), dispatch.HandlerOf(products.Delete), command.Validate)
	d.Register(command.GetProductQuery{}.Kind(), dispatch.HandlerOf(products.Get), command.Validate)
	d.Register(command.ListProductsQuery{}.Kind(), dispatch.HandlerOf(products.List), command.Validate)
	d.Register(command.SearchProductsQuery{}.Kind(), dispatch.HandlerOf(products.Search), command.Validate)
	d.Register(command.GetLowStockProductsQuery{}.Kind(), dispatch.HandlerOf(products.LowStock), command.Validate)
	d.Register(command.GetProductsByCategoryQuery{}.Kind(), dispatch.HandlerOf(products.ByCategory), command.Validate)
	d.Register(command.GetRecentProductsQuery{}.Kind(), dispatch.HandlerOf(products.Recent), command.Validate)

	d.Register(command.CreateCategoryCommand{}.Kind(), dispatch.HandlerOf(categories.Create), command.Validate)
	d.Register(command.UpdateCategoryCommand{}.Kind(), dispatch.HandlerOf(categories.Update), command.Validate)
	d.Register(command.DeleteCategoryCommand{}.Kind(), dispatch.HandlerOf(categories.Delete), command.Validate)
	d.Register(command.GetCategoryQuery{}.Kind(), dispatch.HandlerOf(categories.Get), command.Validate)
	d.Register(command.ListCategoriesQuery{}.Kind(), dispatch.HandlerOf(categories.List), command.Validate)

	d.Register(command.GetDashboardQuery{}.Kind(), dispatch.HandlerOf(dashboard.Get), command.Validate)
	d.Register(command.GetRecentAuditLogsQuery{}.Kind(), dispatch.HandlerOf(auditLogs.Recent), command.Validate)
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
