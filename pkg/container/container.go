package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"nexwms-backend/internal/config"
	"nexwms-backend/internal/infrastructure/broadcast"
	infraCache "nexwms-backend/internal/infrastructure/cache"
	"nexwms-backend/internal/infrastructure/database"
	"nexwms-backend/pkg/cache"
	"nexwms-backend/pkg/jwt"

	analyticsHandler "nexwms-backend/internal/domains/analytics/handler"
	analyticsRepo "nexwms-backend/internal/domains/analytics/repository"
	analyticsService "nexwms-backend/internal/domains/analytics/service"
	catalogHandler "nexwms-backend/internal/domains/catalog/handler"
	catalogRepo "nexwms-backend/internal/domains/catalog/repository"
	catalogService "nexwms-backend/internal/domains/catalog/service"
	countingHandler "nexwms-backend/internal/domains/counting/handler"
	countingRepo "nexwms-backend/internal/domains/counting/repository"
	countingService "nexwms-backend/internal/domains/counting/service"
	inventoryHandler "nexwms-backend/internal/domains/inventory/handler"
	inventoryRepo "nexwms-backend/internal/domains/inventory/repository"
	inventoryService "nexwms-backend/internal/domains/inventory/service"
	orderHandler "nexwms-backend/internal/domains/order/handler"
	orderRepo "nexwms-backend/internal/domains/order/repository"
	orderService "nexwms-backend/internal/domains/order/service"
	purchasingHandler "nexwms-backend/internal/domains/purchasing/handler"
	purchasingRepo "nexwms-backend/internal/domains/purchasing/repository"
	purchasingService "nexwms-backend/internal/domains/purchasing/service"
	replenishmentHandler "nexwms-backend/internal/domains/replenishment/handler"
	replenishmentRepo "nexwms-backend/internal/domains/replenishment/repository"
	replenishmentService "nexwms-backend/internal/domains/replenishment/service"
	returnsHandler "nexwms-backend/internal/domains/returns/handler"
	returnsRepo "nexwms-backend/internal/domains/returns/repository"
	returnsService "nexwms-backend/internal/domains/returns/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton wired once at startup, in dependency order: config,
// infrastructure, repositories, services, handlers.
type Container struct {
	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *infraCache.RedisClient
	Cache       cache.Cache
	Broadcaster broadcast.Broadcaster
	Queue       *asynq.Client
	JWTManager  *jwt.Manager

	CatalogRepo       catalogRepo.Repository
	InventoryRepo     inventoryRepo.Repository
	OrderRepo         orderRepo.Repository
	CountingRepo      countingRepo.Repository
	PurchasingRepo    purchasingRepo.Repository
	ReturnsRepo       returnsRepo.Repository
	ReplenishmentRepo replenishmentRepo.Repository
	AnalyticsRepo     analyticsRepo.Repository

	CatalogService       catalogService.Service
	InventoryService     inventoryService.Service
	OrderService         orderService.Service
	CountingService      countingService.Service
	PurchasingService    purchasingService.Service
	ReturnsService       returnsService.Service
	ReplenishmentService replenishmentService.Service
	AnalyticsService     analyticsService.Service

	CatalogHandler       *catalogHandler.Handler
	InventoryHandler     *inventoryHandler.Handler
	OrderHandler         *orderHandler.Handler
	CountingHandler      *countingHandler.Handler
	PurchasingHandler    *purchasingHandler.Handler
	ReturnsHandler       *returnsHandler.Handler
	ReplenishmentHandler *replenishmentHandler.Handler
	AnalyticsHandler     *analyticsHandler.Handler
}

// NewContainer builds and connects the whole dependency graph. A failure
// at any layer aborts startup.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[CONTAINER] Config loaded (environment: %s)", cfg.App.Environment)

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("[CONTAINER] Database connected")

	redisClient := infraCache.NewRedisClient(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err := redisClient.Connect(context.Background()); err != nil {
		// Redis carries the cache, live events and job queue. The API can
		// serve without it, degraded, so log and continue.
		log.Printf("[CONTAINER] Redis connection failed (non-critical): %v", err)
	}
	c.Redis = redisClient
	c.Cache = infraCache.NewRedisCache(redisClient.Client)
	c.Broadcaster = broadcast.NewRedisBroadcaster(redisClient.Client)
	c.Queue = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("[CONTAINER] Initialized")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.CatalogRepo = catalogRepo.NewRepository(pool)
	c.InventoryRepo = inventoryRepo.NewRepository(pool)
	c.OrderRepo = orderRepo.NewRepository(pool)
	c.CountingRepo = countingRepo.NewRepository(pool)
	c.PurchasingRepo = purchasingRepo.NewRepository(pool)
	c.ReturnsRepo = returnsRepo.NewRepository(pool)
	c.ReplenishmentRepo = replenishmentRepo.NewRepository(pool)
	c.AnalyticsRepo = analyticsRepo.NewRepository(pool)
}

func (c *Container) initServices() {
	wh := c.Config.Warehouse

	c.CatalogService = catalogService.NewService(c.CatalogRepo)
	c.InventoryService = inventoryService.NewService(c.InventoryRepo, c.CatalogRepo, c.Broadcaster)
	c.OrderService = orderService.NewService(c.OrderRepo, c.CatalogRepo, c.Broadcaster)
	c.CountingService = countingService.NewService(c.CountingRepo)
	c.PurchasingService = purchasingService.NewService(c.PurchasingRepo, c.InventoryService, purchasingService.Config{
		LowStockThreshold: wh.LowStockThreshold,
		ReorderTargetQty:  wh.ReorderTargetQty,
		DefaultSupplier:   wh.DefaultSupplier,
	})
	c.ReturnsService = returnsService.NewService(c.ReturnsRepo, c.CatalogRepo, wh.ReturnsDockCode)
	c.ReplenishmentService = replenishmentService.NewService(c.ReplenishmentRepo, c.InventoryRepo, c.CatalogRepo)
	c.AnalyticsService = analyticsService.NewService(c.AnalyticsRepo, c.CatalogRepo, c.Cache, wh.LowStockThreshold)
}

func (c *Container) initHandlers() {
	c.CatalogHandler = catalogHandler.NewHandler(c.CatalogService)
	c.InventoryHandler = inventoryHandler.NewHandler(c.InventoryService)
	c.OrderHandler = orderHandler.NewHandler(c.OrderService)
	c.CountingHandler = countingHandler.NewHandler(c.CountingService)
	c.PurchasingHandler = purchasingHandler.NewHandler(c.PurchasingService)
	c.ReturnsHandler = returnsHandler.NewHandler(c.ReturnsService)
	c.ReplenishmentHandler = replenishmentHandler.NewHandler(c.ReplenishmentService)
	c.AnalyticsHandler = analyticsHandler.NewHandler(c.AnalyticsService)
}

// Cleanup releases shared resources during graceful shutdown.
func (c *Container) Cleanup() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Printf("[CONTAINER] Failed to close queue client: %v", err)
		}
	}

	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
		log.Println("[CONTAINER] Database connections closed")
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("[CONTAINER] Failed to close Redis: %v", err)
		} else {
			log.Println("[CONTAINER] Redis connections closed")
		}
	}
}
