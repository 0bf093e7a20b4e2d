package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"nexwms-backend/internal/shared"
	"nexwms-backend/internal/shared/middleware"
	"nexwms-backend/internal/shared/response"
	"nexwms-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
		middleware.ClientIPMiddleware(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))
		v1.GET("/db-test", databaseTestHandler(c))

		// Production tokens come from the external auth service. This mint
		// exists for local development and seed tooling only.
		if c.Config.App.Environment == "development" {
			v1.POST("/auth/dev-token", devTokenHandler(c))
		}

		setupCatalogRoutes(v1, c)
		setupInventoryRoutes(v1, c)
		setupOrderRoutes(v1, c)
		setupCountingRoutes(v1, c)
		setupPurchasingRoutes(v1, c)
		setupReturnsRoutes(v1, c)
		setupReplenishmentRoutes(v1, c)
		setupAnalyticsRoutes(v1, c)
	}

	return router
}

// ========================================
// CATALOG ROUTES
// ========================================
func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := middleware.AuthMiddleware(c.Config.JWT.Secret)

	items := v1.Group("/items")
	items.Use(auth)
	{
		items.POST("", c.CatalogHandler.CreateItem)
		items.GET("", c.CatalogHandler.ListItems)
		items.GET("/:id", c.CatalogHandler.GetItem)
	}

	locations := v1.Group("/locations")
	locations.Use(auth)
	{
		locations.POST("", c.CatalogHandler.CreateLocation)
		locations.GET("", c.CatalogHandler.ListLocations)
		locations.GET("/:id/bin-label", c.CatalogHandler.BinLabel)
	}
}

// ========================================
// INVENTORY ROUTES
// ========================================
func setupInventoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	inventory := v1.Group("/inventories")
	inventory.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		// Stock operations
		inventory.POST("/receive", c.InventoryHandler.Receive)
		inventory.POST("/move", c.InventoryHandler.Move)
		inventory.POST("/:id/pick", c.InventoryHandler.PickBlind)
		inventory.POST("/:id/assign-lot", c.InventoryHandler.AssignLot)
		inventory.POST("/:id/adjust", middleware.SupervisorMiddleware(), c.InventoryHandler.Adjust)

		// Queries
		inventory.GET("", c.InventoryHandler.List)
		inventory.GET("/journal", c.InventoryHandler.ListJournal)
		inventory.GET("/suggest-location", c.InventoryHandler.SuggestPutaway)
		inventory.GET("/:id", c.InventoryHandler.Get)
		inventory.GET("/:id/label", c.InventoryHandler.ItemLabel)
	}
}

// ========================================
// ORDER ROUTES
// ========================================
func setupOrderRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := middleware.AuthMiddleware(c.Config.JWT.Secret)

	orders := v1.Group("/orders")
	orders.Use(auth)
	{
		orders.POST("", c.OrderHandler.Create)
		orders.GET("", c.OrderHandler.List)
		orders.GET("/:id", c.OrderHandler.Get)
		orders.POST("/:id/hold", middleware.SupervisorMiddleware(), c.OrderHandler.Hold)

		// Fulfillment pipeline
		orders.POST("/:id/allocate", c.OrderHandler.Allocate)
		orders.POST("/:id/pick", c.OrderHandler.PickItem)
		orders.POST("/:id/pack", c.OrderHandler.Pack)
		orders.POST("/:id/ship", c.OrderHandler.Ship)
		orders.POST("/:id/short-pick", c.OrderHandler.ShortPick)

		// Paperwork
		orders.GET("/:id/packing-slip", c.OrderHandler.PackingSlip)
		orders.GET("/:id/shipping-label", c.OrderHandler.ShippingLabel)
	}

	waves := v1.Group("/waves")
	waves.Use(auth)
	{
		waves.POST("/plan", c.OrderHandler.WavePlan)
		waves.POST("/plan-async", wavePlanAsyncHandler(c))
		waves.POST("/complete", c.OrderHandler.CompleteWave)
	}

	batches := v1.Group("/batches")
	batches.Use(auth)
	{
		batches.POST("", c.OrderHandler.CreateBatch)
		batches.GET("/:id/tasks", c.OrderHandler.ClusterTasks)
	}
}

// ========================================
// CYCLE COUNT ROUTES
// ========================================
func setupCountingRoutes(v1 *gin.RouterGroup, c *container.Container) {
	counts := v1.Group("/cycle-counts")
	counts.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		counts.POST("", middleware.SupervisorMiddleware(), c.CountingHandler.CreateRandom)
		counts.POST("/location", c.CountingHandler.CreateForLocation)
		counts.POST("/tasks/:id/submit", c.CountingHandler.SubmitCount)
		counts.GET("", c.CountingHandler.ListSessions)
		counts.GET("/:id", c.CountingHandler.GetSession)
	}
}

// ========================================
// PURCHASING ROUTES
// ========================================
func setupPurchasingRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := middleware.AuthMiddleware(c.Config.JWT.Secret)

	suppliers := v1.Group("/suppliers")
	suppliers.Use(auth)
	{
		suppliers.POST("", c.PurchasingHandler.CreateSupplier)
		suppliers.GET("", c.PurchasingHandler.ListSuppliers)
	}

	pos := v1.Group("/purchase-orders")
	pos.Use(auth)
	{
		pos.POST("", c.PurchasingHandler.CreatePO)
		pos.GET("", c.PurchasingHandler.ListPOs)
		pos.POST("/auto-replenish", middleware.SupervisorMiddleware(), c.PurchasingHandler.AutoReplenish)
		pos.GET("/:id", c.PurchasingHandler.GetPO)
		pos.POST("/:id/receive", c.PurchasingHandler.ReceiveItem)
		pos.GET("/:id/document", c.PurchasingHandler.Document)
	}
}

// ========================================
// RETURNS ROUTES
// ========================================
func setupReturnsRoutes(v1 *gin.RouterGroup, c *container.Container) {
	rmas := v1.Group("/rmas")
	rmas.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		rmas.POST("", c.ReturnsHandler.Create)
		rmas.GET("", c.ReturnsHandler.List)
		rmas.GET("/:id", c.ReturnsHandler.Get)
		rmas.POST("/:id/receive", c.ReturnsHandler.ProcessReceipt)
	}
}

// ========================================
// REPLENISHMENT ROUTES
// ========================================
func setupReplenishmentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	replenishment := v1.Group("/replenishment")
	replenishment.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		replenishment.PUT("/configs", middleware.SupervisorMiddleware(), c.ReplenishmentHandler.UpsertConfig)
		replenishment.GET("/configs", c.ReplenishmentHandler.ListConfigs)
		replenishment.POST("/generate", c.ReplenishmentHandler.Generate)
		replenishment.GET("/tasks", c.ReplenishmentHandler.ListTasks)
		replenishment.POST("/tasks/:id/complete", c.ReplenishmentHandler.Complete)
	}
}

// ========================================
// ANALYTICS ROUTES
// ========================================
func setupAnalyticsRoutes(v1 *gin.RouterGroup, c *container.Container) {
	analytics := v1.Group("/analytics")
	analytics.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		analytics.POST("/abc-run", middleware.SupervisorMiddleware(), c.AnalyticsHandler.RunABC)
		analytics.GET("/dashboard", c.AnalyticsHandler.Dashboard)
		analytics.GET("/operators", c.AnalyticsHandler.Operators)
	}
}

// devTokenHandler mints a shift-length operator token.
func devTokenHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			OperatorID string `json:"operator_id"`
			Username   string `json:"username"`
			Role       string `json:"role"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		if req.Username == "" {
			response.BadRequest(c, "username is required")
			return
		}
		if req.Role == "" {
			req.Role = "picker"
		}

		token, err := appCtx.JWTManager.GenerateToken(req.OperatorID, req.Username, req.Role)
		if err != nil {
			response.InternalServerError(c, err.Error())
			return
		}
		response.Success(c, http.StatusOK, gin.H{"token": token})
	}
}

// wavePlanAsyncHandler queues wave planning for the worker instead of
// blocking the request. Large waves can lock many stock rows.
func wavePlanAsyncHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			OrderIDs []string `json:"order_ids"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		if len(req.OrderIDs) == 0 {
			response.BadRequest(c, "order_ids is required")
			return
		}

		payload, err := json.Marshal(shared.WavePlanPayload{
			OrderIDs: req.OrderIDs,
			Actor:    middleware.Actor(c),
		})
		if err != nil {
			response.InternalServerError(c, err.Error())
			return
		}

		task := asynq.NewTask(shared.TypeGenerateWavePlan, payload)
		info, err := appCtx.Queue.Enqueue(task,
			asynq.Queue(shared.QueueCritical),
			asynq.MaxRetry(3),
			asynq.Timeout(2*time.Minute),
		)
		if err != nil {
			response.InternalServerError(c, err.Error())
			return
		}

		response.Success(c, http.StatusAccepted, gin.H{
			"task_id": info.ID,
			"queue":   info.Queue,
		})
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  gin.H{},
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}

// ========================================
// DATABASE TEST HANDLER
// ========================================
func databaseTestHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Database not connected",
			})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var version string
		err := appCtx.DB.Pool.QueryRow(ctx, "SELECT version()").Scan(&version)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprintf("Query failed: %v", err),
			})
			return
		}

		stats := appCtx.DB.Pool.Stat()

		c.JSON(http.StatusOK, gin.H{
			"message": "Database test successful",
			"database": gin.H{
				"postgres_version": version,
				"pool_stats": gin.H{
					"total_connections":    stats.TotalConns(),
					"idle_connections":     stats.IdleConns(),
					"acquired_connections": stats.AcquiredConns(),
					"max_connections":      stats.MaxConns(),
				},
			},
		})
	}
}
