package main

import (
	"log"

	"nexwms-backend/internal/config"
	"nexwms-backend/internal/infrastructure/queue"
)

// asynqScheduler wraps queue.Scheduler with shutdown handling
type asynqScheduler struct {
	*queue.Scheduler
}

// setupScheduler registers the recurring jobs and starts the scheduler
func setupScheduler(cfg *Config, warehouse config.WarehouseConfig) *asynqScheduler {
	scheduler := queue.NewScheduler(cfg.RedisAddr, warehouse)

	if err := scheduler.RegisterJobs(); err != nil {
		log.Fatalf("[Scheduler] Failed to register: %v", err)
	}

	go func() {
		log.Println("[Scheduler] Starting...")
		if err := scheduler.Start(); err != nil {
			log.Fatalf("[Scheduler] Failed: %v", err)
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

// Shutdown gracefully shuts down the scheduler
func (s *asynqScheduler) Shutdown() {
	log.Println("[Scheduler] Shutting down...")
	s.Scheduler.Shutdown()
	log.Println("[Scheduler] Stopped")
}
