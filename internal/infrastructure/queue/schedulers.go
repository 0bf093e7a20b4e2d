package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"nexwms-backend/internal/config"
	"nexwms-backend/internal/shared"
	"nexwms-backend/pkg/logger"
)

// Scheduler registers the recurring warehouse jobs with asynq's cron
// scheduler. The worker picks the enqueued tasks up.
type Scheduler struct {
	scheduler *asynq.Scheduler
	warehouse config.WarehouseConfig
}

func NewScheduler(redisAddress string, warehouse config.WarehouseConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		warehouse: warehouse,
	}
}

// RegisterJobs wires every recurring job. Call once before Start.
func (s *Scheduler) RegisterJobs() error {
	if err := s.registerABCAnalysisJob(); err != nil {
		return err
	}
	if err := s.registerReplenishmentJob(); err != nil {
		return err
	}
	if err := s.registerDashboardRefreshJob(); err != nil {
		return err
	}
	if err := s.registerCycleCountJob(); err != nil {
		return err
	}
	if err := s.registerAutoReplenishJob(); err != nil {
		return err
	}
	return nil
}

// ================================================
// JOB 1: ABC Analysis (Daily at 2 AM)
// ================================================
// Velocity ranks shift slowly, so once a night during the quiet window
// is enough.
func (s *Scheduler) registerABCAnalysisJob() error {
	payload, err := json.Marshal(shared.ABCAnalysisPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeRunABCAnalysis, payload)

	_, err = s.scheduler.Register(
		"0 2 * * *",
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register ABCAnalysis job", err)
		return err
	}

	logger.Info("Registered ABCAnalysis: daily at 2 AM", map[string]interface{}{})
	return nil
}

// ================================================
// JOB 2: Replenishment Generation (Every 15 minutes)
// ================================================
// Pick faces drain during the shift. Fifteen minutes keeps them topped
// up without flooding operators with micro-moves.
func (s *Scheduler) registerReplenishmentJob() error {
	task := asynq.NewTask(shared.TypeGenerateReplenishment, nil)

	_, err := s.scheduler.Register(
		"*/15 * * * *",
		task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register GenerateReplenishment job", err)
		return err
	}

	logger.Info("Registered GenerateReplenishment: every 15 minutes", map[string]interface{}{})
	return nil
}

// ================================================
// JOB 3: Dashboard Refresh (Every 5 minutes)
// ================================================
func (s *Scheduler) registerDashboardRefreshJob() error {
	task := asynq.NewTask(shared.TypeRefreshDashboardStats, nil)

	_, err := s.scheduler.Register(
		"*/5 * * * *",
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register RefreshDashboard job", err)
		return err
	}

	logger.Info("Registered RefreshDashboard: every 5 minutes", map[string]interface{}{})
	return nil
}

// ================================================
// JOB 4: Cycle Count Sessions (Daily at 6 AM)
// ================================================
// Opens a random sample before the morning shift so counters have work
// queued when they clock in.
func (s *Scheduler) registerCycleCountJob() error {
	payload, err := json.Marshal(shared.CycleCountPayload{
		Limit: s.warehouse.CycleCountSampling,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeGenerateCycleCounts, payload)

	_, err = s.scheduler.Register(
		"0 6 * * *",
		task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(2),
		asynq.Timeout(2*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register GenerateCycleCounts job", err)
		return err
	}

	logger.Info("Registered GenerateCycleCounts: daily at 6 AM", map[string]interface{}{})
	return nil
}

// ================================================
// JOB 5: Purchasing Auto-Replenish (Daily at 5 AM)
// ================================================
// Runs before the cycle count job so receiving sees the draft PO first
// thing in the morning.
func (s *Scheduler) registerAutoReplenishJob() error {
	task := asynq.NewTask(shared.TypeAutoReplenishPurchasing, nil)

	_, err := s.scheduler.Register(
		"0 5 * * *",
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register AutoReplenish job", err)
		return err
	}

	logger.Info("Registered AutoReplenish: daily at 5 AM", map[string]interface{}{})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
