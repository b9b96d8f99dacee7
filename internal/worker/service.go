package worker

import (
	"context"
	"os"
	"sync"
	"time"

	"agrotrust/internal/database"
	"agrotrust/internal/logger"
	"agrotrust/internal/services"
	"agrotrust/internal/workers"
)

// WorkerService manages background workers for the application
type WorkerService struct {
	trustWorker *workers.TrustRecomputeWorker
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	running     bool
	mu          sync.RWMutex
}

// NewWorkerService creates a new worker service
func NewWorkerService(locks *services.FarmerLocks) *WorkerService {
	ctx, cancel := context.WithCancel(context.Background())

	trustService := services.NewTrustService(database.DB, locks)
	trustWorker := workers.NewTrustRecomputeWorker(trustService, recomputeInterval())

	return &WorkerService{
		trustWorker: trustWorker,
		ctx:         ctx,
		cancel:      cancel,
		running:     false,
	}
}

// recomputeInterval reads the recompute interval from the environment,
// defaulting to one hour
func recomputeInterval() time.Duration {
	if raw := os.Getenv("TRUST_RECOMPUTE_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			return d
		}
	}
	return time.Hour
}

// Start starts all background workers
func (ws *WorkerService) Start() error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.running {
		return nil // Already running
	}

	logger.Info("Starting background workers...")

	ws.wg.Add(1)
	go func() {
		defer ws.wg.Done()
		ws.runTrustRecomputeWorker()
	}()

	ws.running = true
	logger.Info("Background workers started successfully")

	return nil
}

// Stop stops all background workers
func (ws *WorkerService) Stop() {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if !ws.running {
		return // Not running
	}

	logger.Info("Stopping background workers...")

	// Cancel context to signal all workers to stop
	ws.cancel()

	// Wait for all workers to finish
	ws.wg.Wait()

	ws.running = false
	logger.Info("Background workers stopped")
}

// IsRunning returns whether the worker service is currently running
func (ws *WorkerService) IsRunning() bool {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return ws.running
}

// runTrustRecomputeWorker runs the periodic trust recompute worker
func (ws *WorkerService) runTrustRecomputeWorker() {
	ws.trustWorker.Start(ws.ctx)

	// Wait for context cancellation
	<-ws.ctx.Done()

	ws.trustWorker.Stop()
}
