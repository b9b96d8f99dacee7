package workers

import (
	"context"
	"time"

	"agrotrust/internal/logger"
	"agrotrust/internal/services"

	"go.uber.org/zap"
)

// TrustRecomputeWorker periodically recomputes trust for all farmers so
// scores track the ledger even when no one calls the internal endpoint.
type TrustRecomputeWorker struct {
	trustService *services.TrustService
	interval     time.Duration
	ticker       *time.Ticker
	stopChan     chan bool
}

// NewTrustRecomputeWorker creates a new trust recompute worker
func NewTrustRecomputeWorker(trustService *services.TrustService, interval time.Duration) *TrustRecomputeWorker {
	return &TrustRecomputeWorker{
		trustService: trustService,
		interval:     interval,
		stopChan:     make(chan bool),
	}
}

// Start begins the periodic recompute process
func (w *TrustRecomputeWorker) Start(ctx context.Context) {
	w.ticker = time.NewTicker(w.interval)

	logger.Info("Starting trust recompute worker",
		zap.Duration("interval", w.interval))

	// Run an initial pass immediately
	go func() {
		if err := w.trustService.RecomputeAll(ctx); err != nil {
			logger.Error("Error in initial trust recompute", zap.Error(err))
		}
	}()

	// Start the periodic ticker
	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Info("Trust recompute worker stopping due to context cancellation")
				return
			case <-w.stopChan:
				logger.Info("Trust recompute worker stopping")
				return
			case <-w.ticker.C:
				if err := w.trustService.RecomputeAll(ctx); err != nil {
					logger.Error("Error in periodic trust recompute", zap.Error(err))
				}
			}
		}
	}()
}

// Stop stops the worker
func (w *TrustRecomputeWorker) Stop() {
	if w.ticker != nil {
		w.ticker.Stop()
	}
	close(w.stopChan)
	logger.Info("Trust recompute worker stopped")
}
