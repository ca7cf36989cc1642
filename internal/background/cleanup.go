package background

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Pruner removes expired lockout records
type Pruner interface {
	PruneExpired(ctx context.Context) (int64, error)
}

// CleanupManager periodically drops lockout records whose lock has ended
type CleanupManager struct {
	pruner   Pruner
	logger   *slog.Logger
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewCleanupManager creates a new cleanup manager
func NewCleanupManager(pruner Pruner, logger *slog.Logger, interval time.Duration) *CleanupManager {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CleanupManager{
		pruner:   pruner,
		logger:   logger,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the periodic cleanup until Stop is called or ctx ends. It blocks.
func (cm *CleanupManager) Start(ctx context.Context) {
	defer close(cm.doneCh)

	ticker := time.NewTicker(cm.interval)
	defer ticker.Stop()

	// Run immediately on startup
	cm.runCleanup(ctx)

	for {
		select {
		case <-ticker.C:
			cm.runCleanup(ctx)
		case <-cm.stopCh:
			cm.logger.Info("lockout cleanup stopped")
			return
		case <-ctx.Done():
			cm.logger.Info("lockout cleanup context cancelled")
			return
		}
	}
}

func (cm *CleanupManager) runCleanup(ctx context.Context) {
	cleanupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pruned, err := cm.pruner.PruneExpired(cleanupCtx)
	if err != nil {
		cm.logger.Error("failed to prune expired lockouts", slog.Any("error", err))
		return
	}

	if pruned > 0 {
		cm.logger.Info("expired lockouts pruned", slog.Int64("rows_deleted", pruned))
	}
}

// Stop signals the loop to exit and waits for it. Safe to call more than once.
func (cm *CleanupManager) Stop() {
	cm.stopOnce.Do(func() { close(cm.stopCh) })
	<-cm.doneCh
}
