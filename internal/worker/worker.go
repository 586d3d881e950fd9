package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"segue/internal/config"
	"segue/internal/logging"
	"segue/internal/queue"
	"segue/internal/render"
	"segue/internal/services"
)

// Renderer executes one render request and returns the final output path.
// *render.Processor is the production implementation.
type Renderer interface {
	Render(ctx context.Context, req render.Request, progress render.Progress) (string, error)
}

// Worker polls the queue and renders claimed jobs until stopped.
type Worker struct {
	cfg      *config.Config
	store    *queue.Store
	renderer Renderer
	logger   *slog.Logger

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New constructs a worker with initialized dependencies.
func New(cfg *config.Config, store *queue.Store, renderer Renderer, logger *slog.Logger) (*Worker, error) {
	if cfg == nil || store == nil || renderer == nil {
		return nil, errors.New("worker requires config, store, and renderer")
	}
	lockPath := filepath.Join(cfg.Paths.LogDir, "segue-daemon.lock")
	return &Worker{
		cfg:      cfg,
		store:    store,
		renderer: renderer,
		logger:   logging.NewComponentLogger(logger, "worker"),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// LockPath returns the daemon lock file location.
func (w *Worker) LockPath() string {
	return w.lockPath
}

// Start acquires the daemon lock, recovers jobs a previous daemon left mid
// render, and launches the polling loop.
func (w *Worker) Start(ctx context.Context) error {
	if w.running.Load() {
		return errors.New("worker already running")
	}

	ok, err := w.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another segue daemon is already running")
	}

	reset, err := w.store.ResetStuckRendering(ctx)
	if err != nil {
		_ = w.lock.Unlock()
		return fmt.Errorf("reset stuck jobs: %w", err)
	}
	if reset > 0 {
		w.logger.Info("returned interrupted jobs to pending", logging.Int64("count", reset))
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.running.Store(true)
	w.wg.Add(1)
	go w.run(runCtx)

	w.logger.Info("daemon started", logging.Args(
		logging.String("lock", w.lockPath),
		logging.String("queue_db", w.store.Path()),
	)...)
	return nil
}

// Stop halts polling, waits for the in-flight job to wind down, and releases
// the lock.
func (w *Worker) Stop() {
	if !w.running.Load() {
		return
	}
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.wg.Wait()
	if err := w.lock.Unlock(); err != nil {
		w.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	w.running.Store(false)
	w.logger.Info("daemon stopped")
}

// Running reports whether the polling loop is active.
func (w *Worker) Running() bool {
	return w.running.Load()
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()
	poll := time.Duration(w.cfg.Workflow.QueuePollInterval) * time.Second

	for {
		if ctx.Err() != nil {
			return
		}

		w.reclaimStale(ctx)

		job, err := w.store.ClaimNext(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Warn("claim next job failed", logging.Error(err))
			w.sleep(ctx, poll)
			continue
		}
		if job == nil {
			w.sleep(ctx, poll)
			continue
		}

		w.process(ctx, job)
	}
}

func (w *Worker) process(ctx context.Context, job *queue.Job) {
	logger := w.logger.With(logging.Args(
		logging.Int64("job", job.ID),
		logging.String("job_id", job.JobID),
		logging.String("effect", job.Effect),
	)...)
	logger.Info("job claimed")

	hbCtx, stopHeartbeat := context.WithCancel(ctx)
	var hbWG sync.WaitGroup
	hbWG.Add(1)
	go w.heartbeatLoop(hbCtx, &hbWG, job.ID)
	defer func() {
		stopHeartbeat()
		hbWG.Wait()
	}()

	req, err := render.ParseRequest(job.RequestJSON)
	if err != nil {
		w.fail(ctx, logger, job, err)
		return
	}
	req.ApplyDefaults(w.cfg.Render)
	if job.OutputFile != "" {
		req.OutputFile = job.OutputFile
	}

	outputPath, err := w.renderer.Render(ctx, req, func(percent float64, message string) {
		job.SetProgress(percent, message)
		if err := w.store.Update(ctx, job); err != nil && ctx.Err() == nil {
			logger.Warn("progress update failed", logging.Error(err))
		}
	})
	if err != nil {
		// A cancelled render means shutdown, not failure; the job stays
		// in rendering and the next daemon start returns it to pending.
		if errors.Is(err, context.Canceled) {
			logger.Info("render interrupted by shutdown")
			return
		}
		w.fail(ctx, logger, job, err)
		return
	}

	job.SetCompleted(outputPath)
	if err := w.store.Update(ctx, job); err != nil {
		logger.Error("failed to record completion", logging.Error(err))
		return
	}
	logger.Info("job completed", logging.String("output", outputPath))
}

func (w *Worker) fail(ctx context.Context, logger *slog.Logger, job *queue.Job, renderErr error) {
	status := services.FailureStatus(renderErr)
	job.SetFailed(status, renderErr.Error())
	if err := w.store.Update(ctx, job); err != nil {
		logger.Error("failed to record failure", logging.Error(err))
		return
	}
	logger.Error("job failed", logging.Args(
		logging.String("status", string(status)),
		logging.Error(renderErr),
	)...)
}

func (w *Worker) heartbeatLoop(ctx context.Context, wg *sync.WaitGroup, jobID int64) {
	defer wg.Done()
	interval := time.Duration(w.cfg.Workflow.HeartbeatInterval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.store.UpdateHeartbeat(ctx, jobID); err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				w.logger.Warn("heartbeat update failed",
					logging.Int64("job", jobID), logging.Error(err))
			}
		}
	}
}

func (w *Worker) reclaimStale(ctx context.Context) {
	timeout := time.Duration(w.cfg.Workflow.HeartbeatTimeout) * time.Second
	if timeout <= 0 {
		return
	}
	reclaimed, err := w.store.ReclaimStale(ctx, time.Now().Add(-timeout))
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Warn("reclaim stale jobs failed", logging.Error(err))
		}
		return
	}
	if reclaimed > 0 {
		w.logger.Info("reclaimed stale jobs", logging.Int64("count", reclaimed))
	}
}

func (w *Worker) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
