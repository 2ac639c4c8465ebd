package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/infrastructure/config"
)

// sweepTickerInterval is the interval at which the sweeper checks schedules
const sweepTickerInterval = 1 * time.Minute

// SweepJob is a unit of periodic background work
type SweepJob interface {
	// Name identifies the job in logs
	Name() string
	// Run performs one sweep pass
	Run(ctx context.Context) error
}

// ParseCronSchedule parses a cron expression "minute hour * * *" to extract hour and minute
// Returns defaults (2:00) if parsing fails or expression is empty
func ParseCronSchedule(cronExpr string) (hour, minute int, err error) {
	hour = 2
	minute = 0

	if cronExpr == "" {
		return hour, minute, nil
	}

	parts := strings.Fields(cronExpr)
	if len(parts) < 2 {
		return hour, minute, nil
	}

	if parts[0] != "*" {
		if val, parseErr := parseIntOrDefault(parts[0], 0); parseErr == nil {
			minute = val
		}
	}
	if parts[1] != "*" {
		if val, parseErr := parseIntOrDefault(parts[1], 2); parseErr == nil {
			hour = val
		}
	}

	if minute < 0 || minute > 59 {
		return 2, 0, fmt.Errorf("minute must be 0-59, got %d", minute)
	}
	if hour < 0 || hour > 23 {
		return 2, 0, fmt.Errorf("hour must be 0-23, got %d", hour)
	}

	return hour, minute, nil
}

// parseIntOrDefault parses an int string or returns default
func parseIntOrDefault(s string, defaultVal int) (int, error) {
	if s == "" || s == "*" {
		return defaultVal, nil
	}
	var val int
	for _, c := range s {
		if c < '0' || c > '9' {
			return defaultVal, ErrInvalidConfig
		}
		val = val*10 + int(c-'0')
	}
	return val, nil
}

// scheduledJob tracks one registered job and its daily run time
type scheduledJob struct {
	job       SweepJob
	hour      int
	minute    int
	lastRunAt *time.Time
	nextRunAt time.Time
}

func (j *scheduledJob) calculateNextRun(now time.Time) {
	next := time.Date(now.Year(), now.Month(), now.Day(), j.hour, j.minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	j.nextRunAt = next
}

// Sweeper runs registered sweep jobs on their daily schedules. Failed
// runs are retried with a fixed delay up to the configured attempts.
type Sweeper struct {
	config config.SchedulerConfig
	logger *zap.Logger

	mu        sync.Mutex
	jobs      []*scheduledJob
	isRunning bool

	sem    chan struct{}
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSweeper creates a sweeper from configuration
func NewSweeper(cfg config.SchedulerConfig, logger *zap.Logger) *Sweeper {
	maxConcurrent := cfg.MaxConcurrentJobs
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &Sweeper{
		config: cfg,
		logger: logger,
		sem:    make(chan struct{}, maxConcurrent),
	}
}

// Register adds a job with a daily cron schedule ("minute hour * * *")
func (s *Sweeper) Register(job SweepJob, cronExpr string) error {
	hour, minute, err := ParseCronSchedule(cronExpr)
	if err != nil {
		return fmt.Errorf("register %s: %w", job.Name(), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	scheduled := &scheduledJob{job: job, hour: hour, minute: minute}
	scheduled.calculateNextRun(time.Now())
	s.jobs = append(s.jobs, scheduled)

	s.logger.Info("sweep job registered",
		zap.String("job", job.Name()),
		zap.Int("hour", hour),
		zap.Int("minute", minute),
	)
	return nil
}

// Start starts the schedule loop
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("sweeper started", zap.Int("jobs", len(s.jobs)))
	return nil
}

// Stop stops the schedule loop and waits for in-flight jobs
func (s *Sweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("sweeper stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("sweeper stop timed out with jobs still running")
		return ctx.Err()
	}
}

func (s *Sweeper) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(sweepTickerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.dispatchDue(ctx, now)
		}
	}
}

func (s *Sweeper) dispatchDue(ctx context.Context, now time.Time) {
	s.mu.Lock()
	var due []*scheduledJob
	for _, j := range s.jobs {
		if !now.Before(j.nextRunAt) {
			due = append(due, j)
			runAt := now
			j.lastRunAt = &runAt
			j.calculateNextRun(now)
		}
	}
	s.mu.Unlock()

	for _, j := range due {
		job := j.job
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()

			select {
			case s.sem <- struct{}{}:
				defer func() { <-s.sem }()
			case <-ctx.Done():
				return
			}

			s.runWithRetry(ctx, job)
		}()
	}
}

func (s *Sweeper) runWithRetry(ctx context.Context, job SweepJob) {
	attempts := s.config.RetryAttempts
	if attempts < 0 {
		attempts = 0
	}

	var lastErr error
	for attempt := 0; attempt <= attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.config.RetryDelay):
			}
		}

		lastErr = s.runOnce(ctx, job)
		if lastErr == nil {
			if attempt > 0 {
				s.logger.Info("sweep job recovered after retry",
					zap.String("job", job.Name()),
					zap.Int("attempt", attempt+1),
				)
			}
			return
		}

		s.logger.Warn("sweep job failed",
			zap.String("job", job.Name()),
			zap.Int("attempt", attempt+1),
			zap.Error(lastErr),
		)
	}

	s.logger.Error("sweep job exhausted retries",
		zap.String("job", job.Name()),
		zap.Error(lastErr),
	)
}

func (s *Sweeper) runOnce(ctx context.Context, job SweepJob) error {
	timeout := s.config.JobTimeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	jobCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := job.Run(jobCtx)
	if err != nil {
		return err
	}

	s.logger.Info("sweep job completed",
		zap.String("job", job.Name()),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}
