package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/robfig/cron/v3"

	"hrpay/internal/domain/payroll"
	"hrpay/internal/platform/config"
	"hrpay/internal/platform/metrics"
)

const (
	JobPayrollGeneration = "payroll_generation"
)

// RunLog records job runs. A nil RunLog only logs.
type RunLog interface {
	Start(ctx context.Context, jobType string) (string, error)
	Finish(ctx context.Context, runID, status string, detailsJSON []byte) error
}

type Service struct {
	Cfg     config.Config
	Runs    RunLog
	Metrics *metrics.Collector
	queue   chan job
	cron    *cron.Cron
	now     func() time.Time
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(cfg config.Config, runs RunLog, collector *metrics.Collector) *Service {
	return &Service{
		Cfg:     cfg,
		Runs:    runs,
		Metrics: collector,
		queue:   make(chan job, 128),
		cron:    cron.New(),
		now:     time.Now,
	}
}

// Start runs the worker and the payroll schedule until ctx is done.
func (s *Service) Start(ctx context.Context, generator *Generator) error {
	if generator != nil && s.Cfg.PayrollCron != "" {
		if _, err := s.cron.AddFunc(s.Cfg.PayrollCron, func() {
			period := PreviousPeriod(s.now())
			s.Enqueue(JobPayrollGeneration, func(ctx context.Context) (any, error) {
				return generator.GenerateMonth(ctx, period.Year, period.Month)
			})
		}); err != nil {
			return err
		}
	}
	go s.worker(ctx)
	s.cron.Start()
	go func() {
		<-ctx.Done()
		<-s.cron.Stop().Done()
	}()
	return nil
}

// PreviousPeriod is the pay month before the one containing now.
func PreviousPeriod(now time.Time) payroll.Period {
	return payroll.Period{Year: now.Year(), Month: now.Month()}.Prev()
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	s.Metrics.RecordJobRun()
	runID := ""
	if s.Runs != nil {
		id, err := s.Runs.Start(ctx, j.Type)
		if err != nil {
			slog.Warn("job run insert failed", "err", err)
		}
		runID = id
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if updErr := s.Runs.Finish(ctx, runID, status, detailsJSON); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	slog.Info("job finished", "jobType", j.Type, "status", status)
	return details, err
}
