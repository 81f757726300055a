// Package app wires configuration, stores and services into a runnable
// payroll application.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/domain/taxtable"
	"hrpay/internal/platform/config"
	"hrpay/internal/platform/crypto"
	"hrpay/internal/platform/db"
	"hrpay/internal/platform/jobs"
	"hrpay/internal/platform/lock"
	"hrpay/internal/platform/metrics"
	"hrpay/internal/store/sqlite"
)

type App struct {
	Config     config.Config
	Sealer     *crypto.Service
	Metrics    *metrics.Collector
	Payroll    *payroll.Service
	Attendance *attendance.Service
	Jobs       *jobs.Service
	closers    []func()
}

// Open validates cfg and connects the configured backends: Postgres when
// DATABASE_URL is set, sqlite otherwise, and Redis for the generation guard
// when REDIS_ADDR is set.
func Open(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	table, err := taxtable.Load(cfg.TaxYear)
	if err != nil {
		return nil, err
	}
	sealer, err := crypto.New(cfg.DataEncryptionKey, crypto.PurposePayrollSnapshot)
	if err != nil {
		return nil, err
	}
	if !sealer.Configured() {
		slog.Warn("DATA_ENCRYPTION_KEY not set; payroll snapshots are stored unencrypted")
	}

	a := &App{Config: cfg, Sealer: sealer, Metrics: metrics.New()}

	var (
		payrollStore    payroll.StoreAPI
		attendanceStore attendance.StoreAPI
		runs            jobs.RunLog
		auditor         payroll.Auditor = audit.Log{}
	)
	if cfg.UsePostgres() {
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		if err := db.Migrate(ctx, pool, db.Migrations); err != nil {
			a.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
		payrollStore = payroll.NewStore(pool, sealer)
		attendanceStore = attendance.NewStore(pool)
		runs = jobs.PGRunLog{DB: pool}
		auditor = audit.New(pool)
	} else {
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite open: %w", err)
		}
		a.closers = append(a.closers, func() {
			if err := store.Close(); err != nil {
				slog.Warn("sqlite close failed", "err", err)
			}
		})
		payrollStore = store.Payroll(sealer)
		attendanceStore = store.Attendance()
	}

	var guard payroll.Guard = lock.NewLocalGuard()
	if cfg.RedisAddr != "" {
		client, err := lock.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("redis connect: %w", err)
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		guard = lock.NewRedisGuard(client, cfg.GenerationLockTTL)
	}

	a.Payroll = payroll.NewService(payrollStore, payroll.NewCalculator(table, payroll.DefaultRates()), guard, a.Metrics).WithAuditor(auditor)
	a.Attendance = attendance.NewService(attendanceStore)
	a.Jobs = jobs.New(cfg, runs, a.Metrics)
	return a, nil
}

// Generator builds the monthly generation job over the given profiles.
func (a *App) Generator(profiles jobs.ProfileSource) *jobs.Generator {
	return &jobs.Generator{Payroll: a.Payroll, Profiles: profiles, Attendance: a.Attendance}
}

// Close releases backends in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
