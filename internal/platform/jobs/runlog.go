package jobs

import (
	"context"

	"hrpay/internal/platform/querier"
)

// PGRunLog keeps job bookkeeping in the job_runs table.
type PGRunLog struct {
	DB querier.Querier
}

func (l PGRunLog) Start(ctx context.Context, jobType string) (string, error) {
	var runID string
	err := l.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, status)
    VALUES ($1,$2)
    RETURNING id::text
  `, jobType, "running").Scan(&runID)
	return runID, err
}

func (l PGRunLog) Finish(ctx context.Context, runID, status string, detailsJSON []byte) error {
	_, err := l.DB.Exec(ctx, `
    UPDATE job_runs
    SET status = $1, details_json = $2, completed_at = now()
    WHERE id = $3
  `, status, detailsJSON, runID)
	return err
}
