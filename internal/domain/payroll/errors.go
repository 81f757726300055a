package payroll

import (
	"fmt"

	"hrpay/internal/domain/apperr"
)

var (
	ErrNotFound             = fmt.Errorf("%w: payroll record", apperr.ErrNotFound)
	ErrDuplicatePayroll     = fmt.Errorf("%w: payroll already generated for period", apperr.ErrConsistency)
	ErrRecordConfirmed      = fmt.Errorf("%w: payroll record is confirmed", apperr.ErrConsistency)
	ErrGenerationInProgress = fmt.Errorf("%w: payroll generation already running for period", apperr.ErrConsistency)
)
