package retirement

import (
	"hrpay/internal/domain/apperr"
	"hrpay/internal/domain/money"
)

// DCDeductibleLimit is the annual employee contribution eligible for the
// retirement pension tax credit.
const DCDeductibleLimit = 9_000_000

type DCContributionEstimate struct {
	BaseMonthlyIncome       int64       `json:"baseMonthlyIncome"`
	MinimumContribution     int64       `json:"minimumContribution"`
	RecommendedContribution int64       `json:"recommendedContribution"`
	AnnualProjection        int64       `json:"annualProjection"`
	DeductibleLimit         int64       `json:"deductibleLimit"`
	WithinDeductibleLimit   bool        `json:"withinDeductibleLimit"`
	Months                  []MonthWage `json:"months"`
}

// EstimateDC derives the employer's minimum DC contribution, one twelfth of
// the trailing average monthly gross.
func EstimateDC(trailing []MonthWage) (DCContributionEstimate, error) {
	if len(trailing) == 0 {
		return DCContributionEstimate{}, apperr.Invalid("trailing", 0, "at least one month required")
	}
	total, err := totalGross(trailing)
	if err != nil {
		return DCContributionEstimate{}, err
	}

	est := DCContributionEstimate{
		BaseMonthlyIncome: money.FloorDiv(total, int64(len(trailing))),
		DeductibleLimit:   DCDeductibleLimit,
		Months:            trailing,
	}
	est.MinimumContribution = money.FloorDiv(est.BaseMonthlyIncome, 12)
	est.RecommendedContribution = est.MinimumContribution
	est.AnnualProjection = est.RecommendedContribution * 12
	est.WithinDeductibleLimit = est.AnnualProjection <= est.DeductibleLimit
	return est, nil
}
