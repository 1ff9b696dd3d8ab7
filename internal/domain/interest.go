package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CalculationType selects the interest formula of a configuration.
type CalculationType string

const (
	CalculationAnnual  CalculationType = "Annual"
	CalculationMonthly CalculationType = "Monthly"
	CalculationDaily   CalculationType = "Daily"
)

// IsValid reports whether c is a known calculation type.
func (c CalculationType) IsValid() bool {
	switch c {
	case CalculationAnnual, CalculationMonthly, CalculationDaily:
		return true
	}
	return false
}

// MaxRatePercentage is the largest rate that fits DECIMAL(5,4).
var MaxRatePercentage = decimal.RequireFromString("9.9999")

// RateScale is the number of decimal places stored for rates.
const RateScale = 4

// InterestConfiguration is a named interest rate and formula.
// RatePercentage is a fraction: 0.0125 means 1.25%.
type InterestConfiguration struct {
	ID              string
	Name            string
	RatePercentage  decimal.Decimal
	CalculationType CalculationType
	Description     string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks rate bounds and calculation type.
func (c *InterestConfiguration) Validate() error {
	if c.Name == "" {
		return NewValidationError("config_name is required", "config_name")
	}
	if c.RatePercentage.IsNegative() || c.RatePercentage.GreaterThan(MaxRatePercentage) {
		return &ValidationError{Fields: []string{"rate_percentage"}, Message: ErrInvalidRate.Error()}
	}
	if !fitsScale(c.RatePercentage, RateScale) {
		return NewValidationError(fmt.Sprintf("rate_percentage allows at most %d decimal places", RateScale), "rate_percentage")
	}
	if !c.CalculationType.IsValid() {
		return &ValidationError{Fields: []string{"calculation_type"}, Message: ErrInvalidCalculationType.Error()}
	}
	return nil
}

// InterestPeriodStatus is the lifecycle state of an AccountInterestPeriod.
type InterestPeriodStatus string

const (
	InterestPeriodActive    InterestPeriodStatus = "Active"
	InterestPeriodSettled   InterestPeriodStatus = "Settled"
	InterestPeriodCancelled InterestPeriodStatus = "Cancelled"
)

// AccountInterestPeriod tracks a principal drawn from a Capital account that
// accrues interest. Only the Active state is produced here; settlement is
// handled elsewhere.
type AccountInterestPeriod struct {
	ID                           string
	AccountID                    string
	InterestConfigID             string
	StartDate                    time.Time
	EndDate                      time.Time
	ActualEndDate                *time.Time
	InitialTransferTransactionID string
	PrincipalAmount              decimal.Decimal
	Status                       InterestPeriodStatus
	CreatedAt                    time.Time
	UpdatedAt                    time.Time

	// Config is populated on reads that join the configuration.
	Config *InterestConfiguration
}

// AmountScale is the number of decimal places stored for money columns.
const AmountScale = 2

// ComputeInterest returns the interest on principal for the date range under
// the given policy. Unknown policies are computed as Daily. The result is not
// rounded.
//
//	Daily:   principal * rate * (floor(days(end-start)) + 1)
//	Monthly: principal * rate * ((ey-sy)*12 + (em-sm) + 1)
//	Annual:  (rate / 12) * principal * 2, independent of the dates
func ComputeInterest(principal, rate decimal.Decimal, policy CalculationType, start, end time.Time) decimal.Decimal {
	switch policy {
	case CalculationAnnual:
		return rate.Div(decimal.NewFromInt(12)).Mul(principal).Mul(decimal.NewFromInt(2))
	case CalculationMonthly:
		return principal.Mul(rate).Mul(decimal.NewFromInt(MonthSpan(start, end)))
	default:
		return principal.Mul(rate).Mul(decimal.NewFromInt(InclusiveDays(start, end)))
	}
}

// InclusiveDays returns floor((end-start) in days) + 1.
func InclusiveDays(start, end time.Time) int64 {
	const day = 24 * time.Hour

	d := end.Sub(start)
	days := int64(d / day)
	if d < 0 && d%day != 0 {
		days--
	}
	return days + 1
}

// MonthSpan returns the number of calendar months touched by [start, end].
func MonthSpan(start, end time.Time) int64 {
	return int64(end.Year()-start.Year())*12 + int64(end.Month()-start.Month()) + 1
}
