package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/postgres"
)

const dateLayout = "2006-01-02"

// bcryptGenerate is swapped out in tests.
var bcryptGenerate = bcrypt.GenerateFromPassword

type interestResult struct {
	Principal       string `json:"principal_amount"`
	RatePercentage  string `json:"rate_percentage"`
	CalculationType string `json:"calculation_type"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	Days            int64  `json:"days"`
	Months          int64  `json:"months"`
	InterestAmount  string `json:"interest_amount"`
}

func interestCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interest",
		Short: "Interest tools that run locally",
	}

	var principal, rate, calcType, start, end string
	computeCmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute interest for a period without contacting the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := decimal.NewFromString(principal)
			if err != nil {
				return fmt.Errorf("invalid principal %q: %w", principal, err)
			}
			r, err := decimal.NewFromString(rate)
			if err != nil {
				return fmt.Errorf("invalid rate %q: %w", rate, err)
			}
			policy := domain.CalculationType(calcType)
			if !policy.IsValid() {
				return fmt.Errorf("invalid calculation type %q (want Daily, Monthly or Annual)", calcType)
			}
			startDate, err := time.Parse(dateLayout, start)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", start, err)
			}
			endDate, err := time.Parse(dateLayout, end)
			if err != nil {
				return fmt.Errorf("invalid end date %q: %w", end, err)
			}
			if endDate.Before(startDate) {
				return fmt.Errorf("end date %s is before start date %s", end, start)
			}

			amount := domain.ComputeInterest(p, r, policy, startDate, endDate)
			return printValue(cmd.OutOrStdout(), opts.output, interestResult{
				Principal:       p.String(),
				RatePercentage:  r.String(),
				CalculationType: string(policy),
				StartDate:       start,
				EndDate:         end,
				Days:            domain.InclusiveDays(startDate, endDate),
				Months:          domain.MonthSpan(startDate, endDate),
				InterestAmount:  amount.StringFixed(domain.AmountScale),
			})
		},
	}
	computeCmd.Flags().StringVar(&principal, "principal", "", "Principal amount")
	computeCmd.Flags().StringVar(&rate, "rate", "", "Rate as a fraction per period, e.g. 0.0125")
	computeCmd.Flags().StringVar(&calcType, "type", string(domain.CalculationDaily), "Calculation type: Daily, Monthly or Annual")
	computeCmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	computeCmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	_ = computeCmd.MarkFlagRequired("principal")
	_ = computeCmd.MarkFlagRequired("rate")
	_ = computeCmd.MarkFlagRequired("start")
	_ = computeCmd.MarkFlagRequired("end")

	cmd.AddCommand(computeCmd)
	return cmd
}

func migrateCmd() *cobra.Command {
	var databaseURL, path string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
	cmd.PersistentFlags().StringVar(&path, "path", "internal/infrastructure/postgres/migrations", "Migrations directory")

	logger := func(cmd *cobra.Command) zerolog.Logger {
		return zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).With().Timestamp().Logger()
	}
	requireURL := func() error {
		if databaseURL == "" {
			return fmt.Errorf("--database-url or DATABASE_URL is required")
		}
		return nil
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireURL(); err != nil {
				return err
			}
			return postgres.RunMigrations(databaseURL, path, logger(cmd))
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireURL(); err != nil {
				return err
			}
			return postgres.RunMigrationsDown(databaseURL, path, logger(cmd))
		},
	}

	cmd.AddCommand(upCmd, downCmd)
	return cmd
}

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "User administration helpers",
	}
	cmd.AddCommand(hashPasswordCmd())
	return cmd
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash suitable for seeding the users table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}
}
