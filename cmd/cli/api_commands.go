package main

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

// listFlags are the paging flags shared by list commands.
type listFlags struct {
	page  int
	limit int
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&f.limit, "limit", 10, "Items per page")
}

func (f *listFlags) query() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(f.page))
	q.Set("limit", strconv.Itoa(f.limit))
	return q
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

// runRequest issues one API call and prints its data.
func runRequest(cmd *cobra.Command, opts *options, client *apiClient, method, path string, query url.Values, body any) error {
	env, err := client.do(cmd.Context(), method, path, query, body)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), opts.output, env)
}

func accountsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	var (
		lf          listFlags
		accountType string
		active      string
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := lf.query()
			setIf(q, "type", accountType)
			setIf(q, "is_active", active)
			return runRequest(cmd, opts, newAPIClient(opts), http.MethodGet, "/api/v1/accounts", q, nil)
		},
	}
	lf.register(listCmd)
	listCmd.Flags().StringVar(&accountType, "type", "", "Filter by account type (Capital or Operational)")
	listCmd.Flags().StringVar(&active, "active", "", "Filter by active flag (true or false)")

	getCmd := &cobra.Command{
		Use:   "get <account-id>",
		Short: "Show an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, opts, newAPIClient(opts), http.MethodGet, "/api/v1/accounts/"+url.PathEscape(args[0]), nil, nil)
		},
	}

	var name, createType, currency string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"account_name": name,
				"account_type": createType,
			}
			if currency != "" {
				body["currency"] = currency
			}
			return runRequest(cmd, opts, newAPIClient(opts), http.MethodPost, "/api/v1/accounts", nil, body)
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "Account name")
	createCmd.Flags().StringVar(&createType, "type", "", "Account type (Capital or Operational)")
	createCmd.Flags().StringVar(&currency, "currency", "", "Currency code")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("type")

	cmd.AddCommand(listCmd, getCmd, createCmd)
	return cmd
}

func transactionsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Transaction operations",
	}

	var (
		lf                    listFlags
		txType, account, user string
		startDate, endDate    string
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := lf.query()
			setIf(q, "type", txType)
			setIf(q, "accountId", account)
			setIf(q, "userId", user)
			setIf(q, "startDate", startDate)
			setIf(q, "endDate", endDate)
			return runRequest(cmd, opts, newAPIClient(opts), http.MethodGet, "/api/v1/transactions", q, nil)
		},
	}
	lf.register(listCmd)
	listCmd.Flags().StringVar(&txType, "type", "", "Filter by transaction type")
	listCmd.Flags().StringVar(&account, "account", "", "Only transactions touching this account")
	listCmd.Flags().StringVar(&user, "user", "", "Only transactions created by this user")
	listCmd.Flags().StringVar(&startDate, "from", "", "Earliest transaction date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&endDate, "to", "", "Latest transaction date (YYYY-MM-DD)")

	getCmd := &cobra.Command{
		Use:   "get <transaction-id>",
		Short: "Show a transaction with its entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, opts, newAPIClient(opts), http.MethodGet, "/api/v1/transactions/"+url.PathEscape(args[0]), nil, nil)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Delete a transaction and reverse its balance effects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAPIClient(opts).do(cmd.Context(), http.MethodDelete, "/api/v1/transactions/"+url.PathEscape(args[0]), nil, nil)
			if err != nil {
				return err
			}
			printMessage(cmd.OutOrStdout(), env)
			return nil
		},
	}

	cmd.AddCommand(listCmd, getCmd, deleteCmd)
	return cmd
}

func transferCmd(opts *options) *cobra.Command {
	var (
		from, to, amount, date, description  string
		applyInterest                        bool
		configID, interestStart, interestEnd string
		idempotencyKey                       string
	)

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move funds between two accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"source_account_id":      from,
				"destination_account_id": to,
				"amount":                 amount,
				"apply_interest":         applyInterest,
			}
			optional := map[string]string{
				"transaction_date":    date,
				"description":         description,
				"interest_config_id":  configID,
				"interest_start_date": interestStart,
				"interest_end_date":   interestEnd,
			}
			for k, v := range optional {
				if v != "" {
					body[k] = v
				}
			}

			client := newAPIClient(opts)
			client.idempotencyKey = idempotencyKey
			return runRequest(cmd, opts, client, http.MethodPost, "/api/v1/transactions/transfer", nil, body)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Source account ID")
	cmd.Flags().StringVar(&to, "to", "", "Destination account ID")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to transfer")
	cmd.Flags().StringVar(&date, "date", "", "Transaction date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&description, "description", "", "Transfer description")
	cmd.Flags().BoolVar(&applyInterest, "interest", false, "Open an interest period for a Capital to Operational transfer")
	cmd.Flags().StringVar(&configID, "interest-config", "", "Interest configuration ID")
	cmd.Flags().StringVar(&interestStart, "interest-start", "", "Interest start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&interestEnd, "interest-end", "", "Interest end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Idempotency key for safe retries")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func transfersCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfers",
		Short: "Query transfers",
	}

	var (
		lf                          listFlags
		account, startDate, endDate string
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List transfers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := lf.query()
			setIf(q, "accountId", account)
			setIf(q, "startDate", startDate)
			setIf(q, "endDate", endDate)
			return runRequest(cmd, opts, newAPIClient(opts), http.MethodGet, "/api/v1/transactions/transfers", q, nil)
		},
	}
	lf.register(listCmd)
	listCmd.Flags().StringVar(&account, "account", "", "Only transfers touching this account")
	listCmd.Flags().StringVar(&startDate, "from", "", "Earliest transaction date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&endDate, "to", "", "Latest transaction date (YYYY-MM-DD)")

	getCmd := &cobra.Command{
		Use:   "get <transfer-id>",
		Short: "Show a transfer with its interest details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, opts, newAPIClient(opts), http.MethodGet, "/api/v1/transactions/transfers/"+url.PathEscape(args[0]), nil, nil)
		},
	}

	cmd.AddCommand(listCmd, getCmd)
	return cmd
}

func interestConfigsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interest-configs",
		Short: "Interest configuration operations",
	}

	var (
		lf     listFlags
		active string
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List interest configurations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := lf.query()
			setIf(q, "is_active", active)
			return runRequest(cmd, opts, newAPIClient(opts), http.MethodGet, "/api/v1/interest-configurations", q, nil)
		},
	}
	lf.register(listCmd)
	listCmd.Flags().StringVar(&active, "active", "", "Filter by active flag (true or false)")

	cmd.AddCommand(listCmd)
	return cmd
}

func reconcileCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile [account-id]",
		Short: "Reconcile one account, or report on every account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/reconciliation"
			if len(args) == 1 {
				path = "/api/v1/accounts/" + url.PathEscape(args[0]) + "/reconciliation"
			}
			return runRequest(cmd, opts, newAPIClient(opts), http.MethodGet, path, nil, nil)
		},
	}
}

func ledgerCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, "/api/v1/ledger/consistency", nil, nil)

			var apiErr *apiError
			if err != nil && !(errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict) {
				return err
			}
			if printErr := printResult(cmd.OutOrStdout(), opts.output, env); printErr != nil {
				return printErr
			}
			return err
		},
	}

	cmd.AddCommand(consistencyCmd)
	return cmd
}
