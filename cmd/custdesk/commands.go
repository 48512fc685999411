package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/custdesk/internal/config"
	"github.com/muurk/custdesk/internal/customer"
	"github.com/muurk/custdesk/internal/logging"
	"github.com/muurk/custdesk/internal/manager"
	"github.com/muurk/custdesk/internal/tui"
	"github.com/muurk/custdesk/internal/ui"
)

// Record command flags
var (
	listFormat  string
	getFormat   string
	recordFlags = map[customer.FieldKey]*string{}
)

func init() {
	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)

	listCmd.Flags().StringVar(&listFormat, "format", "table", "Output format (table, json)")
	getCmd.Flags().StringVar(&getFormat, "format", "detailed", "Output format (detailed, json)")

	for _, f := range customer.Fields {
		recordFlags[f.Key] = new(string)
		usage := f.Label
		if f.Key == customer.FieldGender {
			usage = "Gender (MALE or FEMALE)"
		}
		addCmd.Flags().StringVar(recordFlags[f.Key], string(f.Key), "", usage)
		updateCmd.Flags().StringVar(recordFlags[f.Key], string(f.Key), "", usage)
	}
	_ = updateCmd.MarkFlagRequired(string(customer.FieldID))
}

// session is one resolved connection to the customer service.
type session struct {
	settings *config.Settings
	mgr      *manager.Manager
}

func openSession(ctx context.Context, interactive bool) (*session, error) {
	settings, err := loadSettings(interactive)
	if err != nil {
		return nil, err
	}

	client := customer.NewClient(settings.BaseURL)
	if settings.Timeout > 0 {
		client.SetTimeout(settings.Timeout)
	}

	logging.Debug("Session opened",
		zap.String("base_url", settings.BaseURL),
		zap.String("source", string(settings.Source)),
		zap.String("profile", settings.Profile),
	)

	return &session{
		settings: settings,
		mgr:      manager.New(client).WithContext(ctx),
	}, nil
}

// report prints the manager's status as a result box. Error statuses are
// returned as errReported so main exits non-zero without repeating them.
func (s *session) report(details ...ui.Param) error {
	if err := s.mgr.ErrStatus(); err != nil {
		hints := []string{fmt.Sprintf("Service: %s (%s)", s.settings.BaseURL, s.settings.Source)}
		hints = append(hints, failureHints(s.mgr.LastError())...)
		fmt.Fprintln(os.Stderr, ui.NewFailureResult(err.Error(), hints...).Render())
		return errReported
	}
	if status := s.mgr.Status(); !status.IsZero() {
		fmt.Println(ui.NewSuccessResult(status.Text, details...).Render())
	}
	return nil
}

// failureHints describes the gateway error behind a failed operation.
// Validation failures have no cause and get no hints.
func failureHints(cause error) []string {
	if cause == nil {
		return nil
	}

	logging.Debug("Operation failed",
		zap.Error(cause),
		zap.Bool("network", customer.IsNetworkError(cause)),
		zap.Bool("http", customer.IsHTTPError(cause)),
		zap.Bool("parse", customer.IsParseError(cause)),
	)

	hints := []string{customer.GetShortErrorMessage(cause)}
	switch {
	case customer.IsNetworkError(cause):
		hints = append(hints, "Check the base URL with 'custdesk config show' or look for services with 'custdesk scan'")
	case customer.IsParseError(cause):
		hints = append(hints, "The base URL may not point at a customer service")
	default:
		hints = append(hints, "Run with --log-level debug for the underlying error")
	}
	return hints
}

// uiCmd launches the interactive screen
var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive customer screen",
	Long: `Launch the full-screen customer manager.

The screen shows an entry form, the customer table and a lookup panel.
Logging (when enabled) goes to custdesk.log in the config directory.`,
	Example: `  # Use the active profile
  custdesk ui

  # Point at a specific service
  custdesk ui --api-url http://10.0.0.5:8080/customerapi`,
	RunE: runUI,
}

func runUI(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context(), true)
	if err != nil {
		return err
	}

	if sess.settings.Source == config.SourceProfile {
		sess.settings.Registry.TouchProfile(sess.settings.Profile)
		if err := sess.settings.Registry.Save(); err != nil {
			logging.Warn("Failed to record profile use", zap.Error(err))
		}
	}

	return tui.Run(sess.mgr, sess.settings.BaseURL)
}

// listCmd prints the whole collection
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all customers",
	Example: `  custdesk list
  custdesk list --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd.Context(), false)
		if err != nil {
			return err
		}

		sess.mgr.Drive(sess.mgr.Refresh())
		if sess.mgr.Status().IsError() {
			return sess.report()
		}
		customers := sess.mgr.Customers()

		if listFormat == "json" {
			return printJSON(customers)
		}

		fmt.Println(ui.NewHeader("Customer List", "custdesk list",
			ui.Param{Key: "Service", Value: sess.settings.BaseURL},
			ui.Param{Key: "Records", Value: strconv.Itoa(len(customers))},
		).Render())
		fmt.Println(ui.RenderCustomerTable(customers))
		return nil
	},
}

// getCmd prints one customer
var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one customer",
	Example: `  custdesk get 42
  custdesk get 42 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd.Context(), false)
		if err != nil {
			return err
		}

		sess.mgr.Drive(sess.mgr.Lookup(args[0]))
		c := sess.mgr.LookupResult()
		if c == nil {
			return sess.report()
		}

		if getFormat == "json" {
			return printJSON(c)
		}
		fmt.Println(c.FormatDetailed())
		return nil
	},
}

// addCmd creates a customer
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a customer",
	Long: `Add a customer. Every field is required; the first missing one is
reported and nothing is sent.`,
	Example: `  custdesk add --id 5 --name Ana --email a@x.com --contact 123 --gender FEMALE --address "Rd 1"`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd.Context(), false)
		if err != nil {
			return err
		}

		for _, f := range customer.Fields {
			if err := sess.mgr.Set(f.Key, *recordFlags[f.Key]); err != nil {
				return err
			}
		}

		record := sess.mgr.Buffer()
		sess.mgr.Drive(sess.mgr.Submit())
		return sess.report(ui.Param{Key: "Customer", Value: record.Name}, ui.Param{Key: "ID", Value: record.ID})
	},
}

// updateCmd replaces a customer. Fields not given on the command line keep
// their stored values.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update a customer",
	Long: `Update an existing customer. The stored record is fetched first and
only the given flags are changed; the full record is then sent back.`,
	Example: `  # Change the address of customer 5
  custdesk update --id 5 --address "Rd 2"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd.Context(), false)
		if err != nil {
			return err
		}

		changes := map[customer.FieldKey]string{}
		for _, f := range customer.Fields {
			if f.Key != customer.FieldID && cmd.Flags().Changed(string(f.Key)) {
				changes[f.Key] = *recordFlags[f.Key]
			}
		}

		record, err := updateRecord(sess.mgr, *recordFlags[customer.FieldID], changes)
		if err != nil {
			return err
		}
		return sess.report(ui.Param{Key: "Customer", Value: record.Name}, ui.Param{Key: "ID", Value: record.ID})
	},
}

// updateRecord loads the stored customer into the edit buffer, applies
// changes on top of it and submits the full record. It returns the buffer
// as sent. A failed lookup leaves the not-found status and submits nothing.
func updateRecord(mgr *manager.Manager, id string, changes map[customer.FieldKey]string) (customer.Draft, error) {
	mgr.Drive(mgr.Lookup(id))
	existing := mgr.LookupResult()
	if existing == nil {
		return customer.Draft{}, nil
	}
	mgr.Edit(*existing)

	for _, f := range customer.Fields {
		value, ok := changes[f.Key]
		if !ok || f.Key == customer.FieldID {
			continue
		}
		if err := mgr.Set(f.Key, value); err != nil {
			return customer.Draft{}, err
		}
	}

	record := mgr.Buffer()
	mgr.Drive(mgr.Submit())
	return record, nil
}

// deleteCmd removes a customer
var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Short:   "Delete a customer",
	Example: `  custdesk delete 5`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid customer id %q", args[0])
		}

		sess, err := openSession(cmd.Context(), false)
		if err != nil {
			return err
		}

		sess.mgr.Drive(sess.mgr.Delete(id))
		return sess.report()
	},
}

func printJSON(v any) error {
	return writeJSON(os.Stdout, v)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
