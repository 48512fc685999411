package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/custdesk/internal/devserver"
	"github.com/muurk/custdesk/internal/discovery"
	"github.com/muurk/custdesk/internal/ui"
)

// Serve and scan flags
var (
	serveAddr      string
	serveAdvertise bool
	serveSeed      bool
	serveInstance  string
	scanTimeout    int
)

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scanCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", devserver.DefaultAddr, "Listen address")
	serveCmd.Flags().BoolVar(&serveAdvertise, "advertise", false, "Advertise the service over mDNS")
	serveCmd.Flags().BoolVar(&serveSeed, "seed", false, "Start with sample customers")
	serveCmd.Flags().StringVar(&serveInstance, "instance", "custdesk-dev", "mDNS instance name")

	scanCmd.Flags().IntVar(&scanTimeout, "timeout", int(discovery.DefaultScanTimeout/time.Second), "Scan timeout in seconds")
}

// serveCmd runs the in-memory development service
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local customer service for development",
	Long: `Serve an in-memory customer collection at ` + devserver.BasePath + `.

The service implements the same endpoints the client uses, so the
interactive screen and the other commands can run without a real backend.
Data is lost when the process exits.`,
	Example: `  # Serve on :8080 with sample data
  custdesk serve --seed

  # Serve and advertise for 'custdesk scan'
  custdesk serve --addr :9090 --advertise --log-level info`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initLogging(logLevel, false); err != nil {
			return err
		}

		store := devserver.NewStore()
		if serveSeed {
			store.Seed()
		}

		srv := devserver.New(devserver.Config{
			Addr:      serveAddr,
			Advertise: serveAdvertise,
			Instance:  serveInstance,
		}, store)

		fmt.Println(ui.NewHeader("Development Service", "custdesk serve",
			ui.Param{Key: "Address", Value: serveAddr + devserver.BasePath},
			ui.Param{Key: "Records", Value: strconv.Itoa(len(store.List()))},
			ui.Param{Key: "mDNS", Value: strconv.FormatBool(serveAdvertise)},
		).Render())
		fmt.Println("Press Ctrl+C to stop")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return srv.ListenAndServe(ctx)
	},
}

// scanCmd discovers advertised customer services
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for customer services on the local network",
	Long: `Browse mDNS for services advertised as ` + discovery.ServiceType + `.

Found services can be saved as profiles with 'custdesk config set-url'.`,
	Example: `  custdesk scan
  custdesk scan --timeout 10`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initLogging(logLevel, false); err != nil {
			return err
		}

		fmt.Printf("Scanning for customer services (timeout: %ds)...\n\n", scanTimeout)

		services, err := discovery.ScanForServices(cmd.Context(), time.Duration(scanTimeout)*time.Second)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		if len(services) == 0 {
			fmt.Println(ui.NewFailureResult("No services found",
				"Start one with 'custdesk serve --advertise'",
				"Check that mDNS traffic is allowed on this network",
				"Try increasing --timeout",
			).Render())
			return nil
		}

		fmt.Printf("Found %d service(s):\n\n", len(services))
		for i, svc := range services {
			fmt.Printf("%d. %s\n", i+1, svc.String())
			fmt.Printf("   URL:  %s\n\n", svc.BaseURL())
		}
		fmt.Println("Use 'custdesk config set-url <profile> <url>' to save one")

		return nil
	},
}
