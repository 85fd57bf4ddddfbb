package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"botdash/internal/dashboard"
	"botdash/internal/metrics"
	"github.com/kardianos/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Variables to hold flag values
var (
	accountMetrics bool
	serviceAction  string
)

// --- SERVICE WRAPPER ---

// program implements the kardianos/service interface
type program struct {
	server *http.Server
	log    *logrus.Logger
}

func (p *program) Start(s service.Service) error {
	// Start should not block.
	go p.run()
	return nil
}

func (p *program) run() {
	p.log.WithField("addr", p.server.Addr).Info("dashboard listening")
	if err := p.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		// Exit so the service manager attempts a restart.
		p.log.WithError(err).Fatal("http server failed")
	}
}

func (p *program) Stop(s service.Service) error {
	p.log.Info("stopping dashboard")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.server.Shutdown(ctx)
}

// serviceArgs are the arguments the service manager starts the binary with.
func serviceArgs(listen string) []string {
	args := []string{"serve", "--listen", listen}
	if used := viper.ConfigFileUsed(); used != "" {
		args = append(args, "--config", used)
	}
	if accountMetrics {
		args = append(args, "--account-metrics")
	}
	return args
}

// --- COMMAND ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the list views as a JSON dashboard",
	Long: `Starts a long-running HTTP server with one paginated JSON endpoint per
resource, plus /healthz and Prometheus /metrics. Can be installed as a
system service.`,
	Example: `  botdash serve --listen :8080
  botdash serve --account-metrics --service install`,
	RunE: func(cmd *cobra.Command, args []string) error {
		api, log, cfg, err := remote()
		if err != nil {
			return err
		}

		m := metrics.New()
		if accountMetrics {
			m.Registry.MustRegister(&metrics.AccountCollector{
				Source:  api,
				Timeout: cfg.Timeout,
				Log:     log.WithField("component", "collector"),
			})
		}

		prg := &program{
			server: &http.Server{
				Addr:              cfg.Listen,
				Handler:           dashboard.New(api, m, log).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			},
			log: log,
		}

		svcConfig := &service.Config{
			Name:        "botdash",
			DisplayName: "botdash dashboard",
			Description: "Serves paginated meeting bot API lists as JSON",
			Arguments:   serviceArgs(cfg.Listen),
		}
		s, err := service.New(prg, svcConfig)
		if err != nil {
			return err
		}

		// Handle Service Control Actions (Install, Start, Stop, Uninstall)
		if serviceAction != "" {
			if err := service.Control(s, serviceAction); err != nil {
				return fmt.Errorf("failed to %s service: %w", serviceAction, err)
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return nil
		}

		// Run blocks until the service manager or an interrupt stops it.
		return s.Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("listen", "", "Address to listen on (default is the configured listen, :8080)")
	_ = viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
	serveCmd.Flags().BoolVar(&accountMetrics, "account-metrics", false, "Export calendar and team counts on /metrics")
	serveCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")
}
