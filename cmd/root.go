package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"botdash/internal/client"
	"botdash/internal/config"
	"botdash/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string
var jsonOutput bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "botdash",
	Short: "Browse meeting bot activity from the command line",
	Long: `List bots, API logs, calendars, webhook deliveries and the other
paginated resources of the meeting bot API, or serve them as a JSON dashboard.`,
	SilenceUsage: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.botdash.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if err := config.InitConfig(cfgFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) (*logrus.Logger, error) {
	return logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
}

// remote loads the saved credentials and builds an API client.
func remote() (*client.BotClient, *logrus.Logger, config.Config, error) {
	cfg, err := config.RequireAPIKey()
	if err != nil {
		return nil, nil, config.Config{}, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, nil, config.Config{}, err
	}
	api := client.New(client.ClientConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout,
		Logger:  log,
	})
	return api, log, cfg, nil
}
