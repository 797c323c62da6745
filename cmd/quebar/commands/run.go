package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bryanchriswhite/quebar/internal/api"
	"github.com/bryanchriswhite/quebar/internal/battery"
	"github.com/bryanchriswhite/quebar/internal/config"
	"github.com/bryanchriswhite/quebar/internal/display"
	"github.com/bryanchriswhite/quebar/internal/logger"
	"github.com/bryanchriswhite/quebar/internal/repaint"
	"github.com/bryanchriswhite/quebar/internal/wm"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the status aggregator",
	Long: `Run the QueBar core: connect to the window manager IPC, sample the
battery, and maintain the current display state until interrupted.

With --port set, the current state is served to external renderers at
/api/status (JSON) and /api/status/stream (websocket push per frame).`,
	Example: `  # Run against the default window manager endpoint
  quebar run

  # Run with the status API enabled
  quebar run --port 8080

  # Run against a non-default IPC endpoint with debug logging
  quebar run --endpoint ws://localhost:9123 --log-level debug`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	configMgr, err := config.NewManager(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to initialize config manager: %w", err)
	}

	// Flag overrides
	if viper.IsSet("endpoint") && viper.GetString("endpoint") != "" {
		configMgr.SetEndpoint(viper.GetString("endpoint"))
	}
	if viper.IsSet("server_port") && viper.GetInt("server_port") > 0 {
		configMgr.SetServerPort(viper.GetInt("server_port"))
	}
	if viper.IsSet("log_level") && viper.GetString("log_level") != "" {
		configMgr.SetLogLevel(viper.GetString("log_level"))
	}

	cfg := configMgr.Get()
	logger.Init(cfg.LogLevel, true)
	log := logger.WithComponent("run")
	log.Info().Str("config", configMgr.GetConfigPath()).Str("endpoint", cfg.Endpoint).Msg("starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var flag repaint.Flag

	// Workspace event client
	client := wm.NewClient(cfg.Endpoint, cfg.RetryInterval.Std(), &flag)
	go client.Run(ctx)

	// Battery sampler; hosts without a battery just never publish
	var source battery.Source
	if upower, err := battery.NewUPowerSource(); err != nil {
		log.Warn().Err(err).Msg("battery source unavailable, battery display disabled")
	} else {
		source = upower
		defer upower.Close()
	}
	sampler := battery.NewSampler(source, cfg.BatteryInterval.Std(), &flag)
	go sampler.Run(ctx)

	// Render loop and aggregator
	var server *api.Server
	if cfg.ServerPort > 0 {
		server = api.NewServer()
		go func() {
			if err := server.Start(cfg.ServerPort); err != nil {
				log.Error().Err(err).Msg("status server failed")
			}
		}()
	}

	loop := display.NewLoop(func(state display.State) {
		if server != nil {
			server.Publish(state)
		}
		log.Debug().
			Int("workspaces", len(state.Workspaces)).
			Str("battery", state.Battery).
			Str("time", state.Time).
			Msg("frame")
	})
	agg := display.NewAggregator(client.Snapshots(), sampler.Readings(), loop)
	loop.Bind(agg)

	// Repaint coalescer draining into the render loop
	ticker := repaint.NewTicker(&flag, cfg.RepaintInterval.Std(), loop.RequestRepaint)
	go ticker.Run(ctx)

	// Stop on interrupt
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("shutting down")
		cancel()
	}()

	loop.Run(ctx)
	return nil
}
